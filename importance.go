package cart

import (
	"gonum.org/v1/gonum/floats"
)

// importanceTracker accumulates impurity credit per feature index
type importanceTracker struct {
	credit map[int]float64
}

func newImportanceTracker() *importanceTracker {
	return &importanceTracker{credit: make(map[int]float64)}
}

func (it *importanceTracker) add(featureIndex int, impurity float64) {
	it.credit[featureIndex] += impurity
}

// merge adds all the credit in o to it
func (it *importanceTracker) merge(o *importanceTracker) {
	for fi, c := range o.credit {
		it.add(fi, c)
	}
}

/*
normalized returns a new map with the credit of every feature divided
by the total credit, so that values add up to 1. When features were
credited but the total is 0, every credited feature gets an equal share.
*/
func (it *importanceTracker) normalized() map[int]float64 {
	result := make(map[int]float64, len(it.credit))
	if len(it.credit) == 0 {
		return result
	}
	indices := make([]int, 0, len(it.credit))
	values := make([]float64, 0, len(it.credit))
	for fi, c := range it.credit {
		indices = append(indices, fi)
		values = append(values, c)
	}
	total := floats.Sum(values)
	if total == 0 {
		for i := range values {
			values[i] = 1
		}
		total = float64(len(values))
	}
	floats.Scale(1/total, values)
	for i, fi := range indices {
		result[fi] = values[i]
	}
	return result
}
