package cart

import (
	"fmt"
	"math"
)

/*
Partition represents the split of a set of training rows in two
according to a threshold on a feature: rows whose value for the
feature is lower than the threshold go Left, the rest go Right.
Impurity is the weighted Gini impurity of the labels on both sides.
*/
type Partition struct {
	FeatureIndex int
	Threshold    float64
	Left         []int
	Right        []int
	Impurity     float64
}

func (p *Partition) String() string {
	return fmt.Sprintf("{x[%d] < %v: %d|%d gini %.4f}", p.FeatureIndex, p.Threshold, len(p.Left), len(p.Right), p.Impurity)
}

/*
partition takes the feature matrix, the indices of the rows to split
and a feature index and threshold and returns the indices of the rows
below the threshold and those equal or above it, in their original order.
*/
func partition(features [][]float64, rows []int, featureIndex int, threshold float64) (left, right []int) {
	for _, r := range rows {
		if features[r][featureIndex] < threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}

/*
bestPartition tries every value of every feature among the given rows
as a threshold and returns the partition with the lowest weighted Gini
impurity. Features are tried in index order and thresholds in row order,
the first candidate reaching the minimum wins. Every candidate that
improves on the best found so far credits its impurity to its feature on
the given importanceTracker.

The search evaluates len(rows) x features thresholds, each in linear time,
so it is quadratic on the number of rows.

It returns nil if there are no rows or no features.
*/
func bestPartition(features [][]float64, rows []int, ci *classIndex, credit *importanceTracker) *Partition {
	if len(rows) == 0 {
		return nil
	}
	width := len(features[rows[0]])
	left := make([]int, ci.len())
	right := make([]int, ci.len())
	var result *Partition
	bestImpurity := math.Inf(1)
	for fi := 0; fi < width; fi++ {
		for _, tr := range rows {
			threshold := features[tr][fi]
			for c := range left {
				left[c], right[c] = 0, 0
			}
			var nLeft int
			for _, r := range rows {
				if features[r][fi] < threshold {
					left[ci.ofRow[r]]++
					nLeft++
				} else {
					right[ci.ofRow[r]]++
				}
			}
			impurity := weightedGini(left, nLeft, right, len(rows)-nLeft)
			if impurity < bestImpurity {
				bestImpurity = impurity
				credit.add(fi, impurity)
				result = &Partition{FeatureIndex: fi, Threshold: threshold, Impurity: impurity}
			}
		}
	}
	if result != nil {
		result.Left, result.Right = partition(features, rows, result.FeatureIndex, result.Threshold)
	}
	return result
}
