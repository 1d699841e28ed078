package cart

import (
	"gonum.org/v1/gonum/floats"
)

// classIndex groups one-hot label rows by exact equality.
// Classes are numbered in order of first appearance.
type classIndex struct {
	labels [][]float64
	ofRow  []int
}

func newClassIndex(labels [][]float64) *classIndex {
	ci := &classIndex{ofRow: make([]int, len(labels))}
	for i, l := range labels {
		ci.ofRow[i] = ci.classOf(l)
	}
	return ci
}

func (ci *classIndex) classOf(label []float64) int {
	for c, l := range ci.labels {
		if floats.Equal(l, label) {
			return c
		}
	}
	ci.labels = append(ci.labels, label)
	return len(ci.labels) - 1
}

func (ci *classIndex) len() int {
	return len(ci.labels)
}

// label returns a copy of the one-hot vector of class c
func (ci *classIndex) label(c int) []float64 {
	l := make([]float64, len(ci.labels[c]))
	copy(l, ci.labels[c])
	return l
}

func (ci *classIndex) counts(rows []int) []int {
	counts := make([]int, len(ci.labels))
	for _, r := range rows {
		counts[ci.ofRow[r]]++
	}
	return counts
}

// majority returns the most frequent class among rows.
// Ties go to the class that appears first in rows.
func (ci *classIndex) majority(rows []int) int {
	counts := make([]int, len(ci.labels))
	var order []int
	for _, r := range rows {
		c := ci.ofRow[r]
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}
	best := -1
	for _, c := range order {
		if best < 0 || counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

// gini returns 1 - Σ p² for the given class counts.
// An empty set has no impurity.
func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func weightedGini(left []int, nLeft int, right []int, nRight int) float64 {
	total := nLeft + nRight
	if total == 0 {
		return 0
	}
	return float64(nLeft)/float64(total)*gini(left, nLeft) + float64(nRight)/float64(total)*gini(right, nRight)
}

/*
Gini takes a matrix of one-hot labels and returns its Gini impurity:
1 minus the sum of the squared fractions of each distinct label vector.
It is 0 for a set with a single label (or no labels) and grows as
labels get mixed.
*/
func Gini(labels [][]float64) float64 {
	ci := newClassIndex(labels)
	return gini(ci.counts(allRows(len(labels))), len(labels))
}

/*
WeightedGini takes the one-hot labels of both sides of a split
and returns the average of their Gini impurities weighted by the
share of rows on each side.
*/
func WeightedGini(left, right [][]float64) float64 {
	ci := newClassIndex(append(append([][]float64{}, left...), right...))
	all := allRows(len(left) + len(right))
	l, r := all[:len(left)], all[len(left):]
	return weightedGini(ci.counts(l), len(l), ci.counts(r), len(r))
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}
