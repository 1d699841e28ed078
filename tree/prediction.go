package tree

import (
	"fmt"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrEmptyTree is the error returned when trying to predict with
a tree that has no root node.
*/
const ErrEmptyTree = PredictionError("tree has no root node")

/*
ErrFeatureIndexOutOfRange is the error returned by the Predict method of a
tree when a node on the path of the sample splits on a feature index the
sample does not have.
*/
const ErrFeatureIndexOutOfRange = PredictionError("split feature index out of range of sample")

/*
ErrMissingChild is the error returned by the Predict method of a tree when
the path of a sample leads to a subtree that is absent on an internal node.
It means the tree is malformed or was only partially built.
*/
const ErrMissingChild = PredictionError("internal node is missing a subtree")

func (pe PredictionError) Error() string {
	return string(pe)
}

// Predict takes a feature vector and returns the one-hot label of the leaf
// it reaches going down from the root, or an error if the tree cannot be
// traversed with it.
// The returned slice is a copy and can be modified by the caller.
func (t *Tree) Predict(feature []float64) ([]float64, error) {
	if t == nil || t.Root == nil {
		return nil, ErrEmptyTree
	}
	n := t.Root
	for depth := 0; !n.IsLeaf(); depth++ {
		if n.SplitFeatureIndex < 0 || n.SplitFeatureIndex >= len(feature) {
			return nil, fmt.Errorf("predicting sample at depth %d: index %d with %d features: %w", depth, n.SplitFeatureIndex, len(feature), ErrFeatureIndexOutOfRange)
		}
		var next *Node
		side := "right"
		if feature[n.SplitFeatureIndex] < n.SplitValue {
			next = n.Left
			side = "left"
		} else {
			next = n.Right
		}
		if next == nil {
			return nil, fmt.Errorf("predicting sample at depth %d: going %s: %w", depth, side, ErrMissingChild)
		}
		n = next
	}
	result := make([]float64, len(n.PredictedLabel))
	copy(result, n.PredictedLabel)
	return result, nil
}
