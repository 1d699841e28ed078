package tree

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Tree represents a binary decision tree. It owns the
// root node, from which all other nodes hang.
type Tree struct {
	Root *Node
}

// New takes a root Node and returns a tree with it
// as its root.
func New(root *Node) *Tree {
	return &Tree{root}
}

/*
Test takes a feature matrix and the matrix of their expected one-hot labels
and returns three values:
  - the rate of rows whose prediction is exactly equal to their label
  - the number of rows correctly predicted
  - an error if the matrices do not match in length or a row cannot be
    predicted. If this is not nil, the other values will be 0.0 and 0
    respectively
*/
func (t *Tree) Test(features, labels [][]float64) (float64, int, error) {
	if len(features) != len(labels) {
		return 0.0, 0, fmt.Errorf("testing tree: %d feature rows but %d label rows", len(features), len(labels))
	}
	if len(features) == 0 {
		return 0.0, 0, fmt.Errorf("testing tree: no rows to test against")
	}
	var correct int
	for i, f := range features {
		p, err := t.Predict(f)
		if err != nil {
			return 0.0, 0, fmt.Errorf("testing tree: row %d: %w", i, err)
		}
		if floats.Equal(p, labels[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(features)), correct, nil
}

// Traverse takes a bottomup boolean and an error-returning
// function that takes a node and its depth, and goes through
// the tree running the function with every node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Left subtrees
// are always visited before right ones.
// If the call to the function returns an error, the traversing is
// aborted and the error is returned.
func (t *Tree) Traverse(bottomup bool, f func(n *Node, depth int) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return traverse(t.Root, 0, bottomup, f)
}

func traverse(n *Node, depth int, bottomup bool, f func(*Node, int) error) error {
	if !bottomup {
		if err := f(n, depth); err != nil {
			return err
		}
	}
	for _, sn := range []*Node{n.Left, n.Right} {
		if sn == nil {
			continue
		}
		if err := traverse(sn, depth+1, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n, depth)
	}
	return nil
}

// Depth returns the number of edges on the longest
// path from the root to a leaf
func (t *Tree) Depth() int {
	var max int
	t.Traverse(false, func(_ *Node, depth int) error {
		if depth > max {
			max = depth
		}
		return nil
	})
	return max
}

// Leaves returns the number of leaf nodes in the tree
func (t *Tree) Leaves() int {
	var count int
	t.Traverse(false, func(n *Node, _ int) error {
		if n.IsLeaf() {
			count++
		}
		return nil
	})
	return count
}

func (t *Tree) String() string {
	return t.Render(nil, nil)
}

/*
Render returns a multiline drawing of the tree. The featureName
function is used to name split features by their index and the
labelName function to name predicted labels. Either can be nil,
and then indices and raw label vectors are printed instead.
*/
func (t *Tree) Render(featureName func(int) string, labelName func([]float64) string) string {
	if t == nil || t.Root == nil {
		return "[empty tree]\n"
	}
	if featureName == nil {
		featureName = func(i int) string { return fmt.Sprintf("x[%d]", i) }
	}
	if labelName == nil {
		labelName = func(l []float64) string { return fmt.Sprintf("%v", l) }
	}
	return subtreeString(t.Root, "root", featureName, labelName)
}

func subtreeString(n *Node, branch string, featureName func(int) string, labelName func([]float64) string) string {
	var result string
	if n.IsLeaf() {
		result = fmt.Sprintf("[%s]\n{ %s }\n \n", branch, labelName(n.PredictedLabel))
	} else {
		result = fmt.Sprintf("[%s]\n{ %s < %v }\n|\n", branch, featureName(n.SplitFeatureIndex), n.SplitValue)
	}
	subtrees := []struct {
		branch string
		node   *Node
	}{{"true", n.Left}, {"false", n.Right}}
	for i, st := range subtrees {
		if st.node == nil {
			continue
		}
		for j, line := range strings.Split(subtreeString(st.node, st.branch, featureName, labelName), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(subtrees)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
