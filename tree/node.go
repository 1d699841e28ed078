package tree

/*
Node is a node of the tree
*/
type Node struct {
	// The index into the feature vector whose value is compared against
	// SplitValue. Only meaningful on internal nodes.
	SplitFeatureIndex int
	// The threshold of the split: samples whose value for the split feature
	// is lower than it go down the Left subtree, all others go down the Right one.
	SplitValue float64
	// The subtrees under this node. A node with neither is a leaf.
	Left  *Node
	Right *Node
	// The one-hot label most frequent among the training samples that reached
	// this node. It is set on every node but only used for predicting on leaves.
	PredictedLabel []float64
}

// IsLeaf returns whether the node has no subtrees
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}
