package cart

// stopReason names the rule that turned a node into a leaf
type stopReason string

const (
	dontStop          stopReason = ""
	stopMaxDepth      stopReason = "max depth reached"
	stopTooFewSamples stopReason = "too few samples to split"
	stopLeafBudget    stopReason = "leaf budget exhausted"
	stopPure          stopReason = "pure node"
	stopNoValidSplit  stopReason = "no split leaves enough samples on both sides"
	stopNoSplitAtAll  stopReason = "no split candidates"
)

/*
leafBudget counts the leaves of a growing tree against the
configured maximum. A tree starts as a single leaf, and every
accepted split turns one leaf into two.
*/
type leafBudget struct {
	max    int
	leaves int
}

func newLeafBudget(max int) *leafBudget {
	return &leafBudget{max: max, leaves: 1}
}

func (lb *leafBudget) exhausted() bool {
	return lb.max > 0 && lb.leaves >= lb.max
}

func (lb *leafBudget) split() {
	lb.leaves++
}

// stopBeforeSearch checks the rules that make a node a leaf
// without looking for a split
func (c Config) stopBeforeSearch(depth, samples int, impurity float64, lb *leafBudget) stopReason {
	switch {
	case depth >= c.MaxDepth:
		return stopMaxDepth
	case samples < c.MinSamplesSplit:
		return stopTooFewSamples
	case lb.exhausted():
		return stopLeafBudget
	case impurity == 0:
		return stopPure
	}
	return dontStop
}

// stopAfterSearch checks whether the best partition found
// for a node can become its subtrees
func (c Config) stopAfterSearch(p *Partition) stopReason {
	if p == nil {
		return stopNoSplitAtAll
	}
	if len(p.Left) < c.minSamplesLeaf() || len(p.Right) < c.minSamplesLeaf() {
		return stopNoValidSplit
	}
	return dontStop
}
