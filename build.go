package cart

import (
	"github.com/pbanos/cart/tree"
)

// builder grows a tree over a training set. It is
// used for a single Train call and then discarded.
type builder struct {
	Config
	features    [][]float64
	classes     *classIndex
	budget      *leafBudget
	importances *importanceTracker
	stops       map[stopReason]int
}

func newBuilder(c Config, features, labels [][]float64) *builder {
	return &builder{
		Config:      c,
		features:    features,
		classes:     newClassIndex(labels),
		budget:      newLeafBudget(c.MaxLeafNodes),
		importances: newImportanceTracker(),
		stops:       make(map[stopReason]int),
	}
}

/*
build takes the indices of the training rows that reach a node
and its depth and returns the node with its subtrees grown.

The node predicts the majority label of its rows. It becomes a leaf if
any stopping rule applies or the best partition of its rows is not
acceptable; otherwise it is split on that partition and both subtrees
are grown depth-first, left first. Importance credit gathered while
searching a node's partition only counts if the node ends up split.
*/
func (b *builder) build(rows []int, depth int) *tree.Node {
	n := &tree.Node{PredictedLabel: b.classes.label(b.classes.majority(rows))}
	impurity := gini(b.classes.counts(rows), len(rows))
	if reason := b.stopBeforeSearch(depth, len(rows), impurity, b.budget); reason != dontStop {
		b.stops[reason]++
		return n
	}
	credit := newImportanceTracker()
	p := bestPartition(b.features, rows, b.classes, credit)
	if reason := b.stopAfterSearch(p); reason != dontStop {
		b.stops[reason]++
		return n
	}
	b.budget.split()
	b.importances.merge(credit)
	n.SplitFeatureIndex = p.FeatureIndex
	n.SplitValue = p.Threshold
	n.Left = b.build(p.Left, depth+1)
	n.Right = b.build(p.Right, depth+1)
	return n
}
