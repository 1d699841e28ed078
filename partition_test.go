package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGini(t *testing.T) {
	labelC := []float64{0, 0, 1}
	testCases := []struct {
		name   string
		labels [][]float64
		want   float64
	}{
		{"empty", nil, 0},
		{"pure", [][]float64{labelA, labelA, labelA}, 0},
		{"even two classes", [][]float64{labelA, labelB, labelB, labelA}, 0.5},
		{"even three classes", [][]float64{{1, 0, 0}, {0, 1, 0}, labelC}, 2.0 / 3},
		{"uneven", [][]float64{labelA, labelA, labelA, labelB}, 0.375},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Gini(tc.labels), 1e-12)
		})
	}
}

func TestWeightedGini(t *testing.T) {
	assert.InDelta(t, 0.25, WeightedGini([][]float64{labelA, labelA}, [][]float64{labelA, labelB}), 1e-12)
	assert.InDelta(t, 0.5, WeightedGini(nil, [][]float64{labelA, labelB}), 1e-12)
	assert.Equal(t, 0.0, WeightedGini(nil, nil))
	assert.Equal(t, 0.0, WeightedGini([][]float64{labelA}, [][]float64{labelB}))
}

func TestPartitionSendsThresholdRight(t *testing.T) {
	features := [][]float64{{3}, {1}, {2}, {2}, {0}}
	left, right := partition(features, allRows(len(features)), 0, 2)
	assert.Equal(t, []int{1, 4}, left)
	assert.Equal(t, []int{0, 2, 3}, right)
}

func TestBestPartition(t *testing.T) {
	features, labels := stripes()
	ci := newClassIndex(labels)
	credit := newImportanceTracker()
	p := bestPartition(features, allRows(len(features)), ci, credit)
	require.NotNil(t, p)
	// thresholds 2 and 4 reach the same impurity, the first one wins
	assert.Equal(t, 0, p.FeatureIndex)
	assert.Equal(t, 2.0, p.Threshold)
	assert.Equal(t, []int{0, 1}, p.Left)
	assert.Equal(t, []int{2, 3, 4, 5}, p.Right)
	assert.InDelta(t, 1.0/3, p.Impurity, 1e-12)

	// thresholds 0, 1 and 2 each improve on the best so far
	assert.InDelta(t, 4.0/9+0.4+1.0/3, credit.credit[0], 1e-12)

	p = bestPartition(features, []int{2, 3, 4, 5}, ci, newImportanceTracker())
	require.NotNil(t, p)
	assert.Equal(t, 4.0, p.Threshold)
	assert.Equal(t, 0.0, p.Impurity)
}

func TestBestPartitionNoRows(t *testing.T) {
	features, labels := stripes()
	credit := newImportanceTracker()
	assert.Nil(t, bestPartition(features, nil, newClassIndex(labels), credit))
	assert.Empty(t, credit.credit)
}

func TestMajority(t *testing.T) {
	labelC := []float64{0, 0, 1}
	ci := newClassIndex([][]float64{{1, 0, 0}, labelC, labelC, {1, 0, 0}, {0, 1, 0}})
	assert.Equal(t, 3, ci.len())
	assert.Equal(t, 1, ci.majority([]int{0, 1, 2, 4}))
	assert.Equal(t, 0, ci.majority([]int{0, 1, 2, 3}))
	assert.Equal(t, 1, ci.majority([]int{2, 3}))
	assert.Equal(t, labelC, ci.label(1))

	l := ci.label(1)
	l[2] = 0
	assert.Equal(t, labelC, ci.label(1))
}

func TestImportanceTrackerNormalized(t *testing.T) {
	it := newImportanceTracker()
	assert.Empty(t, it.normalized())

	it.add(0, 1)
	other := newImportanceTracker()
	other.add(1, 2)
	other.add(1, 1)
	it.merge(other)
	got := it.normalized()
	assert.InDelta(t, 0.25, got[0], 1e-12)
	assert.InDelta(t, 0.75, got[1], 1e-12)
	assert.Len(t, got, 2)

	zero := newImportanceTracker()
	zero.add(2, 0)
	zero.add(5, 0)
	assert.Equal(t, map[int]float64{2: 0.5, 5: 0.5}, zero.normalized())
}

func TestLeafBudget(t *testing.T) {
	unlimited := newLeafBudget(0)
	for i := 0; i < 100; i++ {
		unlimited.split()
	}
	assert.False(t, unlimited.exhausted())

	lb := newLeafBudget(2)
	assert.False(t, lb.exhausted())
	lb.split()
	assert.True(t, lb.exhausted())

	assert.True(t, newLeafBudget(1).exhausted())
}

func TestStopRules(t *testing.T) {
	c := Config{MaxDepth: 3, MinSamplesSplit: 4, MinSamplesLeaf: 2}
	lb := newLeafBudget(0)
	assert.Equal(t, stopMaxDepth, c.stopBeforeSearch(3, 10, 0.5, lb))
	assert.Equal(t, stopTooFewSamples, c.stopBeforeSearch(0, 3, 0.5, lb))
	assert.Equal(t, stopLeafBudget, c.stopBeforeSearch(0, 10, 0.5, newLeafBudget(1)))
	assert.Equal(t, stopPure, c.stopBeforeSearch(0, 10, 0, lb))
	assert.Equal(t, dontStop, c.stopBeforeSearch(2, 4, 0.5, lb))

	assert.Equal(t, stopNoSplitAtAll, c.stopAfterSearch(nil))
	assert.Equal(t, stopNoValidSplit, c.stopAfterSearch(&Partition{Left: []int{0}, Right: []int{1, 2, 3}}))
	assert.Equal(t, dontStop, c.stopAfterSearch(&Partition{Left: []int{0, 1}, Right: []int{2, 3}}))

	c.MinSamplesLeaf = 0
	assert.Equal(t, stopNoValidSplit, c.stopAfterSearch(&Partition{Right: []int{0, 1}}))
}
