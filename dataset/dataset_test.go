package dataset

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/cart/feature"
)

func testSchema(t *testing.T) *feature.Schema {
	t.Helper()
	s, err := feature.NewSchema([]string{"x", "y"}, "color", []string{"red", "blue"})
	require.NoError(t, err)
	return s
}

func testSamples(n int) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		class := "red"
		if i%2 == 1 {
			class = "blue"
		}
		samples[i] = Sample{Values: []float64{float64(i), float64(-i)}, Class: class}
	}
	return samples
}

func TestNew(t *testing.T) {
	schema := testSchema(t)
	d, err := New(schema, testSamples(3))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, [][]float64{{0, 0}, {1, -1}, {2, -2}}, d.Features)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}, {1, 0}}, d.Labels)

	samples, err := d.Samples()
	require.NoError(t, err)
	assert.Equal(t, testSamples(3), samples)
}

func TestNewRejectsInvalidSamples(t *testing.T) {
	schema := testSchema(t)
	for _, s := range []Sample{
		{Values: []float64{1}, Class: "red"},
		{Values: []float64{1, 2}, Class: "green"},
		{Values: []float64{1, 2}},
	} {
		_, err := New(schema, []Sample{s})
		assert.Error(t, err, "%v", s)
	}
}

func TestSampleValueFor(t *testing.T) {
	schema := testSchema(t)
	s := Sample{Values: []float64{1.5, 2}, Class: "blue"}
	v, err := s.ValueFor(schema, schema.Features[1])
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	v, err = s.ValueFor(schema, schema.Label)
	require.NoError(t, err)
	assert.Equal(t, "blue", v)
	_, err = s.ValueFor(schema, feature.NewContinuousFeature("z"))
	assert.Error(t, err)
	assert.Equal(t, "[1.5 2] => blue", s.String())
}

func TestSplit(t *testing.T) {
	d, err := New(testSchema(t), testSamples(10))
	require.NoError(t, err)
	train, test, err := Split(d, 0.3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 7, train.Len())
	assert.Equal(t, 3, test.Len())

	var xs []float64
	for _, part := range []*Dataset{train, test} {
		assert.Len(t, part.Labels, part.Len())
		for _, f := range part.Features {
			xs = append(xs, f[0])
		}
	}
	sort.Float64s(xs)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, xs)

	again, _, err := Split(d, 0.3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, train.Features, again.Features)
}

func TestSplitKeepsBothPartsNonEmpty(t *testing.T) {
	d, err := New(testSchema(t), testSamples(2))
	require.NoError(t, err)
	for _, ratio := range []float64{0.01, 0.99} {
		train, test, err := Split(d, ratio, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		assert.Equal(t, 1, train.Len())
		assert.Equal(t, 1, test.Len())
	}
}

func TestSplitErrors(t *testing.T) {
	d, err := New(testSchema(t), testSamples(4))
	require.NoError(t, err)
	rnd := rand.New(rand.NewSource(1))
	for _, ratio := range []float64{0, 1, -0.5, 2} {
		_, _, err = Split(d, ratio, rnd)
		assert.Error(t, err, "%v", ratio)
	}
	one, err := New(testSchema(t), testSamples(1))
	require.NoError(t, err)
	_, _, err = Split(one, 0.5, rnd)
	assert.Error(t, err)
}
