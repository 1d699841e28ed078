package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func irisSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema([]string{"petal_length", "petal_width"}, "species", []string{"setosa", "versicolor", "virginica"})
	require.NoError(t, err)
	return s
}

func TestSchemaValidate(t *testing.T) {
	testCases := []struct {
		name     string
		features []string
		label    string
		classes  []string
	}{
		{"no features", nil, "species", []string{"a"}},
		{"empty feature name", []string{"x", ""}, "species", []string{"a"}},
		{"repeated feature", []string{"x", "x"}, "species", []string{"a"}},
		{"no label name", []string{"x"}, "", []string{"a"}},
		{"label named as feature", []string{"x"}, "x", []string{"a"}},
		{"no classes", []string{"x"}, "species", nil},
		{"empty class", []string{"x"}, "species", []string{"a", ""}},
		{"repeated class", []string{"x"}, "species", []string{"a", "a"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSchema(tc.features, tc.label, tc.classes)
			assert.Error(t, err)
		})
	}
	assert.Error(t, (&Schema{Features: []*ContinuousFeature{NewContinuousFeature("x")}}).Validate())
}

func TestSchemaOneHotAndClass(t *testing.T) {
	s := irisSchema(t)
	for i, c := range s.Label.AvailableValues() {
		oh, err := s.OneHot(c)
		require.NoError(t, err)
		assert.Len(t, oh, 3)
		assert.Equal(t, 1.0, oh[i])
		back, err := s.Class(oh)
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}

	_, err := s.OneHot("rosa")
	assert.Error(t, err)
	for _, bad := range [][]float64{{1, 0}, {0, 0, 0}, {1, 1, 0}, {0.5, 0.5, 0}} {
		_, err = s.Class(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestSchemaNames(t *testing.T) {
	s := irisSchema(t)
	assert.Equal(t, []string{"petal_length", "petal_width"}, s.FeatureNames())
	assert.Equal(t, "petal_width", s.FeatureName(1))
	assert.Equal(t, "x[7]", s.FeatureName(7))
	assert.Equal(t, "species ~ petal_length, petal_width {setosa, versicolor, virginica}", s.String())
}

func TestContinuousFeatureValid(t *testing.T) {
	f := NewContinuousFeature("x")
	ok, err := f.Valid(1.5)
	assert.True(t, ok)
	assert.NoError(t, err)
	ok, _ = f.Valid(math.NaN())
	assert.False(t, ok)
	ok, _ = f.Valid("1.5")
	assert.False(t, ok)
}
