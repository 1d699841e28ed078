package csv

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/feature"
)

func testSchema(t *testing.T) *feature.Schema {
	t.Helper()
	s, err := feature.NewSchema([]string{"x", "y"}, "color", []string{"red", "blue"})
	require.NoError(t, err)
	return s
}

func TestReadSamples(t *testing.T) {
	in := "y,color,x\n1,red,0.5\n-2,blue,3\n"
	samples, err := ReadSamples(strings.NewReader(in), testSchema(t))
	require.NoError(t, err)
	assert.Equal(t, []dataset.Sample{
		{Values: []float64{0.5, 1}, Class: "red"},
		{Values: []float64{3, -2}, Class: "blue"},
	}, samples)
}

func TestReadSamplesWithoutLabel(t *testing.T) {
	samples, err := ReadSamples(strings.NewReader("x,y\n1,2\n"), testSchema(t))
	require.NoError(t, err)
	assert.Equal(t, []dataset.Sample{{Values: []float64{1, 2}}}, samples)

	samples, err = ReadSamples(strings.NewReader("x,y,color\n1,2,?\n"), testSchema(t))
	require.NoError(t, err)
	assert.Equal(t, "", samples[0].Class)
}

func TestReadSamplesErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"x,z\n1,2\n",
		"x\n1\n",
		"x,x,y\n1,1,2\n",
		"x,y\n1,two\n",
		"x,y,color\n1,2,green\n",
		"x,y\n1,2,3\n",
		"x,y\n1,NaN\n",
	} {
		_, err := ReadSamples(strings.NewReader(in), testSchema(t))
		assert.Error(t, err, in)
	}
}

func TestReadSamplesBySampleStops(t *testing.T) {
	var seen int
	err := ReadSamplesBySample(strings.NewReader("x,y\n1,2\n3,4\n5,6\n"), testSchema(t), func(i int, _ dataset.Sample) (bool, error) {
		seen++
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestWriterRoundTrip(t *testing.T) {
	schema := testSchema(t)
	samples := []dataset.Sample{
		{Values: []float64{0.25, 1e-7}, Class: "blue"},
		{Values: []float64{-3, 100}},
	}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, schema)
	require.NoError(t, err)
	n, err := w.Write(context.Background(), samples)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Flush())
	assert.Equal(t, "x,y,color\n0.25,1e-07,blue\n-3,100,?\n", buf.String())

	back, err := ReadSamples(&buf, schema)
	require.NoError(t, err)
	assert.Equal(t, samples, back)
}

func TestWriterRejectsInvalidSample(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, testSchema(t))
	require.NoError(t, err)
	n, err := w.Write(context.Background(), []dataset.Sample{
		{Values: []float64{1, 2}, Class: "red"},
		{Values: []float64{1}, Class: "red"},
	})
	assert.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, w.Count())
}

func TestReadSamplesFromFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y,color\n1,2,red\n"), 0o600))
	samples, err := ReadSamplesFromFilePath(path, testSchema(t))
	require.NoError(t, err)
	assert.Len(t, samples, 1)

	_, err = ReadSamplesFromFilePath(filepath.Join(t.TempDir(), "missing.csv"), testSchema(t))
	assert.Error(t, err)
}
