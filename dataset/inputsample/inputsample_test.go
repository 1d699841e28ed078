package inputsample

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/cart/feature"
)

type recordingRequester struct {
	requested []string
	rejected  []string
}

func (rr *recordingRequester) RequestValueFor(f *feature.ContinuousFeature) error {
	rr.requested = append(rr.requested, f.Name())
	return nil
}

func (rr *recordingRequester) RejectValueFor(f *feature.ContinuousFeature, value string) error {
	rr.rejected = append(rr.rejected, f.Name()+"="+value)
	return nil
}

func testSchema(t *testing.T) *feature.Schema {
	t.Helper()
	s, err := feature.NewSchema([]string{"x", "y"}, "color", []string{"red", "blue"})
	require.NoError(t, err)
	return s
}

func TestRead(t *testing.T) {
	rr := &recordingRequester{}
	s, err := Read(strings.NewReader("1.5\nabc\nNaN\n-2\n"), testSchema(t), rr)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2}, s.Values)
	assert.Equal(t, "", s.Class)
	assert.Equal(t, []string{"x", "y"}, rr.requested)
	assert.Equal(t, []string{"y=abc", "y=NaN"}, rr.rejected)
}

func TestReadEOF(t *testing.T) {
	_, err := Read(strings.NewReader("1\n"), testSchema(t), &recordingRequester{})
	assert.Error(t, err)
}
