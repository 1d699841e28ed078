/*
Package dataset provides the in-memory representation of a set of samples
described by a feature.Schema, ready to be used to train and evaluate a
decision tree.
*/
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/pbanos/cart/feature"
)

/*
Dataset holds a set of labeled samples as a feature matrix and a matrix
of one-hot labels, both with a row per sample. Feature columns follow the
order of the schema features and label columns the order of the schema
label values.
*/
type Dataset struct {
	Schema   *feature.Schema
	Features [][]float64
	Labels   [][]float64
}

/*
New takes a schema and a slice of samples and returns a dataset with them
or an error if any sample does not fit the schema or has no class.
*/
func New(schema *feature.Schema, samples []Sample) (*Dataset, error) {
	d := &Dataset{
		Schema:   schema,
		Features: make([][]float64, 0, len(samples)),
		Labels:   make([][]float64, 0, len(samples)),
	}
	for i, s := range samples {
		if err := s.Validate(schema); err != nil {
			return nil, fmt.Errorf("sample %d: %v", i, err)
		}
		if s.Class == "" {
			return nil, fmt.Errorf("sample %d: no value for label %s", i, schema.Label.Name())
		}
		label, err := schema.OneHot(s.Class)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %v", i, err)
		}
		values := make([]float64, len(s.Values))
		copy(values, s.Values)
		d.Features = append(d.Features, values)
		d.Labels = append(d.Labels, label)
	}
	return d, nil
}

// Len returns the number of samples in the dataset
func (d *Dataset) Len() int {
	return len(d.Features)
}

/*
Samples returns the samples of the dataset, decoding the one-hot
labels into classes. It returns an error if a label is not a valid
one-hot vector for the schema.
*/
func (d *Dataset) Samples() ([]Sample, error) {
	samples := make([]Sample, 0, d.Len())
	for i, f := range d.Features {
		class, err := d.Schema.Class(d.Labels[i])
		if err != nil {
			return nil, fmt.Errorf("sample %d: %v", i, err)
		}
		values := make([]float64, len(f))
		copy(values, f)
		samples = append(samples, Sample{Values: values, Class: class})
	}
	return samples, nil
}

/*
Split takes a dataset, a ratio of samples to set apart for testing and a
source of randomness, and returns a training and a testing dataset.
Samples are shuffled before splitting. The ratio must be in the (0, 1)
interval. When the dataset has at least 2 samples, both resulting datasets
will have at least one sample.
*/
func Split(d *Dataset, testRatio float64, rnd *rand.Rand) (train, test *Dataset, err error) {
	if !(testRatio > 0 && testRatio < 1) {
		return nil, nil, fmt.Errorf("test ratio must be between 0 and 1 (both excluded), got %v", testRatio)
	}
	if d.Len() < 2 {
		return nil, nil, fmt.Errorf("cannot split a dataset with %d samples", d.Len())
	}
	order := rnd.Perm(d.Len())
	nTest := int(float64(d.Len())*testRatio + 0.5)
	if nTest < 1 {
		nTest = 1
	}
	if nTest > d.Len()-1 {
		nTest = d.Len() - 1
	}
	train = &Dataset{Schema: d.Schema}
	test = &Dataset{Schema: d.Schema}
	for i, r := range order {
		dst := train
		if i < nTest {
			dst = test
		}
		dst.Features = append(dst.Features, d.Features[r])
		dst.Labels = append(dst.Labels, d.Labels[r])
	}
	return train, test, nil
}
