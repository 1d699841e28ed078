/*
Package inputsample provides a way to read a dataset.Sample
interactively from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/feature"
)

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(*feature.ContinuousFeature) error
	RejectValueFor(*feature.ContinuousFeature, string) error
}

/*
Read takes an io.Reader, a schema and a FeatureValueRequester and returns
a sample without class with a value for every feature of the schema, or an
error.

Every feature value is first requested with the FeatureValueRequester and
then parsed from the reader. Values are expected to be presented ending with
the '\n' character, that is in new lines. Lines will be read from the reader
until one with a valid value for the feature is found, every invalid one is
rejected with the FeatureValueRequester's RejectValueFor method.
*/
func Read(r io.Reader, schema *feature.Schema, featureValueRequester FeatureValueRequester) (dataset.Sample, error) {
	scanner := bufio.NewScanner(r)
	sample := dataset.Sample{Values: make([]float64, 0, len(schema.Features))}
	for _, f := range schema.Features {
		err := featureValueRequester.RequestValueFor(f)
		if err != nil {
			return sample, err
		}
		value, err := readContinuousFeature(scanner, f, featureValueRequester)
		if err != nil {
			return sample, err
		}
		sample.Values = append(sample.Values, value)
	}
	return sample, nil
}

func readContinuousFeature(scanner *bufio.Scanner, f *feature.ContinuousFeature, featureValueRequester FeatureValueRequester) (float64, error) {
	for scanner.Scan() {
		line := scanner.Text()
		value, err := strconv.ParseFloat(line, 64)
		if err == nil {
			if ok, _ := f.Valid(value); ok {
				return value, nil
			}
		}
		err = featureValueRequester.RejectValueFor(f, line)
		if err != nil {
			return 0, err
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("EOF when requesting value for feature %s", f.Name())
}
