package dataset

import (
	"fmt"

	"github.com/pbanos/cart/feature"
)

/*
Sample represents an item to process or from which to learn how to process it.
Values holds the value of every feature of a schema in feature index order,
Class holds the value of the label, and is empty for samples whose class is
to be predicted.
*/
type Sample struct {
	Values []float64
	Class  string
}

/*
ValueFor returns the value of the sample corresponding to the feature
of the given schema passed as parameter, or an error if the schema does
not have the feature.
*/
func (s Sample) ValueFor(schema *feature.Schema, f feature.Feature) (interface{}, error) {
	if f.Name() == schema.Label.Name() {
		if s.Class == "" {
			return nil, nil
		}
		return s.Class, nil
	}
	for i, cf := range schema.Features {
		if cf.Name() == f.Name() {
			if i >= len(s.Values) {
				return nil, fmt.Errorf("sample has no value for feature %s", f.Name())
			}
			return s.Values[i], nil
		}
	}
	return nil, fmt.Errorf("schema has no feature %s", f.Name())
}

/*
Validate takes a schema and returns an error if the sample does not
have a valid value for every feature or its class is not a valid value
for the label. Unlabeled samples are accepted.
*/
func (s Sample) Validate(schema *feature.Schema) error {
	if len(s.Values) != len(schema.Features) {
		return fmt.Errorf("sample has %d values for %d features", len(s.Values), len(schema.Features))
	}
	for i, f := range schema.Features {
		if _, err := f.Valid(s.Values[i]); err != nil {
			return err
		}
	}
	if s.Class != "" {
		if _, err := schema.Label.Valid(s.Class); err != nil {
			return err
		}
	}
	return nil
}

func (s Sample) String() string {
	if s.Class == "" {
		return fmt.Sprintf("%v", s.Values)
	}
	return fmt.Sprintf("%v => %s", s.Values, s.Class)
}
