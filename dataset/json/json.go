/*
Package json provides the encoding of samples as JSON documents
for backends that store samples as opaque values.
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/feature"
)

/*
SampleEncodeDecoder is an interface for objects
that allow encoding samples into slices of
bytes and decoding them back to samples.
*/
type SampleEncodeDecoder interface {

	//Encode receives a dataset.Sample
	//and returns a slice of bytes with the sample
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(dataset.Sample) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a dataset.Sample decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (dataset.Sample, error)
}

type jsonEncodeDecoder struct {
	schema *feature.Schema
}

type jsonSample struct {
	Values []float64 `json:"values"`
	Class  string    `json:"class,omitempty"`
}

/*
New takes a schema and returns a SampleEncodeDecoder that encodes/decodes
samples as JSON objects with a values array holding the feature values in
schema order and a class string that is omitted for unlabeled samples.
Samples are validated against the schema both when encoding and decoding.
*/
func New(schema *feature.Schema) SampleEncodeDecoder {
	return &jsonEncodeDecoder{schema}
}

func (jed *jsonEncodeDecoder) Encode(s dataset.Sample) ([]byte, error) {
	if err := s.Validate(jed.schema); err != nil {
		return nil, err
	}
	data, err := json.Marshal(&jsonSample{s.Values, s.Class})
	if err != nil {
		return nil, fmt.Errorf("encoding sample: %v", err)
	}
	return data, nil
}

func (jed *jsonEncodeDecoder) Decode(data []byte) (dataset.Sample, error) {
	js := &jsonSample{}
	if err := json.Unmarshal(data, js); err != nil {
		return dataset.Sample{}, fmt.Errorf("decoding sample: %v", err)
	}
	s := dataset.Sample{Values: js.Values, Class: js.Class}
	return s, s.Validate(jed.schema)
}
