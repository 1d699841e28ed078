/*
Package yaml provides methods to parse feature.Schema specifications,
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/cart/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadSchema takes a slice of bytes with a schema specification in YML and
returns the schema parsed from it or an error.
The YML is expected to be an object containing a features property with
the list of names of the continuous features, in index order, and a label
property with an object holding the name of the label and the list of its
values:

	features: [sepal_length, sepal_width]
	label:
	  name: species
	  values: [setosa, versicolor]
*/
func ReadSchema(md []byte) (*feature.Schema, error) {
	metadata := struct {
		Features []string
		Label    *struct {
			Name   string
			Values []interface{}
		}
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml schema: %v", err)
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	if metadata.Label == nil {
		return nil, fmt.Errorf("metadata has no label information")
	}
	classes := []string{}
	for _, v := range metadata.Label.Values {
		classes = append(classes, fmt.Sprintf("%v", v))
	}
	schema, err := feature.NewSchema(metadata.Features, metadata.Label.Name, classes)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %v", err)
	}
	return schema, nil
}

/*
ReadSchemaFromFile takes a filepath string, reads its contents and uses
ReadSchema to parse it and return the parsed schema or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadSchemaFromFile(filepath string) (*feature.Schema, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading schema yml file %s: %v", filepath, err)
	}
	schema, err := ReadSchema(md)
	if err != nil {
		err = fmt.Errorf("parsing schema yml file %s: %v", filepath, err)
	}
	return schema, err
}
