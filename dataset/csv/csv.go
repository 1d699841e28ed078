/*
Package csv provides methods to read samples from CSV streams
and to write them to CSV streams.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/feature"
)

/*
Writer is an interface for a set to which samples
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given number
	// of samples and will return the actually written
	// number of samples and an error (if not all samples
	// could be written)
	Write(context.Context, []dataset.Sample) (int, error)
	// Count returns the total number of samples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count  int
	schema *feature.Schema
	w      *csv.Writer
}

// columns maps every CSV column to a feature index, or to -1 for the label
type columns []int

const labelColumn = -1

/*
ReadSamples takes an io.Reader for a CSV stream and a schema and returns
the samples parsed from the reader or an error.

The header or first row of the CSV content is expected to consist of the names
of the features of the schema, in any order, and optionally the name of its
label. The rest of the rows should consist of valid values for them. When the
label column is missing, samples are returned without class.
*/
func ReadSamples(reader io.Reader, schema *feature.Schema) ([]dataset.Sample, error) {
	samples := []dataset.Sample{}
	err := ReadSamplesBySample(reader, schema, func(_ int, s dataset.Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

/*
ReadSamplesBySample takes an io.Reader for a CSV stream, a schema and a
lambda function on an integer and a dataset.Sample that returns a boolean value.
It parses the samples from the reader and for each it calls the lambda function
with the sample and its index as parameters. If the lambda function returns true,
it will continue processing the next sample, otherwise it will stop. An error is
returned if something goes wrong when reading the stream or parsing a sample.
*/
func ReadSamplesBySample(reader io.Reader, schema *feature.Schema, lambda func(int, dataset.Sample) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	cols, err := parseColumnsFromCSVHeader(header, schema)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		sample, err := parseSampleFromCSVRow(row, cols, schema)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadSamplesFromFilePath takes a filepath string and a schema, opens the file
to which the filepath points to and uses ReadSamples to return the samples
read from it or an error. If the filepath is "" os.Stdin is read instead.
It will return an error if the given filepath cannot be opened for reading.
*/
func ReadSamplesFromFilePath(filepath string, schema *feature.Schema) ([]dataset.Sample, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading samples: %v", err)
		}
		defer f.Close()
	}
	samples, err := ReadSamples(f, schema)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return samples, err
}

/*
NewWriter takes an io.Writer and a schema and returns a Writer that will
write any samples on the io.Writer, after a header with the names of the
features and the label of the schema.
*/
func NewWriter(writer io.Writer, schema *feature.Schema) (Writer, error) {
	w := csv.NewWriter(writer)
	record := append(schema.FeatureNames(), schema.Label.Name())
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{schema: schema, w: w}, nil
}

func parseColumnsFromCSVHeader(header []string, schema *feature.Schema) (columns, error) {
	indices := make(map[string]int)
	for i, name := range schema.FeatureNames() {
		indices[name] = i
	}
	indices[schema.Label.Name()] = labelColumn
	cols := make(columns, 0, len(header))
	seen := make(map[string]bool)
	for _, name := range header {
		i, ok := indices[name]
		if !ok {
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("parsing header: feature %s is repeated", name)
		}
		seen[name] = true
		cols = append(cols, i)
	}
	for _, name := range schema.FeatureNames() {
		if !seen[name] {
			return nil, fmt.Errorf("parsing header: missing column for feature %s", name)
		}
	}
	return cols, nil
}

func parseSampleFromCSVRow(row []string, cols columns, schema *feature.Schema) (dataset.Sample, error) {
	sample := dataset.Sample{Values: make([]float64, len(schema.Features))}
	for i, fi := range cols {
		v := row[i]
		if fi == labelColumn {
			if v != "" && v != "?" {
				if ok, err := schema.Label.Valid(v); !ok {
					return sample, fmt.Errorf("invalid value %s for label %s: %v", v, schema.Label.Name(), err)
				}
				sample.Class = v
			}
			continue
		}
		f := schema.Features[fi]
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sample, fmt.Errorf("converting %s to float64 for feature %s: %v", v, f.Name(), err)
		}
		if ok, err := f.Valid(value); !ok {
			return sample, fmt.Errorf("invalid value %v for feature %s: %v", value, f.Name(), err)
		}
		sample.Values[fi] = value
	}
	return sample, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	for n, s := range samples {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := cw.WriteSample(s); err != nil {
			return n, err
		}
	}
	return len(samples), nil
}

// WriteSample writes a single sample as a CSV row
func (cw *csvWriter) WriteSample(sample dataset.Sample) error {
	if err := sample.Validate(cw.schema); err != nil {
		return fmt.Errorf("writing CSV row for sample %d: %v", cw.count+1, err)
	}
	record := make([]string, 0, len(sample.Values)+1)
	for _, v := range sample.Values {
		record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
	}
	class := sample.Class
	if class == "" {
		class = "?"
	}
	record = append(record, class)
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for sample %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
