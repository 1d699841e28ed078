/*
Package sqldataset provides a set of samples that uses an SQL
database as backend.

Samples are stored on a samples table with a REAL column
for every feature of the schema, a TEXT column for the label
and an id column that keeps the insertion order.
*/
package sqldataset

import (
	"context"
	"fmt"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/feature"
)

/*
Set is a set of samples to which samples can be added
and from which samples can be read.
*/
type Set interface {
	Read(context.Context) ([]dataset.Sample, error)
	Write(context.Context, []dataset.Sample) (int, error)
	Count(context.Context) (int, error)
}

type sqlSet struct {
	db             Adapter
	schema         *feature.Schema
	featureColumns []string
	labelColumn    string
}

/*
OpenSet takes a context, an Adapter and a schema and returns a Set
backed by the given adapter or an error. The samples table is expected
to exist already.
*/
func OpenSet(ctx context.Context, dbAdapter Adapter, schema *feature.Schema) (Set, error) {
	ss, err := newSQLSet(dbAdapter, schema)
	if err != nil {
		return nil, err
	}
	if _, err = dbAdapter.CountSamples(ctx); err != nil {
		return nil, fmt.Errorf("opening samples table: %v", err)
	}
	return ss, nil
}

/*
CreateSet takes a context, an Adapter and a schema and returns a Set
backed by the given adapter or an error.

This function will ensure that the samples table is created on the
database.
*/
func CreateSet(ctx context.Context, dbAdapter Adapter, schema *feature.Schema) (Set, error) {
	ss, err := newSQLSet(dbAdapter, schema)
	if err != nil {
		return nil, err
	}
	if err = dbAdapter.CreateSampleTable(ctx, ss.featureColumns, ss.labelColumn); err != nil {
		return nil, err
	}
	return ss, nil
}

func newSQLSet(dbAdapter Adapter, schema *feature.Schema) (*sqlSet, error) {
	ss := &sqlSet{db: dbAdapter, schema: schema}
	for _, f := range schema.Features {
		column, err := dbAdapter.ColumnName(f.Name())
		if err != nil {
			return nil, err
		}
		ss.featureColumns = append(ss.featureColumns, column)
	}
	column, err := dbAdapter.ColumnName(schema.Label.Name())
	if err != nil {
		return nil, err
	}
	ss.labelColumn = column
	return ss, nil
}

func (ss *sqlSet) Count(ctx context.Context) (int, error) {
	return ss.db.CountSamples(ctx)
}

func (ss *sqlSet) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	rawSamples := make([]map[string]interface{}, 0, len(samples))
	for i, s := range samples {
		if err := s.Validate(ss.schema); err != nil {
			return 0, fmt.Errorf("sample %d: %v", i, err)
		}
		rawSamples = append(rawSamples, ss.newRawSample(s))
	}
	return ss.db.AddSamples(ctx, rawSamples, ss.featureColumns, ss.labelColumn)
}

func (ss *sqlSet) Read(ctx context.Context) ([]dataset.Sample, error) {
	var samples []dataset.Sample
	err := ss.db.IterateOnSamples(ctx, ss.featureColumns, ss.labelColumn, func(i int, rawSample map[string]interface{}) (bool, error) {
		s, err := ss.sampleFromRaw(rawSample)
		if err != nil {
			return false, fmt.Errorf("sample %d: %v", i, err)
		}
		samples = append(samples, s)
		return true, ctx.Err()
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (ss *sqlSet) newRawSample(s dataset.Sample) map[string]interface{} {
	rawSample := make(map[string]interface{})
	for i, c := range ss.featureColumns {
		rawSample[c] = s.Values[i]
	}
	if s.Class != "" {
		rawSample[ss.labelColumn] = s.Class
	}
	return rawSample
}

func (ss *sqlSet) sampleFromRaw(rawSample map[string]interface{}) (dataset.Sample, error) {
	s := dataset.Sample{Values: make([]float64, len(ss.featureColumns))}
	for i, c := range ss.featureColumns {
		v, ok := rawSample[c].(float64)
		if !ok {
			return s, fmt.Errorf("expected float64 value for column %s, got %T", c, rawSample[c])
		}
		s.Values[i] = v
	}
	if class, ok := rawSample[ss.labelColumn].(string); ok {
		s.Class = class
	}
	return s, s.Validate(ss.schema)
}
