/*
Package mongodataset provides a set of samples
that uses a MongoDB database as backend.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Set is a set of samples to which samples can be added
and from which samples can be read
*/
type Set interface {
	Read(context.Context) ([]dataset.Sample, error)
	Write(context.Context, []dataset.Sample) (int, error)
	Count(context.Context) (int, error)
}

type mongoset struct {
	session *mgo.Session
	schema  *feature.Schema
}

const (
	samplesCollectionName = "samples"
	orderField            = "_order"
)

/*
Open takes a context, a MongoDB database session and a schema and returns
a Set that works on the samples collection of the default database for
that session or an error if the schema names cannot be used as document
fields or the collection indexes cannot be ensured.

Every sample is stored as a document with a field per feature, a field
for the label when the sample has a class and an order field that keeps
the order in which samples were written.
*/
func Open(ctx context.Context, session *mgo.Session, schema *feature.Schema) (Set, error) {
	ms := &mongoset{session, schema}
	err := ms.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return ms, nil
}

func (ms *mongoset) Count(context.Context) (int, error) {
	return ms.samplesCollection().Count()
}

func (ms *mongoset) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	offset, err := ms.Count(ctx)
	if err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(samples))
	for i, s := range samples {
		if err := s.Validate(ms.schema); err != nil {
			return 0, fmt.Errorf("sample %d: %v", i, err)
		}
		doc := bson.M{orderField: offset + i}
		for j, f := range ms.schema.Features {
			doc[f.Name()] = s.Values[j]
		}
		if s.Class != "" {
			doc[ms.schema.Label.Name()] = s.Class
		}
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	err = ms.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}

func (ms *mongoset) Read(ctx context.Context) ([]dataset.Sample, error) {
	var samples []dataset.Sample
	var doc bson.M
	iter := ms.samplesCollection().Find(nil).Sort(orderField).Iter()
	defer iter.Close()
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := ms.sampleFromDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %v", len(samples), err)
		}
		samples = append(samples, s)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func (ms *mongoset) sampleFromDoc(doc bson.M) (dataset.Sample, error) {
	s := dataset.Sample{Values: make([]float64, len(ms.schema.Features))}
	for i, f := range ms.schema.Features {
		switch v := doc[f.Name()].(type) {
		case float64:
			s.Values[i] = v
		case int:
			s.Values[i] = float64(v)
		case int64:
			s.Values[i] = float64(v)
		default:
			return s, fmt.Errorf("expected numeric value for feature %s, got %T", f.Name(), v)
		}
	}
	if class, ok := doc[ms.schema.Label.Name()].(string); ok {
		s.Class = class
	}
	return s, s.Validate(ms.schema)
}

func (ms *mongoset) ensureIndexes() error {
	names := append(ms.schema.FeatureNames(), ms.schema.Label.Name())
	for _, fName := range names {
		if fName == "_id" || fName == orderField {
			return fmt.Errorf("invalid feature name %q: reserved collection field", fName)
		}
		if strings.ContainsAny(fName, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
	}
	index := mgo.Index{
		Key:        []string{orderField},
		Background: true,
	}
	return ms.samplesCollection().EnsureIndex(index)
}

func (ms *mongoset) samplesCollection() *mgo.Collection {
	return ms.session.DB("").C(samplesCollectionName)
}
