package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/dataset/csv"
	"github.com/pbanos/cart/dataset/mongodataset"
	"github.com/pbanos/cart/dataset/redisdataset"
	"github.com/pbanos/cart/dataset/sqldataset"
	"github.com/pbanos/cart/dataset/sqldataset/pgadapter"
	"github.com/pbanos/cart/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/cart/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/redis.v5"
)

const setLocationHelp = "a CSV file path, an SQLite3 (.db) file path, or a PostgreSQL (postgresql://), MongoDB (mongodb://) or Redis (redis://host/db?prefix=p) URL"

type sampleWriter interface {
	Write(context.Context, []dataset.Sample) (int, error)
}

type writableSet interface {
	sampleWriter
	Flush() error
}

// flushableSampleWriter releases the backend connection on Flush
type flushableSampleWriter struct {
	sampleWriter
	close func() error
}

func (fsw *flushableSampleWriter) Flush() error {
	if fsw.close == nil {
		return nil
	}
	return fsw.close()
}

type csvFileWriter struct {
	csv.Writer
	f *os.File
}

func (cfw *csvFileWriter) Flush() error {
	if err := cfw.Writer.Flush(); err != nil {
		return err
	}
	if cfw.f == os.Stdout {
		return nil
	}
	return cfw.f.Close()
}

/*
ReadSamples takes the location of a set and a schema and returns all
the samples of the set. An empty location reads a CSV set from STDIN.
*/
func (rcc *rootCmdConfig) ReadSamples(location string, schema *feature.Schema) ([]dataset.Sample, error) {
	ctx := rcc.Context()
	switch {
	case strings.HasPrefix(location, "postgresql://"):
		rcc.Logf("Creating PostgreSQL adapter to read set...")
		adapter, err := pgadapter.New(location)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return readSQLSet(ctx, adapter, schema)
	case strings.HasPrefix(location, "mongodb://"):
		rcc.Logf("Connecting to MongoDB to read set...")
		session, err := mgo.Dial(location)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		defer session.Close()
		set, err := mongodataset.Open(ctx, session, schema)
		if err != nil {
			return nil, err
		}
		return set.Read(ctx)
	case strings.HasPrefix(location, "redis://"):
		rc, prefix, err := redisClient(location)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		rcc.Logf("Reading set from Redis with prefix %s...", prefix)
		return redisdataset.New(rc, prefix, schema).Read(ctx)
	case strings.HasSuffix(location, ".db"):
		rcc.Logf("Creating SQLite3 adapter for file %s to read set...", location)
		adapter, err := sqlite3adapter.New(location)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return readSQLSet(ctx, adapter, schema)
	}
	if location == "" {
		rcc.Logf("Reading set from STDIN...")
	} else {
		rcc.Logf("Reading set from %s...", location)
	}
	return csv.ReadSamplesFromFilePath(location, schema)
}

/*
OutputWriter takes the location of a set and a schema and returns a
writableSet to dump samples into it. An empty location writes a CSV
set to STDOUT.
*/
func (rcc *rootCmdConfig) OutputWriter(location string, schema *feature.Schema) (writableSet, error) {
	ctx := rcc.Context()
	switch {
	case strings.HasPrefix(location, "postgresql://"):
		rcc.Logf("Creating PostgreSQL adapter to dump set...")
		adapter, err := pgadapter.New(location)
		if err != nil {
			return nil, err
		}
		return createSQLSet(ctx, adapter, schema)
	case strings.HasPrefix(location, "mongodb://"):
		rcc.Logf("Connecting to MongoDB to dump set...")
		session, err := mgo.Dial(location)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		set, err := mongodataset.Open(ctx, session, schema)
		if err != nil {
			session.Close()
			return nil, err
		}
		return &flushableSampleWriter{set, func() error { session.Close(); return nil }}, nil
	case strings.HasPrefix(location, "redis://"):
		rc, prefix, err := redisClient(location)
		if err != nil {
			return nil, err
		}
		rcc.Logf("Dumping set into Redis with prefix %s...", prefix)
		return &flushableSampleWriter{redisdataset.New(rc, prefix, schema), rc.Close}, nil
	case strings.HasSuffix(location, ".db"):
		rcc.Logf("Creating SQLite3 adapter for file %s to dump set...", location)
		adapter, err := sqlite3adapter.New(location)
		if err != nil {
			return nil, err
		}
		return createSQLSet(ctx, adapter, schema)
	}
	f := os.Stdout
	if location != "" {
		rcc.Logf("Creating %s to dump set...", location)
		var err error
		f, err = os.Create(location)
		if err != nil {
			return nil, err
		}
	} else {
		rcc.Logf("Using STDOUT to dump set...")
	}
	w, err := csv.NewWriter(f, schema)
	if err != nil {
		return nil, err
	}
	return &csvFileWriter{w, f}, nil
}

func readSQLSet(ctx context.Context, adapter sqldataset.Adapter, schema *feature.Schema) ([]dataset.Sample, error) {
	set, err := sqldataset.OpenSet(ctx, adapter, schema)
	if err != nil {
		return nil, err
	}
	return set.Read(ctx)
}

func createSQLSet(ctx context.Context, adapter sqldataset.Adapter, schema *feature.Schema) (writableSet, error) {
	set, err := sqldataset.CreateSet(ctx, adapter, schema)
	if err != nil {
		adapter.Close()
		return nil, err
	}
	return &flushableSampleWriter{set, adapter.Close}, nil
}

func redisClient(location string) (*redis.Client, string, error) {
	opts, prefix, err := redisdataset.ParseURL(location)
	if err != nil {
		return nil, "", err
	}
	return redis.NewClient(opts), prefix, nil
}
