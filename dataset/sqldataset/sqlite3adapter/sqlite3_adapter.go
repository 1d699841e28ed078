/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqldataset package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"context"
	"database/sql"
	"fmt"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/pbanos/cart/dataset/sqldataset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	return sqldataset.ColumnName(featureName)
}

func (a *adapter) CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error {
	_, err := a.db.ExecContext(ctx, sqldataset.CreateSampleTableStatement(featureColumns, labelColumn, "INTEGER PRIMARY KEY AUTOINCREMENT"))
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, rawSamples []map[string]interface{}, featureColumns []string, labelColumn string) (int, error) {
	return sqldataset.AddSamples(ctx, a.db, placeholder, rawSamples, featureColumns, labelColumn)
}

func (a *adapter) IterateOnSamples(ctx context.Context, featureColumns []string, labelColumn string, lambda func(int, map[string]interface{}) (bool, error)) error {
	return sqldataset.IterateOnSamples(ctx, a.db, featureColumns, labelColumn, lambda)
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	return sqldataset.CountSamples(ctx, a.db)
}

func (a *adapter) Close() error {
	return a.db.Close()
}

func placeholder(int) string {
	return "?"
}
