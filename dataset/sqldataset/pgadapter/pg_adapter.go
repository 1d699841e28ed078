/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"context"
	"database/sql"
	"fmt"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"

	"github.com/pbanos/cart/dataset/sqldataset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	return sqldataset.ColumnName(featureName)
}

func (a *adapter) CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error {
	createStmt, err := a.db.PrepareContext(ctx, sqldataset.CreateSampleTableStatement(featureColumns, labelColumn, "SERIAL PRIMARY KEY"))
	if err != nil {
		return fmt.Errorf("preparing samples creation statement: %v", err)
	}
	defer createStmt.Close()
	_, err = createStmt.ExecContext(ctx)
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

func placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}
