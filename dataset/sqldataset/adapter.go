package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
)

/*
Adapter is an interface providing the methods
needed to implement a Set with a database backend.

Raw samples are maps of column names to values: float64
values for feature columns and a string value for the label
column, which is absent for unlabeled samples.
*/
type Adapter interface {
	ColumnName(string) (string, error)

	CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error

	AddSamples(ctx context.Context, rawSamples []map[string]interface{}, featureColumns []string, labelColumn string) (int, error)
	IterateOnSamples(ctx context.Context, featureColumns []string, labelColumn string, lambda func(int, map[string]interface{}) (bool, error)) error
	CountSamples(ctx context.Context) (int, error)

	Close() error
}

// MaxSampleInsertionsPerStatement is the maximum number
// of samples that are added with a single insert command
// by the AddSamples helper. Adding more will result in
// more insertion commands.
const MaxSampleInsertionsPerStatement = 10

/*
ColumnName takes a feature name and returns the column name for it on the
samples table, or an error if the feature name cannot be used as a column.
*/
func ColumnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

/*
CreateSampleTableStatement returns the statement that ensures the samples table
exists with a REAL column per feature, a TEXT column for the label and an id
column with the given definition.
*/
func CreateSampleTableStatement(featureColumns []string, labelColumn, idColumnDefinition string) string {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range featureColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" REAL NOT NULL, `, c))
	}
	createStmtBuf.WriteString(fmt.Sprintf(`"%s" TEXT NULL, `, labelColumn))
	createStmtBuf.WriteString(fmt.Sprintf(`"id" %s)`, idColumnDefinition))
	return createStmtBuf.String()
}

/*
AddSamples inserts the raw samples on the samples table of the given database
in chunks of MaxSampleInsertionsPerStatement. The placeholder function takes
the 1-based position of a parameter in a statement and returns its placeholder.
It returns the number of samples inserted and an error if not all could be.
*/
func AddSamples(ctx context.Context, db *sql.DB, placeholder func(int) string, rawSamples []map[string]interface{}, featureColumns []string, labelColumn string) (int, error) {
	columns := append(append([]string{}, featureColumns...), labelColumn)
	for chunkStart := 0; chunkStart < len(rawSamples); chunkStart += MaxSampleInsertionsPerStatement {
		chunkEnd := chunkStart + MaxSampleInsertionsPerStatement
		if chunkEnd > len(rawSamples) {
			chunkEnd = len(rawSamples)
		}
		chunk := rawSamples[chunkStart:chunkEnd]
		values := make([]interface{}, 0, len(chunk)*len(columns))
		for _, rs := range chunk {
			for _, c := range columns {
				values = append(values, rs[c])
			}
		}
		_, err := db.ExecContext(ctx, insertStatement(columns, len(chunk), placeholder), values...)
		if err != nil {
			return chunkStart, fmt.Errorf("inserting samples %d to %d: %v", chunkStart+1, chunkEnd, err)
		}
	}
	return len(rawSamples), nil
}

func insertStatement(columns []string, rows int, placeholder func(int) string) string {
	var insertStmtBuffer bytes.Buffer
	insertStmtBuffer.WriteString(`INSERT INTO samples ("`)
	insertStmtBuffer.WriteString(strings.Join(columns, `", "`))
	insertStmtBuffer.WriteString(`") VALUES `)
	for r := 0; r < rows; r++ {
		if r > 0 {
			insertStmtBuffer.WriteString(", ")
		}
		insertStmtBuffer.WriteString("(")
		for c := range columns {
			if c > 0 {
				insertStmtBuffer.WriteString(", ")
			}
			insertStmtBuffer.WriteString(placeholder(r*len(columns) + c + 1))
		}
		insertStmtBuffer.WriteString(")")
	}
	return insertStmtBuffer.String()
}

/*
IterateOnSamples queries all samples of the samples table of the given
database in insertion order and calls the lambda function with every raw
sample and its index. If the lambda function returns false the iteration
stops.
*/
func IterateOnSamples(ctx context.Context, db *sql.DB, featureColumns []string, labelColumn string, lambda func(int, map[string]interface{}) (bool, error)) error {
	columns := append(append([]string{}, featureColumns...), labelColumn)
	query := fmt.Sprintf(`SELECT "%s" FROM samples ORDER BY "id"`, strings.Join(columns, `", "`))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		rawSample := make(map[string]interface{})
		featureValues := make([]float64, len(featureColumns))
		var label sql.NullString
		values := make([]interface{}, 0, len(columns))
		for i := range featureValues {
			values = append(values, &featureValues[i])
		}
		values = append(values, &label)
		err = rows.Scan(values...)
		if err != nil {
			return err
		}
		for i, c := range featureColumns {
			rawSample[c] = featureValues[i]
		}
		if label.Valid {
			rawSample[labelColumn] = label.String
		}
		ok, err := lambda(j, rawSample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

// CountSamples returns the number of rows in the samples table of the given database
func CountSamples(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count)
	return count, err
}
