package sqldataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertStatement(t *testing.T) {
	stmt := insertStatement([]string{"x", "label"}, 2, func(i int) string { return fmt.Sprintf("$%d", i) })
	assert.Equal(t, `INSERT INTO samples ("x", "label") VALUES ($1, $2), ($3, $4)`, stmt)
}

func TestCreateSampleTableStatement(t *testing.T) {
	stmt := CreateSampleTableStatement([]string{"x", "y"}, "label", "SERIAL PRIMARY KEY")
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS samples("x" REAL NOT NULL, "y" REAL NOT NULL, "label" TEXT NULL, "id" SERIAL PRIMARY KEY)`, stmt)
}

func TestColumnName(t *testing.T) {
	c, err := ColumnName("petal_width")
	assert.NoError(t, err)
	assert.Equal(t, "petal_width", c)
	_, err = ColumnName("id")
	assert.Error(t, err)
	_, err = ColumnName(`a"b`)
	assert.Error(t, err)
}
