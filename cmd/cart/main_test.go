package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/cart/dataset/csv"
	"github.com/pbanos/cart/feature/yaml"
)

const schemaYAML = `
features: [x]
label:
  name: class
  values: [a, b]
`

// writeFixtures writes a schema and a set where samples with x below 10 are a
func writeFixtures(t *testing.T) (dir, schemaPath, setPath string) {
	t.Helper()
	dir = t.TempDir()
	schemaPath = filepath.Join(dir, "schema.yml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(schemaYAML), 0o600))
	var set strings.Builder
	set.WriteString("x,class\n")
	for x := 0; x < 20; x++ {
		class := "a"
		if x >= 10 {
			class = "b"
		}
		fmt.Fprintf(&set, "%d,%s\n", x, class)
	}
	setPath = filepath.Join(dir, "set.csv")
	require.NoError(t, os.WriteFile(setPath, []byte(set.String()), 0o600))
	return dir, schemaPath, setPath
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := cliParser()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "cart v0.1.0\n", run(t, "version"))
}

func TestTrain(t *testing.T) {
	_, schemaPath, setPath := writeFixtures(t)
	out := run(t, "train", "-m", schemaPath, "-i", setPath, "--seed", "1", "--test-ratio", "0.25", "--log-level", "error")
	assert.Contains(t, out, "[root]\n{ x < ")
	assert.Contains(t, out, "{ a }")
	assert.Contains(t, out, "{ b }")
	assert.Contains(t, out, "training accuracy: 100.00% (15 samples)")
	assert.Contains(t, out, "(5 samples)")
	assert.Contains(t, out, "feature importances:\n  x: 1.0000\n")
}

func TestTrainMaxDepthZero(t *testing.T) {
	_, schemaPath, setPath := writeFixtures(t)
	out := run(t, "train", "-m", schemaPath, "-i", setPath, "--seed", "1", "--max-depth", "0", "--log-level", "error")
	assert.Contains(t, out, "tree with depth 0 and 1 leaves")
	assert.Contains(t, out, "none, the tree is a single leaf")
}

func TestTrainConfigFile(t *testing.T) {
	dir, schemaPath, setPath := writeFixtures(t)
	configPath := filepath.Join(dir, "cart.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("max-depth: 0\nseed: 3\nlog-level: error\n"), 0o600))
	out := run(t, "train", "-m", schemaPath, "-i", setPath, "--config", configPath)
	assert.Contains(t, out, "tree with depth 0 and 1 leaves")
}

func TestPredict(t *testing.T) {
	dir, schemaPath, setPath := writeFixtures(t)
	samplesPath := filepath.Join(dir, "samples.csv")
	require.NoError(t, os.WriteFile(samplesPath, []byte("x\n3\n15\n-1\n"), 0o600))
	out := run(t, "predict", "-m", schemaPath, "-i", setPath, "-s", samplesPath, "--log-level", "error")
	assert.Equal(t, "a\nb\na\n", out)
}

func TestSetCopiesBetweenBackends(t *testing.T) {
	dir, schemaPath, setPath := writeFixtures(t)
	dbPath := filepath.Join(dir, "set.db")
	copyPath := filepath.Join(dir, "copy.csv")
	run(t, "set", "-m", schemaPath, "-i", setPath, "-o", dbPath)
	run(t, "set", "-m", schemaPath, "-i", dbPath, "-o", copyPath)

	original, err := os.ReadFile(setPath)
	require.NoError(t, err)
	copied, err := os.ReadFile(copyPath)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(copied))
}

func TestSetSplit(t *testing.T) {
	dir, schemaPath, setPath := writeFixtures(t)
	keptPath := filepath.Join(dir, "kept.csv")
	splitPath := filepath.Join(dir, "split.csv")
	run(t, "set", "split", "-m", schemaPath, "-i", setPath, "-o", keptPath, "-s", splitPath, "-p", "50", "--seed", "3")

	schema, err := yaml.ReadSchemaFromFile(schemaPath)
	require.NoError(t, err)
	kept, err := csv.ReadSamplesFromFilePath(keptPath, schema)
	require.NoError(t, err)
	split, err := csv.ReadSamplesFromFilePath(splitPath, schema)
	require.NoError(t, err)
	assert.Equal(t, 20, len(kept)+len(split))
}

func TestNewSlogLogger(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warn", "error"} {
		_, err := newSlogLogger(level, "")
		assert.NoError(t, err, level)
	}
	_, err := newSlogLogger("loud", "")
	assert.Error(t, err)

	logFile := filepath.Join(t.TempDir(), "cart.log")
	l, err := newSlogLogger("info", logFile)
	require.NoError(t, err)
	l.Info("decision tree accuracy", "accuracy", 1.0)
	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"decision tree accuracy"`)
}
