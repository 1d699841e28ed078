package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/pbanos/cart"
	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/feature"
	"github.com/spf13/cobra"
)

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a tree on a set of data and evaluate it",
		Long:  `Train a classification tree on part of a set of data, evaluate it on the rest and print it along its accuracy and feature importances.`,
		Run: func(cmd *cobra.Command, args []string) {
			v := rootConfig.v
			schema, d := rootConfig.loadDataset()
			rnd := rand.New(rand.NewSource(seed(v.GetInt64("seed"))))
			trainingSet, testingSet, err := dataset.Split(d, v.GetFloat64("test-ratio"), rnd)
			exitOnError(err, 4)
			dt := rootConfig.newDecisionTree()
			rootConfig.Logf("Training tree on %d samples and %d features to predict %s...", trainingSet.Len(), len(schema.Features), schema.Label.Name())
			err = dt.Train(trainingSet.Features, trainingSet.Labels)
			exitOnError(err, 6)
			rootConfig.Logf("Done")

			out := cmd.OutOrStdout()
			printTree(out, schema, dt)
			trainingAccuracy, err := dt.Evaluate(trainingSet.Features, trainingSet.Labels)
			exitOnError(err, 7)
			rootConfig.Logf("Evaluating tree on %d test samples...", testingSet.Len())
			testAccuracy, err := dt.Evaluate(testingSet.Features, testingSet.Labels)
			exitOnError(err, 7)
			fmt.Fprintf(out, "training accuracy: %.2f%% (%d samples)\n", 100*trainingAccuracy, trainingSet.Len())
			fmt.Fprintf(out, "test accuracy: %.2f%% (%d samples)\n", 100*testAccuracy, testingSet.Len())
			printImportances(out, schema, dt.FeatureImportances())
		},
	}
	addSetFlags(cmd)
	addTreeFlags(cmd)
	cmd.Flags().Float64("test-ratio", 0.2, "ratio of samples of the input set to set apart to evaluate the tree, between 0 and 1")
	cmd.Flags().Int64("seed", 0, "seed for the random split of the input set (defaults to 0: use the current time)")
	return cmd
}

func addSetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "location of the set of data to train on: "+setLocationHelp+" (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringP("metadata", "m", "", "path to a YML file with the schema of the features and label on the input set (required)")
}

func addTreeFlags(cmd *cobra.Command) {
	defaults := cart.DefaultConfig()
	cmd.Flags().Int("max-depth", defaults.MaxDepth, "maximum depth of the tree")
	cmd.Flags().Int("min-samples-split", defaults.MinSamplesSplit, "minimum number of samples a node needs to be split")
	cmd.Flags().Int("min-samples-leaf", defaults.MinSamplesLeaf, "minimum number of samples on each side of a split")
	cmd.Flags().Int("max-leaf-nodes", defaults.MaxLeafNodes, "maximum number of leaves of the tree (0 means no limit)")
}

// loadDataset reads the schema and the input set, exiting on failure
func (rcc *rootCmdConfig) loadDataset() (*feature.Schema, *dataset.Dataset) {
	schema := rcc.readSchema()
	samples, err := rcc.ReadSamples(rcc.v.GetString("input"), schema)
	exitOnError(err, 3)
	d, err := dataset.New(schema, samples)
	exitOnError(err, 3)
	rcc.Logf("Read set with %d samples", d.Len())
	return schema, d
}

// newDecisionTree builds a classifier with the tree flags, exiting on failure
func (rcc *rootCmdConfig) newDecisionTree() *cart.DecisionTree {
	c := cart.DefaultConfig()
	err := rcc.v.Unmarshal(&c)
	exitOnError(err, 5)
	dt, err := cart.New(c, cart.WithLogger(rcc.slog))
	exitOnError(err, 5)
	return dt
}

func seed(s int64) int64 {
	if s == 0 {
		return time.Now().UnixNano()
	}
	return s
}

func labelNamer(schema *feature.Schema) func([]float64) string {
	return func(label []float64) string {
		class, err := schema.Class(label)
		if err != nil {
			return fmt.Sprintf("%v", label)
		}
		return class
	}
}

func printTree(out io.Writer, schema *feature.Schema, dt *cart.DecisionTree) {
	t := dt.Tree()
	fmt.Fprintf(out, "tree with depth %d and %d leaves:\n", t.Depth(), t.Leaves())
	fmt.Fprint(out, t.Render(schema.FeatureName, labelNamer(schema)))
}

func printImportances(out io.Writer, schema *feature.Schema, importances map[int]float64) {
	fmt.Fprintln(out, "feature importances:")
	if len(importances) == 0 {
		fmt.Fprintln(out, "  none, the tree is a single leaf")
		return
	}
	for i := range schema.Features {
		if imp, ok := importances[i]; ok {
			fmt.Fprintf(out, "  %s: %.4f\n", schema.FeatureName(i), imp)
		}
	}
}
