/*
Package cart implements a binary decision tree classifier over numeric
feature vectors and one-hot encoded labels.

Trees are grown by exhaustively searching, on every node, the feature
value threshold whose split of the node's training rows has the lowest
weighted Gini impurity, until a stopping rule turns the node into a leaf.
*/
package cart

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pbanos/cart/tree"
)

/*
Classifier is the interface shared by classification algorithms.

Train fits the classifier to a feature matrix and the matrix of one-hot
labels of its rows, returning an error if it could not.

Predict takes a feature vector and returns its predicted one-hot label.

Evaluate takes a feature matrix and its expected labels and returns the
fraction of rows whose prediction matches their label exactly.
*/
type Classifier interface {
	Train(features, labels [][]float64) error
	Predict(feature []float64) ([]float64, error)
	Evaluate(features, labels [][]float64) (float64, error)
}

// Error represents an error of a classifier
type Error string

// ErrInvalidData is the error returned when a feature or label
// matrix cannot be used to train or evaluate a classifier
const ErrInvalidData = Error("invalid data")

// ErrNotTrained is the error returned when predicting or evaluating
// with a classifier that has not been successfully trained
const ErrNotTrained = Error("classifier not trained")

func (e Error) Error() string {
	return string(e)
}

/*
DecisionTree is a Classifier that predicts with a binary tree grown
according to its Config.

A DecisionTree must not be trained from several goroutines at the same
time. Once trained, predicting and evaluating do not modify it.
*/
type DecisionTree struct {
	config      Config
	logger      *slog.Logger
	tree        *tree.Tree
	importances *importanceTracker
}

var _ Classifier = (*DecisionTree)(nil)

// New takes a Config and options and returns an untrained DecisionTree
// or an error if the config is not valid.
func New(c Config, opts ...Option) (*DecisionTree, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	dt := &DecisionTree{config: c, logger: slog.Default()}
	for _, opt := range opts {
		opt(dt)
	}
	return dt, nil
}

// Config returns the hyperparameters of the decision tree
func (dt *DecisionTree) Config() Config {
	return dt.config
}

// Tree returns the tree grown by the last successful
// Train call, or nil if there was none
func (dt *DecisionTree) Tree() *tree.Tree {
	return dt.tree
}

/*
Train grows a new tree over the given feature and one-hot label matrices,
replacing any previous one. The matrices must have the same non-zero number
of rows, all feature rows must have the same non-zero length and all label
rows must be one-hot vectors of the same length.

If the data is not valid or the tree cannot be grown, the failure is logged,
the decision tree is left untrained and an error is returned.

Growing the tree takes time quadratic in the number of rows for each level
of the tree.
*/
func (dt *DecisionTree) Train(features, labels [][]float64) (err error) {
	dt.tree = nil
	dt.importances = nil
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("training decision tree: %v", r)
		}
		if err != nil {
			dt.tree = nil
			dt.importances = nil
			dt.logger.Error("training decision tree failed", slog.Any("error", err))
		}
	}()
	if err = validateData(features, labels); err != nil {
		return fmt.Errorf("training decision tree: %w", err)
	}
	b := newBuilder(dt.config, features, labels)
	root := b.build(allRows(len(features)), 0)
	dt.tree = tree.New(root)
	dt.importances = b.importances
	stops := make(map[string]int, len(b.stops))
	for reason, count := range b.stops {
		stops[string(reason)] = count
	}
	dt.logger.Debug("decision tree trained",
		slog.Int("samples", len(features)),
		slog.Int("classes", b.classes.len()),
		slog.Int("depth", dt.tree.Depth()),
		slog.Int("leaves", dt.tree.Leaves()),
		slog.Any("leaf_reasons", stops),
	)
	return nil
}

// Predict takes a feature vector and returns the one-hot label predicted
// for it by the tree, or an error if the decision tree is not trained or
// the tree cannot be traversed with the vector.
func (dt *DecisionTree) Predict(feature []float64) ([]float64, error) {
	if dt.tree == nil {
		return nil, ErrNotTrained
	}
	return dt.tree.Predict(feature)
}

/*
Evaluate takes a feature matrix and the one-hot labels of its rows and
returns the fraction of rows whose predicted label equals their label,
logging it. If the matrices are empty or differ in length, it logs the
problem and returns 0 and an error. Failing to predict a row aborts the
evaluation with that error.
*/
func (dt *DecisionTree) Evaluate(features, labels [][]float64) (float64, error) {
	if len(features) == 0 || len(features) != len(labels) {
		err := fmt.Errorf("evaluating decision tree: %d feature rows and %d label rows: %w", len(features), len(labels), ErrInvalidData)
		dt.logger.Error("invalid test data", slog.Any("error", err))
		return 0, err
	}
	if dt.tree == nil {
		return 0, ErrNotTrained
	}
	accuracy, correct, err := dt.tree.Test(features, labels)
	if err != nil {
		return 0, fmt.Errorf("evaluating decision tree: %w", err)
	}
	dt.logger.Info(fmt.Sprintf("decision tree accuracy: %.2f%%", accuracy*100),
		slog.Float64("accuracy", accuracy),
		slog.Int("correct", correct),
		slog.Int("total", len(features)),
	)
	return accuracy, nil
}

/*
FeatureImportances returns a new map from feature index to the share of
the importance credit the feature earned while growing the tree, adding up
to 1. A feature is credited with the weighted Gini impurity of every
candidate split on it that improved on the best candidate found so far
while searching the split of a node that was then split.

The map is empty if the decision tree is untrained or its tree is a single
leaf.
*/
func (dt *DecisionTree) FeatureImportances() map[int]float64 {
	if dt.tree == nil || dt.importances == nil {
		return map[int]float64{}
	}
	return dt.importances.normalized()
}

func validateData(features, labels [][]float64) error {
	if len(features) == 0 || len(labels) == 0 {
		return fmt.Errorf("empty feature or label matrix: %w", ErrInvalidData)
	}
	if len(features) != len(labels) {
		return fmt.Errorf("%d feature rows but %d label rows: %w", len(features), len(labels), ErrInvalidData)
	}
	width := len(features[0])
	if width == 0 {
		return fmt.Errorf("feature rows have no values: %w", ErrInvalidData)
	}
	classes := len(labels[0])
	if classes == 0 {
		return fmt.Errorf("label rows have no values: %w", ErrInvalidData)
	}
	for i := range features {
		if len(features[i]) != width {
			return fmt.Errorf("feature row %d has %d values instead of %d: %w", i, len(features[i]), width, ErrInvalidData)
		}
		if err := validateOneHot(labels[i], classes); err != nil {
			return fmt.Errorf("label row %d: %v: %w", i, err, ErrInvalidData)
		}
	}
	return nil
}

func validateOneHot(label []float64, width int) error {
	if len(label) != width {
		return fmt.Errorf("%d values instead of %d", len(label), width)
	}
	var ones int
	for _, v := range label {
		switch v {
		case 1:
			ones++
		case 0:
		default:
			return fmt.Errorf("value %v is neither 0 nor 1", v)
		}
	}
	if ones != 1 {
		return errors.New("not a one-hot vector")
	}
	return nil
}
