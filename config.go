package cart

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds the hyperparameters that decide when
// a node of a growing tree is not split any further.
type Config struct {
	// MaxDepth is the depth at which nodes stop being
	// split. A tree grown with MaxDepth 0 is a single leaf.
	MaxDepth int `mapstructure:"max-depth" validate:"gte=0"`
	// MinSamplesSplit is the minimum number of training
	// samples a node must hold to attempt splitting it.
	MinSamplesSplit int `mapstructure:"min-samples-split" validate:"gte=0"`
	// MinSamplesLeaf is the minimum number of training
	// samples each side of a split must hold for the split
	// to be accepted. Values below 1 are treated as 1, empty
	// subtrees are never grown.
	MinSamplesLeaf int `mapstructure:"min-samples-leaf" validate:"gte=0"`
	// MaxLeafNodes caps the number of leaves of the tree.
	// Nodes are split depth-first, left before right, while
	// the cap allows it. 0 means no cap.
	MaxLeafNodes int `mapstructure:"max-leaf-nodes" validate:"gte=0"`
}

// DefaultConfig returns a Config with a maximum depth of 10,
// at least 2 samples to split a node, at least 1 sample per
// leaf and at most 50 leaves.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        10,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxLeafNodes:    50,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate returns an error describing every field of the
// config holding an invalid value, or nil if there is none.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validating config: %v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must be %s %s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c Config) minSamplesLeaf() int {
	if c.MinSamplesLeaf < 1 {
		return 1
	}
	return c.MinSamplesLeaf
}

// Option customizes a DecisionTree on creation
type Option func(*DecisionTree)

// WithLogger makes the DecisionTree report training failures,
// evaluation results and build summaries to the given logger
// instead of slog's default one.
func WithLogger(l *slog.Logger) Option {
	return func(dt *DecisionTree) {
		if l != nil {
			dt.logger = l
		}
	}
}
