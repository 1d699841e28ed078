package feature

import (
	"fmt"
	"strings"
)

/*
Schema describes the samples a decision tree learns from: an ordered list of
continuous features, whose position is the feature index in a feature vector,
and a discrete label whose available values are the classes to predict.
*/
type Schema struct {
	Features []*ContinuousFeature
	Label    *DiscreteFeature
}

/*
NewSchema takes a slice of feature names, a label name and the classes
available for the label and returns a validated schema or an error.
*/
func NewSchema(featureNames []string, labelName string, classes []string) (*Schema, error) {
	s := &Schema{Label: NewDiscreteFeature(labelName, classes)}
	for _, fn := range featureNames {
		s.Features = append(s.Features, NewContinuousFeature(fn))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

/*
Validate returns an error if the schema has no features, no label or no
classes, or if any name is empty or repeated among features and label,
or any class is empty or repeated.
*/
func (s *Schema) Validate() error {
	if len(s.Features) == 0 {
		return fmt.Errorf("schema has no features")
	}
	if s.Label == nil {
		return fmt.Errorf("schema has no label")
	}
	names := make(map[string]bool)
	for i, f := range s.Features {
		if f == nil || f.Name() == "" {
			return fmt.Errorf("feature %d has no name", i)
		}
		if names[f.Name()] {
			return fmt.Errorf("feature name %q is repeated", f.Name())
		}
		names[f.Name()] = true
	}
	if s.Label.Name() == "" {
		return fmt.Errorf("label has no name")
	}
	if names[s.Label.Name()] {
		return fmt.Errorf("label name %q is also a feature name", s.Label.Name())
	}
	if len(s.Label.AvailableValues()) == 0 {
		return fmt.Errorf("label %s has no classes", s.Label.Name())
	}
	classes := make(map[string]bool)
	for _, c := range s.Label.AvailableValues() {
		if c == "" {
			return fmt.Errorf("label %s has an empty class", s.Label.Name())
		}
		if classes[c] {
			return fmt.Errorf("label %s has class %q repeated", s.Label.Name(), c)
		}
		classes[c] = true
	}
	return nil
}

// FeatureNames returns the names of the features in index order
func (s *Schema) FeatureNames() []string {
	names := make([]string, len(s.Features))
	for i, f := range s.Features {
		names[i] = f.Name()
	}
	return names
}

// FeatureName returns the name of the feature at index i
func (s *Schema) FeatureName(i int) string {
	if i < 0 || i >= len(s.Features) {
		return fmt.Sprintf("x[%d]", i)
	}
	return s.Features[i].Name()
}

/*
OneHot takes a class and returns its one-hot encoding: a vector as
long as the number of classes with a 1 on the position of the class
and 0 elsewhere. An error is returned if the class is unknown.
*/
func (s *Schema) OneHot(class string) ([]float64, error) {
	if _, err := s.Label.Valid(class); err != nil {
		return nil, err
	}
	values := s.Label.AvailableValues()
	result := make([]float64, len(values))
	for i, v := range values {
		if v == class {
			result[i] = 1
		}
	}
	return result, nil
}

/*
Class takes a one-hot vector and returns the class it encodes.
An error is returned if the vector does not have the length of the
available classes or is not a one-hot vector.
*/
func (s *Schema) Class(oneHot []float64) (string, error) {
	values := s.Label.AvailableValues()
	if len(oneHot) != len(values) {
		return "", fmt.Errorf("label %s expects %d positions, got %d", s.Label.Name(), len(values), len(oneHot))
	}
	class := -1
	for i, v := range oneHot {
		switch {
		case v == 0:
		case v == 1 && class < 0:
			class = i
		default:
			return "", fmt.Errorf("label %s got non one-hot vector %v", s.Label.Name(), oneHot)
		}
	}
	if class < 0 {
		return "", fmt.Errorf("label %s got non one-hot vector %v", s.Label.Name(), oneHot)
	}
	return values[class], nil
}

func (s *Schema) String() string {
	return fmt.Sprintf("%s ~ %s {%s}", s.Label.Name(), strings.Join(s.FeatureNames(), ", "), strings.Join(s.Label.AvailableValues(), ", "))
}
