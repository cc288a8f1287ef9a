package gan

import (
	"github.com/irisdum/sent2-cloud-remover/reduction"
	"github.com/irisdum/sent2-cloud-remover/summary"
)

const (
	DefaultDiscriminatorLabelSmoothing = 0.25
	DefaultGeneratorLabelSmoothing     = 0.0
)

// Config holds the optional arguments of the weighted GAN losses. Empty
// weights mean 1.0. A nil Collection disables loss collection and summaries.
type Config struct {
	// LabelSmoothing moves the positive labels towards 0.5.
	LabelSmoothing float32

	// RealWeights and GeneratedWeights weight the two sides of a
	// discriminator loss. Weights is used by generator losses.
	RealWeights      reduction.Weights
	GeneratedWeights reduction.Weights
	Weights          reduction.Weights

	Reduction reduction.Type

	// Scope replaces the default name of the loss in the collection and
	// prefixes the summary names.
	Scope        string
	Collection   *summary.Collection
	AddSummaries bool
}

func NewDiscriminatorConfig() *Config {
	return &Config{
		LabelSmoothing: DefaultDiscriminatorLabelSmoothing,
		Reduction:      reduction.SumByNonzeroWeights,
	}
}

func NewGeneratorConfig() *Config {
	return &Config{
		LabelSmoothing: DefaultGeneratorLabelSmoothing,
		Reduction:      reduction.SumByNonzeroWeights,
	}
}

func (c *Config) scope(defaultScope string) string {
	if c.Scope != "" {
		return c.Scope
	}
	return defaultScope
}

func (c *Config) scalar(scope, name string, value float32) {
	if c.AddSummaries {
		c.Collection.Scalar(summary.Join(scope, name), value)
	}
}
