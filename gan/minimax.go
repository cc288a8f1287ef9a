package gan

import (
	"fmt"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"github.com/irisdum/sent2-cloud-remover/reduction"
	"gonum.org/v1/gonum/blas/blas32"
)

func minimaxDiscriminatorTerms(realOutputs, genOutputs blas32.Vector, c *Config) (float32, float32, error) {
	onReal, err := reduction.SigmoidCrossEntropy(vector.NewOnesLike(realOutputs), realOutputs, c.RealWeights, c.LabelSmoothing, c.Reduction)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("loss on real: %w", err)
	}
	onGen, err := reduction.SigmoidCrossEntropy(vector.NewZerosLike(genOutputs), genOutputs, c.GeneratedWeights, 0.0, c.Reduction)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("loss on generated: %w", err)
	}
	return onReal, onGen, nil
}

func minimaxDiscriminatorLoss(realOutputs, genOutputs blas32.Vector, c *Config, defaultScope string) (float32, error) {
	onReal, onGen, err := minimaxDiscriminatorTerms(realOutputs, genOutputs, c)
	if err != nil {
		return 0.0, err
	}
	loss := onReal + onGen

	scope := c.scope(defaultScope)
	c.Collection.AddLoss(scope, loss)
	c.scalar(scope, "discriminator_gen_minimax_loss", onGen)
	c.scalar(scope, "discriminator_real_minimax_loss", onReal)
	c.scalar(scope, "discriminator_minimax_loss", loss)
	return loss, nil
}

// MinimaxDiscriminatorLoss is the discriminator loss of Goodfellow et al. with
// one-sided label smoothing:
//
//	L = -realWeights * log(sigmoid(D(x))) - generatedWeights * log(1 - sigmoid(D(G(z))))
//
// realOutputs and genOutputs are logits. A nil c uses NewDiscriminatorConfig.
func MinimaxDiscriminatorLoss(realOutputs, genOutputs blas32.Vector, c *Config) (float32, error) {
	if c == nil {
		c = NewDiscriminatorConfig()
	}
	loss, err := minimaxDiscriminatorLoss(realOutputs, genOutputs, c, "discriminator_minimax_loss")
	if err != nil {
		return 0.0, fmt.Errorf("minimax discriminator loss: %w", err)
	}
	return loss, nil
}

// MinimaxDiscriminatorLossDerivative returns the gradients with respect to realOutputs and genOutputs.
func MinimaxDiscriminatorLossDerivative(realOutputs, genOutputs blas32.Vector, c *Config) (blas32.Vector, blas32.Vector, error) {
	if c == nil {
		c = NewDiscriminatorConfig()
	}
	dReal, err := reduction.SigmoidCrossEntropyDerivative(vector.NewOnesLike(realOutputs), realOutputs, c.RealWeights, c.LabelSmoothing, c.Reduction)
	if err != nil {
		return blas32.Vector{}, blas32.Vector{}, fmt.Errorf("minimax discriminator loss derivative: %w", err)
	}
	dGen, err := reduction.SigmoidCrossEntropyDerivative(vector.NewZerosLike(genOutputs), genOutputs, c.GeneratedWeights, 0.0, c.Reduction)
	if err != nil {
		return blas32.Vector{}, blas32.Vector{}, fmt.Errorf("minimax discriminator loss derivative: %w", err)
	}
	return dReal, dGen, nil
}

// MinimaxGeneratorLoss is the negated minimax discriminator loss evaluated
// with logits of 1 on the real side, so only genOutputs carries a gradient. The
// positive discriminator value is what lands in the collection. A nil c uses
// NewGeneratorConfig.
func MinimaxGeneratorLoss(genOutputs blas32.Vector, c *Config) (float32, error) {
	if c == nil {
		c = NewGeneratorConfig()
	}
	inner := *c
	inner.RealWeights = c.Weights
	inner.GeneratedWeights = c.Weights
	inner.AddSummaries = false
	inner.Scope = c.scope("generator_minimax_loss")

	dis, err := minimaxDiscriminatorLoss(vector.NewOnesLike(genOutputs), genOutputs, &inner, "")
	if err != nil {
		return 0.0, fmt.Errorf("minimax generator loss: %w", err)
	}
	loss := -dis
	c.scalar(c.Scope, "generator_minimax_loss", loss)
	return loss, nil
}

func MinimaxGeneratorLossDerivative(genOutputs blas32.Vector, c *Config) (blas32.Vector, error) {
	if c == nil {
		c = NewGeneratorConfig()
	}
	grad, err := reduction.SigmoidCrossEntropyDerivative(vector.NewZerosLike(genOutputs), genOutputs, c.Weights, 0.0, c.Reduction)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("minimax generator loss derivative: %w", err)
	}
	blas32.Scal(-1.0, grad)
	return grad, nil
}

// ModifiedDiscriminatorLoss is MinimaxDiscriminatorLoss collected under
// discriminator_modified_loss.
func ModifiedDiscriminatorLoss(realOutputs, genOutputs blas32.Vector, c *Config) (float32, error) {
	if c == nil {
		c = NewDiscriminatorConfig()
	}
	loss, err := minimaxDiscriminatorLoss(realOutputs, genOutputs, c, "discriminator_modified_loss")
	if err != nil {
		return 0.0, fmt.Errorf("modified discriminator loss: %w", err)
	}
	return loss, nil
}

// ModifiedGeneratorLoss is L = -log(sigmoid(D(G(z)))), the non-saturating
// generator loss. A nil c uses NewGeneratorConfig.
func ModifiedGeneratorLoss(genOutputs blas32.Vector, c *Config) (float32, error) {
	if c == nil {
		c = NewGeneratorConfig()
	}
	loss, err := reduction.SigmoidCrossEntropy(vector.NewOnesLike(genOutputs), genOutputs, c.Weights, c.LabelSmoothing, c.Reduction)
	if err != nil {
		return 0.0, fmt.Errorf("modified generator loss: %w", err)
	}
	scope := c.scope("generator_modified_loss")
	c.Collection.AddLoss(scope, loss)
	c.scalar(scope, "generator_modified_loss", loss)
	return loss, nil
}

// L1ModifiedGeneratorLoss computes the same value as ModifiedGeneratorLoss.
// Pair it with CycleLoss for an L1 regularized generator objective.
func L1ModifiedGeneratorLoss(genOutputs blas32.Vector, c *Config) (float32, error) {
	return ModifiedGeneratorLoss(genOutputs, c)
}

func ModifiedGeneratorLossDerivative(genOutputs blas32.Vector, c *Config) (blas32.Vector, error) {
	if c == nil {
		c = NewGeneratorConfig()
	}
	grad, err := reduction.SigmoidCrossEntropyDerivative(vector.NewOnesLike(genOutputs), genOutputs, c.Weights, c.LabelSmoothing, c.Reduction)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("modified generator loss derivative: %w", err)
	}
	return grad, nil
}
