package gan

import (
	"fmt"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"github.com/irisdum/sent2-cloud-remover/mlfuncs/1d"
	"github.com/irisdum/sent2-cloud-remover/reduction"
	"gonum.org/v1/gonum/blas/blas32"
)

// WassersteinGeneratorLoss returns the critic term -reduce(genOutputs) and the
// cycle term CycleLoss(gtImages, genImages, lambda). Only the critic term is
// added to the collection. A nil c uses NewGeneratorConfig.
func WassersteinGeneratorLoss(gtImages, genImages, genOutputs blas32.Vector, lambda float32, c *Config) (float32, float32, error) {
	if c == nil {
		c = NewGeneratorConfig()
	}
	loss, err := reduction.ComputeWeightedLoss(mlfuncs1d.Negative(genOutputs), c.Weights, c.Reduction)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("wasserstein generator loss: %w", err)
	}
	scope := c.scope("generator_wasserstein_loss")
	c.Collection.AddLoss(scope, loss)
	c.scalar(scope, "generator_wass_loss", loss)

	cycle, err := CycleLoss(gtImages, genImages, lambda)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("wasserstein generator loss: %w", err)
	}
	return loss, cycle, nil
}

// WassersteinGeneratorLossDerivative is d/dgenOutputs of the critic term.
func WassersteinGeneratorLossDerivative(genOutputs blas32.Vector, c *Config) (blas32.Vector, error) {
	if c == nil {
		c = NewGeneratorConfig()
	}
	grad, err := reduction.Coefficients(c.Weights, genOutputs.N, c.Reduction)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("wasserstein generator loss derivative: %w", err)
	}
	blas32.Scal(-1.0, grad)
	return grad, nil
}

// WassersteinDiscriminatorLoss computes the critic loss
// reduce(genOutputs) - reduce(realOutputs), adds it to the collection and
// returns its two parts as (-reduce(realOutputs), reduce(genOutputs)). A nil c
// uses NewDiscriminatorConfig.
func WassersteinDiscriminatorLoss(realOutputs, genOutputs blas32.Vector, c *Config) (float32, float32, error) {
	if c == nil {
		c = NewDiscriminatorConfig()
	}
	if err := vector.SameShape(realOutputs, genOutputs); err != nil {
		return 0.0, 0.0, fmt.Errorf("wasserstein discriminator loss: %w", err)
	}

	onGen, err := reduction.ComputeWeightedLoss(genOutputs, c.GeneratedWeights, c.Reduction)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("wasserstein discriminator loss on generated: %w", err)
	}
	onReal, err := reduction.ComputeWeightedLoss(realOutputs, c.RealWeights, c.Reduction)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("wasserstein discriminator loss on real: %w", err)
	}
	loss := onGen - onReal

	scope := c.scope("discriminator_wasserstein_loss")
	c.Collection.AddLoss(scope, loss)
	c.scalar(scope, "discriminator_gen_wass_loss", onGen)
	c.scalar(scope, "discriminator_real_wass_loss", onReal)
	c.scalar(scope, "discriminator_wass_loss", loss)
	return -onReal, onGen, nil
}

// WassersteinDiscriminatorLossDerivative returns the gradients of
// reduce(genOutputs) - reduce(realOutputs) with respect to realOutputs and
// genOutputs.
func WassersteinDiscriminatorLossDerivative(realOutputs, genOutputs blas32.Vector, c *Config) (blas32.Vector, blas32.Vector, error) {
	if c == nil {
		c = NewDiscriminatorConfig()
	}
	if err := vector.SameShape(realOutputs, genOutputs); err != nil {
		return blas32.Vector{}, blas32.Vector{}, fmt.Errorf("wasserstein discriminator loss derivative: %w", err)
	}
	dReal, err := reduction.Coefficients(c.RealWeights, realOutputs.N, c.Reduction)
	if err != nil {
		return blas32.Vector{}, blas32.Vector{}, fmt.Errorf("wasserstein discriminator loss derivative: %w", err)
	}
	blas32.Scal(-1.0, dReal)
	dGen, err := reduction.Coefficients(c.GeneratedWeights, genOutputs.N, c.Reduction)
	if err != nil {
		return blas32.Vector{}, blas32.Vector{}, fmt.Errorf("wasserstein discriminator loss derivative: %w", err)
	}
	return dReal, dGen, nil
}

// SimpleWassersteinDiscriminatorLoss returns (-mean(realOutputs), mean(fakeOutputs)).
func SimpleWassersteinDiscriminatorLoss(realOutputs, fakeOutputs blas32.Vector) (float32, float32, error) {
	onReal, err := vector.Mean(realOutputs)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("wasserstein discriminator loss on real: %w", err)
	}
	onFake, err := vector.Mean(fakeOutputs)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("wasserstein discriminator loss on fake: %w", err)
	}
	return -onReal, onFake, nil
}

// SimpleWassersteinGeneratorLoss returns (-mean(fakeOutputs),
// CycleLoss(realImages, fakeImages, lambda)).
func SimpleWassersteinGeneratorLoss(realImages, fakeImages, fakeOutputs blas32.Vector, lambda float32) (float32, float32, error) {
	onFake, err := vector.Mean(fakeOutputs)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("wasserstein generator loss: %w", err)
	}
	cycle, err := CycleLoss(realImages, fakeImages, lambda)
	if err != nil {
		return 0.0, 0.0, err
	}
	return -onFake, cycle, nil
}
