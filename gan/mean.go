package gan

import (
	"fmt"
	"math/rand"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"github.com/irisdum/sent2-cloud-remover/mlfuncs/1d"
	"gonum.org/v1/gonum/blas/blas32"
)

// The losses in this file average over every element and take no weights.

func meanSigmoidCrossEntropy(labels, logits blas32.Vector) (float32, error) {
	losses, err := mlfuncs1d.SigmoidCrossEntropyWithLogits(labels, logits)
	if err != nil {
		return 0.0, err
	}
	return vector.Mean(losses)
}

// GeneratorLoss is mean(-log(sigmoid(fakeOutputs))), which maximizes
// log(D(G(z))).
func GeneratorLoss(fakeOutputs blas32.Vector) (float32, error) {
	loss, err := meanSigmoidCrossEntropy(vector.NewOnesLike(fakeOutputs), fakeOutputs)
	if err != nil {
		return 0.0, fmt.Errorf("generator loss: %w", err)
	}
	return loss, nil
}

// GeneratorLossFromProbability is GeneratorLoss for outputs that already went
// through a sigmoid.
func GeneratorLossFromProbability(fakeOutputs blas32.Vector) (float32, error) {
	mean, err := vector.Mean(mlfuncs1d.Log(fakeOutputs))
	if err != nil {
		return 0.0, fmt.Errorf("generator loss: %w", err)
	}
	return -mean, nil
}

// TotalGeneratorLoss returns the adversarial term GeneratorLoss(fakeOutputs)
// and the cycle term CycleLoss(realImages, fakeImages, lambda).
func TotalGeneratorLoss(realImages, fakeImages, fakeOutputs blas32.Vector, lambda float32) (float32, float32, error) {
	adv, err := GeneratorLoss(fakeOutputs)
	if err != nil {
		return 0.0, 0.0, err
	}
	cycle, err := CycleLoss(realImages, fakeImages, lambda)
	if err != nil {
		return 0.0, 0.0, err
	}
	return adv, cycle, nil
}

// DiscriminatorLoss returns the mean cross-entropy of realOutputs against 1
// and of fakeOutputs against 0.
func DiscriminatorLoss(realOutputs, fakeOutputs blas32.Vector) (float32, float32, error) {
	onReal, err := meanSigmoidCrossEntropy(vector.NewOnesLike(realOutputs), realOutputs)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("discriminator loss on real: %w", err)
	}
	onFake, err := meanSigmoidCrossEntropy(vector.NewZerosLike(fakeOutputs), fakeOutputs)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("discriminator loss on fake: %w", err)
	}
	return onReal, onFake, nil
}

// DiscriminatorLossFromProbability returns -mean(log(realOutputs)) and
// -mean(log(1 - fakeOutputs)) for outputs in (0, 1).
func DiscriminatorLossFromProbability(realOutputs, fakeOutputs blas32.Vector) (float32, float32, error) {
	onReal, err := vector.Mean(mlfuncs1d.Log(realOutputs))
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("discriminator loss on real: %w", err)
	}
	onFake, err := vector.Mean(mlfuncs1d.Log(mlfuncs1d.OneMinus(fakeOutputs)))
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("discriminator loss on fake: %w", err)
	}
	return -onReal, -onFake, nil
}

// NoisyDiscriminatorLoss is DiscriminatorLoss with soft labels. noiseReal and
// noiseFake hold one label per output or a single label for all of them.
func NoisyDiscriminatorLoss(realOutputs, fakeOutputs, noiseReal, noiseFake blas32.Vector) (float32, float32, error) {
	realLabels, err := vector.Broadcast(noiseReal, realOutputs.N)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("noisy discriminator loss: real labels: %w", err)
	}
	fakeLabels, err := vector.Broadcast(noiseFake, fakeOutputs.N)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("noisy discriminator loss: fake labels: %w", err)
	}

	onReal, err := meanSigmoidCrossEntropy(realLabels, realOutputs)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("noisy discriminator loss on real: %w", err)
	}
	onFake, err := meanSigmoidCrossEntropy(fakeLabels, fakeOutputs)
	if err != nil {
		return 0.0, 0.0, fmt.Errorf("noisy discriminator loss on fake: %w", err)
	}
	return onReal, onFake, nil
}

// NoisyLabels draws n soft labels uniformly from [min, max), e.g. [0.7, 1.2)
// for real images and [0, 0.3) for generated ones.
func NoisyLabels(n int, min, max float32, rng *rand.Rand) blas32.Vector {
	return vector.NewUniform(n, min, max, rng)
}
