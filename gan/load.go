package gan

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"
)

type Name string

const (
	TotalGeneratorLossName           Name = "total_generator_loss"
	NoisyDiscriminatorLossName       Name = "noisy_discriminator_loss"
	WassersteinDiscriminatorLossName Name = "wasserstein_discriminator_loss"
	WassersteinGeneratorLossName     Name = "wasserstein_generator_loss"
	WasserGeneLossName               Name = "wasser_gene_loss"
	WasserDiscriLossName             Name = "wasser_discri_loss"
)

var ErrUndefinedLoss = errors.New("undefined loss")

// Batch carries every input a loaded loss may read. Discriminator losses
// ignore the images; generator losses ignore RealOutputs and the noise.
type Batch struct {
	RealOutputs blas32.Vector
	FakeOutputs blas32.Vector

	RealImages blas32.Vector
	FakeImages blas32.Vector

	// NoiseReal and NoiseFake are the soft labels of the noisy discriminator
	// loss. The Wasserstein losses accept and ignore them.
	NoiseReal blas32.Vector
	NoiseFake blas32.Vector

	// Lambda weights the cycle term of generator losses.
	Lambda float32
}

// Func returns the two terms of a loss: real and fake parts for
// discriminators, adversarial and cycle parts for generators.
type Func func(*Batch) (float32, float32, error)

var funcs = map[Name]func(*Config) Func{
	TotalGeneratorLossName: func(*Config) Func {
		return func(b *Batch) (float32, float32, error) {
			return TotalGeneratorLoss(b.RealImages, b.FakeImages, b.FakeOutputs, b.Lambda)
		}
	},
	NoisyDiscriminatorLossName: func(*Config) Func {
		return func(b *Batch) (float32, float32, error) {
			return NoisyDiscriminatorLoss(b.RealOutputs, b.FakeOutputs, b.NoiseReal, b.NoiseFake)
		}
	},
	WassersteinDiscriminatorLossName: func(c *Config) Func {
		return func(b *Batch) (float32, float32, error) {
			return WassersteinDiscriminatorLoss(b.RealOutputs, b.FakeOutputs, c)
		}
	},
	WassersteinGeneratorLossName: func(c *Config) Func {
		return func(b *Batch) (float32, float32, error) {
			return WassersteinGeneratorLoss(b.RealImages, b.FakeImages, b.FakeOutputs, b.Lambda, c)
		}
	},
	WasserGeneLossName: func(*Config) Func {
		return func(b *Batch) (float32, float32, error) {
			return SimpleWassersteinGeneratorLoss(b.RealImages, b.FakeImages, b.FakeOutputs, b.Lambda)
		}
	},
	WasserDiscriLossName: func(*Config) Func {
		return func(b *Batch) (float32, float32, error) {
			return SimpleWassersteinDiscriminatorLoss(b.RealOutputs, b.FakeOutputs)
		}
	},
}

// Names lists the losses Load accepts.
func Names() []Name {
	return []Name{
		TotalGeneratorLossName,
		NoisyDiscriminatorLossName,
		WassersteinDiscriminatorLossName,
		WassersteinGeneratorLossName,
		WasserGeneLossName,
		WasserDiscriLossName,
	}
}

// Load looks a loss up by name. c configures the weighted Wasserstein losses;
// nil keeps their defaults.
func Load(name string, c *Config) (Func, error) {
	newFunc, ok := funcs[Name(name)]
	if !ok {
		return nil, fmt.Errorf("%w: Loss %q undefined add it to load loss", ErrUndefinedLoss, name)
	}
	return newFunc(c), nil
}
