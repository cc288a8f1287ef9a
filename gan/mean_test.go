package gan_test

import (
	"math"
	"testing"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"github.com/irisdum/sent2-cloud-remover/gan"
	"github.com/irisdum/sent2-cloud-remover/mlfuncs/1d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	omwrand "github.com/sw965/omw/math/rand"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestGeneratorLoss(t *testing.T) {
	loss, err := gan.GeneratorLoss(vector.NewZeros(3))
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, loss, delta)

	_, err = gan.GeneratorLoss(blas32.Vector{})
	assert.Error(t, err)
}

func TestGeneratorLossFromProbability(t *testing.T) {
	loss, err := gan.GeneratorLossFromProbability(vector.FromSlice([]float32{0.5, 0.25}))
	require.NoError(t, err)
	assert.InDelta(t, (math.Ln2+2*math.Ln2)/2, loss, delta)

	// Probabilities match logits after a sigmoid.
	rng := omwrand.NewMt19937()
	logits := vector.NewUniform(5, -3, 3, rng)
	fromLogits, err := gan.GeneratorLoss(logits)
	require.NoError(t, err)
	fromProbability, err := gan.GeneratorLossFromProbability(mlfuncs1d.Sigmoid(logits))
	require.NoError(t, err)
	assert.InDelta(t, fromLogits, fromProbability, 1e-4)
}

func TestDiscriminatorLoss(t *testing.T) {
	onReal, onFake, err := gan.DiscriminatorLoss(vector.NewZeros(2), vector.NewZeros(3))
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, onReal, delta)
	assert.InDelta(t, math.Ln2, onFake, delta)

	onReal, onFake, err = gan.DiscriminatorLoss(vector.NewFull(2, 20), vector.NewFull(2, -20))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, onReal, delta)
	assert.InDelta(t, 0.0, onFake, delta)
}

func TestDiscriminatorLossFromProbability(t *testing.T) {
	onReal, onFake, err := gan.DiscriminatorLossFromProbability(
		vector.FromSlice([]float32{0.5}),
		vector.FromSlice([]float32{0.75}),
	)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, onReal, delta)
	assert.InDelta(t, 2*math.Ln2, onFake, delta)
}

func TestNoisyDiscriminatorLoss(t *testing.T) {
	realOutputs := vector.FromSlice([]float32{2, 2})
	fakeOutputs := vector.FromSlice([]float32{-1, -1})

	onReal, onFake, err := gan.NoisyDiscriminatorLoss(
		realOutputs,
		fakeOutputs,
		vector.FromSlice([]float32{0.9}),
		vector.FromSlice([]float32{0.1, 0.1}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 2-2*0.9+math.Log1p(math.Exp(-2)), onReal, delta)
	assert.InDelta(t, 0.1+math.Log1p(math.Exp(-1)), onFake, delta)

	// Hard labels give DiscriminatorLoss.
	onReal, onFake, err = gan.NoisyDiscriminatorLoss(realOutputs, fakeOutputs, vector.NewOnes(1), vector.NewZeros(1))
	require.NoError(t, err)
	expectedReal, expectedFake, err := gan.DiscriminatorLoss(realOutputs, fakeOutputs)
	require.NoError(t, err)
	assert.InDelta(t, expectedReal, onReal, delta)
	assert.InDelta(t, expectedFake, onFake, delta)

	_, _, err = gan.NoisyDiscriminatorLoss(realOutputs, fakeOutputs, vector.NewOnes(3), vector.NewZeros(1))
	assert.ErrorIs(t, err, vector.ErrShapeMismatch)
}

func TestNoisyLabels(t *testing.T) {
	rng := omwrand.NewMt19937()
	labels := gan.NoisyLabels(100, 0.7, 1.2, rng)
	require.Equal(t, 100, labels.N)
	for _, l := range labels.Data {
		assert.GreaterOrEqual(t, l, float32(0.7))
		assert.Less(t, l, float32(1.2))
	}
}

func TestTotalGeneratorLoss(t *testing.T) {
	adv, cycle, err := gan.TotalGeneratorLoss(
		vector.FromSlice([]float32{0, 0, 1, 1}),
		vector.FromSlice([]float32{0.5, 0, 1, 0}),
		vector.NewZeros(2),
		2,
	)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, adv, delta)
	assert.InDelta(t, 2*1.5/4, cycle, delta)
}

func TestCycleLoss(t *testing.T) {
	realImages := vector.FromSlice([]float32{1, 2, 3, 4})

	loss, err := gan.CycleLoss(realImages, vector.Clone(realImages), 10)
	require.NoError(t, err)
	assert.Equal(t, float32(0), loss)

	loss, err = gan.CycleLoss(realImages, vector.FromSlice([]float32{0, 2, 4, 4}), 10)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, loss, delta)

	l1, err := gan.L1Loss(realImages, vector.FromSlice([]float32{0, 2, 4, 4}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, l1, delta)

	_, err = gan.CycleLoss(realImages, vector.NewZeros(3), 10)
	assert.ErrorIs(t, err, vector.ErrShapeMismatch)
}

func TestCycleLossDerivative(t *testing.T) {
	realImages := vector.FromSlice([]float32{1, 2, 3, 4})
	fakeImages := vector.FromSlice([]float32{0, 2.5, 4, 3.5})

	grad, err := gan.CycleLossDerivative(realImages, fakeImages, 8)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{-2, 2, 2, -2}, grad.Data, delta)

	numGrad := mlfuncs1d.NumericalDifferentiation(fakeImages, func(x blas32.Vector) float32 {
		y, err := gan.CycleLoss(realImages, x, 8)
		if err != nil {
			panic(err)
		}
		return y
	})
	assert.InDeltaSlice(t, numGrad.Data, grad.Data, 1e-2)
}
