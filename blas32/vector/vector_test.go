package vector_test

import (
	"testing"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	omwrand "github.com/sw965/omw/math/rand"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestNewZerosLike(t *testing.T) {
	vec := blas32.Vector{
		N:    3,
		Inc:  1,
		Data: []float32{100.0, -200.0, 300.0},
	}
	result := vector.NewZerosLike(vec)
	assert.Equal(t, 3, result.N)
	assert.Equal(t, []float32{0, 0, 0}, result.Data)
}

func TestNewOnesLike(t *testing.T) {
	result := vector.NewOnesLike(vector.NewZeros(4))
	assert.Equal(t, []float32{1, 1, 1, 1}, result.Data)
}

func TestNewUniform(t *testing.T) {
	rng := omwrand.NewMt19937()
	vec := vector.NewUniform(50, -1, 1, rng)
	require.Equal(t, 50, vec.N)
	for _, e := range vec.Data {
		assert.GreaterOrEqual(t, e, float32(-1))
		assert.Less(t, e, float32(1))
	}
}

func TestClone(t *testing.T) {
	vec := vector.FromSlice([]float32{-1.0, -2.0, -3.0, -4.0, 1.0, 2.0, 3.0, 4.0})
	result := vector.Clone(vec)
	result.Data[0] = 1000.0

	assert.Equal(t, float32(-1.0), vec.Data[0])
	assert.Equal(t, float32(1000.0), result.Data[0])
}

func TestBroadcast(t *testing.T) {
	result, err := vector.Broadcast(vector.FromSlice([]float32{0.9}), 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.9, 0.9, 0.9}, result.Data)

	same := vector.FromSlice([]float32{1, 2, 3})
	result, err = vector.Broadcast(same, 3)
	require.NoError(t, err)
	assert.Equal(t, same.Data, result.Data)

	_, err = vector.Broadcast(vector.FromSlice([]float32{1, 2}), 3)
	assert.ErrorIs(t, err, vector.ErrShapeMismatch)
}

func TestSub(t *testing.T) {
	a := vector.FromSlice([]float32{1, 2, 3})
	b := vector.FromSlice([]float32{3, 2, 1})
	result, err := vector.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float32{-2, 0, 2}, result.Data)
	assert.Equal(t, []float32{1, 2, 3}, a.Data)

	_, err = vector.Sub(a, vector.NewZeros(2))
	assert.ErrorIs(t, err, vector.ErrShapeMismatch)
}

func TestReductions(t *testing.T) {
	vec := vector.FromSlice([]float32{-1, 2, 0, -3})

	assert.Equal(t, float32(-2), vector.Sum(vec))
	assert.Equal(t, []float32{1, 2, 0, 3}, vector.Abs(vec).Data)
	assert.Equal(t, 3, vector.CountNonzero(vec))

	mean, err := vector.Mean(vec)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, mean, 1e-6)

	meanAbs, err := vector.MeanAbs(vec)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, meanAbs, 1e-6)

	_, err = vector.Mean(vector.NewZeros(0))
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	vec := vector.FromSlice([]float32{1, -2})
	result := vector.Scale(-2, vec)
	assert.Equal(t, []float32{-2, 4}, result.Data)
	assert.Equal(t, []float32{1, -2}, vec.Data)
}

func TestStrided(t *testing.T) {
	// Every other element of data, e.g. a column of a two-column matrix.
	vec := blas32.Vector{N: 3, Inc: 2, Data: []float32{1, -9, -2, -9, 0, -9}}

	assert.Equal(t, []float32{1, -2, 0}, vector.Values(vec))
	assert.Equal(t, []float32{1, 2, 0}, vector.Abs(vec).Data)
	assert.Equal(t, float32(-1), vector.Sum(vec))
	assert.Equal(t, 2, vector.CountNonzero(vec))

	mean, err := vector.Mean(vec)
	require.NoError(t, err)
	assert.InDelta(t, -1.0/3.0, mean, 1e-6)

	same, err := vector.Broadcast(vec, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, same.Inc)
	assert.Equal(t, []float32{1, -2, 0}, same.Data)

	unit := vector.FromSlice([]float32{1, 2})
	assert.Equal(t, unit, vector.Contiguous(unit))
}
