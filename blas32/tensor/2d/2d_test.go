package tensor2d_test

import (
	"testing"

	"github.com/irisdum/sent2-cloud-remover/blas32/tensor/2d"
	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestFromRows(t *testing.T) {
	result, err := tensor2d.FromRows([][]float32{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)

	expected := blas32.General{
		Rows:   2,
		Cols:   3,
		Stride: 3,
		Data:   []float32{1, 2, 3, 4, 5, 6},
	}
	assert.Equal(t, expected, result)
	assert.Equal(t, float32(6), result.Data[tensor2d.At(result, 1, 2)])

	_, err = tensor2d.FromRows([][]float32{{1, 2}, {3}})
	assert.ErrorIs(t, err, vector.ErrShapeMismatch)
}

func TestSum1AndMean1(t *testing.T) {
	x := blas32.General{
		Rows:   3,
		Cols:   5,
		Stride: 5,
		Data: []float32{
			1, 2, 3, 4, 5,
			2, 5, 4, 1, 3,
			3, 1, 5, 2, 4,
		},
	}
	assert.Equal(t, []float32{15, 15, 15}, tensor2d.Sum1(x).Data)

	mean, err := tensor2d.Mean1(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{3, 3, 3}, mean.Data, 1e-6)
}

func TestToVectorSharesData(t *testing.T) {
	x := tensor2d.NewOnes(2, 2)
	view := tensor2d.ToVector(x)
	flat := tensor2d.Flatten(x)

	view.Data[0] = 9
	assert.Equal(t, float32(9), x.Data[0])
	assert.Equal(t, float32(1), flat.Data[0])
	assert.Equal(t, 4, flat.N)
}

func TestSameShape(t *testing.T) {
	assert.NoError(t, tensor2d.SameShape(tensor2d.NewZeros(2, 3), tensor2d.NewOnes(2, 3)))
	assert.ErrorIs(t, tensor2d.SameShape(tensor2d.NewZeros(2, 3), tensor2d.NewZeros(3, 2)), vector.ErrShapeMismatch)
}
