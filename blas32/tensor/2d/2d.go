package tensor2d

import (
	"fmt"
	"slices"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

func NewZeros(rows, cols int) blas32.General {
	return blas32.General{
		Rows:   rows,
		Cols:   cols,
		Stride: cols,
		Data:   make([]float32, rows*cols),
	}
}

func NewZerosLike(gen blas32.General) blas32.General {
	return NewZeros(gen.Rows, gen.Cols)
}

func NewOnes(rows, cols int) blas32.General {
	gen := NewZeros(rows, cols)
	for i := range gen.Data {
		gen.Data[i] = 1.0
	}
	return gen
}

func NewOnesLike(gen blas32.General) blas32.General {
	return NewOnes(gen.Rows, gen.Cols)
}

// FromRows copies equally sized rows into a dense matrix.
func FromRows(xss [][]float32) (blas32.General, error) {
	if len(xss) == 0 {
		return blas32.General{}, fmt.Errorf("tensor2d.FromRows: no rows")
	}
	cols := len(xss[0])
	gen := NewZeros(len(xss), cols)
	for r, xs := range xss {
		if len(xs) != cols {
			return blas32.General{}, fmt.Errorf("%w: row %d has %d cols, want %d", vector.ErrShapeMismatch, r, len(xs), cols)
		}
		copy(gen.Data[r*gen.Stride:], xs)
	}
	return gen, nil
}

func N(gen blas32.General) int {
	return gen.Rows * gen.Cols
}

func Clone(gen blas32.General) blas32.General {
	return blas32.General{
		Rows:   gen.Rows,
		Cols:   gen.Cols,
		Stride: gen.Stride,
		Data:   slices.Clone(gen.Data),
	}
}

func At(gen blas32.General, row, col int) int {
	return row*gen.Stride + col
}

func SameShape(a, b blas32.General) error {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return fmt.Errorf("%w: (%d, %d) != (%d, %d)", vector.ErrShapeMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	return nil
}

func ToVector(gen blas32.General) blas32.Vector {
	return blas32.Vector{
		N:    N(gen),
		Inc:  1,
		Data: gen.Data,
	}
}

func Flatten(gen blas32.General) blas32.Vector {
	return blas32.Vector{
		N:    N(gen),
		Inc:  1,
		Data: slices.Clone(gen.Data),
	}
}

func Sum1(gen blas32.General) blas32.Vector {
	sums := make([]float32, gen.Rows)
	for r := 0; r < gen.Rows; r++ {
		offset := r * gen.Stride
		var sum float32
		for c := 0; c < gen.Cols; c++ {
			sum += gen.Data[offset+c]
		}
		sums[r] = sum
	}
	return blas32.Vector{
		N:    gen.Rows,
		Inc:  1,
		Data: sums,
	}
}

// Mean1 averages each row, e.g. the patch scores of one example.
func Mean1(gen blas32.General) (blas32.Vector, error) {
	if gen.Cols == 0 {
		return blas32.Vector{}, fmt.Errorf("tensor2d.Mean1: no cols")
	}
	sums := Sum1(gen)
	blas32.Scal(1.0/float32(gen.Cols), sums)
	return sums, nil
}
