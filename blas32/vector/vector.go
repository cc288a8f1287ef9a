package vector

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/chewxy/math32"
	crand "github.com/irisdum/sent2-cloud-remover/math/rand"
	"github.com/sw965/omw/fn"
	omwmath "github.com/sw965/omw/math"
	"gonum.org/v1/gonum/blas/blas32"
)

var ErrShapeMismatch = errors.New("shape mismatch")

func NewZeros(n int) blas32.Vector {
	return blas32.Vector{
		N:    n,
		Inc:  1,
		Data: make([]float32, n),
	}
}

func NewZerosLike(vec blas32.Vector) blas32.Vector {
	return NewZeros(vec.N)
}

func NewFull(n int, x float32) blas32.Vector {
	vec := NewZeros(n)
	for i := range vec.Data {
		vec.Data[i] = x
	}
	return vec
}

func NewFullLike(vec blas32.Vector, x float32) blas32.Vector {
	return NewFull(vec.N, x)
}

func NewOnes(n int) blas32.Vector {
	return NewFull(n, 1.0)
}

func NewOnesLike(vec blas32.Vector) blas32.Vector {
	return NewOnes(vec.N)
}

// NewUniform draws n values from [min, max).
func NewUniform(n int, min, max float32, rng *rand.Rand) blas32.Vector {
	vec := NewZeros(n)
	for i := range vec.Data {
		vec.Data[i] = crand.Uniform(min, max, rng)
	}
	return vec
}

func FromSlice(xs []float32) blas32.Vector {
	return blas32.Vector{
		N:    len(xs),
		Inc:  1,
		Data: xs,
	}
}

func Clone(vec blas32.Vector) blas32.Vector {
	return blas32.Vector{
		N:    vec.N,
		Inc:  vec.Inc,
		Data: slices.Clone(vec.Data),
	}
}

// Contiguous returns vec itself when it has unit stride and a unit-stride
// copy otherwise.
func Contiguous(vec blas32.Vector) blas32.Vector {
	if vec.Inc == 1 {
		return vec
	}
	y := NewZeros(vec.N)
	blas32.Copy(vec, y)
	return y
}

// Values returns the N elements of vec in order, sharing storage when vec has
// unit stride.
func Values(vec blas32.Vector) []float32 {
	return Contiguous(vec).Data[:vec.N]
}

func SameShape(a, b blas32.Vector) error {
	if a.N != b.N {
		return fmt.Errorf("%w: %d != %d", ErrShapeMismatch, a.N, b.N)
	}
	return nil
}

// Broadcast expands a length-1 vector to n elements. A unit-stride vector
// that already has n elements is returned without copying.
func Broadcast(vec blas32.Vector, n int) (blas32.Vector, error) {
	switch vec.N {
	case n:
		return Contiguous(vec), nil
	case 1:
		return NewFull(n, vec.Data[0]), nil
	}
	return blas32.Vector{}, fmt.Errorf("%w: cannot broadcast %d elements to %d", ErrShapeMismatch, vec.N, n)
}

// Sub returns a - b.
func Sub(a, b blas32.Vector) (blas32.Vector, error) {
	if err := SameShape(a, b); err != nil {
		return blas32.Vector{}, err
	}
	y := NewZeros(a.N)
	blas32.Copy(a, y)
	blas32.Axpy(-1.0, b, y)
	return y, nil
}

func Scale(alpha float32, vec blas32.Vector) blas32.Vector {
	y := Clone(Contiguous(vec))
	blas32.Scal(alpha, y)
	return y
}

func Abs(vec blas32.Vector) blas32.Vector {
	return FromSlice(fn.Map[[]float32](Values(vec), math32.Abs))
}

func Sum(vec blas32.Vector) float32 {
	return omwmath.Sum(Values(vec)...)
}

func Mean(vec blas32.Vector) (float32, error) {
	if vec.N == 0 {
		return 0.0, fmt.Errorf("vector.Mean: vector length is zero")
	}
	return Sum(vec) / float32(vec.N), nil
}

// MeanAbs is the mean of |x| over the vector.
func MeanAbs(vec blas32.Vector) (float32, error) {
	if vec.N == 0 {
		return 0.0, fmt.Errorf("vector.MeanAbs: vector length is zero")
	}
	return blas32.Asum(vec) / float32(vec.N), nil
}

func CountNonzero(vec blas32.Vector) int {
	count := 0
	for _, e := range Values(vec) {
		if e != 0 {
			count++
		}
	}
	return count
}
