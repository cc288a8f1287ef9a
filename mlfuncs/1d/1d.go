package mlfuncs1d

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	cmath "github.com/irisdum/sent2-cloud-remover/math"
	"github.com/irisdum/sent2-cloud-remover/mlfuncs/scalar"
	"github.com/sw965/omw/fn"
	"gonum.org/v1/gonum/blas/blas32"
)

func zip(a, b blas32.Vector, f func(float32, float32) float32) (blas32.Vector, error) {
	if err := vector.SameShape(a, b); err != nil {
		return blas32.Vector{}, err
	}
	as, bs := vector.Values(a), vector.Values(b)
	y := vector.NewZeros(a.N)
	for i := range y.Data {
		y.Data[i] = f(as[i], bs[i])
	}
	return y, nil
}

func Sigmoid(x blas32.Vector) blas32.Vector {
	return vector.FromSlice(fn.Map[[]float32](vector.Values(x), scalar.Sigmoid))
}

func Log(x blas32.Vector) blas32.Vector {
	return vector.FromSlice(fn.Map[[]float32](vector.Values(x), math32.Log))
}

func Negative(x blas32.Vector) blas32.Vector {
	return vector.Scale(-1.0, x)
}

func OneMinus(x blas32.Vector) blas32.Vector {
	return vector.FromSlice(fn.Map[[]float32](vector.Values(x), func(e float32) float32 { return 1.0 - e }))
}

func SmoothLabels(z blas32.Vector, ls float32) blas32.Vector {
	if ls == 0 {
		return z
	}
	return vector.FromSlice(fn.Map[[]float32](vector.Values(z), func(e float32) float32 { return scalar.SmoothLabel(e, ls) }))
}

// SigmoidCrossEntropyWithLogits is the elementwise cross-entropy between
// labels and sigmoid(logits).
func SigmoidCrossEntropyWithLogits(labels, logits blas32.Vector) (blas32.Vector, error) {
	y, err := zip(labels, logits, scalar.SigmoidCrossEntropyWithLogits)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("SigmoidCrossEntropyWithLogits: %w", err)
	}
	return y, nil
}

func SigmoidCrossEntropyWithLogitsDerivative(labels, logits blas32.Vector) (blas32.Vector, error) {
	grad, err := zip(labels, logits, scalar.SigmoidCrossEntropyWithLogitsDerivative)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("SigmoidCrossEntropyWithLogitsDerivative: %w", err)
	}
	return grad, nil
}

func AbsoluteError(y, t blas32.Vector) (blas32.Vector, error) {
	diff, err := vector.Sub(y, t)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("AbsoluteError: %w", err)
	}
	return vector.Abs(diff), nil
}

func MeanAbsoluteError(y, t blas32.Vector) (float32, error) {
	diff, err := vector.Sub(y, t)
	if err != nil {
		return 0.0, fmt.Errorf("MeanAbsoluteError: %w", err)
	}
	return vector.MeanAbs(diff)
}

// MeanAbsoluteErrorDerivative is d/dy of MeanAbsoluteError(y, t). The
// subgradient at y == t is 0.
func MeanAbsoluteErrorDerivative(y, t blas32.Vector) (blas32.Vector, error) {
	if y.N == 0 {
		return blas32.Vector{}, fmt.Errorf("MeanAbsoluteErrorDerivative: vector length is zero")
	}
	n := float32(y.N)
	grad, err := zip(y, t, func(ye, te float32) float32 {
		switch {
		case ye > te:
			return 1.0 / n
		case ye < te:
			return -1.0 / n
		}
		return 0.0
	})
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("MeanAbsoluteErrorDerivative: %w", err)
	}
	return grad, nil
}

// NumericalDifferentiation perturbs x in place when it has unit stride and a
// copy otherwise; f sees the perturbed vector.
func NumericalDifferentiation(x blas32.Vector, f func(blas32.Vector) float32) blas32.Vector {
	xc := vector.Contiguous(x)
	grad := cmath.NumericalGradient(xc.Data[:xc.N], 0.001, func([]float32) float32 {
		return f(xc)
	})
	return vector.FromSlice(grad)
}
