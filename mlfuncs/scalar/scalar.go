package scalar

import (
	"github.com/chewxy/math32"
)

func Sigmoid(x float32) float32 {
	return 1.0 / (1.0 + math32.Exp(-x))
}

// SoftPlus is log(1 + exp(x)) without overflow for large x.
func SoftPlus(x float32) float32 {
	return math32.Max(x, 0) + math32.Log1p(math32.Exp(-math32.Abs(x)))
}

// SmoothLabel moves z towards 0.5 by ls.
func SmoothLabel(z, ls float32) float32 {
	return z*(1.0-ls) + 0.5*ls
}

// SigmoidCrossEntropyWithLogits is -z*log(sigmoid(x)) - (1-z)*log(1-sigmoid(x)),
// evaluated as SoftPlus(x) - x*z.
func SigmoidCrossEntropyWithLogits(z, x float32) float32 {
	return SoftPlus(x) - x*z
}

// d/dx of SigmoidCrossEntropyWithLogits.
func SigmoidCrossEntropyWithLogitsDerivative(z, x float32) float32 {
	return Sigmoid(x) - z
}

func NumericalDifferentiation(x float32, f func(float32) float32) float32 {
	var h float32 = 0.001
	return (f(x+h) - f(x-h)) / (2 * h)
}
