// Package reduction turns elementwise losses into scalars the way weighted
// loss reductions are usually defined: the weights are broadcast against the
// losses, multiplied in, and the products are summed and normalized.
package reduction

import (
	"fmt"
	"strings"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"github.com/irisdum/sent2-cloud-remover/mlfuncs/1d"
	"gonum.org/v1/gonum/blas/blas32"
)

type Type int

const (
	// SumByNonzeroWeights divides the weighted sum by the number of nonzero
	// broadcast weights. It is the zero value.
	SumByNonzeroWeights Type = iota
	// Sum adds the weighted losses.
	Sum
	// Mean divides the weighted sum by the sum of the broadcast weights.
	Mean
	// SumOverBatchSize divides the weighted sum by the number of elements.
	SumOverBatchSize
	// None keeps the weighted losses elementwise.
	None
)

var names = map[Type]string{
	None:                "none",
	Sum:                 "sum",
	Mean:                "mean",
	SumOverBatchSize:    "sum_over_batch_size",
	SumByNonzeroWeights: "sum_by_nonzero_weights",
}

func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("reduction.Type(%d)", int(t))
}

// Parse is the inverse of String. A blank string selects SumByNonzeroWeights.
func Parse(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SumByNonzeroWeights, nil
	}
	for t, name := range names {
		if name == s {
			return t, nil
		}
	}
	return SumByNonzeroWeights, fmt.Errorf("unknown reduction %q", s)
}

// Weights multiply elementwise losses. An empty vector means 1.0 and a
// length-1 vector is broadcast to every element.
type Weights = blas32.Vector

func ScalarWeights(w float32) Weights {
	return vector.FromSlice([]float32{w})
}

func broadcastWeights(weights Weights, n int) (blas32.Vector, error) {
	if weights.N == 0 {
		return vector.NewOnes(n), nil
	}
	w, err := vector.Broadcast(weights, n)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("weights: %w", err)
	}
	return w, nil
}

// Coefficients returns c such that the reduced loss is sum(c[i] * losses[i])
// for n elementwise losses. The same c is the derivative of the reduced loss
// with respect to each elementwise loss. A zero denominator gives all-zero
// coefficients.
func Coefficients(weights Weights, n int, t Type) (blas32.Vector, error) {
	w, err := broadcastWeights(weights, n)
	if err != nil {
		return blas32.Vector{}, err
	}
	c := vector.Clone(w)

	var denom float32
	switch t {
	case Sum:
		return c, nil
	case Mean:
		denom = vector.Sum(w)
	case SumOverBatchSize:
		denom = float32(n)
	case SumByNonzeroWeights:
		denom = float32(vector.CountNonzero(w))
	case None:
		return blas32.Vector{}, fmt.Errorf("reduction %s has no scalar coefficients", t)
	default:
		return blas32.Vector{}, fmt.Errorf("unknown reduction %s", t)
	}

	if denom == 0 {
		return vector.NewZeros(n), nil
	}
	blas32.Scal(1.0/denom, c)
	return c, nil
}

// Weighted returns losses multiplied by the broadcast weights.
func Weighted(losses blas32.Vector, weights Weights) (blas32.Vector, error) {
	w, err := broadcastWeights(weights, losses.N)
	if err != nil {
		return blas32.Vector{}, err
	}
	ls := vector.Values(losses)
	y := vector.NewZeros(losses.N)
	for i := range y.Data {
		y.Data[i] = ls[i] * w.Data[i]
	}
	return y, nil
}

// ComputeWeightedLoss reduces elementwise losses to a scalar.
func ComputeWeightedLoss(losses blas32.Vector, weights Weights, t Type) (float32, error) {
	c, err := Coefficients(weights, losses.N, t)
	if err != nil {
		return 0.0, err
	}
	return blas32.Dot(c, losses), nil
}

// SigmoidCrossEntropy smooths the labels towards 0.5, computes the
// elementwise cross-entropy against sigmoid(logits) and reduces it.
func SigmoidCrossEntropy(labels, logits blas32.Vector, weights Weights, labelSmoothing float32, t Type) (float32, error) {
	losses, err := mlfuncs1d.SigmoidCrossEntropyWithLogits(mlfuncs1d.SmoothLabels(labels, labelSmoothing), logits)
	if err != nil {
		return 0.0, err
	}
	return ComputeWeightedLoss(losses, weights, t)
}

// SigmoidCrossEntropyDerivative is d/dlogits of SigmoidCrossEntropy.
func SigmoidCrossEntropyDerivative(labels, logits blas32.Vector, weights Weights, labelSmoothing float32, t Type) (blas32.Vector, error) {
	grad, err := mlfuncs1d.SigmoidCrossEntropyWithLogitsDerivative(mlfuncs1d.SmoothLabels(labels, labelSmoothing), logits)
	if err != nil {
		return blas32.Vector{}, err
	}
	c, err := Coefficients(weights, logits.N, t)
	if err != nil {
		return blas32.Vector{}, err
	}
	for i := range grad.Data {
		grad.Data[i] *= c.Data[i]
	}
	return grad, nil
}
