package gan

import (
	"fmt"

	"github.com/irisdum/sent2-cloud-remover/mlfuncs/1d"
	"gonum.org/v1/gonum/blas/blas32"
)

// CycleLoss is lambda * mean(|realImages - fakeImages|).
func CycleLoss(realImages, fakeImages blas32.Vector, lambda float32) (float32, error) {
	mae, err := mlfuncs1d.MeanAbsoluteError(realImages, fakeImages)
	if err != nil {
		return 0.0, fmt.Errorf("cycle loss: %w", err)
	}
	return lambda * mae, nil
}

// CycleLossDerivative is d/dfakeImages of CycleLoss.
func CycleLossDerivative(realImages, fakeImages blas32.Vector, lambda float32) (blas32.Vector, error) {
	grad, err := mlfuncs1d.MeanAbsoluteErrorDerivative(fakeImages, realImages)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("cycle loss derivative: %w", err)
	}
	blas32.Scal(lambda, grad)
	return grad, nil
}

// L1Loss is the mean absolute error between yTrue and yPred.
func L1Loss(yTrue, yPred blas32.Vector) (float32, error) {
	return CycleLoss(yTrue, yPred, 1.0)
}
