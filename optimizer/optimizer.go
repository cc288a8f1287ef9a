// Package optimizer moves parameters along loss derivatives.
package optimizer

import (
	"fmt"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

// Momentum is SGD with classical momentum:
//
//	v = momentum*v - lr*grad
//	w += v
type Momentum struct {
	Momentum float32
	Velocity blas32.Vector
}

func NewMomentum(momentum float32, n int) *Momentum {
	return &Momentum{Momentum: momentum, Velocity: vector.NewZeros(n)}
}

// Train updates w in place.
func (opt *Momentum) Train(w, grad blas32.Vector, lr float32) error {
	if err := vector.SameShape(w, grad); err != nil {
		return fmt.Errorf("momentum: %w", err)
	}
	if opt.Velocity.N == 0 {
		opt.Velocity = vector.NewZerosLike(w)
	}
	if err := vector.SameShape(w, opt.Velocity); err != nil {
		return fmt.Errorf("momentum velocity: %w", err)
	}
	blas32.Scal(opt.Momentum, opt.Velocity)
	blas32.Axpy(-lr, grad, opt.Velocity)
	blas32.Axpy(1.0, opt.Velocity, w)
	return nil
}
