// Package backend reports which BLAS implementation blas32 routes to.
// Building with -tags netlib switches to the cgo netlib implementation.
package backend

var name = "gonum"

func Name() string {
	return name
}
