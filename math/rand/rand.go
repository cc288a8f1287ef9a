package rand

import (
	"math/rand"

	omwrand "github.com/sw965/omw/math/rand"
)

func Uniform(min, max float32, rng *rand.Rand) float32 {
	return float32(omwrand.Float64Uniform(float64(min), float64(max), rng))
}
