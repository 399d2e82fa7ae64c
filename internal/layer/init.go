package layer

import (
	"math"
	"math/rand"

	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

// Initializer builds an in×out weight matrix (in rows, out columns).
type Initializer func(in, out int) *tensor.Matrix

// Zeros initializes every weight to 0.
func Zeros(in, out int) *tensor.Matrix {
	return tensor.Zero(out, in)
}

// Constant initializes every weight to v.
func Constant(v float32) Initializer {
	return func(in, out int) *tensor.Matrix {
		return tensor.Fill(out, in, func(int, int) float32 { return v })
	}
}

// Xavier draws weights uniformly from [-s, s] with s = sqrt(2 / (in + out)).
// Passing the same seeded rng yields the same weights.
func Xavier(rng *rand.Rand) Initializer {
	return func(in, out int) *tensor.Matrix {
		scale := math.Sqrt(2.0 / (float64(in) + float64(out)))
		return tensor.Fill(out, in, func(int, int) float32 {
			return float32(rng.Float64()*2*scale - scale)
		})
	}
}
