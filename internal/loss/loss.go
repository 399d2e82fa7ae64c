// Package loss provides loss functions over prediction and target matrices.
//
// Every loss here is summed over all cells rather than averaged, so the
// gradient of a batch is the sum of the per-sample gradients.
package loss

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

// Loss is a loss function with derivative.
type Loss interface {
	// Loss computes the scalar error between prediction and actual.
	Loss(prediction, actual *tensor.Matrix) float32

	// Gradient computes dLoss/dPrediction; same shape as prediction.
	Gradient(prediction, actual *tensor.Matrix) *tensor.Matrix
}

func mustMatch(name string, prediction, actual *tensor.Matrix) {
	pw, ph := prediction.Dims()
	aw, ah := actual.Dims()
	if pw != aw || ph != ah {
		panic(fmt.Sprintf("%s: prediction is %dx%d but target is %dx%d", name, pw, ph, aw, ah))
	}
}

// MeanSquared is the squared error loss: sum((prediction - actual)^2).
type MeanSquared struct{}

// Loss computes sum((prediction - actual)^2)
func (MeanSquared) Loss(prediction, actual *tensor.Matrix) float32 {
	mustMatch("MeanSquared", prediction, actual)
	diff := prediction.Sub(actual)
	return diff.MulElem(diff).Sum()
}

// Gradient computes 2 * (prediction - actual)
func (MeanSquared) Gradient(prediction, actual *tensor.Matrix) *tensor.Matrix {
	mustMatch("MeanSquared", prediction, actual)
	return tensor.ScaleBy(2, prediction.Sub(actual))
}

// MeanAbsolute is the L1 loss: sum(|prediction - actual|).
type MeanAbsolute struct{}

// Loss computes sum(|prediction - actual|)
func (MeanAbsolute) Loss(prediction, actual *tensor.Matrix) float32 {
	mustMatch("MeanAbsolute", prediction, actual)
	return prediction.Sub(actual).Mapped(math32.Abs).Sum()
}

// Gradient computes sign(prediction - actual), 0 where they are equal.
func (MeanAbsolute) Gradient(prediction, actual *tensor.Matrix) *tensor.Matrix {
	mustMatch("MeanAbsolute", prediction, actual)
	return prediction.Sub(actual).Mapped(func(d float32) float32 {
		switch {
		case d > 0:
			return 1
		case d < 0:
			return -1
		}
		return 0
	})
}

// Huber loss for robust regression. Delta must be positive; Loss and
// Gradient panic otherwise, so construct it with NewHuber.
// Quadratic for |diff| <= Delta, linear beyond.
type Huber struct {
	Delta float32 // Threshold for quadratic/linear transition
}

// NewHuber creates a Huber loss with the given delta.
func NewHuber(delta float32) Huber {
	if !(delta > 0) {
		panic(fmt.Sprintf("NewHuber: delta must be positive, got %v", delta))
	}
	return Huber{Delta: delta}
}

func (h Huber) mustBeValid(op string) {
	if !(h.Delta > 0) {
		panic(fmt.Sprintf("Huber.%s: delta must be positive, got %v", op, h.Delta))
	}
}

// Loss computes the summed Huber loss.
func (h Huber) Loss(prediction, actual *tensor.Matrix) float32 {
	h.mustBeValid("Loss")
	mustMatch("Huber", prediction, actual)
	return prediction.Sub(actual).Mapped(func(d float32) float32 {
		a := math32.Abs(d)
		if a <= h.Delta {
			return 0.5 * a * a
		}
		return h.Delta * (a - 0.5*h.Delta)
	}).Sum()
}

// Gradient computes diff when |diff| <= Delta, else Delta * sign(diff).
func (h Huber) Gradient(prediction, actual *tensor.Matrix) *tensor.Matrix {
	h.mustBeValid("Gradient")
	mustMatch("Huber", prediction, actual)
	return prediction.Sub(actual).Mapped(func(d float32) float32 {
		if math32.Abs(d) <= h.Delta {
			return d
		}
		return h.Delta * math32.Copysign(1, d)
	})
}
