package layer

import (
	"fmt"

	"github.com/FlavioCFOliveira/neurocore/internal/activations"
	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

// Activation applies a function elementwise. It has no trainable state.
type Activation struct {
	fn         func(float32) float32
	derivative func(float32) float32
}

// NewActivation creates an activation layer from a function and its derivative.
// Both are evaluated at the pre-activation input.
func NewActivation(fn, derivative func(float32) float32) *Activation {
	if fn == nil || derivative == nil {
		panic("NewActivation: fn and derivative are required")
	}
	return &Activation{fn: fn, derivative: derivative}
}

// FromActivation wraps an activations.Activation strategy.
func FromActivation(a activations.Activation) *Activation {
	return NewActivation(a.Activate, a.Derivative)
}

// Tanh returns a hyperbolic tangent activation layer.
func Tanh() *Activation {
	return FromActivation(activations.Tanh{})
}

// Sigmoid returns a logistic sigmoid activation layer.
func Sigmoid() *Activation {
	return FromActivation(activations.Sigmoid{})
}

// ReLU returns a rectified linear activation layer.
func ReLU() *Activation {
	return FromActivation(activations.ReLU{})
}

// Forward applies the function to every cell.
func (a *Activation) Forward(inputs *tensor.Matrix) *tensor.Matrix {
	return inputs.Mapped(a.fn)
}

// Backward returns derivative(inputs) ⊙ grad.
func (a *Activation) Backward(inputs, grad *tensor.Matrix) *tensor.Matrix {
	iw, ih := inputs.Dims()
	gw, gh := grad.Dims()
	if iw != gw || ih != gh {
		panic(fmt.Sprintf("Activation.Backward: inputs are %dx%d but gradient is %dx%d", iw, ih, gw, gh))
	}
	return inputs.Mapped(a.derivative).MulElem(grad)
}

// Params returns nil; activations have no parameters.
func (a *Activation) Params() []*tensor.Matrix { return nil }

// Gradients returns nil.
func (a *Activation) Gradients() []*tensor.Matrix { return nil }

// ZeroGrad is a no-op.
func (a *Activation) ZeroGrad() {}
