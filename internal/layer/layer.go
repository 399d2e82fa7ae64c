// Package layer provides neural network layer implementations.
package layer

import (
	"fmt"

	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

// Layer is a differentiable transform over a batch of row vectors.
//
// Backward receives the same inputs that were passed to Forward together with
// the gradient of the loss with respect to the layer output, and returns the
// gradient with respect to the layer input. Layers with trainable state
// accumulate their parameter gradients during Backward; Params and Gradients
// return parallel slices an optimizer can consume.
type Layer interface {
	Forward(inputs *tensor.Matrix) *tensor.Matrix
	Backward(inputs, grad *tensor.Matrix) *tensor.Matrix
	Params() []*tensor.Matrix
	Gradients() []*tensor.Matrix
	ZeroGrad()
}

// Linear computes inputs·weights + bias.
// Weights are inSize rows by outSize columns; bias is a single 1×outSize row
// broadcast across the batch.
type Linear struct {
	weights *tensor.Matrix
	bias    *tensor.Matrix

	weightGrad *tensor.Matrix
	biasGrad   *tensor.Matrix

	inSize  int
	outSize int
}

// NewLinear creates a linear layer with zero weights and bias.
func NewLinear(in, out int) *Linear {
	return NewLinearFrom(tensor.Zero(out, in), tensor.Zero(out, 1))
}

// NewLinearInit creates a linear layer whose weights come from init and whose
// bias starts at zero.
func NewLinearInit(in, out int, init Initializer) *Linear {
	return NewLinearFrom(init(in, out), tensor.Zero(out, 1))
}

// NewLinearFrom creates a linear layer from pre-initialized parameters.
// The layer keeps its own copies of weights and bias.
func NewLinearFrom(weights, bias *tensor.Matrix) *Linear {
	out, in := weights.Dims()
	if w, h := bias.Dims(); h != 1 || w != out {
		panic(fmt.Sprintf("Linear: bias must be 1x%d, got %dx%d", out, w, h))
	}

	return &Linear{
		weights:    weights.Clone(),
		bias:       bias.Clone(),
		weightGrad: tensor.Zero(out, in),
		biasGrad:   tensor.Zero(out, 1),
		inSize:     in,
		outSize:    out,
	}
}

// Forward computes inputs·W + b for every row of the batch.
func (l *Linear) Forward(inputs *tensor.Matrix) *tensor.Matrix {
	if inputs.Width() != l.inSize {
		panic(fmt.Sprintf("Linear.Forward: expected %d input features, got %d", l.inSize, inputs.Width()))
	}
	return inputs.Mul(l.weights).AddRowVector(l.bias)
}

// Backward accumulates the weight and bias gradients and returns grad·Wᵀ.
//
//	dL/dW = inputsᵀ·grad
//	dL/db = column sums of grad
//	dL/dx = grad·Wᵀ
func (l *Linear) Backward(inputs, grad *tensor.Matrix) *tensor.Matrix {
	if inputs.Width() != l.inSize {
		panic(fmt.Sprintf("Linear.Backward: expected %d input features, got %d", l.inSize, inputs.Width()))
	}
	if grad.Width() != l.outSize || grad.Height() != inputs.Height() {
		panic(fmt.Sprintf("Linear.Backward: gradient is %dx%d, want %dx%d",
			grad.Width(), grad.Height(), l.outSize, inputs.Height()))
	}

	l.weightGrad.AddInPlace(inputs.MulTransA(grad))
	l.biasGrad.AddInPlace(grad.SumRows())

	return grad.MulTransB(l.weights)
}

// Params returns [weights, bias]. The matrices are live: an optimizer
// updates the layer by writing into them.
func (l *Linear) Params() []*tensor.Matrix {
	return []*tensor.Matrix{l.weights, l.bias}
}

// Gradients returns [weight gradient, bias gradient], matching Params.
// Like Params the matrices are live: Backward and ZeroGrad update them in
// place, so a slice cached by an optimizer stays current.
func (l *Linear) Gradients() []*tensor.Matrix {
	return []*tensor.Matrix{l.weightGrad, l.biasGrad}
}

// ZeroGrad clears the accumulated gradients.
func (l *Linear) ZeroGrad() {
	l.weightGrad.Reset()
	l.biasGrad.Reset()
}

// Weights returns the weight matrix.
func (l *Linear) Weights() *tensor.Matrix {
	return l.weights
}

// Bias returns the bias row.
func (l *Linear) Bias() *tensor.Matrix {
	return l.bias
}

// WeightGradient returns the accumulated dL/dW.
func (l *Linear) WeightGradient() *tensor.Matrix {
	return l.weightGrad
}

// BiasGradient returns the accumulated dL/db.
func (l *Linear) BiasGradient() *tensor.Matrix {
	return l.biasGrad
}

// InSize returns the input size of the layer.
func (l *Linear) InSize() int {
	return l.inSize
}

// OutSize returns the output size of the layer.
func (l *Linear) OutSize() int {
	return l.outSize
}
