// Package net provides the network container that drives forward and backward passes.
package net

import (
	"fmt"

	"github.com/FlavioCFOliveira/neurocore/internal/layer"
	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

// Network is an ordered stack of layers.
//
// Backward accumulates parameter gradients inside the layers, so concurrent
// calls on the same Network must be serialized by the caller.
type Network struct {
	layers []layer.Layer
}

// New creates a new network with the given layers.
func New(layers ...layer.Layer) *Network {
	return &Network{layers: append([]layer.Layer(nil), layers...)}
}

// Layers returns the layers in forward order.
func (n *Network) Layers() []layer.Layer {
	return n.layers
}

// Forward runs input through every layer.
// It returns the final output and the intermediate activations:
// intermediates[0] is input and intermediates[i] is the output of layer i,
// so len(intermediates) == len(layers)+1. Pass the same slice to Backward.
func (n *Network) Forward(input *tensor.Matrix) (*tensor.Matrix, []*tensor.Matrix) {
	intermediates := make([]*tensor.Matrix, 0, len(n.layers)+1)
	intermediates = append(intermediates, input)

	curr := input
	for _, l := range n.layers {
		curr = l.Forward(curr)
		intermediates = append(intermediates, curr)
	}
	return curr, intermediates
}

// Predict runs a forward pass and discards the intermediates.
func (n *Network) Predict(input *tensor.Matrix) *tensor.Matrix {
	curr := input
	for _, l := range n.layers {
		curr = l.Forward(curr)
	}
	return curr
}

// Backward propagates the loss gradient from the network output back to its
// input, visiting layers in reverse. It returns dLoss/dInput.
// It panics unless len(intermediates) == len(layers)+1.
func (n *Network) Backward(grad *tensor.Matrix, intermediates []*tensor.Matrix) *tensor.Matrix {
	if len(intermediates) != len(n.layers)+1 {
		panic(fmt.Sprintf("Network.Backward: got %d intermediates for %d layers, want %d",
			len(intermediates), len(n.layers), len(n.layers)+1))
	}

	curr := grad
	for i := len(n.layers); i >= 1; i-- {
		curr = n.layers[i-1].Backward(intermediates[i-1], curr)
	}
	return curr
}

// Params returns all network parameters in layer order.
func (n *Network) Params() []*tensor.Matrix {
	var params []*tensor.Matrix
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// Gradients returns all parameter gradients, parallel to Params.
func (n *Network) Gradients() []*tensor.Matrix {
	var grads []*tensor.Matrix
	for _, l := range n.layers {
		grads = append(grads, l.Gradients()...)
	}
	return grads
}

// ZeroGrad clears the accumulated gradients of every layer.
func (n *Network) ZeroGrad() {
	for _, l := range n.layers {
		l.ZeroGrad()
	}
}

// ParamCount returns the number of trainable scalars.
func (n *Network) ParamCount() int {
	total := 0
	for _, p := range n.Params() {
		total += p.Len()
	}
	return total
}
