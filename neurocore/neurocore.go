// Package neurocore is the public entry point to the matrix, layer, loss,
// network and optimizer packages.
package neurocore

import (
	"math/rand"

	"github.com/FlavioCFOliveira/neurocore/internal/activations"
	"github.com/FlavioCFOliveira/neurocore/internal/layer"
	"github.com/FlavioCFOliveira/neurocore/internal/loss"
	"github.com/FlavioCFOliveira/neurocore/internal/net"
	"github.com/FlavioCFOliveira/neurocore/internal/opt"
	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

// Re-export common types and functions for easier access
type (
	Matrix      = tensor.Matrix
	Layer       = layer.Layer
	Linear      = layer.Linear
	Activation  = layer.Activation
	Initializer = layer.Initializer
	Network     = net.Network
	Loss        = loss.Loss
	Optimizer   = opt.Optimizer
	SGD         = opt.SGD
)

// Matrices
func Zero(width, height int) *Matrix {
	return tensor.Zero(width, height)
}

func Fill(width, height int, gen func(row, col int) float32) *Matrix {
	return tensor.Fill(width, height, gen)
}

func Column(values ...float32) *Matrix {
	return tensor.Column(values...)
}

func FromRows(rows [][]float32) *Matrix {
	return tensor.FromRows(rows)
}

// Model creation
func NewNetwork(layers ...Layer) *Network {
	return net.New(layers...)
}

// Layers
func Dense(in, out int) *Linear {
	return layer.NewLinear(in, out)
}

func DenseFrom(weights, bias *Matrix) *Linear {
	return layer.NewLinearFrom(weights, bias)
}

func DenseXavier(in, out int, rng *rand.Rand) *Linear {
	return layer.NewLinearInit(in, out, layer.Xavier(rng))
}

func NewActivation(fn, derivative func(float32) float32) *Activation {
	return layer.NewActivation(fn, derivative)
}

// Activations
func Tanh() *Activation    { return layer.Tanh() }
func Sigmoid() *Activation { return layer.Sigmoid() }
func ReLU() *Activation    { return layer.ReLU() }

func LeakyReLU(alpha float32) *Activation {
	return layer.FromActivation(activations.NewLeakyReLU(alpha))
}

// Losses
var (
	MeanSquared  = loss.MeanSquared{}
	MeanAbsolute = loss.MeanAbsolute{}
)

func Huber(delta float32) Loss {
	return loss.NewHuber(delta)
}
