// Package net provides unit tests for the network container.
package net

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/FlavioCFOliveira/neurocore/internal/layer"
	"github.com/FlavioCFOliveira/neurocore/internal/loss"
	"github.com/FlavioCFOliveira/neurocore/internal/opt"
	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

func identity(n int) *tensor.Matrix {
	return tensor.Fill(n, n, func(row, col int) float32 {
		if row == col {
			return 1
		}
		return 0
	})
}

// TestIdentityRoundTrip checks that an identity Linear layer passes both
// values and gradients through unchanged.
func TestIdentityRoundTrip(t *testing.T) {
	network := New(layer.NewLinearFrom(identity(3), tensor.Zero(3, 1)))

	input := tensor.FromRows([][]float32{{1, 2, 3}, {-4, 0.5, 6}})
	grad := tensor.FromRows([][]float32{{0.1, -0.2, 0.3}, {1, 1, -1}})

	output, intermediates := network.Forward(input)
	assert.True(t, output.Equal(input))

	inputGrad := network.Backward(grad, intermediates)
	assert.True(t, inputGrad.Equal(grad))
}

func TestForwardIntermediates(t *testing.T) {
	network := New(
		layer.NewLinearFrom(tensor.FromRows([][]float32{{1, -1}, {2, 0}}), tensor.FromRows([][]float32{{0, 1}})),
		layer.ReLU(),
		layer.NewLinearFrom(tensor.Column(1, 1), tensor.Zero(1, 1)),
	)
	input := tensor.FromRows([][]float32{{1, 1}, {-1, 0}})

	output, intermediates := network.Forward(input)

	require.Len(t, intermediates, len(network.Layers())+1)
	assert.Same(t, input, intermediates[0])
	assert.Same(t, output, intermediates[len(intermediates)-1])

	assert.True(t, intermediates[1].Equal(tensor.FromRows([][]float32{{3, 0}, {-1, 2}})))
	assert.True(t, intermediates[2].Equal(tensor.FromRows([][]float32{{3, 0}, {0, 2}})))
	assert.True(t, output.Equal(tensor.Column(3, 2)))
	assert.True(t, network.Predict(input).Equal(output))
}

func TestEmptyNetwork(t *testing.T) {
	network := New()
	input := tensor.Column(1, 2)

	output, intermediates := network.Forward(input)
	require.Len(t, intermediates, 1)
	assert.True(t, output.Equal(input))

	grad := tensor.Column(3, 4)
	assert.True(t, network.Backward(grad, intermediates).Equal(grad))
}

func TestBackwardIntermediatesLengthPanics(t *testing.T) {
	network := New(layer.NewLinear(2, 2), layer.Tanh())
	_, intermediates := network.Forward(tensor.Zero(2, 1))
	grad := tensor.Zero(2, 1)

	assert.Panics(t, func() { network.Backward(grad, intermediates[:2]) }, "too few")
	assert.Panics(t, func() { network.Backward(grad, append(intermediates, tensor.Zero(2, 1))) }, "too many")
	assert.Panics(t, func() { network.Backward(grad, nil) }, "none")
	assert.NotPanics(t, func() { network.Backward(grad, intermediates) })
}

func TestNewCopiesLayerSlice(t *testing.T) {
	layers := []layer.Layer{layer.Tanh(), layer.ReLU()}
	network := New(layers...)
	layers[0] = layer.Sigmoid()

	assert.NotSame(t, layers[0], network.Layers()[0])
}

func TestParamsAndGradientsAreParallel(t *testing.T) {
	network := New(layer.NewLinear(3, 4), layer.Tanh(), layer.NewLinear(4, 2))

	params := network.Params()
	grads := network.Gradients()
	require.Len(t, params, 4)
	require.Len(t, grads, 4)
	for i := range params {
		pw, ph := params[i].Dims()
		gw, gh := grads[i].Dims()
		assert.Equal(t, pw, gw, "param %d", i)
		assert.Equal(t, ph, gh, "param %d", i)
	}
	assert.Equal(t, 3*4+4+4*2+2, network.ParamCount())
}

// TestBackwardMatchesFiniteDifferences checks the full chain rule through a
// Linear-Tanh-Linear stack with a MeanSquared loss.
func TestBackwardMatchesFiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	network := New(
		layer.NewLinearInit(3, 4, layer.Xavier(rng)),
		layer.Tanh(),
		layer.NewLinearInit(4, 2, layer.Xavier(rng)),
	)
	mse := loss.MeanSquared{}

	input := tensor.FromRows([][]float32{{0.5, -1, 0.25}, {1, 0, -0.5}})
	target := tensor.FromRows([][]float32{{1, 0}, {0, -1}})

	output, intermediates := network.Forward(input)
	inputGrad := network.Backward(mse.Gradient(output, target), intermediates)

	flat := make([]float64, 0, input.Len())
	input.Cells(func(_, _ int, v float32) { flat = append(flat, float64(v)) })

	want := fd.Gradient(nil, func(x []float64) float64 {
		shifted := tensor.Fill(3, 2, func(row, col int) float32 { return float32(x[row*3+col]) })
		return float64(mse.Loss(network.Predict(shifted), target))
	}, flat, &fd.Settings{Formula: fd.Central, Step: 1e-3})

	inputGrad.Cells(func(row, col int, v float32) {
		assert.InDelta(t, want[row*3+col], v, 2e-2, "cell (%d, %d)", row, col)
	})
}

func TestZeroGrad(t *testing.T) {
	network := New(layer.NewLinearFrom(identity(2), tensor.Zero(2, 1)))
	input := tensor.FromRows([][]float32{{1, 2}})

	_, intermediates := network.Forward(input)
	network.Backward(tensor.FromRows([][]float32{{1, 1}}), intermediates)
	assert.False(t, network.Gradients()[0].Equal(tensor.Zero(2, 2)))

	network.ZeroGrad()
	for _, g := range network.Gradients() {
		w, h := g.Dims()
		assert.True(t, g.Equal(tensor.Zero(w, h)))
	}
}

// TestNetworkXOR trains a small network with the optimizer seam.
func TestNetworkXOR(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	network := New(
		layer.NewLinearInit(2, 8, layer.Xavier(rng)),
		layer.Tanh(),
		layer.NewLinearInit(8, 1, layer.Xavier(rng)),
	)
	mse := loss.MeanSquared{}
	sgd := opt.SGD{LearningRate: 0.05}

	inputs := tensor.FromRows([][]float32{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	targets := tensor.Column(0, 1, 1, 0)

	for epoch := 0; epoch < 5000; epoch++ {
		network.ZeroGrad()
		output, intermediates := network.Forward(inputs)
		network.Backward(mse.Gradient(output, targets), intermediates)
		sgd.Step(network.Params(), network.Gradients())
	}

	output := network.Predict(inputs)
	assert.Less(t, mse.Loss(output, targets), float32(0.1), "predictions %v", output)
}

func TestSummary(t *testing.T) {
	network := New(layer.NewLinear(3, 4), layer.Tanh(), layer.NewLinear(4, 2))

	var sb strings.Builder
	require.NoError(t, network.Summary(&sb))
	out := sb.String()

	assert.Contains(t, out, "Linear_0")
	assert.Contains(t, out, "Activation_1")
	assert.Contains(t, out, "(batch, 4)")
	assert.Contains(t, out, "(batch, 2)")
	assert.Contains(t, out, "Total params: 26")
}
