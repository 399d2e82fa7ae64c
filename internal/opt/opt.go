// Package opt provides optimizers that consume layer parameter gradients.
package opt

import (
	"fmt"

	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

// Optimizer updates network parameters based on gradients.
type Optimizer interface {
	// Step updates params in place from the parallel gradients slice.
	Step(params, gradients []*tensor.Matrix)
}

// SGD (Stochastic Gradient Descent) optimizer.
type SGD struct {
	LearningRate float32
}

// Step updates params in place: params = params - lr * gradients
func (s SGD) Step(params, gradients []*tensor.Matrix) {
	if len(params) != len(gradients) {
		panic(fmt.Sprintf("SGD.Step: %d params but %d gradients", len(params), len(gradients)))
	}
	for i, p := range params {
		g := gradients[i]
		pw, ph := p.Dims()
		if gw, gh := g.Dims(); pw != gw || ph != gh {
			panic(fmt.Sprintf("SGD.Step: param %d is %dx%d but gradient is %dx%d", i, pw, ph, gw, gh))
		}
		g.Cells(func(row, col int, v float32) {
			p.Set(row, col, p.At(row, col)-s.LearningRate*v)
		})
	}
}
