package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/FlavioCFOliveira/neurocore/internal/layer"
	"github.com/FlavioCFOliveira/neurocore/internal/loss"
	"github.com/FlavioCFOliveira/neurocore/internal/net"
	"github.com/FlavioCFOliveira/neurocore/internal/opt"
	"github.com/FlavioCFOliveira/neurocore/internal/tensor"
)

func main() {
	epochs := flag.Int("epochs", 5000, "Number of full-batch training epochs")
	lr := flag.Float64("lr", 0.05, "SGD learning rate")
	hidden := flag.Int("hidden", 4, "Hidden layer width")
	seed := flag.Int64("seed", 42, "Seed for weight initialization")
	logEvery := flag.Int("log-every", 500, "Log the loss every N epochs (0 disables)")
	flag.Parse()

	if *epochs <= 0 || *hidden <= 0 || *lr <= 0 {
		log.Fatalf("epochs, hidden and lr must be positive (got %d, %d, %g)", *epochs, *hidden, *lr)
	}

	// XOR cannot be solved by a single linear layer, so use one hidden tanh layer.
	rng := rand.New(rand.NewSource(*seed))
	network := net.New(
		layer.NewLinearInit(2, *hidden, layer.Xavier(rng)),
		layer.Tanh(),
		layer.NewLinearInit(*hidden, 1, layer.Xavier(rng)),
	)
	mse := loss.MeanSquared{}
	sgd := opt.SGD{LearningRate: float32(*lr)}

	if err := network.Summary(os.Stdout); err != nil {
		log.Fatalf("summary: %v", err)
	}

	// XOR training data, one sample per row
	inputs := tensor.FromRows([][]float32{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
	})
	targets := tensor.Column(0, 1, 1, 0)

	for epoch := 0; epoch < *epochs; epoch++ {
		network.ZeroGrad()
		output, intermediates := network.Forward(inputs)
		network.Backward(mse.Gradient(output, targets), intermediates)
		sgd.Step(network.Params(), network.Gradients())

		if *logEvery > 0 && epoch%*logEvery == 0 {
			log.Printf("epoch %d loss %.6f", epoch, mse.Loss(output, targets))
		}
	}

	predictions := network.Predict(inputs)
	for i, row := range inputs.Rows() {
		log.Printf("input %v predicted %.4f target %v", row, predictions.At(i, 0), targets.At(i, 0))
	}
	log.Printf("final loss %.6f", mse.Loss(predictions, targets))
}
