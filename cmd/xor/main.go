package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

func main() {
	fmt.Println("=== XOR Training Example ===")

	// Create a simple XOR network: 2 inputs -> 4 hidden -> 1 output
	// The XOR function cannot be solved by a single-layer perceptron
	// but can be solved by a multi-layer perceptron with hidden layers
	network, err := net.New(2, []int{4}, 1, net.WithLearningRate(1), net.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}
	if err := network.Summary(os.Stdout); err != nil {
		log.Fatal(err)
	}

	ds, err := dataset.FromSlices(
		[][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		[][]float64{{0}, {1}, {1}, {0}},
	)
	if err != nil {
		log.Fatal(err)
	}

	_, err = network.Fit(context.Background(), ds, net.FitConfig{Epochs: 5000, BatchSize: 1, Shuffle: true},
		net.NewLogger(os.Stdout, 500))
	if err != nil {
		log.Fatal(err)
	}

	// Test the network
	fmt.Println("\nTesting trained network:")
	for i := range ds.Inputs {
		pred, err := network.FeedForward(ds.Inputs[i])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n",
			ds.Inputs[i].Flatten(), pred.At(0, 0), ds.Targets[i].At(0, 0))
	}

	// The reference pass from a fresh 3-2-2-1 network.
	fmt.Println("\nUntrained 3-[2,2]-1 output for [0.3, 0.8, 0.1]:")
	fresh, err := net.New(3, []int{2, 2}, 1)
	if err != nil {
		log.Fatal(err)
	}
	out, err := fresh.FeedForward(matrix.Column(0.3, 0.8, 0.1))
	if err != nil {
		log.Fatal(err)
	}
	if err := out.Print(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
