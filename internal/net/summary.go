package net

import (
	"fmt"
	"io"
	"strings"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
)

const summaryRule = "================================================================="

// Summary writes a table of the network architecture to w.
func (n *Network) Summary(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintln(&b, "Model: Perceptron")
	fmt.Fprintln(&b, strings.Repeat("_", len(summaryRule)))
	fmt.Fprintf(&b, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(&b, summaryRule)

	fmt.Fprintf(&b, "%-25s %-20s %-10d\n", "Input", fmt.Sprintf("(%d)", n.topology[0]), 0)
	for i, d := range n.layers {
		name := fmt.Sprintf("Dense_%d (%s)", i, activations.Name(d.Activation()))
		fmt.Fprintf(&b, "%-25s %-20s %-10d\n", name, fmt.Sprintf("(%d)", d.OutSize()), d.NumParams())
	}

	fmt.Fprintln(&b, summaryRule)
	fmt.Fprintf(&b, "Total params: %d\n", n.NumParams())
	fmt.Fprintf(&b, "Learning rate: %g\n", n.learningRate)
	fmt.Fprintln(&b, strings.Repeat("_", len(summaryRule)))

	_, err := io.WriteString(w, b.String())
	return err
}
