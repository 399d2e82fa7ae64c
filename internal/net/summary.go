package net

import (
	"fmt"
	"io"
	"strings"
)

// sizer is implemented by layers with a fixed output width.
type sizer interface {
	OutSize() int
}

// Summary writes a table of the network architecture to w.
// Layers without a fixed output width inherit the width of the previous layer.
func (n *Network) Summary(w io.Writer) error {
	rule := strings.Repeat("_", 65)
	double := strings.Repeat("=", 65)

	var sb strings.Builder
	sb.WriteString("Model: Network\n")
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	sb.WriteString(double + "\n")

	width := -1
	totalParams := 0
	for i, l := range n.layers {
		lType := fmt.Sprintf("%T", l)
		// Extract simple type name
		if j := strings.LastIndexByte(lType, '.'); j >= 0 {
			lType = lType[j+1:]
		}

		if s, ok := l.(sizer); ok {
			width = s.OutSize()
		}
		outShape := "(batch, ?)"
		if width >= 0 {
			outShape = fmt.Sprintf("(batch, %d)", width)
		}

		params := 0
		for _, p := range l.Params() {
			params += p.Len()
		}
		totalParams += params

		fmt.Fprintf(&sb, "%-25s %-20s %-10d\n", fmt.Sprintf("%s_%d", lType, i), outShape, params)
	}
	sb.WriteString(double + "\n")
	fmt.Fprintf(&sb, "Total params: %d\n", totalParams)
	sb.WriteString(rule + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
