package dataset

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/trknhr/neuron/internal/perceptron"
)

var (
	ErrEmptyDataset   = errors.New("dataset is empty")
	ErrRaggedDataset  = errors.New("examples have different input lengths")
	ErrUnknownDataset = errors.New("unknown dataset")
)

// Names lists the built-in datasets accepted by ByName.
var Names = []string{"demo", "and", "or", "nand", "xor"}

// Demo is the raw (feature pair, label) set used by the demo command. It is
// meant to be passed through Normalize before training.
func Demo() []perceptron.Example {
	return []perceptron.Example{
		{Inputs: []float64{32, 175}, Expected: 1},
		{Inputs: []float64{24, 170}, Expected: 1},
		{Inputs: []float64{20, 50}, Expected: 1},
		{Inputs: []float64{30, 10}, Expected: 0},
		{Inputs: []float64{24, 340}, Expected: 1},
		{Inputs: []float64{64, 250}, Expected: 0},
		{Inputs: []float64{34, 120}, Expected: 0},
	}
}

func AND() []perceptron.Example {
	return truthTable(func(a, b bool) bool { return a && b })
}

func OR() []perceptron.Example {
	return truthTable(func(a, b bool) bool { return a || b })
}

func NAND() []perceptron.Example {
	return truthTable(func(a, b bool) bool { return !(a && b) })
}

// XOR is not linearly separable; a single perceptron cannot learn it.
func XOR() []perceptron.Example {
	return truthTable(func(a, b bool) bool { return a != b })
}

func truthTable(f func(a, b bool) bool) []perceptron.Example {
	out := make([]perceptron.Example, 0, 4)
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			out = append(out, perceptron.Example{
				Inputs:   []float64{bit(a), bit(b)},
				Expected: int(bit(f(a, b))),
			})
		}
	}
	return out
}

func bit(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func ByName(name string) ([]perceptron.Example, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "demo":
		return Demo(), nil
	case "and":
		return AND(), nil
	case "or":
		return OR(), nil
	case "nand":
		return NAND(), nil
	case "xor":
		return XOR(), nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownDataset, name, strings.Join(Names, ", "))
	}
}

// ColumnMax returns the per-feature maximum over all examples.
func ColumnMax(examples []perceptron.Example) ([]float64, error) {
	if len(examples) == 0 {
		return nil, ErrEmptyDataset
	}
	width := len(examples[0].Inputs)
	for i, ex := range examples {
		if len(ex.Inputs) != width {
			return nil, fmt.Errorf("%w: example %d has %d inputs, want %d", ErrRaggedDataset, i, len(ex.Inputs), width)
		}
	}

	column := make([]float64, len(examples))
	maxima := make([]float64, width)
	for j := range maxima {
		for i, ex := range examples {
			column[i] = ex.Inputs[j]
		}
		maxima[j] = floats.Max(column)
	}
	return maxima, nil
}

// Normalize divides every feature by its column maximum over the same
// dataset and returns the scaled copy together with the maxima. Columns
// whose maximum is zero are left as they are.
func Normalize(examples []perceptron.Example) ([]perceptron.Example, []float64, error) {
	maxima, err := ColumnMax(examples)
	if err != nil {
		return nil, nil, err
	}
	out := make([]perceptron.Example, len(examples))
	for i, ex := range examples {
		out[i] = perceptron.Example{Inputs: Scale(ex.Inputs, maxima), Expected: ex.Expected}
	}
	return out, maxima, nil
}

// Scale applies column maxima from Normalize to a single input vector.
func Scale(inputs, maxima []float64) []float64 {
	out := slices.Clone(inputs)
	for j := range out {
		if j < len(maxima) && maxima[j] != 0 {
			out[j] /= maxima[j]
		}
	}
	return out
}
