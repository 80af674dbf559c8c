package perceptron

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
)

const (
	DefaultBias         = 1.0
	DefaultLearningRate = 0.1
)

// Example is a single labeled input vector.
type Example struct {
	Inputs   []float64 `json:"inputs"`
	Expected int       `json:"expected"`
}

// Perceptron is a single binary-threshold neuron trained with the classical
// perceptron learning rule. The bias is modelled as a synthetic input whose
// value is the configured bias constant, so the weight vector always holds
// one entry more than the raw input arity.
//
// A Perceptron is not safe for concurrent use.
type Perceptron struct {
	bias         float64
	learningRate float64
	weights      []float64
	trainingSet  []Example

	rnd *rand.Rand
}

type Option func(*Perceptron)

func WithBias(bias float64) Option {
	return func(p *Perceptron) { p.bias = bias }
}

func WithLearningRate(rate float64) Option {
	return func(p *Perceptron) { p.learningRate = rate }
}

// WithWeights presets the weight vector, bias weight included.
func WithWeights(weights []float64) Option {
	return func(p *Perceptron) { p.weights = slices.Clone(weights) }
}

// WithRand sets the random source used when weights are initialized.
func WithRand(r *rand.Rand) Option {
	return func(p *Perceptron) { p.rnd = r }
}

func New(opts ...Option) (*Perceptron, error) {
	p := &Perceptron{
		bias:         DefaultBias,
		learningRate: DefaultLearningRate,
	}
	for _, opt := range opts {
		opt(p)
	}
	if math.IsNaN(p.learningRate) || p.learningRate < 0 || p.learningRate > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLearningRate, p.learningRate)
	}
	return p, nil
}

func (p *Perceptron) Bias() float64 {
	return p.bias
}

func (p *Perceptron) LearningRate() float64 {
	return p.learningRate
}

// Weights returns a copy of the current weight vector. It is empty until the
// first call to Train.
func (p *Perceptron) Weights() []float64 {
	return slices.Clone(p.weights)
}

// TrainingSet returns a copy of every unique example seen by Train. Inputs
// are stored bias-extended.
func (p *Perceptron) TrainingSet() []Example {
	out := make([]Example, len(p.trainingSet))
	for i, ex := range p.trainingSet {
		out[i] = Example{Inputs: slices.Clone(ex.Inputs), Expected: ex.Expected}
	}
	return out
}

// Activate is the step function: 1 for value >= 0, otherwise 0.
func Activate(value float64) int {
	if value >= 0 {
		return 1
	}
	return 0
}

func WeightedSum(inputs, weights []float64) (float64, error) {
	if len(inputs) != len(weights) {
		return 0, &DimensionError{Want: len(weights), Got: len(inputs)}
	}
	return floats.Dot(inputs, weights), nil
}

// Delta is the per-weight correction of the perceptron learning rule.
func Delta(actual, expected int, input, learningRate float64) float64 {
	return float64(expected-actual) * learningRate * input
}

// Evaluate classifies an already bias-extended input vector.
func (p *Perceptron) Evaluate(inputs []float64) (int, error) {
	sum, err := WeightedSum(inputs, p.weights)
	if err != nil {
		return 0, err
	}
	return Activate(sum), nil
}

// Initialize replaces the weights with one uniform [0,1) draw per input
// value followed by the bias value as the bias weight.
func (p *Perceptron) Initialize(inputs []float64) {
	weights := make([]float64, 0, len(inputs)+1)
	for range inputs {
		weights = append(weights, p.draw())
	}
	p.weights = append(weights, p.bias)
}

func (p *Perceptron) draw() float64 {
	if p.rnd != nil {
		return p.rnd.Float64()
	}
	return rand.Float64()
}

// Train runs a single learning step on one example and reports whether the
// example was already classified correctly. Weights are only updated when it
// was not. The caller's inputs slice is never modified.
func (p *Perceptron) Train(inputs []float64, expected int) (bool, error) {
	if expected != 0 && expected != 1 {
		return false, fmt.Errorf("%w: got %d", ErrInvalidLabel, expected)
	}
	if len(p.weights) == 0 {
		p.Initialize(inputs)
	}

	extended := inputs
	if len(inputs) != len(p.weights) {
		extended = withBias(inputs, p.bias)
	}
	if len(extended) != len(p.weights) {
		return false, &DimensionError{Want: len(p.weights) - 1, Got: len(inputs)}
	}

	p.remember(extended, expected)

	actual, err := p.Evaluate(extended)
	if err != nil {
		return false, err
	}
	if actual == expected {
		return true, nil
	}

	for i := range p.weights {
		p.weights[i] += Delta(actual, expected, extended[i], p.learningRate)
	}
	return false, nil
}

// remember adds an example unless one with an identical input vector is
// already stored. The first label seen for a vector wins.
func (p *Perceptron) remember(inputs []float64, expected int) {
	for _, ex := range p.trainingSet {
		if floats.Equal(ex.Inputs, inputs) {
			return
		}
	}
	p.trainingSet = append(p.trainingSet, Example{Inputs: slices.Clone(inputs), Expected: expected})
}

// Predict classifies a raw input vector, appending bias as the synthetic
// bias input.
func (p *Perceptron) Predict(inputs []float64, bias float64) (int, error) {
	return p.Evaluate(withBias(inputs, bias))
}

func withBias(inputs []float64, bias float64) []float64 {
	out := make([]float64, len(inputs), len(inputs)+1)
	copy(out, inputs)
	return append(out, bias)
}
