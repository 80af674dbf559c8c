package perceptron

import "fmt"

// State is a plain snapshot of a Perceptron suitable for persistence.
type State struct {
	Bias         float64   `json:"bias"`
	LearningRate float64   `json:"learning_rate"`
	Weights      []float64 `json:"weights"`
	TrainingSet  []Example `json:"training_set"`
}

func (p *Perceptron) State() State {
	return State{
		Bias:         p.bias,
		LearningRate: p.learningRate,
		Weights:      p.Weights(),
		TrainingSet:  p.TrainingSet(),
	}
}

// FromState rebuilds a Perceptron from a snapshot. Extra options are applied
// after the snapshot values, so WithRand can be combined with a stored state.
func FromState(s State, opts ...Option) (*Perceptron, error) {
	base := []Option{
		WithBias(s.Bias),
		WithLearningRate(s.LearningRate),
		WithWeights(s.Weights),
	}
	p, err := New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	for i, ex := range s.TrainingSet {
		if ex.Expected != 0 && ex.Expected != 1 {
			return nil, fmt.Errorf("%w: example %d: %w", ErrInvalidState, i, ErrInvalidLabel)
		}
		if len(ex.Inputs) != len(p.weights) {
			return nil, fmt.Errorf("%w: example %d: %w", ErrInvalidState, i,
				&DimensionError{Want: len(p.weights), Got: len(ex.Inputs)})
		}
		p.remember(ex.Inputs, ex.Expected)
	}
	return p, nil
}
