package perceptron

import (
	"context"
	"fmt"
	"slices"
)

const DefaultMaxEpochs = 1000

// EpochState describes one completed pass over the training set.
type EpochState struct {
	Epoch         int
	Misclassified int
	Weights       []float64
}

// Observer is notified by Learn once after every completed pass, so the state
// it receives already reflects that pass's weight updates.
type Observer interface {
	OnEpoch(state EpochState)
}

type ObserverFunc func(state EpochState)

func (f ObserverFunc) OnEpoch(state EpochState) {
	f(state)
}

// Result is the outcome of Learn. Weights is a copy taken when the loop stopped.
type Result struct {
	Converged bool
	Epochs    int
	Weights   []float64
}

type learnConfig struct {
	maxEpochs int
	observer  Observer
	examples  []Example
	explicit  bool
}

type LearnOption func(*learnConfig)

// WithMaxEpochs caps the number of passes. Values below 1 fall back to
// DefaultMaxEpochs.
func WithMaxEpochs(n int) LearnOption {
	return func(c *learnConfig) { c.maxEpochs = n }
}

func WithObserver(o Observer) LearnOption {
	return func(c *learnConfig) { c.observer = o }
}

// WithExamples trains on the given examples instead of the accumulated
// training set. They are still recorded into the training set by Train.
func WithExamples(examples []Example) LearnOption {
	return func(c *learnConfig) {
		c.examples = examples
		c.explicit = true
	}
}

// Learn repeats full passes of Train over the training set until a pass
// classifies every example correctly, or the epoch cap is reached. The
// latter returns ErrDidNotConverge alongside the partial Result, which is
// what happens for any set that is not linearly separable.
func (p *Perceptron) Learn(ctx context.Context, opts ...LearnOption) (Result, error) {
	cfg := learnConfig{maxEpochs: DefaultMaxEpochs}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxEpochs < 1 {
		cfg.maxEpochs = DefaultMaxEpochs
	}

	examples := cfg.examples
	if !cfg.explicit {
		// Train never grows the set while replaying stored vectors, but the
		// loop should not depend on that.
		examples = p.TrainingSet()
	}

	var result Result
	for epoch := 1; epoch <= cfg.maxEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			result.Weights = p.Weights()
			return result, err
		}

		misclassified := 0
		for i, ex := range examples {
			ok, err := p.Train(ex.Inputs, ex.Expected)
			if err != nil {
				result.Weights = p.Weights()
				return result, fmt.Errorf("epoch %d, example %d: %w", epoch, i, err)
			}
			if !ok {
				misclassified++
			}
		}

		result.Epochs = epoch
		if cfg.observer != nil {
			cfg.observer.OnEpoch(EpochState{
				Epoch:         epoch,
				Misclassified: misclassified,
				Weights:       slices.Clone(p.weights),
			})
		}
		if misclassified == 0 {
			result.Converged = true
			result.Weights = p.Weights()
			return result, nil
		}
	}

	result.Weights = p.Weights()
	return result, fmt.Errorf("%w after %d epochs", ErrDidNotConverge, cfg.maxEpochs)
}
