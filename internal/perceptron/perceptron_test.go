package perceptron_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trknhr/neuron/internal/perceptron"
)

var andTable = []perceptron.Example{
	{Inputs: []float64{0, 0}, Expected: 0},
	{Inputs: []float64{0, 1}, Expected: 0},
	{Inputs: []float64{1, 0}, Expected: 0},
	{Inputs: []float64{1, 1}, Expected: 1},
}

var xorTable = []perceptron.Example{
	{Inputs: []float64{0, 0}, Expected: 0},
	{Inputs: []float64{0, 1}, Expected: 1},
	{Inputs: []float64{1, 0}, Expected: 1},
	{Inputs: []float64{1, 1}, Expected: 0},
}

func newSeeded(t *testing.T, seed uint64, opts ...perceptron.Option) *perceptron.Perceptron {
	t.Helper()
	opts = append(opts, perceptron.WithRand(rand.New(rand.NewPCG(seed, seed))))
	p, err := perceptron.New(opts...)
	require.NoError(t, err)
	return p
}

func TestActivate(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{1e-12, 1},
		{42, 1},
		{-1e-12, 0},
		{-3.5, 0},
	}
	for _, tt := range tests {
		if got := perceptron.Activate(tt.in); got != tt.want {
			t.Errorf("Activate(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWeightedSum(t *testing.T) {
	sum, err := perceptron.WeightedSum([]float64{1, 2, 3}, []float64{0.5, -1, 2})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, sum, 1e-12)

	_, err = perceptron.WeightedSum([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, perceptron.ErrDimensionMismatch)

	var dimErr *perceptron.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Want)
	assert.Equal(t, 2, dimErr.Got)
}

func TestDelta(t *testing.T) {
	assert.InDelta(t, 0.05, perceptron.Delta(0, 1, 0.5, 0.1), 1e-12)
	assert.InDelta(t, -0.05, perceptron.Delta(1, 0, 0.5, 0.1), 1e-12)
	assert.Equal(t, 0.0, perceptron.Delta(1, 1, 0.5, 0.1))
}

func TestNew_Defaults(t *testing.T) {
	p, err := perceptron.New()
	require.NoError(t, err)
	assert.Equal(t, perceptron.DefaultBias, p.Bias())
	assert.Equal(t, perceptron.DefaultLearningRate, p.LearningRate())
	assert.Empty(t, p.Weights())
	assert.Empty(t, p.TrainingSet())
}

func TestNew_RejectsLearningRate(t *testing.T) {
	for _, rate := range []float64{-0.1, 1.5} {
		_, err := perceptron.New(perceptron.WithLearningRate(rate))
		assert.ErrorIs(t, err, perceptron.ErrInvalidLearningRate, "rate %v", rate)
	}
}

func TestInitialize(t *testing.T) {
	p := newSeeded(t, 1, perceptron.WithBias(0.7))
	p.Initialize([]float64{10, 20, 30})

	w := p.Weights()
	require.Len(t, w, 4)
	for _, v := range w[:3] {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	assert.Equal(t, 0.7, w[3])
}

func TestTrain_InitializesFromFirstExample(t *testing.T) {
	p := newSeeded(t, 2)
	_, err := p.Train([]float64{0.3, 0.4}, 1)
	require.NoError(t, err)
	assert.Len(t, p.Weights(), 3)
}

func TestTrain_DoesNotMutateInputs(t *testing.T) {
	p := newSeeded(t, 3)
	in := make([]float64, 2, 8) // spare capacity would hide an in-place append
	in[0], in[1] = 0.5, 0.25

	_, err := p.Train(in, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25}, in)
	assert.Equal(t, []float64{0.5, 0.25, 1}, p.TrainingSet()[0].Inputs)
}

func TestTrain_CorrectExampleLeavesWeights(t *testing.T) {
	p, err := perceptron.New(perceptron.WithWeights([]float64{1, 1, 1}))
	require.NoError(t, err)

	ok, err := p.Train([]float64{1, 1}, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []float64{1, 1, 1}, p.Weights())
}

func TestTrain_UpdatesWeightsOnError(t *testing.T) {
	p, err := perceptron.New(perceptron.WithWeights([]float64{1, 1, 1}))
	require.NoError(t, err)

	ok, err := p.Train([]float64{1, 0.5}, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.InDeltaSlice(t, []float64{0.9, 0.95, 0.9}, p.Weights(), 1e-12)
}

func TestTrain_ZeroLearningRateNeverChangesWeights(t *testing.T) {
	p := newSeeded(t, 4, perceptron.WithLearningRate(0))
	_, err := p.Train([]float64{0, 0}, 0)
	require.NoError(t, err)
	before := p.Weights()

	for i := 0; i < 10; i++ {
		for _, ex := range xorTable {
			_, err := p.Train(ex.Inputs, ex.Expected)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, before, p.Weights())
}

func TestTrain_Deduplicates(t *testing.T) {
	p := newSeeded(t, 5)
	_, err := p.Train([]float64{0.2, 0.8}, 1)
	require.NoError(t, err)
	_, err = p.Train([]float64{0.2, 0.8}, 0)
	require.NoError(t, err)
	_, err = p.Train([]float64{0.2, 0.9}, 0)
	require.NoError(t, err)

	set := p.TrainingSet()
	require.Len(t, set, 2)
	assert.Equal(t, 1, set[0].Expected)
	assert.Equal(t, []float64{0.2, 0.9, 1}, set[1].Inputs)
}

func TestTrain_RejectsInvalidLabel(t *testing.T) {
	p := newSeeded(t, 6)
	_, err := p.Train([]float64{1, 1}, 2)
	assert.ErrorIs(t, err, perceptron.ErrInvalidLabel)
	assert.Empty(t, p.Weights())
}

func TestTrain_RejectsWrongArity(t *testing.T) {
	p := newSeeded(t, 7)
	_, err := p.Train([]float64{1, 1}, 1)
	require.NoError(t, err)

	_, err = p.Train([]float64{1, 1, 1, 1}, 1)
	assert.ErrorIs(t, err, perceptron.ErrDimensionMismatch)
	assert.Len(t, p.TrainingSet(), 1)
}

func TestEvaluate_DimensionMismatch(t *testing.T) {
	p, err := perceptron.New(perceptron.WithWeights([]float64{1, 1, 1}))
	require.NoError(t, err)
	_, err = p.Evaluate([]float64{1, 1})
	assert.ErrorIs(t, err, perceptron.ErrDimensionMismatch)
}

func TestPredict_MatchesEvaluateWithBias(t *testing.T) {
	p := newSeeded(t, 8)
	_, err := p.Learn(context.Background(), perceptron.WithExamples(andTable))
	require.NoError(t, err)

	for _, in := range [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {0.7, 0.9}, {-2, 5}} {
		for _, bias := range []float64{1, 0, -1} {
			pred, err := p.Predict(in, bias)
			require.NoError(t, err)
			eval, err := p.Evaluate(append(append([]float64{}, in...), bias))
			require.NoError(t, err)
			assert.Equal(t, eval, pred, "inputs %v bias %v", in, bias)
		}
	}
}

func TestPredict_DoesNotTouchState(t *testing.T) {
	p, err := perceptron.New(perceptron.WithWeights([]float64{0.5, -0.5, 0.1}))
	require.NoError(t, err)
	_, err = p.Predict([]float64{1, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.5, 0.1}, p.Weights())
	assert.Empty(t, p.TrainingSet())
}
