package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trknhr/neuron/internal/logger"
	"github.com/trknhr/neuron/internal/perceptron"
)

type learnFlags struct {
	bias      float64
	rate      float64
	maxEpochs int
	seed      uint64
}

func (f *learnFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.bias, "bias", perceptron.DefaultBias, "bias input value")
	cmd.Flags().Float64Var(&f.rate, "rate", perceptron.DefaultLearningRate, "learning rate in [0, 1]")
	cmd.Flags().IntVar(&f.maxEpochs, "max-epochs", perceptron.DefaultMaxEpochs, "give up after this many passes")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for weight initialization (0 picks one at random)")
}

func (f *learnFlags) newPerceptron() (*perceptron.Perceptron, error) {
	opts := []perceptron.Option{
		perceptron.WithBias(f.bias),
		perceptron.WithLearningRate(f.rate),
	}
	if f.seed != 0 {
		opts = append(opts, perceptron.WithRand(rand.New(rand.NewPCG(f.seed, f.seed))))
	}
	return perceptron.New(opts...)
}

// learn trains a fresh perceptron on examples. On non-convergence the
// perceptron and result are still returned together with the error.
func (f *learnFlags) learn(ctx context.Context, examples []perceptron.Example) (*perceptron.Perceptron, perceptron.Result, error) {
	p, err := f.newPerceptron()
	if err != nil {
		return nil, perceptron.Result{}, err
	}

	progress := perceptron.ObserverFunc(func(s perceptron.EpochState) {
		logger.Debug("epoch %d: %d misclassified, weights %v", s.Epoch, s.Misclassified, s.Weights)
	})
	res, err := p.Learn(ctx,
		perceptron.WithExamples(examples),
		perceptron.WithObserver(progress),
		perceptron.WithMaxEpochs(f.maxEpochs),
	)
	return p, res, err
}

func printResult(w io.Writer, res perceptron.Result) {
	if res.Converged {
		fmt.Fprintf(w, "converged after %d epochs\n", res.Epochs)
	} else {
		fmt.Fprintf(w, "did not converge after %d epochs\n", res.Epochs)
	}
	fmt.Fprintf(w, "weights: %s\n", formatVector(res.Weights))
}

// printPredictions writes one row per example with the model's prediction
// for it. Example inputs are raw (without the bias value).
func printPredictions(w io.Writer, p *perceptron.Perceptron, examples []perceptron.Example) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUTS\tEXPECTED\tPREDICTED\t")
	for _, ex := range examples {
		got, err := p.Predict(ex.Inputs, p.Bias())
		if err != nil {
			return err
		}
		mark := ""
		if got != ex.Expected {
			mark = "x"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", formatVector(ex.Inputs), ex.Expected, got, mark)
	}
	return tw.Flush()
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', 4, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func parseVector(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid input %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}
