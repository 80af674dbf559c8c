package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trknhr/neuron/internal/dataset"
	"github.com/trknhr/neuron/internal/logger"
	"github.com/trknhr/neuron/internal/perceptron"
	"github.com/trknhr/neuron/internal/store"
)

func newTrainCmd(a *app) *cobra.Command {
	var (
		lf           learnFlags
		file         string
		name         string
		normalize    bool
		allowPartial bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a perceptron from a CSV or JSONL file and save it",
		Example: `
  # CSV with a header row and an "expected" column
  neuron train -f people.csv --name people --normalize

  # One {"inputs":[...],"expected":0|1} object per line
  neuron train -f and.jsonl --name and`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			examples, err := dataset.Load(file)
			if err != nil {
				return err
			}
			logger.Info("loaded %d examples from %s", len(examples), file)

			var maxima []float64
			if normalize {
				examples, maxima, err = dataset.Normalize(examples)
			} else {
				_, err = dataset.ColumnMax(examples) // arity check only
			}
			if err != nil {
				return err
			}

			p, res, learnErr := lf.learn(cmd.Context(), examples)
			if p == nil {
				return learnErr
			}
			printResult(cmd.OutOrStdout(), res)
			if learnErr != nil {
				if !errors.Is(learnErr, perceptron.ErrDidNotConverge) || !allowPartial {
					return learnErr
				}
				logger.Warn("saving model %s although it did not converge", name)
			}

			defer a.close()
			models, err := a.modelStore()
			if err != nil {
				return err
			}
			id, err := models.SaveModel(store.ModelRecord{
				Name:      name,
				State:     p.State(),
				Scale:     maxima,
				Epochs:    res.Epochs,
				Converged: res.Converged,
			})
			if err != nil {
				return err
			}
			logger.Info("saved model %s (%s)", name, id)
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", name)
			return nil
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a .csv or .jsonl dataset")
	cmd.Flags().StringVar(&name, "name", "", "name to save the model under")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "scale each feature by its column maximum")
	cmd.Flags().BoolVar(&allowPartial, "allow-partial", false, "save the model even if training did not converge")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("name")

	return cmd
}
