package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trknhr/neuron/internal/dataset"
	"github.com/trknhr/neuron/internal/logger"
	"github.com/trknhr/neuron/internal/store"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		lf      learnFlags
		setName string
		save    string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Train on a built-in dataset and print the result",
		Example: `
  # The demo feature-pair set, scaled by its column maxima
  neuron demo

  # A truth table, saved for later prediction
  neuron demo --set and --save and`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := dataset.ByName(setName)
			if err != nil {
				return err
			}
			examples, maxima, err := dataset.Normalize(raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dataset: %s (%d examples, scaled by %s)\n", strings.ToLower(setName), len(examples), formatVector(maxima))

			p, res, learnErr := lf.learn(cmd.Context(), examples)
			if p == nil {
				return learnErr
			}
			printResult(out, res)
			if err := printPredictions(out, p, examples); err != nil {
				return err
			}
			if learnErr != nil {
				return learnErr
			}

			if save == "" {
				return nil
			}
			defer a.close()
			models, err := a.modelStore()
			if err != nil {
				return err
			}
			id, err := models.SaveModel(store.ModelRecord{
				Name:      save,
				State:     p.State(),
				Scale:     maxima,
				Epochs:    res.Epochs,
				Converged: res.Converged,
			})
			if err != nil {
				return err
			}
			logger.Info("saved model %s (%s)", save, id)
			return nil
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVar(&setName, "set", "demo", "dataset to train on ("+strings.Join(dataset.Names, ",")+")")
	cmd.Flags().StringVar(&save, "save", "", "save the trained model under this name")

	return cmd
}
