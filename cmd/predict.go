package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trknhr/neuron/internal/dataset"
	"github.com/trknhr/neuron/internal/logger"
	"github.com/trknhr/neuron/internal/perceptron"
)

func newPredictCmd(a *app) *cobra.Command {
	var (
		name string
		bias float64
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "predict --name NAME x1 [x2 ...]",
		Short: "Classify an input vector with a saved model",
		Example: `
  neuron predict --name and 1 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := parseVector(args)
			if err != nil {
				return err
			}

			defer a.close()
			models, err := a.modelStore()
			if err != nil {
				return err
			}
			rec, err := models.LoadModel(name)
			if err != nil {
				return err
			}
			p, err := perceptron.FromState(rec.State)
			if err != nil {
				return err
			}
			logger.Debug("loaded model %s (%s), weights %v", rec.Name, rec.ID, rec.State.Weights)

			if len(rec.Scale) > 0 && !raw {
				inputs = dataset.Scale(inputs, rec.Scale)
			}
			if !cmd.Flags().Changed("bias") {
				bias = p.Bias()
			}

			got, err := p.Predict(inputs, bias)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), got)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "saved model name")
	cmd.Flags().Float64Var(&bias, "bias", 0, "bias input value (default: the model's stored bias)")
	cmd.Flags().BoolVar(&raw, "raw", false, "do not apply the model's stored feature scaling")
	cmd.MarkFlagRequired("name")

	return cmd
}
