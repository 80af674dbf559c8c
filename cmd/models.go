package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trknhr/neuron/internal/logger"
)

func newModelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List saved models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			models, err := a.modelStore()
			if err != nil {
				return err
			}
			list, err := models.ListModels()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved models")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tINPUTS\tEXAMPLES\tEPOCHS\tCONVERGED\tCREATED\t")
			for _, m := range list {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%t\t%s\t\n",
					m.Name, m.Inputs, m.Examples, m.Epochs, m.Converged, m.CreatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a saved model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			models, err := a.modelStore()
			if err != nil {
				return err
			}
			if err := models.DeleteModel(args[0]); err != nil {
				return err
			}
			logger.Info("deleted model %s", args[0])
			return nil
		},
	})

	return cmd
}
