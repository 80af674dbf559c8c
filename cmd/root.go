package cmd

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/trknhr/neuron/internal"
	"github.com/trknhr/neuron/internal/logger"
	"github.com/trknhr/neuron/internal/store"
)

// app carries the state shared by all subcommands. The database is only
// opened by commands that need it.
type app struct {
	dbPath   string
	logLevel string
	logFile  string

	db *sql.DB
}

func (a *app) modelStore() (store.ModelStore, error) {
	if a.db == nil {
		db, err := internal.OpenDB(a.dbPath)
		if err != nil {
			return nil, err
		}
		a.db = db
	}
	return store.NewSQLModelStore(a.db), nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "neuron",
		Short:         "Train and run a single perceptron",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(a.logFile, a.logLevel)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug,info,warn,error,none)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write logs to this file")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "model database path (default <user cache dir>/neuron/neuron.db)")

	cmd.AddCommand(
		newDemoCmd(a),
		newTrainCmd(a),
		newPredictCmd(a),
		newModelsCmd(a),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
