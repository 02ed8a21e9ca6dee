package commands

import (
	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/internal/engine"
)

func NewMbCommand(app *App) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "mb <bucket>",
		Short: "Create a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := app.newEngine(&flags)
			if err != nil {
				return err
			}
			desc := engine.Descriptor{Verb: engine.CreateBucket, Bucket: args[0]}
			return eng.Run(cmd.Context(), desc, flags.options(""))
		},
	}

	addRequestFlags(cmd, &flags)
	return cmd
}

func NewRbCommand(app *App) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "rb <bucket>",
		Short: "Delete an empty bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := app.newEngine(&flags)
			if err != nil {
				return err
			}
			desc := engine.Descriptor{Verb: engine.DeleteBucket, Bucket: args[0]}
			return eng.Run(cmd.Context(), desc, flags.options(""))
		},
	}

	addRequestFlags(cmd, &flags)
	return cmd
}
