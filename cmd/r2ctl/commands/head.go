package commands

import (
	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/internal/engine"
)

func NewHeadCommand(app *App) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "head <bucket> <key>",
		Short: "Print object metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := app.newEngine(&flags)
			if err != nil {
				return err
			}
			desc := engine.Descriptor{
				Verb:   engine.HeadObject,
				Bucket: args[0],
				Key:    args[1],
			}
			return eng.Run(cmd.Context(), desc, flags.options(""))
		},
	}

	addRequestFlags(cmd, &flags)
	return cmd
}
