package commands

import (
	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/internal/engine"
)

func NewGetCommand(app *App) *cobra.Command {
	var (
		flags     requestFlags
		output    string
		byteRange string
	)

	cmd := &cobra.Command{
		Use:   "get <bucket> <key>",
		Short: "Download an object",
		Long: `Download an object and save it locally.

The destination defaults to the trailing segment of the key; -o overrides it
and '-o -' streams to standard output. An existing destination is only
overwritten after confirmation.

Examples:
  r2ctl get assets images/logo.png
  r2ctl get assets report.csv -o /tmp/report.csv
  r2ctl get assets report.csv -o - | head
  r2ctl get assets report.csv --presign --expires 3600`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := app.newEngine(&flags)
			if err != nil {
				return err
			}
			desc := engine.Descriptor{
				Verb:   engine.GetObject,
				Bucket: args[0],
				Key:    args[1],
				Range:  byteRange,
			}
			return eng.Run(cmd.Context(), desc, flags.options(output))
		},
	}

	addRequestFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path, or '-' for stdout")
	cmd.Flags().StringVar(&byteRange, "range", "", "Byte range to fetch, e.g. bytes=0-1023")
	return cmd
}
