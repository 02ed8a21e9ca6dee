package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/internal/engine"
)

func NewPutCommand(app *App) *cobra.Command {
	var (
		flags       requestFlags
		contentType string
	)

	cmd := &cobra.Command{
		Use:   "put <bucket> <key> <file>",
		Short: "Upload a file as an object",
		Long: `Upload a local file to a bucket.

With --presign, no upload happens; a presigned retrieval URL for the key is
produced instead, ready to hand out once the object exists.

Examples:
  r2ctl put assets images/logo.png ./logo.png
  r2ctl put assets report.csv ./report.csv --content-type text/csv
  r2ctl put assets report.csv ./report.csv --sign-header Cache-Control=max-age=3600`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := app.newEngine(&flags)
			if err != nil {
				return err
			}

			desc := engine.Descriptor{
				Verb:        engine.PutObject,
				Bucket:      args[0],
				Key:         args[1],
				ContentType: contentType,
			}

			if !flags.presign {
				file, err := os.Open(args[2])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[2], err)
				}
				defer file.Close()

				info, err := file.Stat()
				if err != nil {
					return err
				}
				desc.Body = file
				desc.ContentLength = info.Size()
			}

			return eng.Run(cmd.Context(), desc, flags.options(""))
		},
	}

	addRequestFlags(cmd, &flags)
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type of the uploaded object")
	return cmd
}
