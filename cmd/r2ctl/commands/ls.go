package commands

import (
	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/internal/engine"
)

func NewLsCommand(app *App) *cobra.Command {
	var (
		flags      requestFlags
		prefix     string
		startAfter string
		maxKeys    int32
	)

	cmd := &cobra.Command{
		Use:   "ls [bucket]",
		Short: "List buckets, or objects in a bucket",
		Long: `List storage contents.

Without arguments, lists the account's buckets. With a bucket name, lists its
objects, optionally filtered by prefix and paginated with --start-after.

Examples:
  r2ctl ls
  r2ctl ls assets --prefix images/ --max-keys 100`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := app.newEngine(&flags)
			if err != nil {
				return err
			}

			desc := engine.Descriptor{Verb: engine.ListBuckets}
			if len(args) == 1 {
				desc = engine.Descriptor{
					Verb:       engine.ListObjects,
					Bucket:     args[0],
					Prefix:     prefix,
					StartAfter: startAfter,
					MaxKeys:    maxKeys,
				}
			}
			return eng.Run(cmd.Context(), desc, flags.options(""))
		},
	}

	addRequestFlags(cmd, &flags)
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list keys beginning with this prefix")
	cmd.Flags().StringVar(&startAfter, "start-after", "", "Start listing after this key")
	cmd.Flags().Int32Var(&maxKeys, "max-keys", 0, "Maximum number of keys to return")
	return cmd
}
