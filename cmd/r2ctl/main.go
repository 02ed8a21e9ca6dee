package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/cmd/r2ctl/commands"
	"github.com/r2ctl/r2ctl/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		noColor bool
		debug   bool
	)

	app := &commands.App{}

	rootCmd := &cobra.Command{
		Use:   "r2ctl",
		Short: "Manage R2 access profiles and issue storage operations",
		Long: `r2ctl manages named access profiles for Cloudflare R2 and runs storage
operations against them: list, get, put, head, delete, and presigned URL
generation. Secrets live in the OS credential store, never on disk.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.Log = logging.New(debug, noColor)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewProfileCommand(app),
		commands.NewImportCommand(app),
		commands.NewLsCommand(app),
		commands.NewGetCommand(app),
		commands.NewPutCommand(app),
		commands.NewHeadCommand(app),
		commands.NewRmCommand(app),
		commands.NewMbCommand(app),
		commands.NewRbCommand(app),
	)

	return rootCmd.Execute()
}
