package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/internal/config"
	rerrors "github.com/r2ctl/r2ctl/internal/errors"
	"github.com/r2ctl/r2ctl/internal/logging"
	"github.com/r2ctl/r2ctl/internal/resolve"
)

func NewImportCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import profiles from other tools",
	}
	cmd.AddCommand(newImportRcloneCommand(app))
	return cmd
}

func newImportRcloneCommand(app *App) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rclone",
		Short: "Import R2 remotes from an rclone config",
		Long: `Import profiles from an existing rclone configuration.

Only remotes whose endpoint points at the provider storage domain are
imported; each one is validated before it is committed. Profiles take the
name of their source section. A validation failure stops the import, but
profiles committed earlier in the batch stay committed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				located, err := config.LocateRclone()
				if err != nil {
					if errors.Is(err, rerrors.ErrConfigNotLocated) {
						return rerrors.ImportSourceMissingError{Name: "rclone"}
					}
					return err
				}
				path = located
			}
			app.Log.Debug("importing from %s", path)

			candidates, err := config.ParseRcloneConfig(path)
			if err != nil {
				return err
			}

			registry, keyring, err := app.openStores()
			if err != nil {
				return err
			}

			imported := 0
			for _, candidate := range candidates {
				cred := resolve.Credential{
					Profile:         candidate.Name,
					AccountID:       candidate.AccountID,
					AccessKeyID:     candidate.AccessKeyID,
					SecretAccessKey: logging.Secret(candidate.SecretAccessKey),
				}
				if err := app.validator()(cmd.Context(), cred); err != nil {
					return rerrors.CredentialInvalidError{Profile: candidate.Name, Err: err}
				}

				if err := keyring.Store(resolve.Endpoint(candidate.AccountID), candidate.AccessKeyID, candidate.SecretAccessKey); err != nil {
					return err
				}
				registry.Upsert(config.Profile{
					Name:        candidate.Name,
					AccountID:   candidate.AccountID,
					AccessKeyID: candidate.AccessKeyID,
				})
				if err := registry.Save(); err != nil {
					return err
				}
				imported++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rclone configurations into %s\n", imported, registry.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the rclone config (default: search standard locations)")
	return cmd
}
