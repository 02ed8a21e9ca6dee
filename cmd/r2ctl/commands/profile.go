package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/internal/config"
	rerrors "github.com/r2ctl/r2ctl/internal/errors"
	"github.com/r2ctl/r2ctl/internal/logging"
	"github.com/r2ctl/r2ctl/internal/resolve"
)

func NewProfileCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage access profiles",
		Long: `Manage named access profiles.

A profile binds a name to an account id and an access key id. The matching
secret access key is kept in the OS credential store, never in the registry
file.`,
	}
	cmd.AddCommand(
		newProfileListCommand(app),
		newProfileAddCommand(app),
		newProfileRemoveCommand(app),
	)
	return cmd
}

func newProfileListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := config.OpenRegistry()
			if err != nil {
				return err
			}

			profiles := registry.Profiles()
			if len(profiles) == 0 {
				app.Log.Info("No profiles configured. Run 'r2ctl profile add' or 'r2ctl import rclone'.")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Profile", "Account ID", "Access Key ID"})
			for _, p := range profiles {
				table.Append([]string{p.Name, p.AccountID, p.AccessKeyID})
			}
			table.Render()
			return nil
		},
	}
}

func newProfileAddCommand(app *App) *cobra.Command {
	var (
		accountID   string
		accessKeyID string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a profile",
		Long: `Add a named profile.

The secret access key is prompted for with masking, validated with one
list-buckets call against the account endpoint, and stored in the OS
credential store. Nothing is persisted if validation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			secret, err := app.readSecret()
			if err != nil {
				return fmt.Errorf("cancelled: %w", err)
			}

			cred := resolve.Credential{
				Profile:         name,
				AccountID:       accountID,
				AccessKeyID:     accessKeyID,
				SecretAccessKey: logging.Secret(secret),
			}
			if err := app.validator()(cmd.Context(), cred); err != nil {
				return rerrors.CredentialInvalidError{Profile: name, Err: err}
			}

			registry, keyring, err := app.openStores()
			if err != nil {
				return err
			}
			if err := keyring.Store(resolve.Endpoint(accountID), accessKeyID, secret); err != nil {
				return err
			}
			registry.Upsert(config.Profile{Name: name, AccountID: accountID, AccessKeyID: accessKeyID})
			if err := registry.Save(); err != nil {
				return err
			}

			app.Log.Info("Profile '%s' added to %s", name, registry.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account id (32 hex characters)")
	cmd.Flags().StringVar(&accessKeyID, "access-key-id", "", "Access key id")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("access-key-id")
	return cmd
}

func newProfileRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a profile and its stored secret",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			registry, keyring, err := app.openStores()
			if err != nil {
				return err
			}

			profile, ok := registry.Lookup(name)
			if !ok {
				return rerrors.ProfileNotFoundError{Identifier: name}
			}

			if err := keyring.Delete(resolve.Endpoint(profile.AccountID), profile.AccessKeyID); err != nil {
				if !errors.Is(err, rerrors.ErrVaultItemNotFound) {
					return err
				}
				app.Log.Warn("no stored secret found for profile '%s'", name)
			}

			registry.Remove(name)
			if err := registry.Save(); err != nil {
				return err
			}

			app.Log.Info("Profile '%s' removed", name)
			return nil
		},
	}
}
