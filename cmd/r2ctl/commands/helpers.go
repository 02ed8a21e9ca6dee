// Package commands wires the CLI surface: profile management, rclone import,
// and the storage verbs dispatched through the request engine.
package commands

import (
	"context"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/r2ctl/r2ctl/internal/config"
	"github.com/r2ctl/r2ctl/internal/engine"
	"github.com/r2ctl/r2ctl/internal/logging"
	"github.com/r2ctl/r2ctl/internal/resolve"
	"github.com/r2ctl/r2ctl/internal/vault"
)

// App carries per-invocation state shared by all commands. The logger is
// populated by the root command's PersistentPreRun once flags are parsed.
// The capability fields default to the real implementations; tests swap in
// fakes.
type App struct {
	Log *logging.Logger

	// Validate checks a candidate credential before anything is persisted.
	// Defaults to one list-buckets call against the account endpoint.
	Validate func(ctx context.Context, cred resolve.Credential) error

	// Vault overrides the OS keyring when set.
	Vault vault.Vault

	// ReadSecret prompts for a secret access key. Defaults to a masked
	// terminal prompt.
	ReadSecret func() (string, error)
}

func (app *App) validator() func(context.Context, resolve.Credential) error {
	if app.Validate != nil {
		return app.Validate
	}
	return engine.ValidateCredential
}

func (app *App) readSecret() (string, error) {
	if app.ReadSecret != nil {
		return app.ReadSecret()
	}
	prompt := promptui.Prompt{
		Label: "Secret Access Key",
		Mask:  '*',
	}
	return prompt.Run()
}

// requestFlags is the option surface every storage verb shares.
type requestFlags struct {
	profile     string
	presign     bool
	expires     int64
	signHeaders []string
	verbose     bool
}

func addRequestFlags(cmd *cobra.Command, f *requestFlags) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "Profile name or account id to use")
	cmd.Flags().BoolVar(&f.presign, "presign", false, "Produce a presigned URL instead of executing the request")
	cmd.Flags().Int64Var(&f.expires, "expires", 86400, "Presigned URL lifetime in seconds")
	cmd.Flags().StringArrayVar(&f.signHeaders, "sign-header", nil, "Extra header to sign as key=value (repeatable, later wins)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print the resolved request as a curl line before dispatch")
}

func (f *requestFlags) options(output string) engine.Options {
	return engine.Options{
		Presign:     f.presign,
		Expires:     time.Duration(f.expires) * time.Second,
		SignHeaders: f.signHeaders,
		Verbose:     f.verbose,
		Output:      output,
	}
}

// openStores opens the profile registry and the OS vault. Resolution always
// completes before any network call begins.
func (app *App) openStores() (*config.Registry, vault.Vault, error) {
	registry, err := config.OpenRegistry()
	if err != nil {
		return nil, nil, err
	}
	if app.Vault != nil {
		return registry, app.Vault, nil
	}
	keyring, err := vault.NewKeyring(app.Log)
	if err != nil {
		return nil, nil, err
	}
	return registry, keyring, nil
}

// newEngine resolves the credential for the given selector and binds an
// engine to it.
func (app *App) newEngine(f *requestFlags) (*engine.Engine, error) {
	registry, keyring, err := app.openStores()
	if err != nil {
		return nil, err
	}
	cred, err := resolve.New(registry, keyring, app.Log).Resolve(f.profile)
	if err != nil {
		return nil, err
	}
	return engine.New(cred, app.Log), nil
}
