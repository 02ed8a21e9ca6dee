//go:build !linux

package vault

import "github.com/r2ctl/r2ctl/internal/logging"

// EnsureAvailable reports whether the OS credential store can be used. On
// macOS and Windows the store ships with the OS, so there is nothing to probe.
func EnsureAvailable(_ *logging.Logger) error {
	return nil
}
