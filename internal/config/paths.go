// Package config owns the profile registry file: where it lives on each
// platform, and how the profile table is read and written. Secrets never pass
// through this package.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"

	rerrors "github.com/r2ctl/r2ctl/internal/errors"
)

// CandidatePaths returns the ordered locations to probe for a config file
// belonging to project (e.g. "r2ctl" or "rclone") with the given file name:
// working directory, platform app-data (Windows), XDG config, ~/.config
// fallback, then ~/.<name>. The same search order serves both our own
// registry and foreign configs we import from.
func CandidatePaths(project, name string) ([]string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	candidates := []string{name}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			candidates = append(candidates, filepath.Join(appData, project, name))
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, project, name))
	}
	candidates = append(candidates,
		filepath.Join(home, ".config", project, name),
		filepath.Join(home, "."+name),
	)
	return candidates, nil
}

// Locate probes the candidate paths in order and returns the first one that
// exists and is readable. It never creates anything; callers importing a
// foreign config use it to discover whether one exists at all.
func Locate(project, name string) (string, error) {
	candidates, err := CandidatePaths(project, name)
	if err != nil {
		return "", err
	}
	for _, path := range candidates {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		f.Close()
		return path, nil
	}
	return "", rerrors.ErrConfigNotLocated
}

// EnsureExists walks the writable subset of candidate paths for our own
// registry (app-data then ~/.config on Windows, XDG then ~/.config elsewhere),
// creating the parent directory and the file itself if absent, and returns the
// first path successfully touched. ~/.<name> is the last resort. An existing
// registry is never truncated.
func EnsureExists(project, name string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	var candidates []string
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			candidates = append(candidates, filepath.Join(appData, project, name))
		}
	} else if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, project, name))
	}
	candidates = append(candidates, filepath.Join(home, ".config", project, name))

	var attempted []string
	for _, path := range candidates {
		if err := touch(path, true); err == nil {
			return path, nil
		}
		attempted = append(attempted, path)
	}

	lastResort := filepath.Join(home, "."+name)
	if err := touch(lastResort, false); err == nil {
		return lastResort, nil
	}
	attempted = append(attempted, lastResort)

	return "", rerrors.ConfigUnwritableError{Attempted: attempted}
}

// touch creates the file if absent, optionally creating its parent directory
// first. Pre-existing directories and files are fine.
func touch(path string, mkParent bool) error {
	if mkParent {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	return f.Close()
}
