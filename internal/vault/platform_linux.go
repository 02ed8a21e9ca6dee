//go:build linux

package vault

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	rerrors "github.com/r2ctl/r2ctl/internal/errors"
	"github.com/r2ctl/r2ctl/internal/logging"
)

var ensureOnce sync.Once
var ensureErr error

// EnsureAvailable checks for the Secret Service library (libsecret) and, when
// it is missing, installs it through the distribution's package manager after
// prompting. The probe runs once per process; all vault I/O goes through it.
func EnsureAvailable(log *logging.Logger) error {
	ensureOnce.Do(func() {
		ensureErr = ensureLibsecret(log)
	})
	return ensureErr
}

func ensureLibsecret(log *logging.Logger) error {
	if libsecretPresent() {
		return nil
	}

	id, idLike := readOSRelease("/etc/os-release")
	installCmd, ok := installCommandFor(id, idLike)
	if !ok {
		return rerrors.VaultUnavailableError{
			Reason: fmt.Sprintf("libsecret is not installed and distribution '%s' is not recognized; install libsecret manually and retry", id),
		}
	}

	log.Warn("libsecret is required for the OS secret store and is not installed")
	log.Info("running: sudo %s", strings.Join(installCmd, " "))

	cmd := exec.Command("sudo", installCmd...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return rerrors.VaultUnavailableError{Reason: "libsecret install failed", Err: err}
	}
	return nil
}

// libsecretPresent probes the dynamic linker cache for libsecret.
func libsecretPresent() bool {
	out, err := exec.Command("ldconfig", "-p").Output()
	if err != nil {
		return false
	}
	return bytes.Contains(out, []byte("libsecret-1.so"))
}

// installCommandFor maps a distribution family to the package-manager command
// that installs libsecret. Four families are known; anything else is
// unsupported.
func installCommandFor(id, idLike string) ([]string, bool) {
	family := id
	for _, candidate := range append([]string{id}, strings.Fields(idLike)...) {
		switch candidate {
		case "debian", "ubuntu", "fedora", "rhel", "centos", "arch", "suse", "opensuse":
			family = candidate
		}
	}

	switch family {
	case "debian", "ubuntu":
		return []string{"apt-get", "install", "-y", "libsecret-1-0"}, true
	case "fedora", "rhel", "centos":
		return []string{"dnf", "install", "-y", "libsecret"}, true
	case "arch":
		return []string{"pacman", "-S", "--noconfirm", "libsecret"}, true
	case "suse", "opensuse":
		return []string{"zypper", "install", "-y", "libsecret-1-0"}, true
	}
	return nil, false
}

// readOSRelease extracts ID and ID_LIKE from an os-release file.
func readOSRelease(path string) (id, idLike string) {
	f, err := os.Open(path)
	if err != nil {
		return "", ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			id = value
		case "ID_LIKE":
			idLike = value
		}
	}
	return id, idLike
}
