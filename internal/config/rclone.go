package config

import (
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/ini.v1"
)

// StorageDomain is the provider storage domain. Every account's endpoint is
// https://<account_id>.<StorageDomain>.
const StorageDomain = "r2.cloudflarestorage.com"

// RcloneProfile is one importable section of an rclone config: an R2 remote
// with static credentials.
type RcloneProfile struct {
	Name            string
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
}

// LocateRclone finds an existing rclone config via the shared candidate path
// search. It never creates one.
func LocateRclone() (string, error) {
	return Locate("rclone", "rclone.conf")
}

// ParseRcloneConfig reads an rclone config and returns the sections that point
// at R2. A section qualifies when its endpoint host ends with the storage
// domain and it carries both key halves; everything else is skipped.
func ParseRcloneConfig(path string) ([]RcloneProfile, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse rclone config %s: %w", path, err)
	}

	var profiles []RcloneProfile
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		accountID, ok := accountFromEndpoint(section.Key("endpoint").String())
		if !ok {
			continue
		}
		accessKeyID := section.Key("access_key_id").String()
		secret := section.Key("secret_access_key").String()
		if accessKeyID == "" || secret == "" {
			continue
		}
		profiles = append(profiles, RcloneProfile{
			Name:            section.Name(),
			AccountID:       accountID,
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secret,
		})
	}
	return profiles, nil
}

// accountFromEndpoint extracts the account id from an R2 endpoint URL such as
// https://<account_id>.r2.cloudflarestorage.com.
func accountFromEndpoint(endpoint string) (string, bool) {
	if endpoint == "" {
		return "", false
	}
	host := endpoint
	if strings.Contains(endpoint, "://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return "", false
		}
		host = u.Hostname()
	}
	host = strings.TrimSuffix(host, "/")
	if !strings.HasSuffix(host, "."+StorageDomain) {
		return "", false
	}
	account := strings.TrimSuffix(host, "."+StorageDomain)
	if account == "" || strings.Contains(account, ".") {
		return "", false
	}
	return account, true
}
