package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Project is the logical project name used for registry path discovery.
const Project = "r2ctl"

// RegistryFile is the profile registry file name.
const RegistryFile = "r2ctl.conf"

// Profile is one entry of the registry: a name bound to an account id and an
// access key id. The secret access key lives in the OS vault, never here.
type Profile struct {
	Name        string
	AccountID   string
	AccessKeyID string
}

// Registry is the on-disk profile table. Sections and keys written by other
// tool versions are preserved verbatim across a load/save cycle.
type Registry struct {
	path string
	file *ini.File
}

// OpenRegistry ensures the registry file exists at a writable candidate path
// and loads it.
func OpenRegistry() (*Registry, error) {
	path, err := EnsureExists(Project, RegistryFile)
	if err != nil {
		return nil, err
	}
	return LoadRegistry(path)
}

// LoadRegistry loads the registry at an explicit path.
func LoadRegistry(path string) (*Registry, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profile registry %s: %w", path, err)
	}
	return &Registry{path: path, file: file}, nil
}

// Path returns where this registry lives on disk.
func (r *Registry) Path() string {
	return r.path
}

// Profiles returns all profiles in file order.
func (r *Registry) Profiles() []Profile {
	var profiles []Profile
	for _, section := range r.file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		if !section.HasKey("account_id") || !section.HasKey("access_key_id") {
			continue
		}
		profiles = append(profiles, Profile{
			Name:        section.Name(),
			AccountID:   section.Key("account_id").String(),
			AccessKeyID: section.Key("access_key_id").String(),
		})
	}
	return profiles
}

// Lookup returns the profile with the given name, if present.
func (r *Registry) Lookup(name string) (Profile, bool) {
	if name == ini.DefaultSection || !r.file.HasSection(name) {
		return Profile{}, false
	}
	section := r.file.Section(name)
	if !section.HasKey("account_id") || !section.HasKey("access_key_id") {
		return Profile{}, false
	}
	return Profile{
		Name:        name,
		AccountID:   section.Key("account_id").String(),
		AccessKeyID: section.Key("access_key_id").String(),
	}, true
}

// Upsert writes a profile entry, replacing the pair for an existing name.
// Unrecognized keys inside the section are left alone.
func (r *Registry) Upsert(p Profile) {
	section := r.file.Section(p.Name)
	section.Key("account_id").SetValue(p.AccountID)
	section.Key("access_key_id").SetValue(p.AccessKeyID)
}

// Remove deletes a profile entry. Reports whether the profile existed.
func (r *Registry) Remove(name string) bool {
	if name == ini.DefaultSection || !r.file.HasSection(name) {
		return false
	}
	r.file.DeleteSection(name)
	return true
}

// Save writes the registry back to the path it was loaded from.
func (r *Registry) Save() error {
	if err := r.file.SaveTo(r.path); err != nil {
		return fmt.Errorf("save profile registry %s: %w", r.path, err)
	}
	return nil
}
