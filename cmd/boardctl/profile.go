package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const defaultServer = "http://localhost:8080"

// Profile holds connection settings read from the profile file
type Profile struct {
	Server   string `toml:"server"`
	Token    string `toml:"token"`
	TenantID string `toml:"tenant_id"`
	Locale   string `toml:"locale"`
	Output   string `toml:"output"`
}

// DefaultProfilePath returns $HOME/.config/boardctl/profile.toml
func DefaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "profile.toml"
	}
	return filepath.Join(dir, "boardctl", "profile.toml")
}

// LoadProfile reads path. A missing file yields defaults.
func LoadProfile(path string) (Profile, error) {
	p := Profile{Server: defaultServer, Output: "text"}
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return p, fmt.Errorf("unknown profile key %q in %s", undecoded[0].String(), path)
	}
	return p, nil
}

// Merge overlays the non-empty fields of o
func (p Profile) Merge(o Profile) Profile {
	if o.Server != "" {
		p.Server = o.Server
	}
	if o.Token != "" {
		p.Token = o.Token
	}
	if o.TenantID != "" {
		p.TenantID = o.TenantID
	}
	if o.Locale != "" {
		p.Locale = o.Locale
	}
	if o.Output != "" {
		p.Output = o.Output
	}
	return p
}

// Validate checks the merged profile
func (p Profile) Validate() error {
	if p.Server == "" {
		return errors.New("no server configured")
	}
	switch p.Output {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", p.Output)
	}
	return nil
}
