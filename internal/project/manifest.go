// Package project locates and loads veld.toml manifests and derives
// the build-target identity the server reports for a workspace.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"veld/internal/protocol"
)

// ErrNoManifest is returned when no veld.toml exists at or above the
// start directory.
var ErrNoManifest = errors.New("no veld.toml found")

type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// Target is one compilable unit: the manifest's package plus the URI
// identity used on the wire.
type Target struct {
	Name string
	Root string
	ID   protocol.BuildTargetIdentifier
}

// FindManifest walks up from startDir looking for veld.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "veld.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and parses the manifest governing startDir.
func LoadManifest(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadTarget resolves the build target for startDir. The target name
// falls back to the root directory's base name when the manifest does
// not set package.name.
func LoadTarget(startDir string) (*Target, error) {
	m, err := LoadManifest(startDir)
	if err != nil {
		return nil, err
	}
	name := m.Config.Package.Name
	if name == "" {
		name = filepath.Base(m.Root)
	}
	return &Target{
		Name: name,
		Root: m.Root,
		ID:   protocol.BuildTargetIdentifier{URI: protocol.FileURI(m.Root)},
	}, nil
}
