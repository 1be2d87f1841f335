// Package manifest resolves required modules against a project's dependency
// manifest and install tree instead of loading them.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	ErrNotInstalled        = errors.New("not installed")
	ErrManifestNotFound    = errors.New("manifest not found")
	ErrUnsupportedManifest = errors.New("unsupported manifest")
	ErrVersionTooOld       = errors.New("version too old")
)

// Resolution describes a module that was found.
type Resolution struct {
	Name    string
	Version string
	// Source is where the version came from, e.g. "package-lock.json".
	Source string
}

// Resolver finds a module in one ecosystem.
type Resolver interface {
	Resolve(name string) (Resolution, error)
}

// ForManifest returns the resolver for the manifest file name inside dir.
func ForManifest(dir, manifest string) (Resolver, error) {
	switch filepath.Base(manifest) {
	case "package.json":
		return NewNPM(dir), nil
	case "go.mod":
		return NewGoMod(filepath.Join(dir, manifest)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedManifest, manifest)
}

// Requirement is a module name with an optional minimum version.
type Requirement struct {
	Name       string
	MinVersion string
}

// ParseRequirement parses "name" or "name@>=1.2.3".
func ParseRequirement(s string) (Requirement, error) {
	s = strings.TrimSpace(s)
	name, min, found := strings.Cut(s, "@>=")
	if name == "" {
		return Requirement{}, fmt.Errorf("invalid requirement %q: empty module name", s)
	}
	if !found {
		return Requirement{Name: name}, nil
	}
	if !semver.IsValid(canonical(min)) {
		return Requirement{}, fmt.Errorf("invalid requirement %q: bad version %q", s, min)
	}
	return Requirement{Name: name, MinVersion: min}, nil
}

func (r Requirement) String() string {
	if r.MinVersion == "" {
		return r.Name
	}
	return r.Name + "@>=" + r.MinVersion
}

// Check resolves r with res and enforces its minimum version.
func (r Requirement) Check(res Resolver) (Resolution, error) {
	got, err := res.Resolve(r.Name)
	if err != nil {
		return got, err
	}
	if r.MinVersion == "" {
		return got, nil
	}
	have := canonical(got.Version)
	if !semver.IsValid(have) {
		return got, fmt.Errorf("%s: cannot compare version %q", r.Name, got.Version)
	}
	if semver.Compare(have, canonical(r.MinVersion)) < 0 {
		return got, fmt.Errorf("%w: %s requires >= %s, found %s", ErrVersionTooOld, r.Name, r.MinVersion, got.Version)
	}
	return got, nil
}

// canonical adds the "v" prefix semver expects.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
