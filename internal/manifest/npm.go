package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// NPM resolves packages the way Node's require would find them: the first
// node_modules/<name>/package.json in the project directory or any of its
// ancestors.
type NPM struct {
	dir string

	once     sync.Once
	declared map[string]bool

	mu    sync.Mutex
	locks map[string]map[string]string // directory -> package -> locked version
}

// NewNPM returns a resolver for the project rooted at dir.
func NewNPM(dir string) *NPM {
	return &NPM{dir: dir}
}

type packageJSON struct {
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// packageLock covers lockfile v1 ("dependencies") and v2/v3 ("packages").
type packageLock struct {
	Packages map[string]struct {
		Version string `json:"version"`
	} `json:"packages"`
	Dependencies map[string]struct {
		Version string `json:"version"`
	} `json:"dependencies"`
}

func (n *NPM) load() {
	n.declared = map[string]bool{}

	var pkg packageJSON
	if readJSON(filepath.Join(n.dir, "package.json"), &pkg) == nil {
		for _, deps := range []map[string]string{pkg.Dependencies, pkg.DevDependencies, pkg.OptionalDependencies} {
			for name := range deps {
				n.declared[name] = true
			}
		}
	}
}

// lockedVersions reads dir/package-lock.json once. A missing or unreadable
// lockfile locks nothing.
func (n *NPM) lockedVersions(dir string) map[string]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if v, ok := n.locks[dir]; ok {
		return v
	}

	locked := map[string]string{}
	var lock packageLock
	if readJSON(filepath.Join(dir, "package-lock.json"), &lock) == nil {
		for name, dep := range lock.Dependencies {
			locked[name] = dep.Version
		}
		for key, p := range lock.Packages {
			if name, ok := cutNodeModules(key); ok {
				locked[name] = p.Version
			}
		}
	}
	if n.locks == nil {
		n.locks = map[string]map[string]string{}
	}
	n.locks[dir] = locked
	return locked
}

// Resolve implements Resolver. The lockfile consulted for the version is
// the one next to the node_modules the package was found in.
func (n *NPM) Resolve(name string) (Resolution, error) {
	n.once.Do(n.load)

	project, err := filepath.Abs(n.dir)
	if err != nil {
		return Resolution{}, fmt.Errorf("%s: %w", name, err)
	}
	for dir := project; ; {
		var installed packageJSON
		err := readJSON(filepath.Join(dir, "node_modules", filepath.FromSlash(name), "package.json"), &installed)
		switch {
		case err == nil:
			rel, _ := filepath.Rel(project, dir)
			if v := n.lockedVersions(dir)[name]; v != "" {
				return Resolution{Name: name, Version: v, Source: filepath.Join(rel, "package-lock.json")}, nil
			}
			return Resolution{Name: name, Version: installed.Version, Source: filepath.Join(rel, "node_modules")}, nil
		case !errors.Is(err, fs.ErrNotExist):
			return Resolution{}, fmt.Errorf("%s: %w", name, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if n.declared[name] {
		return Resolution{}, fmt.Errorf("%s: declared in package.json but %w", name, ErrNotInstalled)
	}
	return Resolution{}, fmt.Errorf("%s: %w", name, ErrNotInstalled)
}

// cutNodeModules returns the package name of a top-level lockfile key such
// as "node_modules/express" or "node_modules/@types/node".
func cutNodeModules(key string) (string, bool) {
	name, ok := strings.CutPrefix(key, "node_modules/")
	if !ok || name == "" || strings.Contains(name, "/node_modules/") {
		return "", false
	}
	return name, true
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
