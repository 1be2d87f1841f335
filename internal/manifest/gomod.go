package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/mod/modfile"
)

// GoMod resolves module paths against the require directives of a go.mod.
type GoMod struct {
	path string

	once sync.Once
	file *modfile.File
	err  error
}

// NewGoMod returns a resolver for the go.mod at path.
func NewGoMod(path string) *GoMod {
	return &GoMod{path: path}
}

func (g *GoMod) load() {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.err = fmt.Errorf("%w: %s", ErrManifestNotFound, filepath.Base(g.path))
			return
		}
		g.err = err
		return
	}
	g.file, g.err = modfile.Parse(g.path, data, nil)
}

// Resolve implements Resolver.
func (g *GoMod) Resolve(name string) (Resolution, error) {
	g.once.Do(g.load)
	if g.err != nil {
		return Resolution{}, g.err
	}

	for _, ex := range g.file.Exclude {
		if ex.Mod.Path == name {
			return Resolution{}, fmt.Errorf("%s: excluded by go.mod", name)
		}
	}

	for _, req := range g.file.Require {
		if req.Mod.Path != name {
			continue
		}
		res := Resolution{Name: name, Version: req.Mod.Version, Source: "go.mod"}
		for _, rep := range g.file.Replace {
			if rep.Old.Path == name && (rep.Old.Version == "" || rep.Old.Version == req.Mod.Version) {
				res.Source = "replace " + rep.New.Path
				if rep.New.Version != "" {
					res.Version = rep.New.Version
				}
			}
		}
		return res, nil
	}
	return Resolution{}, fmt.Errorf("%s: not required by go.mod: %w", name, ErrNotInstalled)
}
