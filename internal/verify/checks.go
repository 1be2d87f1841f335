package verify

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/saturogrp-blip/Grand/internal/config"
	"github.com/saturogrp-blip/Grand/internal/datadef"
	"github.com/saturogrp-blip/Grand/internal/manifest"
)

// Standard returns the verifier's checks for the project in dir, in the
// order they run.
func Standard(dir string, cfg config.VerifyConfig) []Check {
	checks := []Check{
		RuntimeVersion(),
		WorkingDirectory(dir, cfg.BackendFile),
	}
	for _, f := range cfg.RequiredFiles {
		checks = append(checks, FileExists(dir, f))
	}
	checks = append(checks,
		DataDirectory(dir, cfg.DataDir),
		Manifest(dir, cfg.Manifest, cfg.InstallCommand),
	)

	res, resErr := manifest.ForManifest(dir, cfg.Manifest)
	for i, m := range cfg.Modules {
		hint := ""
		if i == 0 {
			hint = cfg.InstallCommand
		}
		checks = append(checks, Module(res, resErr, m, hint))
	}

	return append(checks, Syntax(dir, cfg.DataDefinition))
}

// RuntimeVersion reports the running Go runtime. It always passes.
func RuntimeVersion() Check {
	return Check{
		Name: "runtime-version",
		Run: func() Outcome {
			return Pass("Go runtime version: %s (%s/%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// WorkingDirectory reports dir and passes when backendFile is inside it.
func WorkingDirectory(dir, backendFile string) Check {
	return Check{
		Name: "working-directory",
		Run: func() Outcome {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return Fail("Working directory: %v", err)
			}
			ok, err := exists(filepath.Join(abs, backendFile))
			switch {
			case err != nil:
				return Fail("Working directory: %s (%v)", abs, err)
			case !ok:
				return Fail("Working directory: %s (%s not found here)", abs, backendFile)
			}
			return Pass("Working directory: %s", abs)
		},
	}
}

// FileExists passes when name exists in dir.
func FileExists(dir, name string) Check {
	return Check{
		Name: "file:" + name,
		Run: func() Outcome {
			ok, err := exists(filepath.Join(dir, name))
			switch {
			case err != nil:
				return Fail("%s cannot be checked: %v", name, err)
			case !ok:
				return Fail("%s NOT found in current directory", name)
			}
			return Pass("%s found", name)
		},
	}
}

// DataDirectory ensures name exists as a directory under dir, creating it
// and any parents when missing.
func DataDirectory(dir, name string) Check {
	return Check{
		Name: "data-directory",
		Run: func() Outcome {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			switch {
			case err == nil && info.IsDir():
				return Pass("%s/ directory exists", name)
			case err == nil:
				return Fail("%s exists but is not a directory", name)
			case !errors.Is(err, fs.ErrNotExist):
				return Fail("%s/ cannot be checked: %v", name, err)
			}
			if err := os.MkdirAll(path, 0o755); err != nil {
				return Fail("cannot create %s/ directory: %v", name, err)
			}
			return Pass("Created %s/ directory", name)
		},
	}
}

// Manifest passes when the dependency manifest exists. Absence is a warning
// that names installCmd.
func Manifest(dir, name, installCmd string) Check {
	return Check{
		Name: "manifest",
		Run: func() Outcome {
			ok, err := exists(filepath.Join(dir, name))
			switch {
			case err != nil:
				return Fail("%s cannot be checked: %v", name, err)
			case ok:
				return Pass("%s found", name)
			case installCmd != "":
				return Warn("%s NOT found - you may need to run: %s", name, installCmd)
			}
			return Warn("%s NOT found", name)
		},
	}
}

// Module resolves the requirement spec with res. resErr is the error, if
// any, from building res; it fails the check without probing. A non-empty
// installHint is appended to a failure message.
func Module(res manifest.Resolver, resErr error, spec, installHint string) Check {
	req, parseErr := manifest.ParseRequirement(spec)
	name := req.Name
	if parseErr != nil {
		name = spec
	}

	return Check{
		Name: "module:" + name,
		Run: func() Outcome {
			if parseErr != nil {
				return Fail("%v", parseErr)
			}
			if resErr != nil {
				return Fail("%s module cannot be resolved: %v", name, resErr)
			}
			got, err := req.Check(res)
			if err != nil {
				msg := fmt.Sprintf("%s module NOT installed (%v)", name, err)
				if errors.Is(err, manifest.ErrVersionTooOld) {
					msg = fmt.Sprintf("%s module is too old (%v)", name, err)
				}
				if installHint != "" {
					msg += " - run: " + installHint
				}
				return Fail("%s", msg)
			}
			if got.Version == "" {
				return Pass("%s module installed", name)
			}
			return Pass("%s module installed (%s from %s)", name, got.Version, got.Source)
		},
	}
}

// Syntax parses the data-definition file without executing it.
func Syntax(dir, file string) Check {
	return Check{
		Name: "syntax",
		Run: func() Outcome {
			err := datadef.Validate(filepath.Join(dir, file))
			switch {
			case err == nil:
				return Pass("%s syntax is valid", file)
			case errors.Is(err, fs.ErrNotExist):
				return Fail("%s cannot be validated: file not found", file)
			}
			return Fail("%s has syntax errors: %v", file, err)
		},
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
