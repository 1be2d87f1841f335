package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestForManifest(t *testing.T) {
	dir := t.TempDir()

	r, err := ForManifest(dir, "package.json")
	require.NoError(t, err)
	assert.IsType(t, &NPM{}, r)

	r, err = ForManifest(dir, "go.mod")
	require.NoError(t, err)
	assert.IsType(t, &GoMod{}, r)

	_, err = ForManifest(dir, "Cargo.toml")
	assert.ErrorIs(t, err, ErrUnsupportedManifest)
}

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		in      string
		want    Requirement
		wantErr bool
	}{
		{"express", Requirement{Name: "express"}, false},
		{" cors ", Requirement{Name: "cors"}, false},
		{"express@>=4.18.0", Requirement{Name: "express", MinVersion: "4.18.0"}, false},
		{"@types/node@>=v20.1.0", Requirement{Name: "@types/node", MinVersion: "v20.1.0"}, false},
		{"@>=1.0.0", Requirement{}, true},
		{"express@>=four", Requirement{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRequirement(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNPM_Resolve(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "package.json", `{"dependencies": {"express": "^4.18.0", "cors": "^2.8.5"}}`)
	write(t, dir, "node_modules/express/package.json", `{"name": "express", "version": "4.18.2"}`)
	write(t, dir, "node_modules/@types/node/package.json", `{"name": "@types/node", "version": "20.1.0"}`)

	r := NewNPM(dir)

	res, err := r.Resolve("express")
	require.NoError(t, err)
	assert.Equal(t, Resolution{Name: "express", Version: "4.18.2", Source: "node_modules"}, res)

	res, err = r.Resolve("@types/node")
	require.NoError(t, err)
	assert.Equal(t, "20.1.0", res.Version)

	_, err = r.Resolve("cors")
	require.ErrorIs(t, err, ErrNotInstalled)
	assert.Contains(t, err.Error(), "declared in package.json")

	_, err = r.Resolve("body-parser")
	require.ErrorIs(t, err, ErrNotInstalled)
	assert.NotContains(t, err.Error(), "declared")
}

func TestNPM_PrefersLockfileVersion(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "package-lock.json", `{
		"lockfileVersion": 3,
		"packages": {
			"": {"name": "grand"},
			"node_modules/express": {"version": "4.19.2"},
			"node_modules/express/node_modules/debug": {"version": "2.6.9"}
		}
	}`)
	write(t, dir, "node_modules/express/package.json", `{"version": "4.18.0"}`)

	res, err := NewNPM(dir).Resolve("express")
	require.NoError(t, err)
	assert.Equal(t, "4.19.2", res.Version)
	assert.Equal(t, "package-lock.json", res.Source)
}

func TestNPM_ResolvesHoistedInstall(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package-lock.json", `{"lockfileVersion": 3, "packages": {"node_modules/express": {"version": "4.21.0"}}}`)
	write(t, root, "node_modules/express/package.json", `{"name": "express", "version": "4.20.0"}`)
	write(t, root, "node_modules/cors/package.json", `{"name": "cors", "version": "2.8.5"}`)
	backend := filepath.Join(root, "packages", "backend")
	write(t, backend, "package.json", `{"dependencies": {"express": "^4.18.0", "cors": "^2.8.5"}}`)

	r := NewNPM(backend)

	res, err := r.Resolve("express")
	require.NoError(t, err)
	assert.Equal(t, "4.21.0", res.Version)
	assert.Equal(t, filepath.Join("..", "..", "package-lock.json"), res.Source)

	res, err = r.Resolve("cors")
	require.NoError(t, err)
	assert.Equal(t, Resolution{Name: "cors", Version: "2.8.5", Source: filepath.Join("..", "..", "node_modules")}, res)
}

func TestNPM_NearestInstallWins(t *testing.T) {
	root := t.TempDir()
	write(t, root, "node_modules/express/package.json", `{"version": "3.0.0"}`)
	backend := filepath.Join(root, "backend")
	write(t, backend, "node_modules/express/package.json", `{"version": "4.18.2"}`)

	res, err := NewNPM(backend).Resolve("express")
	require.NoError(t, err)
	assert.Equal(t, "4.18.2", res.Version)
	assert.Equal(t, "node_modules", res.Source)
}

func TestNPM_LockfileAloneIsNotInstalled(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "package-lock.json", `{"lockfileVersion": 1, "dependencies": {"cors": {"version": "2.8.5"}}}`)

	_, err := NewNPM(dir).Resolve("cors")
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestNPM_BrokenInstalledManifest(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "node_modules/cors/package.json", `{not json`)

	_, err := NewNPM(dir).Resolve("cors")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotInstalled)
}

const testGoMod = `module example.com/backend

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	golang.org/x/mod v0.20.0
	example.com/old v1.0.0
)

replace golang.org/x/mod => ../mod

exclude example.com/old v1.0.0
`

func TestGoMod_Resolve(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "go.mod", testGoMod)
	r := NewGoMod(filepath.Join(dir, "go.mod"))

	res, err := r.Resolve("github.com/spf13/cobra")
	require.NoError(t, err)
	assert.Equal(t, Resolution{Name: "github.com/spf13/cobra", Version: "v1.8.0", Source: "go.mod"}, res)

	res, err = r.Resolve("golang.org/x/mod")
	require.NoError(t, err)
	assert.Equal(t, "replace ../mod", res.Source)

	_, err = r.Resolve("example.com/old")
	assert.ErrorContains(t, err, "excluded")

	_, err = r.Resolve("github.com/google/uuid")
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestGoMod_Missing(t *testing.T) {
	r := NewGoMod(filepath.Join(t.TempDir(), "go.mod"))
	_, err := r.Resolve("github.com/spf13/cobra")
	assert.ErrorIs(t, err, ErrManifestNotFound)
}

func TestGoMod_ParseError(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "go.mod", "module\nrequire (\n")
	_, err := NewGoMod(filepath.Join(dir, "go.mod")).Resolve("x")
	assert.Error(t, err)
}

func TestRequirement_Check(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "node_modules/express/package.json", `{"version": "4.17.1"}`)
	r := NewNPM(dir)

	_, err := Requirement{Name: "express", MinVersion: "4.0.0"}.Check(r)
	assert.NoError(t, err)

	_, err = Requirement{Name: "express", MinVersion: "4.18.0"}.Check(r)
	require.ErrorIs(t, err, ErrVersionTooOld)
	assert.Contains(t, err.Error(), "requires >= 4.18.0, found 4.17.1")

	_, err = Requirement{Name: "cors", MinVersion: "1.0.0"}.Check(r)
	assert.ErrorIs(t, err, ErrNotInstalled)
}
