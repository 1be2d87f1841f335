package banks

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.txt
var dataFS embed.FS

// mandatoryName is the base name of the mandatory question file.
const mandatoryName = "mandatory"

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadDir loads a catalog directory; see LoadFS.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open banks dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads the top-level files of fsys. Exactly one mandatory.{txt,json,yaml,yml}
// holds the mandatory list; every other file is one bank. A .txt bank is
// named after its file; .json and .yaml banks carry their organization.
// Files with other extensions are ignored.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read banks dir: %w", err)
	}

	var (
		mandatory     []string
		mandatoryFile string
		banks         []Bank
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(path.Ext(name))
		if !isBankExt(ext) {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		base := strings.TrimSuffix(name, path.Ext(name))
		if strings.EqualFold(base, mandatoryName) {
			if mandatoryFile != "" {
				return nil, fmt.Errorf("%w: %s and %s", ErrDuplicateMandatory, mandatoryFile, name)
			}
			mandatoryFile = name
			if mandatory, err = parseMandatory(data, ext); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if len(mandatory) == 0 {
				return nil, fmt.Errorf("%s: %w", name, ErrNoMandatory)
			}
			continue
		}

		b, err := parseBankFile(base, data, ext)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		banks = append(banks, b)
	}

	if mandatoryFile == "" {
		return nil, fmt.Errorf("%w: no %s file", ErrNoMandatory, mandatoryName)
	}
	return NewCatalog(mandatory, banks...)
}

// LoadCatalogFile loads a single JSON or YAML catalog document.
func LoadCatalogFile(file string) (*Catalog, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(file))

	generic, err := decodeGeneric(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
	}
	if err := ValidateCatalogDocument(generic); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
	}

	var doc Document
	if err := unmarshalTyped(data, ext, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
	}
	return FromDocument(doc)
}

func isBankExt(ext string) bool {
	switch ext {
	case ".txt", ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func parseMandatory(data []byte, ext string) ([]string, error) {
	if ext == ".txt" {
		return ParseLines(string(data)), nil
	}
	generic, err := decodeGeneric(data, ext)
	if err != nil {
		return nil, err
	}
	if err := ValidateQuestionList(generic); err != nil {
		return nil, err
	}
	var qs []string
	if err := unmarshalTyped(data, ext, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

type bankDocument struct {
	Organization string   `json:"organization" yaml:"organization"`
	Questions    []string `json:"questions" yaml:"questions"`
}

func parseBankFile(base string, data []byte, ext string) (Bank, error) {
	if ext == ".txt" {
		return ParseBank(base, string(data))
	}
	generic, err := decodeGeneric(data, ext)
	if err != nil {
		return Bank{}, err
	}
	if err := ValidateBankDocument(generic); err != nil {
		return Bank{}, err
	}
	var doc bankDocument
	if err := unmarshalTyped(data, ext, &doc); err != nil {
		return Bank{}, err
	}
	return NewBank(doc.Organization, doc.Questions)
}

func decodeGeneric(data []byte, ext string) (any, error) {
	switch ext {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
}

func unmarshalTyped(data []byte, ext string, v any) error {
	if ext == ".json" {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}
