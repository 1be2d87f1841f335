// Package datadef validates the backend's data-definition file by parsing
// it. Nothing in the file is ever executed.
package datadef

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dop251/goja/parser"

	"github.com/saturogrp-blip/Grand/internal/banks"
)

var ErrUnsupportedFormat = errors.New("unsupported data-definition format")

// Validate parses the file at path according to its extension:
// JavaScript is syntax-checked, JSON and YAML must be catalog documents,
// text must hold at least one question.
func Validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".js", ".cjs", ".mjs":
		return checkJS(name, data)
	case ".json":
		return checkCatalog(data, banks.DecodeJSON)
	case ".yaml", ".yml":
		return checkCatalog(data, banks.DecodeYAML)
	case ".txt":
		if len(banks.ParseLines(string(data))) == 0 {
			return banks.ErrEmptyBank
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func checkJS(name string, src []byte) error {
	_, err := parser.ParseFile(nil, name, string(src), 0, parser.WithDisableSourceMaps)
	return err
}

func checkCatalog(data []byte, decode func([]byte) (any, error)) error {
	doc, err := decode(data)
	if err != nil {
		return err
	}
	return banks.ValidateCatalogDocument(doc)
}
