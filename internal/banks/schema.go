package banks

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	bankSchemaURL      = "schema://bank.json"
	catalogSchemaURL   = "schema://catalog.json"
	questionsSchemaURL = catalogSchemaURL + "#/$defs/questions"
)

type compiledSchemas struct {
	bank      *jsonschema.Schema
	catalog   *jsonschema.Schema
	questions *jsonschema.Schema
}

var schemas = sync.OnceValues(compileSchemas)

func compileSchemas() (*compiledSchemas, error) {
	c := jsonschema.NewCompiler()
	for url, file := range map[string]string{
		bankSchemaURL:    "schema/bank.schema.json",
		catalogSchemaURL: "schema/catalog.schema.json",
	} {
		data, err := schemaFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		if err := c.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("add resource %s: %w", url, err)
		}
	}

	var out compiledSchemas
	var err error
	if out.bank, err = c.Compile(bankSchemaURL); err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if out.catalog, err = c.Compile(catalogSchemaURL); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if out.questions, err = c.Compile(questionsSchemaURL); err != nil {
		return nil, fmt.Errorf("compile questions schema: %w", err)
	}
	return &out, nil
}

// ValidateBankDocument checks a decoded bank document against the bank
// schema.
func ValidateBankDocument(v any) error {
	s, err := schemas()
	if err != nil {
		return err
	}
	return s.bank.Validate(v)
}

// ValidateCatalogDocument checks a decoded catalog document against the
// catalog schema.
func ValidateCatalogDocument(v any) error {
	s, err := schemas()
	if err != nil {
		return err
	}
	return s.catalog.Validate(v)
}

// ValidateQuestionList checks a decoded question array.
func ValidateQuestionList(v any) error {
	s, err := schemas()
	if err != nil {
		return err
	}
	return s.questions.Validate(v)
}

// DecodeJSON decodes data into the generic form the validators expect.
func DecodeJSON(data []byte) (any, error) {
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// DecodeYAML decodes YAML and normalizes it to the same generic form as
// DecodeJSON.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yaml document is not JSON-compatible: %w", err)
	}
	return DecodeJSON(raw)
}
