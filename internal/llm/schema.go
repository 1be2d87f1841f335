package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled caches compiled schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// validate checks raw against s. Failures are KindInvalidResponse.
func validate(s *Schema, raw json.RawMessage) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &Error{Kind: KindInvalidResponse, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compile(s)
	if err != nil {
		return &Error{Kind: KindInvalidResponse, Content: raw, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &Error{Kind: KindInvalidResponse, Content: raw, Err: err}
	}
	return nil
}

func compile(s *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(s.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants plain JSON values; round-trip the definition.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", s.Name, err)
	}

	url := "mem://llm/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}

	compiled.Store(s.Name, sch)
	return sch, nil
}
