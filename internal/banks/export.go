package banks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatJS emits the window.BANKS / window.MANDATORY_QUESTIONS globals
	// the browser front-end reads.
	FormatJS Format = "js"
)

// ParseFormat accepts json, yaml (or yml) and js.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "js", "javascript":
		return FormatJS, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, yaml or js)", s)
}

// Export writes c to w in the given format.
func Export(w io.Writer, c *Catalog, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(c.Document())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c.Document()); err != nil {
			return err
		}
		return enc.Close()
	case FormatJS:
		return exportJS(w, c)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func exportJS(w io.Writer, c *Catalog) error {
	var b bytes.Buffer
	b.WriteString("// Generated by grand banks export. Do not edit.\n")
	b.WriteString("window.BANKS = window.BANKS || {};\n")
	for _, org := range c.Organizations() {
		bank, _ := c.Bank(org)
		key, err := jsLiteral(org)
		if err != nil {
			return err
		}
		list, err := jsLiteral(bank.Questions())
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "window.BANKS[%s] = %s;\n", key, list)
	}
	list, err := jsLiteral(c.Mandatory())
	if err != nil {
		return err
	}
	fmt.Fprintf(&b, "window.MANDATORY_QUESTIONS = %s;\n", list)

	_, err = w.Write(b.Bytes())
	return err
}

// jsLiteral renders v as JSON, which is also a valid JS expression.
func jsLiteral(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
