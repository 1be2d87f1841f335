package banks

import (
	"fmt"
	"maps"
	"slices"
)

// Catalog is the immutable set of question banks plus the mandatory list.
// It is built once and handed to whatever assembles interview sets.
type Catalog struct {
	mandatory []string
	banks     map[string]Bank
}

// NewCatalog builds a Catalog. Organizations must be unique.
func NewCatalog(mandatory []string, banks ...Bank) (*Catalog, error) {
	m := clean(mandatory)
	if len(m) == 0 {
		return nil, ErrNoMandatory
	}

	byOrg := make(map[string]Bank, len(banks))
	for _, b := range banks {
		if b.org == "" {
			return nil, ErrEmptyOrganization
		}
		if b.Len() == 0 {
			return nil, fmt.Errorf("%s: %w", b.org, ErrEmptyBank)
		}
		if _, ok := byOrg[b.org]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOrganization, b.org)
		}
		byOrg[b.org] = b
	}

	return &Catalog{mandatory: m, banks: byOrg}, nil
}

// Organizations returns the organization names in sorted order.
func (c *Catalog) Organizations() []string {
	return slices.Sorted(maps.Keys(c.banks))
}

// Bank returns the bank for org.
func (c *Catalog) Bank(org string) (Bank, bool) {
	b, ok := c.banks[org]
	return b, ok
}

// Mandatory returns a copy of the mandatory question list.
func (c *Catalog) Mandatory() []string {
	return slices.Clone(c.mandatory)
}

// Len returns the number of banks.
func (c *Catalog) Len() int { return len(c.banks) }

// Document is the serialized form of a Catalog. It conforms to the catalog
// schema.
type Document struct {
	Mandatory []string            `json:"mandatory" yaml:"mandatory"`
	Banks     map[string][]string `json:"banks" yaml:"banks"`
}

// Document returns the catalog as a Document.
func (c *Catalog) Document() Document {
	doc := Document{
		Mandatory: c.Mandatory(),
		Banks:     make(map[string][]string, len(c.banks)),
	}
	for org, b := range c.banks {
		doc.Banks[org] = b.Questions()
	}
	return doc
}

// FromDocument builds a Catalog from a Document.
func FromDocument(doc Document) (*Catalog, error) {
	banks := make([]Bank, 0, len(doc.Banks))
	for _, org := range slices.Sorted(maps.Keys(doc.Banks)) {
		b, err := NewBank(org, doc.Banks[org])
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return NewCatalog(doc.Mandatory, banks...)
}
