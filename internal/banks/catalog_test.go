package banks

import (
	"errors"
	"slices"
	"testing"
)

func mustBank(t *testing.T, org string, qs ...string) Bank {
	t.Helper()
	b, err := NewBank(org, qs)
	if err != nil {
		t.Fatalf("NewBank(%s): %v", org, err)
	}
	return b
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog([]string{"m1", " ", "m2"},
		mustBank(t, "NG", "n1"),
		mustBank(t, "EMS", "e1", "e2"),
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if got := c.Organizations(); !slices.Equal(got, []string{"EMS", "NG"}) {
		t.Errorf("organizations = %q", got)
	}
	if got := c.Mandatory(); !slices.Equal(got, []string{"m1", "m2"}) {
		t.Errorf("mandatory = %q", got)
	}
	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}

	b, ok := c.Bank("EMS")
	if !ok {
		t.Fatal("EMS bank missing")
	}
	if got := b.Questions(); !slices.Equal(got, []string{"e1", "e2"}) {
		t.Errorf("EMS questions = %q", got)
	}
	if _, ok := c.Bank("FIB"); ok {
		t.Error("unexpected FIB bank")
	}
}

func TestNewCatalog_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mandatory []string
		banks     []Bank
		want      error
	}{
		{"no mandatory", nil, []Bank{mustBank(t, "NG", "n1")}, ErrNoMandatory},
		{"duplicate org", []string{"m"}, []Bank{mustBank(t, "NG", "n1"), mustBank(t, "NG", "n2")}, ErrDuplicateOrganization},
		{"zero bank", []string{"m"}, []Bank{{}}, ErrEmptyOrganization},
	}
	for _, tt := range tests {
		_, err := NewCatalog(tt.mandatory, tt.banks...)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestCatalog_MandatoryIsACopy(t *testing.T) {
	c, err := NewCatalog([]string{"m1"}, mustBank(t, "NG", "n1"))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	m := c.Mandatory()
	m[0] = "changed"
	if got := c.Mandatory(); !slices.Equal(got, []string{"m1"}) {
		t.Errorf("mandatory = %q, want unchanged", got)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	c, err := NewCatalog([]string{"m1"}, mustBank(t, "NG", "n1"), mustBank(t, "EMS", "e1"))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	back, err := FromDocument(c.Document())
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if !slices.Equal(back.Organizations(), c.Organizations()) || !slices.Equal(back.Mandatory(), c.Mandatory()) {
		t.Errorf("round trip = %q / %q", back.Organizations(), back.Mandatory())
	}
}

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	if got := c.Organizations(); !slices.Equal(got, []string{"EMS", "LSPD", "NG"}) {
		t.Errorf("organizations = %q", got)
	}
	mandatory := c.Mandatory()
	if len(mandatory) != 12 {
		t.Fatalf("mandatory has %d questions, want 12", len(mandatory))
	}
	if mandatory[0] != "Why do you want to be Leader of this Organisation?" {
		t.Errorf("first mandatory = %q", mandatory[0])
	}

	sizes := map[string]int{"EMS": 10, "LSPD": 96, "NG": 10}
	for org, want := range sizes {
		b, ok := c.Bank(org)
		if !ok {
			t.Fatalf("%s bank missing", org)
		}
		if b.Len() != want {
			t.Errorf("%s has %d questions, want %d", org, b.Len(), want)
		}
		for i, q := range b.Questions() {
			if q == "" {
				t.Errorf("%s question %d is blank", org, i)
			}
		}
	}

	ems, _ := c.Bank("EMS")
	if got := ems.Questions()[0]; got != "What are EMS primary responsibilities?" {
		t.Errorf("first EMS question = %q", got)
	}
	lspd, _ := c.Bank("LSPD")
	qs := lspd.Questions()
	if qs[0] != "What is LSPD?" {
		t.Errorf("first LSPD question = %q", qs[0])
	}
	if last := qs[len(qs)-1]; last != "If you chase someone and they run into ghetto, can you follow and arrest them?" {
		t.Errorf("last LSPD question = %q", last)
	}
}
