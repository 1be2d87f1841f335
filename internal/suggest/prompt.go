package suggest

import (
	"fmt"
	"strings"
)

const systemPrompt = `You help recruiters of a roleplay community write interview questions for applicants to in-game organizations.

Rules:
- Write questions specific to the organization's duties, procedures and culture.
- Each question is one self-contained sentence an interviewer can read aloud.
- Do not repeat or rephrase any question from the existing lists.
- Do not ask for real-world personal data beyond what the mandatory questions already cover.
- Reply only with the requested JSON.`

// buildPrompt lists the existing questions so the model avoids them.
func buildPrompt(org string, n int, bank, mandatory []string, maxExisting int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Organization: %s\n", org)
	fmt.Fprintf(&b, "Questions wanted: %d\n", n)

	b.WriteString("\nMandatory questions asked in every interview:\n")
	b.WriteString(numbered(mandatory, 0))

	b.WriteString("\n\nExisting questions for this organization:\n")
	b.WriteString(numbered(bank, maxExisting))
	return b.String()
}

// numbered formats qs as a numbered list, keeping at most max entries.
func numbered(qs []string, max int) string {
	if len(qs) == 0 {
		return "None"
	}
	if max > 0 && len(qs) > max {
		qs = qs[:max]
	}
	var b strings.Builder
	for i, q := range qs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
