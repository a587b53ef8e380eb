// Package textrepair rewrites known mojibake byte sequences produced when
// Romanian diacritics pass through a mismatched encoding round-trip.
package textrepair

import "strings"

// Replacement is one literal pattern and the correctly encoded character
// that replaces it.
type Replacement struct {
	Pattern string
	Repl    string
}

// table is the canonical, order-sensitive substitution table. Longer
// sequences come first: "Ã£â€ž" is a substring family of the four-rune
// forms above it and must only match what they left behind.
var table = []Replacement{
	{"Ã£Æ'Â¢", "â"},
	{"Ã£Æ'â€ž", "ă"},
	{"Ã£Æ'Ë†", "î"},
	{"Ã£Æ'Åž", "ș"},
	{"Ã£Æ'Å¢", "ț"},
	{"Ã£â€ž", "ă"},
}

// replacer scans the input once, left to right; at any position the
// first-listed matching pattern wins and matches never overlap.
var replacer = newReplacer()

func newReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(table)*2)
	for _, r := range table {
		pairs = append(pairs, r.Pattern, r.Repl)
	}
	return strings.NewReplacer(pairs...)
}

// Repair replaces every known mis-encoded diacritic sequence in text with
// its correct character. It is total and deterministic: text without any
// known-bad sequence is returned unchanged, and repairing already-repaired
// text is a no-op.
func Repair(text string) string {
	if text == "" {
		return ""
	}
	return replacer.Replace(text)
}

// Replacements returns a copy of the substitution table in application order.
func Replacements() []Replacement {
	out := make([]Replacement, len(table))
	copy(out, table)
	return out
}
