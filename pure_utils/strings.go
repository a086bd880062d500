package pure_utils

import (
	"strings"
	"unicode"
)

// Legal-entity and lifecycle terms stripped from brand names before
// matching. Order matters: compound terms must be removed before their
// substrings ("pvt ltd" before "ltd").
var brandNoiseTerms = []string{
	"pvt ltd", "private limited", "pvt. ltd.", "private ltd",
	"llp", "opc", "limited", "ltd", "inc", "corp",
	"- current", "- new", "- old", "domestic", "export",
	"the ", "a ", "an ",
}

// NormalizeBrandName lowercases a brand name, strips legal-entity and
// lifecycle noise terms, collapses whitespace and drops everything that is
// not alphanumeric. Removal can splice a noise term back together
// ("lltdtd" leaves "ltd"), so the pass repeats until the name is stable;
// the function is idempotent.
func NormalizeBrandName(name string) string {
	for {
		// Each pass only lowercases or removes characters, so this
		// terminates.
		next := normalizeBrandNamePass(name)
		if next == name {
			return next
		}
		name = next
	}
}

func normalizeBrandNamePass(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	for _, term := range brandNoiseTerms {
		name = strings.ReplaceAll(name, term, "")
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, c := range name {
		if c == ' ' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
