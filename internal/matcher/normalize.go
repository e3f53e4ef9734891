package matcher

import (
	"regexp"
	"strings"
)

// Package-level compiled regex pattern for performance
var nonWordRegex = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// articles are removed as whole words during normalization. Catalog names are
// a mix of English and Spanish, so both sets are stripped.
var articles = map[string]bool{
	"the": true, "a": true, "an": true,
	"el": true, "la": true, "los": true, "las": true,
}

// abbreviations maps unit abbreviations to their expanded forms. Applied only
// before Dice comparisons; bigram overlap is what benefits from the longer
// spelled-out tokens.
var abbreviations = map[string]string{
	"ml": "milliliter",
	"oz": "ounce",
	"kg": "kilogram",
	"gr": "gram",
	"cm": "centimeter",
	"m":  "metro",
	"l":  "liter",
}

// Normalize lowercases, strips punctuation, collapses whitespace, and removes
// standalone articles. Normalizing an already-normalized string is a no-op.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWordRegex.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if !articles[w] {
			kept = append(kept, w)
		}
	}

	return strings.Join(kept, " ")
}

// expandAbbreviations replaces whole-word unit abbreviations in an
// already-normalized string ("500 ml" -> "500 milliliter"). Word-boundary
// only: the "m" inside "cm" is never touched.
func expandAbbreviations(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if expanded, ok := abbreviations[w]; ok {
			words[i] = expanded
		}
	}
	return strings.Join(words, " ")
}
