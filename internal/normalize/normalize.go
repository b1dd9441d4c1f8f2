package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// LayerSeparator divides a code into vertically stacked layers.
	LayerSeparator = "/"
	// ColumnSeparator divides alternative code columns; only the first is kept.
	ColumnSeparator = ";"
	// AlternateSeparator introduces an alternative reading of a constituent.
	AlternateSeparator = ","
)

// Substitutions supplies exact-match legacy replacements.
type Substitutions interface {
	Legacy(s string) (string, bool)
}

// Normalizer applies the lexical rewrite pipeline.
type Normalizer struct {
	subs Substitutions
}

// New creates a Normalizer. A nil subs disables legacy substitution.
func New(subs Substitutions) *Normalizer {
	return &Normalizer{subs: subs}
}

// Normalize rewrites s in four fixed steps:
// 1. Exact legacy substitution.
// 2. Character-level cleanup.
// 3. Subscript amplifier collapse.
// 4. Numeric-bracket consolidation (one rule at most).
func (n *Normalizer) Normalize(s string) string {
	s = n.Override(s)
	s = Cleanup(s)
	s = CollapseSubscripts(s)

	return ConsolidateBrackets(s)
}

// Override returns the legacy replacement for s, or s unchanged.
func (n *Normalizer) Override(s string) string {
	if n.subs == nil {
		return s
	}

	if r, ok := n.subs.Legacy(strings.TrimSpace(s)); ok {
		return r
	}

	return s
}

// SplitLayers reduces a raw field to its first column, applies the legacy
// override to the whole string and splits it into layer strings.
func (n *Normalizer) SplitLayers(raw string) []string {
	column, _, _ := strings.Cut(raw, ColumnSeparator)
	column = n.Override(strings.TrimSpace(column))

	parts := strings.Split(column, LayerSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// Prepare is the per-layer pre-pass: subscript collapse then bracket consolidation.
func Prepare(s string) string {
	return ConsolidateBrackets(CollapseSubscripts(s))
}

// StripAlternates cuts s at the first comma, removes an unclosed bracket
// tail and cleans up what remains.
func StripAlternates(s string) string {
	s, _, _ = strings.Cut(s, AlternateSeparator)
	s = openBracket.ReplaceAllString(s, "")

	return Cleanup(s)
}

// Cleanup applies the ordered literal rewrite table to the NFC-composed,
// lower-cased s.
func Cleanup(s string) string {
	s = strings.ToLower(norm.NFC.String(s))

	for _, r := range cleanupRules {
		s = strings.ReplaceAll(s, r.old, r.new)
	}

	s = strings.TrimSpace(s)

	return detachedNumber.ReplaceAllString(s, "${1}")
}
