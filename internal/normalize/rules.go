package normalize

import (
	"regexp"
	"strings"
)

type rewrite struct {
	old, new string
}

// cleanupRules run in order after lower-casing; later rules see the output of earlier ones.
var cleanupRules = []rewrite{
	// placeholders and transcription artifacts
	{"\ufeff", ""},
	{"\u0081", ""},
	{"<null>", ""},
	{"puudub", ""},
	{"no_info", ""},
	{"/mergel", ""},
	{"prügi", ""},
	{"vesi", ""},
	{"vee", ""},
	{"/0", ""},

	// spelled-out words
	{"turvas", "t"},
	{"killustik", "ck"},
	{"lubi", "lu"},
	{"tuhk", "tls"},

	// carbonate marker spellings
	{"üle", "+"},
	{">", "+"},
	{"+ ", "+"},

	// historic pairs that name one fraction
	{"tsl-tls", "tsl"},
	{"sl-ls", "sl"},
	{"l-sl", "l"},
	{"sl-l", "sl"},
	{"r-ls", "rls"},
	{"ls/3", "ls₃"},
	{"ls⁰", "ls"},

	// amplifiers on types that take none
	{"kr₁", "kr"},
	{"kr₂", "kr"},
	{"kr₃", "kr"},
	{"kr₄", "kr"},
	{"kr₅", "kr"},
	{"ck₁", "ck"},
	{"ck₂", "kr"},
	{"ck₃", "kr"},
	{"ck₄", "kr"},
	{"ck₅", "kr"},

	// boulder-marker spellings
	{"ko", "k⁰"},
	{"°", "⁰"},
	{"–", "-"},
	{"o", "⁰"},

	// letters that only occur in noisy transcriptions
	{"e", ""},
	{"n", ""},
	{"i", ""},
	{"m", ""},
	{"la", ""},
	{"al", ""},
	{"~", ""},
	{"%", ""},
	{"*", ""},
	{"?", ""},
	{"++", "+"},
}

func init() {
	// Lower-casing happens before the table, so every key must already be lower case.
	for _, r := range cleanupRules {
		if strings.ToLower(r.old) != r.old {
			panic("normalize: cleanup rule " + r.old + " is not lower case")
		}
	}
}

var (
	// a depth or amplifier separated from its code by spaces
	detachedNumber = regexp.MustCompile(`\s+([0-9₁-₅])`)
	subscriptRun   = regexp.MustCompile(`([₁-₅])[₁-₅]*(?:[ ,+-][₁-₅]+)*`)
	openBracket    = regexp.MustCompile(`\(.*$`)
	bracketGroup   = regexp.MustCompile(`\((.*)\)`)
)

type bracketRule struct {
	name string
	re   *regexp.Regexp
}

// bracketRules in priority order; group 1 is the number that survives.
var bracketRules = []bracketRule{
	{"range_secondary_number", regexp.MustCompile(`(\d+-\d+)\(\d+\)`)},
	{"range_secondary_range", regexp.MustCompile(`(\d+-\d+)\(\d+-\d+\)`)},
	{"number_secondary_range", regexp.MustCompile(`(\d+)\(\d+-\d+\)`)},
	{"number_secondary_number", regexp.MustCompile(`(\d+)\(\d+\)`)},
	{"bracketed_range", regexp.MustCompile(`\((\d+-\d+)\)`)},
	{"bracketed_number", regexp.MustCompile(`\((\d+)\)`)},
}

// CollapseSubscripts reduces a run of subscript amplifiers, possibly joined
// by space, dash, comma or plus, to its first mark.
func CollapseSubscripts(s string) string {
	return subscriptRun.ReplaceAllString(s, "${1}")
}

// ConsolidateBrackets applies the first matching numeric-bracket rule.
func ConsolidateBrackets(s string) string {
	s, _ = consolidateBrackets(s)
	return s
}

// BracketRule returns the name of the rule ConsolidateBrackets would apply, or "".
func BracketRule(s string) string {
	_, name := consolidateBrackets(s)
	return name
}

func consolidateBrackets(s string) (string, string) {
	for _, r := range bracketRules {
		if r.re.MatchString(s) {
			return r.re.ReplaceAllString(s, "${1}"), r.name
		}
	}

	return s, ""
}

// Bracket is the outermost parenthesized group of a string.
type Bracket struct {
	Inner string

	text       string
	start, end int
}

// FindBracket locates the span from the first '(' to the last ')'.
func FindBracket(s string) (Bracket, bool) {
	loc := bracketGroup.FindStringSubmatchIndex(s)
	if loc == nil {
		return Bracket{}, false
	}

	return Bracket{
		Inner: s[loc[2]:loc[3]],
		text:  s,
		start: loc[0],
		end:   loc[1],
	}, true
}

// Unwrapped returns the string with the bracket expression replaced by its inner text.
func (b Bracket) Unwrapped() string {
	return b.text[:b.start] + b.Inner + b.text[b.end:]
}

// Removed returns the string with the whole bracket expression removed.
func (b Bracket) Removed() string {
	return b.text[:b.start] + b.text[b.end:]
}
