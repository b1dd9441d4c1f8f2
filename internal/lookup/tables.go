package lookup

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"estsoil-loimis/internal/common"
	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/soil"
)

// TextureEntry is the composition of one fine-earth or peat key.
type TextureEntry struct {
	Sand  int    `yaml:"sand"`
	Silt  int    `yaml:"silt"`
	Clay  int    `yaml:"clay"`
	Class string `yaml:"class"`
}

// Sum returns sand+silt+clay.
func (e TextureEntry) Sum() int {
	return e.Sand + e.Silt + e.Clay
}

// RockScale maps severity ordinals to rock-fragment percentages.
type RockScale struct {
	Levels       []int    `yaml:"levels"`
	MidLevel     int      `yaml:"mid_level"`
	MaxLevel     int      `yaml:"max_level"`
	NoAmplifier  []string `yaml:"no_amplifier"`
	HighSeverity []string `yaml:"high_severity"`
}

// Document is the on-disk shape of a tables file.
type Document struct {
	Version string                  `yaml:"version"`
	Texture map[string]TextureEntry `yaml:"texture"`
	Rock    RockScale               `yaml:"rock"`
	Aliases map[string]string       `yaml:"aliases,omitempty"`
	Legacy  map[string]string       `yaml:"legacy,omitempty"`
	Fillers map[string]string       `yaml:"fillers,omitempty"`
}

// RockSource tells which rule produced a rock-fragment percentage.
type RockSource int

const (
	RockUnknown RockSource = iota
	RockAmplifier
	RockMidDefault
	RockMaxDefault
)

// Tables is the immutable, process-wide lookup state.
type Tables struct {
	doc         Document
	noAmplifier map[string]struct{}
	high        map[string]struct{}
	textureKeys []string
	rockCodes   []string
	// fillerKeys is ordered longest first for prefix matching.
	fillerKeys []string
}

func newTables(doc Document) *Tables {
	t := &Tables{
		doc:         doc,
		noAmplifier: setOf(doc.Rock.NoAmplifier),
		high:        setOf(doc.Rock.HighSeverity),
		textureKeys: slices.Sorted(maps.Keys(doc.Texture)),
	}

	t.rockCodes = append(slices.Clone(doc.Rock.NoAmplifier), doc.Rock.HighSeverity...)
	slices.Sort(t.rockCodes)

	t.fillerKeys = slices.SortedFunc(maps.Keys(doc.Fillers), func(a, b string) int {
		if n := cmp.Compare(len(b), len(a)); n != 0 {
			return n
		}

		return strings.Compare(a, b)
	})

	return t
}

func setOf(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}

	return out
}

// Version returns the document version string.
func (t *Tables) Version() string {
	return t.doc.Version
}

// Texture returns the entry for a code+amplifier key such as "ls2".
func (t *Tables) Texture(key string) (TextureEntry, bool) {
	e, ok := t.doc.Texture[key]
	return e, ok
}

// TextureKeys returns every texture key in sorted order.
func (t *Tables) TextureKeys() []string {
	return slices.Clone(t.textureKeys)
}

// Level returns the percentage for a severity ordinal (1-based).
func (t *Tables) Level(ordinal int) (int, bool) {
	if !common.InRange(1, ordinal, len(t.doc.Rock.Levels)) {
		return 0, false
	}

	return t.doc.Rock.Levels[ordinal-1], true
}

// RockPercent resolves the rock-fragment percentage of a skeleton code.
// An explicit amplifier selects its own level. Without one, no-amplifier
// types use the mid level and high-severity types the max level.
func (t *Tables) RockPercent(code string, amp soil.Amplifier) (int, RockSource) {
	if amp.Present() {
		if pct, ok := t.Level(int(amp)); ok {
			return pct, RockAmplifier
		}
	}

	if _, ok := t.noAmplifier[code]; ok {
		pct, _ := t.Level(t.doc.Rock.MidLevel)
		return pct, RockMidDefault
	}

	if _, ok := t.high[code]; ok {
		pct, _ := t.Level(t.doc.Rock.MaxLevel)
		return pct, RockMaxDefault
	}

	return 0, RockUnknown
}

// Canonical maps an alternate skeleton spelling to its canonical code.
func (t *Tables) Canonical(code string) string {
	if c, ok := t.doc.Aliases[code]; ok {
		return c
	}

	return code
}

// Legacy returns the exact-match replacement for a legacy code string.
func (t *Tables) Legacy(s string) (string, bool) {
	r, ok := t.doc.Legacy[s]
	return r, ok
}

// Filler returns the default texture code for a soil type. Extended soil
// type codes resolve to the longest legend code they start with.
func (t *Tables) Filler(soilType string) (string, bool) {
	soilType = strings.ReplaceAll(strings.TrimSpace(soilType), "’", "'")
	if soilType == "" {
		return "", false
	}

	if f, ok := t.doc.Fillers[soilType]; ok {
		return f, true
	}

	for _, key := range t.fillerKeys {
		if strings.HasPrefix(soilType, key) {
			return t.doc.Fillers[key], true
		}
	}

	return "", false
}

// Document returns a copy of the underlying document.
func (t *Tables) Document() Document {
	doc := t.doc
	doc.Texture = maps.Clone(t.doc.Texture)
	doc.Aliases = maps.Clone(t.doc.Aliases)
	doc.Legacy = maps.Clone(t.doc.Legacy)
	doc.Fillers = maps.Clone(t.doc.Fillers)
	doc.Rock.Levels = slices.Clone(t.doc.Rock.Levels)
	doc.Rock.NoAmplifier = slices.Clone(t.doc.Rock.NoAmplifier)
	doc.Rock.HighSeverity = slices.Clone(t.doc.Rock.HighSeverity)

	return doc
}

// Validate reports table defects that the schema cannot express.
// Defects are warnings: the tables stay usable.
func (t *Tables) Validate() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, key := range t.textureKeys {
		e := t.doc.Texture[key]
		if e.Sum() != 100 {
			diags.AddWarning(diagnostic.CodeStructuralAnomaly,
				fmt.Sprintf("texture %q sums to %d, want 100", key, e.Sum()), "", 0)
		}
	}

	ordinals := []struct {
		name  string
		value int
	}{{"mid_level", t.doc.Rock.MidLevel}, {"max_level", t.doc.Rock.MaxLevel}}

	for _, o := range ordinals {
		if _, ok := t.Level(o.value); !ok {
			diags.AddError(diagnostic.CodeStructuralAnomaly,
				fmt.Sprintf("rock %s %d outside 1..%d", o.name, o.value, len(t.doc.Rock.Levels)), "", 0)
		}
	}

	for _, code := range t.doc.Rock.NoAmplifier {
		if _, ok := t.high[code]; ok {
			diags.AddWarning(diagnostic.CodeStructuralAnomaly,
				fmt.Sprintf("skeleton %q listed as both no_amplifier and high_severity", code), "", 0)
		}
	}

	for _, from := range slices.Sorted(maps.Keys(t.doc.Legacy)) {
		if t.doc.Legacy[from] == "" {
			diags.AddWarning(diagnostic.CodeStructuralAnomaly,
				fmt.Sprintf("legacy %q maps to an empty string", from), "", 0)
		}
	}

	return diags
}
