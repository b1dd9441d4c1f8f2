package soil

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// NoInfo is the sentinel code for a missing or unrecoverable texture code.
	NoInfo = "no_info"

	// CentimetersToMM converts source depths (cm) to stored depths (mm).
	CentimetersToMM = 10

	// MinAmplifier and MaxAmplifier bound a present amplifier.
	MinAmplifier Amplifier = 1
	MaxAmplifier Amplifier = 5
)

// Amplifier is a 1..5 intensity modifier. The zero value means "absent".
type Amplifier uint8

// Present reports whether an amplifier was given.
func (a Amplifier) Present() bool {
	return a >= MinAmplifier && a <= MaxAmplifier
}

// Suffix returns the digit appended to a code to build a lookup key, or "".
func (a Amplifier) Suffix() string {
	if !a.Present() {
		return ""
	}

	return strconv.Itoa(int(a))
}

// DepthSpec is a single bound or a range, in millimeters.
type DepthSpec struct {
	From       uint32
	To         uint32
	IsRange    bool
	DeeperThan bool
}

// Thickness returns the layer thickness contribution: the truncated midpoint
// of a range or the bound itself.
func (d DepthSpec) Thickness() uint32 {
	if d.IsRange {
		return (d.From + d.To) / 2
	}

	return d.To
}

func (d DepthSpec) String() string {
	var b strings.Builder
	if d.DeeperThan {
		b.WriteByte('+')
	}

	if d.IsRange {
		fmt.Fprintf(&b, "%d-", d.From)
	}

	fmt.Fprintf(&b, "%dmm", d.To)

	return b.String()
}

// Constituent is one soil fraction descriptor inside a layer.
type Constituent struct {
	Kind       Kind
	Code       string
	Carbonated bool
	Amplifier  Amplifier
	Depth      *DepthSpec
}

// Key is the table lookup key: code followed by the amplifier digit, if any.
func (c Constituent) Key() string {
	return c.Code + c.Amplifier.Suffix()
}

func (c Constituent) String() string {
	var b strings.Builder
	if c.Carbonated {
		b.WriteByte('+')
	}

	b.WriteString(c.Key())

	if c.Depth != nil {
		b.WriteByte('@')
		b.WriteString(c.Depth.String())
	}

	return b.String()
}

// LayerRecord is the ordered constituent list of one vertical layer.
type LayerRecord struct {
	Constituents []Constituent
	// Dropped counts constituents removed by de-duplication or alternates.
	Dropped int
}

// Count returns the number of surviving constituents.
func (l LayerRecord) Count() int {
	return len(l.Constituents)
}

// IsEmpty reports whether the layer has no constituents or only no_info ones.
func (l LayerRecord) IsEmpty() bool {
	for _, c := range l.Constituents {
		if c.Code != NoInfo {
			return false
		}
	}

	return true
}

// First returns the first constituent matching pred.
func (l LayerRecord) First(pred func(Constituent) bool) (Constituent, bool) {
	for _, c := range l.Constituents {
		if pred(c) {
			return c, true
		}
	}

	return Constituent{}, false
}

// Skeleton returns the first skeleton constituent.
func (l LayerRecord) Skeleton() (Constituent, bool) {
	return l.First(func(c Constituent) bool { return c.Kind == KindSkeleton })
}

// Textural returns the first peat or fine-earth constituent.
func (l LayerRecord) Textural() (Constituent, bool) {
	return l.First(func(c Constituent) bool { return c.Kind.IsTextural() })
}

// Depth returns the depth of the last constituent that carries one.
func (l LayerRecord) Depth() (DepthSpec, bool) {
	var (
		spec  DepthSpec
		found bool
	)

	for _, c := range l.Constituents {
		if c.Depth != nil {
			spec, found = *c.Depth, true
		}
	}

	return spec, found
}

// SoilProfile is the structured form of one texture code.
type SoilProfile struct {
	Raw    string
	Layers []LayerRecord
	Status ParseStatus
}

// NonEmpty returns the layers that carry at least one real constituent, top to bottom.
func (p SoilProfile) NonEmpty() []LayerRecord {
	out := make([]LayerRecord, 0, len(p.Layers))
	for _, l := range p.Layers {
		if !l.IsEmpty() {
			out = append(out, l)
		}
	}

	return out
}

// ResolvedLayer is the numeric output for one layer.
type ResolvedLayer struct {
	// DepthMM is the cumulative depth of the layer bottom, i.e. the top of the next layer.
	DepthMM          uint32
	ClayPct          uint8
	SiltPct          uint8
	SandPct          uint8
	RockPct          uint8
	TextureClass     string
	RockType         string
	RawFineEarthCode string
}
