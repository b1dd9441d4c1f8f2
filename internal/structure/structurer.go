package structure

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/internal/grammar"
	"estsoil-loimis/soil"
)

// maxDepthCM caps a single source depth number.
const maxDepthCM = 100_000

// Canonicalizer maps alternate code spellings to canonical codes.
type Canonicalizer interface {
	Canonical(code string) string
}

// Structurer walks parse trees. It holds no per-call state.
type Structurer struct {
	canon  Canonicalizer
	logger *slog.Logger
}

// New creates a Structurer. Either argument may be nil.
func New(canon Canonicalizer, logger *slog.Logger) *Structurer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Structurer{
		canon:  canon,
		logger: logger.With(slog.String("component", "structure")),
	}
}

// Structure builds the layer record for one layer tree. Findings go to the
// returned diagnostics; layer is the 1-based layer number used in them.
func (s *Structurer) Structure(tree *grammar.Node, layer int) (soil.LayerRecord, diagnostic.Diagnostics) {
	var (
		rec       soil.LayerRecord
		diags     diagnostic.Diagnostics
		pending   *soil.DepthSpec
		alternate bool
		seen      = make(map[dedupSlot]bool, 2)
	)

	if tree == nil {
		return rec, diags
	}

	for _, child := range tree.Children {
		switch child.Kind {
		case grammar.NodeAlternate:
			alternate = true

		case grammar.NodeDepth:
			d := s.depth(child, &diags, layer)
			pending = &d

		case grammar.NodeSkeleton, grammar.NodePeat, grammar.NodeFineEarth:
			c := s.constituent(child, &diags, layer)

			if alternate {
				rec.Dropped++
				diags.AddInfo(diagnostic.CodeStructuralAnomaly,
					fmt.Sprintf("alternate reading %q dropped", child.Text), "", layer)

				continue
			}

			if pending != nil && c.Depth == nil {
				c.Depth, pending = pending, nil
			}

			slot := slotOf(c.Kind)
			if seen[slot] {
				rec.Dropped++
				diags.AddWarning(diagnostic.CodeStructuralAnomaly,
					fmt.Sprintf("duplicate %s %q dropped", slot, child.Text), "", layer)
				carryDepth(&rec, c.Depth)

				continue
			}

			seen[slot] = true
			rec.Constituents = append(rec.Constituents, c)

		default:
			diags.AddWarning(diagnostic.CodeStructuralAnomaly,
				fmt.Sprintf("unexpected %s node %q", child.Kind, child.Text), "", layer)
		}
	}

	if pending != nil {
		carryDepth(&rec, pending)
	}

	s.logger.Debug("structured layer",
		slog.Int("layer", layer),
		slog.String("text", tree.Text),
		slog.Int("constituents", rec.Count()),
		slog.Int("dropped", rec.Dropped))

	return rec, diags
}

// dedupSlot groups kinds that a layer may hold only once: one skeleton and
// one textural constituent, peat and fine earth sharing the latter.
type dedupSlot string

const (
	slotSkeleton dedupSlot = "skeleton"
	slotTextural dedupSlot = "textural"
)

func slotOf(k soil.Kind) dedupSlot {
	if k.IsTextural() {
		return slotTextural
	}

	return slotSkeleton
}

// carryDepth gives d to the last kept constituent when no kept constituent has a depth.
func carryDepth(rec *soil.LayerRecord, d *soil.DepthSpec) {
	if d == nil || len(rec.Constituents) == 0 {
		return
	}

	if _, has := rec.Depth(); has {
		return
	}

	rec.Constituents[len(rec.Constituents)-1].Depth = d
}

func kindOf(k grammar.NodeKind) soil.Kind {
	switch k {
	case grammar.NodeSkeleton:
		return soil.KindSkeleton
	case grammar.NodePeat:
		return soil.KindPeat
	case grammar.NodeFineEarth:
		return soil.KindFineEarth
	default:
		return soil.Kind(0)
	}
}

func (s *Structurer) constituent(n *grammar.Node, diags *diagnostic.Diagnostics, layer int) soil.Constituent {
	c := soil.Constituent{Kind: kindOf(n.Kind)}

	for _, child := range n.Children {
		switch child.Kind {
		case grammar.NodeCarbonate:
			c.Carbonated = true
		case grammar.NodeCode:
			c.Code = s.canonical(child.Text)
		case grammar.NodeAmplifier:
			c.Amplifier = amplifierValue(child.Text)
		case grammar.NodeDepth:
			d := s.depth(child, diags, layer)
			c.Depth = &d
		}
	}

	return c
}

func (s *Structurer) canonical(code string) string {
	if s.canon == nil {
		return code
	}

	return s.canon.Canonical(code)
}

// amplifierValue maps a plain digit or a subscript glyph to 1..5.
func amplifierValue(text string) soil.Amplifier {
	for _, r := range text {
		switch {
		case r >= '₁' && r <= '₅':
			return soil.Amplifier(r-'₁') + soil.MinAmplifier
		case r >= '1' && r <= '5':
			return soil.Amplifier(r - '0')
		}
	}

	return 0
}

// depth converts a depth node (centimeters) to a DepthSpec in millimeters.
// A range uses its first and last numbers; a reversed range is swapped.
func (s *Structurer) depth(n *grammar.Node, diags *diagnostic.Diagnostics, layer int) soil.DepthSpec {
	var spec soil.DepthSpec

	if _, ok := n.Child(grammar.NodeDeeperThan); ok {
		spec.DeeperThan = true
	}

	numbers := n.ChildrenOf(grammar.NodeNumber)
	if len(numbers) == 0 {
		return spec
	}

	first := s.centimeters(numbers[0].Text, diags, layer)
	last := s.centimeters(numbers[len(numbers)-1].Text, diags, layer)

	switch {
	case len(numbers) == 1 || first == last:
		spec.To = last * soil.CentimetersToMM
	case first > last:
		diags.AddWarning(diagnostic.CodeStructuralAnomaly,
			fmt.Sprintf("reversed depth range %q", n.Text), "", layer)

		spec.From, spec.To, spec.IsRange = last*soil.CentimetersToMM, first*soil.CentimetersToMM, true
	default:
		spec.From, spec.To, spec.IsRange = first*soil.CentimetersToMM, last*soil.CentimetersToMM, true
	}

	return spec
}

func (s *Structurer) centimeters(text string, diags *diagnostic.Diagnostics, layer int) uint32 {
	v, err := strconv.ParseUint(text, 10, 32)
	if err != nil || v > maxDepthCM {
		diags.AddWarning(diagnostic.CodeStructuralAnomaly,
			fmt.Sprintf("depth %s cm capped at %d cm", text, maxDepthCM), "", layer)

		return maxDepthCM
	}

	return uint32(v)
}
