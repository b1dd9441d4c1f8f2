package texture

import (
	"fmt"
	"io"
	"log/slog"

	"estsoil-loimis/internal/common"
	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/internal/lookup"
	"estsoil-loimis/soil"
)

// DefaultMaxLayers is the number of layers the soil model accepts.
const DefaultMaxLayers = 4

// Tables is the part of lookup.Tables the resolver reads.
type Tables interface {
	Texture(key string) (lookup.TextureEntry, bool)
	RockPercent(code string, amp soil.Amplifier) (int, lookup.RockSource)
	Suggest(code string) []string
}

// Resolver turns layer records into numeric layers.
type Resolver struct {
	tables    Tables
	maxLayers int
	logger    *slog.Logger
}

// NewResolver creates a Resolver. maxLayers <= 0 selects DefaultMaxLayers.
func NewResolver(tables Tables, maxLayers int, logger *slog.Logger) *Resolver {
	if maxLayers <= 0 {
		maxLayers = DefaultMaxLayers
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Resolver{
		tables:    tables,
		maxLayers: maxLayers,
		logger:    logger.With(slog.String("component", "texture")),
	}
}

// Resolve returns one ResolvedLayer per non-empty layer, at most maxLayers.
// DepthMM is left zero; depths come from the depth resolver.
func (r *Resolver) Resolve(profile soil.SoilProfile) ([]soil.ResolvedLayer, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	layers := profile.NonEmpty()
	if len(layers) > r.maxLayers {
		diags.AddWarning(diagnostic.CodeStructuralAnomaly,
			fmt.Sprintf("%d layers found, layers after %d dropped", len(layers), r.maxLayers), "", 0)

		layers = common.Truncate(layers, r.maxLayers)
	}

	out := make([]soil.ResolvedLayer, 0, len(layers))
	for i, l := range layers {
		out = append(out, r.layer(l, i+1, &diags))
	}

	return out, diags
}

func (r *Resolver) layer(l soil.LayerRecord, n int, diags *diagnostic.Diagnostics) soil.ResolvedLayer {
	var out soil.ResolvedLayer

	skeleton, hasSkeleton := l.Skeleton()
	if hasSkeleton {
		out.RockType = skeleton.Code

		pct, src := r.tables.RockPercent(skeleton.Code, skeleton.Amplifier)
		if src == lookup.RockUnknown {
			diags.AddWarning(diagnostic.CodeLookupMiss,
				fmt.Sprintf("unknown skeleton code %q", skeleton.Code), "", n, r.tables.Suggest(skeleton.Code)...)
		}

		out.RockPct = common.ClampPct(pct)
	}

	textural, hasTextural := l.Textural()

	switch {
	case hasTextural:
		key := textural.Key()
		out.RawFineEarthCode = key

		entry, ok := r.tables.Texture(key)
		if !ok {
			diags.AddWarning(diagnostic.CodeLookupMiss,
				fmt.Sprintf("unknown texture key %q", key), "", n, r.tables.Suggest(key)...)

			return out
		}

		applyEntry(&out, entry)

		if entry.Sum() != 100 {
			diags.AddWarning(diagnostic.CodeStructuralAnomaly,
				fmt.Sprintf("texture %q sums to %d", key, entry.Sum()), "", n)
		}

	case hasSkeleton:
		// Pure rock layer: the skeleton code stands in for the texture class.
		key := skeleton.Key()
		out.RawFineEarthCode = key
		out.TextureClass = key

		if entry, ok := r.tables.Texture(key); ok {
			applyEntry(&out, entry)
		}

		diags.AddInfo(diagnostic.CodeLookupMiss,
			fmt.Sprintf("no fine earth, skeleton %q used as texture class", key), "", n)
	}

	return out
}

func applyEntry(out *soil.ResolvedLayer, e lookup.TextureEntry) {
	out.SandPct = common.ClampPct(e.Sand)
	out.SiltPct = common.ClampPct(e.Silt)
	out.ClayPct = common.ClampPct(e.Clay)
	out.TextureClass = e.Class
}
