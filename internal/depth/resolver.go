package depth

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"estsoil-loimis/internal/common"
	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/soil"
)

// FillRule tells how layers without explicit depth were filled.
type FillRule int

const (
	// FillNone: every layer had an explicit depth.
	FillNone FillRule = iota
	// FillEvenSplit: the remainder of the default depth split evenly.
	FillEvenSplit
	// FillTenthOfSum: explicit depths already reached the default; each gap gets a tenth of their sum.
	FillTenthOfSum
	// FillDefault: no resolvable layer; one layer at the default depth.
	FillDefault
)

func (r FillRule) String() string {
	switch r {
	case FillNone:
		return "none"
	case FillEvenSplit:
		return "even_split"
	case FillTenthOfSum:
		return "tenth_of_sum"
	case FillDefault:
		return "default"
	default:
		return common.UnknownStr
	}
}

// Config configures a Resolver.
type Config struct {
	// DefaultDepthMM is the total profile depth and the bound of the last layer.
	DefaultDepthMM uint32
	// MaxLayers is the number of layers the consumer can take.
	MaxLayers int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		DefaultDepthMM: 1000,
		MaxLayers:      4,
	}
}

// Resolved is the depth assignment of one profile.
type Resolved struct {
	LayerCount int
	// DepthsMM[i] is the cumulative depth of the bottom of layer i, which is
	// the top of layer i+1.
	DepthsMM []uint32
	// Kept holds, per resolved layer, its index in profile.NonEmpty().
	Kept []int
	Rule FillRule
}

// TotalMM returns the depth of the deepest layer.
func (r Resolved) TotalMM() uint32 {
	last, _ := common.Last(r.DepthsMM)
	return last
}

// Resolver computes layer depths.
type Resolver struct {
	config Config
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil logger discards output.
func NewResolver(config Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Resolver{
		config: config,
		logger: logger.With(slog.String("component", "depth")),
	}
}

// Resolve assigns depths to the non-empty layers of profile.
func (r *Resolver) Resolve(profile soil.SoilProfile) (Resolved, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	layers := common.Truncate(profile.NonEmpty(), r.config.MaxLayers)
	if len(layers) == 0 {
		return r.fallback(), diags
	}

	thickness, rule := r.thicknesses(layers)

	res := Resolved{Rule: rule}

	var total uint32

	for i, t := range thickness {
		next := min(total+t, r.config.DefaultDepthMM)
		if next <= total {
			diags.AddWarning(diagnostic.CodeStructuralAnomaly,
				fmt.Sprintf("layer consumed by the depths above it (thickness %d mm)", t), "", i+1)

			continue
		}

		res.DepthsMM = append(res.DepthsMM, next)
		res.Kept = append(res.Kept, i)
		total = next
	}

	if len(res.Kept) == 0 {
		return r.fallback(), diags
	}

	res.LayerCount = len(res.Kept)

	r.logger.Debug("resolved depths",
		slog.String("raw", profile.Raw),
		slog.String("rule", rule.String()),
		slog.Any("depths_mm", res.DepthsMM))

	return res, diags
}

// thicknesses returns per-layer thickness with gaps filled.
func (r *Resolver) thicknesses(layers []soil.LayerRecord) ([]uint32, FillRule) {
	thickness := make([]uint32, len(layers))

	var (
		sum uint32
		set int
	)

	for i, l := range layers {
		if d, ok := l.Depth(); ok && d.Thickness() > 0 {
			thickness[i] = d.Thickness()
			sum += thickness[i]
			set++
		}
	}

	unset := len(layers) - set
	if unset == 0 {
		return thickness, FillNone
	}

	var (
		fill uint32
		rule FillRule
	)

	if sum < r.config.DefaultDepthMM {
		fill = roundEven(float64(r.config.DefaultDepthMM-sum) / float64(unset))
		rule = FillEvenSplit
	} else {
		fill = roundEven(float64(sum) / 10)
		rule = FillTenthOfSum
	}

	for i := range thickness {
		if thickness[i] == 0 {
			thickness[i] = fill
		}
	}

	return thickness, rule
}

func (r *Resolver) fallback() Resolved {
	return Resolved{
		LayerCount: 1,
		DepthsMM:   []uint32{r.config.DefaultDepthMM},
		Rule:       FillDefault,
	}
}

func roundEven(v float64) uint32 {
	return uint32(math.RoundToEven(v))
}
