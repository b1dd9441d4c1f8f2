package depth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estsoil-loimis/internal/depth"
	"estsoil-loimis/soil"
)

// layer builds a one-constituent layer; to == 0 means no explicit depth.
func layer(from, to uint32) soil.LayerRecord {
	c := soil.Constituent{Kind: soil.KindFineEarth, Code: "ls"}

	switch {
	case from > 0:
		c.Depth = &soil.DepthSpec{From: from, To: to, IsRange: true}
	case to > 0:
		c.Depth = &soil.DepthSpec{To: to}
	}

	return soil.LayerRecord{Constituents: []soil.Constituent{c}}
}

func profile(layers ...soil.LayerRecord) soil.SoilProfile {
	return soil.SoilProfile{Layers: layers}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		profile  soil.SoilProfile
		expected []uint32
		kept     []int
		rule     depth.FillRule
	}{
		{"single default", profile(layer(0, 0)), []uint32{1000}, []int{0}, depth.FillEvenSplit},
		{"two split evenly", profile(layer(0, 0), layer(0, 0)), []uint32{500, 1000}, []int{0, 1}, depth.FillEvenSplit},
		{"three split evenly", profile(layer(0, 0), layer(0, 0), layer(0, 0)), []uint32{333, 666, 999}, []int{0, 1, 2}, depth.FillEvenSplit},
		{"range midpoint", profile(layer(700, 1000)), []uint32{850}, []int{0}, depth.FillNone},
		{"explicit then remainder", profile(layer(0, 300), layer(0, 0)), []uint32{300, 1000}, []int{0, 1}, depth.FillEvenSplit},
		{"all explicit", profile(layer(0, 200), layer(0, 300)), []uint32{200, 500}, []int{0, 1}, depth.FillNone},
		{"trailing layer consumed", profile(layer(0, 1000), layer(0, 0)), []uint32{1000}, []int{0}, depth.FillTenthOfSum},
		{"tenth of sum fills a leading gap", profile(layer(0, 0), layer(0, 1200)), []uint32{120, 1000}, []int{0, 1}, depth.FillTenthOfSum},
		{"round half to even", profile(layer(0, 995), layer(0, 0), layer(0, 0)), []uint32{995, 997, 999}, []int{0, 1, 2}, depth.FillEvenSplit},
		{"capped at four layers", profile(layer(0, 0), layer(0, 0), layer(0, 0), layer(0, 0), layer(0, 0)), []uint32{250, 500, 750, 1000}, []int{0, 1, 2, 3}, depth.FillEvenSplit},
		{"empty profile", profile(), []uint32{1000}, nil, depth.FillDefault},
		{"only no_info", profile(soil.LayerRecord{Constituents: []soil.Constituent{{Kind: soil.KindSkeleton, Code: soil.NoInfo}}}), []uint32{1000}, nil, depth.FillDefault},
	}

	r := depth.NewResolver(depth.DefaultConfig(), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := r.Resolve(tt.profile)

			assert.Equal(t, tt.expected, got.DepthsMM)
			assert.Equal(t, tt.kept, got.Kept)
			assert.Equal(t, tt.rule, got.Rule, got.Rule.String())
			assert.Equal(t, len(tt.expected), got.LayerCount)
			assert.Equal(t, tt.expected[len(tt.expected)-1], got.TotalMM())
		})
	}
}

func TestResolveReportsConsumedLayer(t *testing.T) {
	r := depth.NewResolver(depth.DefaultConfig(), nil)

	_, diags := r.Resolve(profile(layer(0, 1000), layer(0, 0)))
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, 2, diags.Warnings[0].Layer)
}

func TestResolveBounds(t *testing.T) {
	r := depth.NewResolver(depth.DefaultConfig(), nil)
	bounds := []uint32{0, 100, 450, 999, 1000, 1500, 9000}

	for _, a := range bounds {
		for _, b := range bounds {
			for _, c := range bounds {
				got, _ := r.Resolve(profile(layer(0, a), layer(0, b), layer(0, c)))

				require.GreaterOrEqual(t, got.LayerCount, 1)
				require.Len(t, got.DepthsMM, got.LayerCount)

				prev := uint32(0)
				for _, d := range got.DepthsMM {
					require.Greater(t, d, prev, "depths %v not increasing", got.DepthsMM)
					prev = d
				}

				require.LessOrEqual(t, got.TotalMM(), uint32(1000))
			}
		}
	}
}

func TestFillRuleString(t *testing.T) {
	assert.Equal(t, "tenth_of_sum", depth.FillTenthOfSum.String())
	assert.Equal(t, "unknown", depth.FillRule(42).String())
}
