package structure_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/internal/grammar"
	"estsoil-loimis/internal/lookup"
	"estsoil-loimis/internal/structure"
	"estsoil-loimis/soil"
)

func depth(from, to uint32) *soil.DepthSpec {
	if from == 0 {
		return &soil.DepthSpec{To: to}
	}

	return &soil.DepthSpec{From: from, To: to, IsRange: true}
}

func structureOf(t *testing.T, input string) (soil.LayerRecord, diagnostic.Diagnostics) {
	t.Helper()

	tables, err := lookup.Default()
	require.NoError(t, err)

	m, ok := grammar.NewSet().MatchAny(input)
	require.True(t, ok, "no dialect accepted %q", input)

	return structure.New(tables, nil).Structure(m.Tree, 1)
}

func TestStructure(t *testing.T) {
	tests := []struct {
		input   string
		want    []soil.Constituent
		dropped int
	}{
		{
			input: "ls",
			want:  []soil.Constituent{{Kind: soil.KindFineEarth, Code: "ls"}},
		},
		{
			input: "r₃ls",
			want: []soil.Constituent{
				{Kind: soil.KindSkeleton, Code: "r", Amplifier: 3},
				{Kind: soil.KindFineEarth, Code: "ls"},
			},
		},
		{
			input: "+ls2",
			want:  []soil.Constituent{{Kind: soil.KindFineEarth, Code: "ls", Carbonated: true, Amplifier: 2}},
		},
		{
			input: "r°ls",
			want: []soil.Constituent{
				{Kind: soil.KindSkeleton, Code: "r⁰"},
				{Kind: soil.KindFineEarth, Code: "ls"},
			},
		},
		{
			input:   "t₂ls",
			want:    []soil.Constituent{{Kind: soil.KindPeat, Code: "t", Amplifier: 2}},
			dropped: 1,
		},
		{
			input:   "t₂sl20",
			want:    []soil.Constituent{{Kind: soil.KindPeat, Code: "t", Amplifier: 2, Depth: depth(0, 200)}},
			dropped: 1,
		},
		{
			input:   "th15ls",
			want:    []soil.Constituent{{Kind: soil.KindPeat, Code: "th", Depth: depth(0, 150)}},
			dropped: 1,
		},
		{
			input: "ls70-100",
			want:  []soil.Constituent{{Kind: soil.KindFineEarth, Code: "ls", Depth: depth(700, 1000)}},
		},
		{
			input: "ls40-20",
			want:  []soil.Constituent{{Kind: soil.KindFineEarth, Code: "ls", Depth: depth(200, 400)}},
		},
		{
			input: "ls+20",
			want:  []soil.Constituent{{Kind: soil.KindFineEarth, Code: "ls", Depth: &soil.DepthSpec{To: 200, DeeperThan: true}}},
		},
		{
			input: "20ls",
			want:  []soil.Constituent{{Kind: soil.KindFineEarth, Code: "ls", Depth: depth(0, 200)}},
		},
		{
			input:   "r₂kr",
			want:    []soil.Constituent{{Kind: soil.KindSkeleton, Code: "r", Amplifier: 2}},
			dropped: 1,
		},
		{
			input:   "r₂kr20",
			want:    []soil.Constituent{{Kind: soil.KindSkeleton, Code: "r", Amplifier: 2, Depth: depth(0, 200)}},
			dropped: 1,
		},
		{
			input:   "lsl",
			want:    []soil.Constituent{{Kind: soil.KindFineEarth, Code: "ls"}},
			dropped: 1,
		},
		{
			input:   "sl,r₂ls",
			want:    []soil.Constituent{{Kind: soil.KindFineEarth, Code: "sl"}},
			dropped: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rec, _ := structureOf(t, tt.input)

			if diff := cmp.Diff(tt.want, rec.Constituents); diff != "" {
				t.Errorf("constituents mismatch (-want +got):\n%s", diff)
			}

			assert.Equal(t, tt.dropped, rec.Dropped)
		})
	}
}

func TestStructureAtMostOnePerKind(t *testing.T) {
	inputs := []string{"r₂krpk", "lslsl", "sl,ls,l", "r₂ r₃ ls sl", "ttls", "t₂sl20", "th15ls", "ls t"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			rec, diags := structureOf(t, input)

			skeletons, textural := 0, 0
			for _, c := range rec.Constituents {
				if c.Kind.IsTextural() {
					textural++
				} else {
					skeletons++
				}
			}

			assert.LessOrEqual(t, skeletons, 1)
			assert.LessOrEqual(t, textural, 1)
			assert.Len(t, diags.Warnings, rec.Dropped-len(diags.Infos))
		})
	}
}

func TestStructureDiagnostics(t *testing.T) {
	_, diags := structureOf(t, "r₂kr")
	assert.Equal(t, 1, diags.Count(diagnostic.CodeStructuralAnomaly))
	assert.Len(t, diags.Warnings, 1)

	_, diags = structureOf(t, "sl,ls")
	assert.Len(t, diags.Infos, 1)
	assert.True(t, diags.IsValid())
}

func TestStructureEmpty(t *testing.T) {
	rec, _ := structureOf(t, "no_info")
	assert.True(t, rec.IsEmpty())
	assert.Equal(t, 1, rec.Count())

	rec, diags := structure.New(nil, nil).Structure(nil, 1)
	assert.True(t, rec.IsEmpty())
	assert.Empty(t, diags.All())
}
