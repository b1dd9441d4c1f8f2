package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estsoil-loimis/internal/normalize"
)

type legacyMap map[string]string

func (m legacyMap) Legacy(s string) (string, bool) {
	r, ok := m[s]
	return r, ok
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"canonical untouched", "r₃ls", "r₃ls"},
		{"boulder spelling", "Ko₂ls", "k⁰₂ls"},
		{"degree sign", "r°ls", "r⁰ls"},
		{"spelled out peat", "turvas", "t"},
		{"carbonate word", "üle ls", "+ls"},
		{"meaningless amplifier", "kr₂ls~", "krls"},
		{"historic pair", "sl-ls", "sl"},
		{"placeholder", "no_info", ""},
		{"byte order mark", "\ufeffls", "ls"},
		{"upper case", "LS", "ls"},
		{"lime word before letter strips", "lubi", "lu"},
		{"upper case skeleton", "Kls", "kls"},
		{"detached depth", "sl 20", "sl20"},
		{"detached range", "ls 30-50", "ls30-50"},
		{"detached amplifier", "ls ₂", "ls₂"},
		{"spaced constituents kept", "r₃ ls 40", "r₃ ls40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.Cleanup(tt.input))
		})
	}
}

func TestCleanupComposesDecomposedInput(t *testing.T) {
	// "u" followed by a combining diaeresis
	assert.Equal(t, "+ls", normalize.Cleanup("u\u0308lels"))
}

func TestCollapseSubscripts(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"r₂₃ls", "r₂ls"},
		{"r₂-₃ls", "r₂ls"},
		{"r₂,₃ls", "r₂ls"},
		{"ls₁₁", "ls₁"},
		{"r₂ls₃", "r₂ls₃"},
		{"ls", "ls"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.CollapseSubscripts(tt.input))
		})
	}
}

func TestConsolidateBrackets(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		rule     string
	}{
		{"ls(70-100)", "ls70-100", "bracketed_range"},
		{"ls20-30(40)", "ls20-30", "range_secondary_number"},
		{"ls20-30(40-50)", "ls20-30", "range_secondary_range"},
		{"ls20(30-40)", "ls20", "number_secondary_range"},
		{"ls20(30)", "ls20", "number_secondary_number"},
		{"ls(20)", "ls20", "bracketed_number"},
		{"(ls)", "(ls)", ""},
		{"ls", "ls", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.ConsolidateBrackets(tt.input))
			assert.Equal(t, tt.rule, normalize.BracketRule(tt.input))
		})
	}
}

func TestConsolidateBracketsAppliesOneRule(t *testing.T) {
	// the second bracket needs another call
	once := normalize.ConsolidateBrackets("ls20-30(40)/s(50)")
	assert.Equal(t, "ls20-30/s(50)", once)
	assert.Equal(t, "ls20-30/s50", normalize.ConsolidateBrackets(once))
}

func TestNormalize(t *testing.T) {
	n := normalize.New(legacyMap{"liivsavi": "ls"})

	assert.Equal(t, "ls", n.Normalize("liivsavi"))
	assert.Equal(t, "r₂ls70-100", n.Normalize("R₂₂ls(70-100)"))
	assert.Equal(t, "ls", normalize.New(nil).Normalize("ls"))
}

func TestSplitLayers(t *testing.T) {
	n := normalize.New(legacyMap{"kruus": "kr/pl"})

	assert.Equal(t, []string{"ls", "pl"}, n.SplitLayers("ls/pl; s/l"))
	assert.Equal(t, []string{"kr", "pl"}, n.SplitLayers(" kruus "))
	assert.Equal(t, []string{"ls", ""}, n.SplitLayers("ls/"))
}

func TestStripAlternates(t *testing.T) {
	assert.Equal(t, "sl", normalize.StripAlternates("sl,ls"))
	assert.Equal(t, "ls", normalize.StripAlternates("ls(kr"))
	assert.Equal(t, "r₂ls", normalize.StripAlternates("r₂ls, r₃ls"))
}

func TestFindBracket(t *testing.T) {
	b, ok := normalize.FindBracket("ls(r₂)pl")
	require.True(t, ok)

	assert.Equal(t, "r₂", b.Inner)
	assert.Equal(t, "lsr₂pl", b.Unwrapped())
	assert.Equal(t, "lspl", b.Removed())

	_, ok = normalize.FindBracket("ls(r₂")
	assert.False(t, ok)
}
