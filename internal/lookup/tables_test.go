package lookup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/internal/lookup"
	"estsoil-loimis/soil"
)

func defaultTables(t *testing.T) *lookup.Tables {
	t.Helper()

	tables, err := lookup.Default()
	require.NoError(t, err)

	return tables
}

func TestDefaultTablesValid(t *testing.T) {
	tables := defaultTables(t)

	diags := tables.Validate()
	assert.True(t, diags.IsValid())
	assert.Empty(t, diags.Warnings)
	assert.Equal(t, "1", tables.Version())
}

func TestTextureSumsToHundred(t *testing.T) {
	tables := defaultTables(t)

	for _, key := range tables.TextureKeys() {
		e, ok := tables.Texture(key)
		require.True(t, ok, key)
		assert.Equal(t, 100, e.Sum(), key)
		assert.NotEmpty(t, e.Class, key)
	}
}

func TestRockPercent(t *testing.T) {
	tables := defaultTables(t)
	mid, _ := tables.Level(3)
	top, _ := tables.Level(6)

	tests := []struct {
		name    string
		code    string
		amp     soil.Amplifier
		wantPct int
		wantSrc lookup.RockSource
	}{
		{"explicit amplifier", "r", 3, mid, lookup.RockAmplifier},
		{"amplifier overrides type", "kr", 1, 10, lookup.RockAmplifier},
		{"no amplifier type", "kr", 0, mid, lookup.RockMidDefault},
		{"high severity type", "r⁰", 0, top, lookup.RockMaxDefault},
		{"unknown code", "zz", 0, 0, lookup.RockUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, src := tables.RockPercent(tt.code, tt.amp)
			assert.Equal(t, tt.wantPct, pct)
			assert.Equal(t, tt.wantSrc, src)
		})
	}
}

func TestCanonicalLegacyFiller(t *testing.T) {
	tables := defaultTables(t)

	assert.Equal(t, "r⁰", tables.Canonical("r°"))
	assert.Equal(t, "ls", tables.Canonical("ls"))

	got, ok := tables.Legacy("liivsavi")
	assert.True(t, ok)
	assert.Equal(t, "ls", got)

	_, ok = tables.Legacy("ls")
	assert.False(t, ok)

	grit, _ := tables.Legacy("rähk")
	stones, _ := tables.Legacy("kivid")
	assert.Equal(t, "r", grit)
	assert.Equal(t, "k", stones)

	filler, ok := tables.Filler("M")
	assert.True(t, ok)
	assert.Equal(t, "t", filler)

	_, ok = tables.Filler("")
	assert.False(t, ok)
}

func TestFillerExtendedSoilType(t *testing.T) {
	tables := defaultTables(t)

	tests := []struct {
		soilType string
		want     string
		found    bool
	}{
		{"Lkg'", "ls", true},
		{"Kh’g", "ls", true},
		{"Kh'g", "ls", true},
		{"Kr'", "kr", true},
		{"LPg", "sl", true},
		{"Go", "ls", true},
		{"AGx", "s", true},
		{"Z", "", false},
		{"’", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.soilType, func(t *testing.T) {
			got, ok := tables.Filler(tt.soilType)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggest(t *testing.T) {
	tables := defaultTables(t)

	got := tables.Suggest("lss")
	require.NotEmpty(t, got)
	assert.Equal(t, "ls", got[0])
	assert.LessOrEqual(t, len(got), 3)
	assert.Nil(t, tables.Suggest(""))
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing rock", "texture:\n  l: {sand: 90, silt: 5, clay: 5, class: S}\n"},
		{"percentage over 100", "texture:\n  l: {sand: 190, silt: 5, clay: 5, class: S}\nrock:\n  levels: [1,2,3,4,5,6]\n  mid_level: 3\n  max_level: 6\n"},
		{"unknown field", "texture:\n  l: {sand: 90, silt: 5, clay: 5, class: S, colour: red}\nrock:\n  levels: [1,2,3,4,5,6]\n  mid_level: 3\n  max_level: 6\n"},
		{"too few levels", "texture:\n  l: {sand: 90, silt: 5, clay: 5, class: S}\nrock:\n  levels: [1,2]\n  mid_level: 1\n  max_level: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lookup.Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, lookup.ErrInvalidTables)
		})
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := lookup.Parse([]byte("texture: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse tables YAML")
}

func TestValidateReportsBadSums(t *testing.T) {
	data := "texture:\n  l: {sand: 90, silt: 5, clay: 4, class: S}\nrock:\n  levels: [1,2,3,4,5,6]\n  mid_level: 3\n  max_level: 9\n"

	tables, err := lookup.Parse([]byte(data))
	require.NoError(t, err)

	diags := tables.Validate()
	assert.Equal(t, 2, diags.Count(diagnostic.CodeStructuralAnomaly))
	assert.True(t, diags.HasErrors())
}

func TestWriteFileRoundTrip(t *testing.T) {
	tables := defaultTables(t)
	path := filepath.Join(t.TempDir(), "tables.yaml")

	require.NoError(t, lookup.WriteFile(path, tables.Document()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	reloaded, err := lookup.Load(path)
	require.NoError(t, err)
	assert.Equal(t, tables.TextureKeys(), reloaded.TextureKeys())

	_, err = lookup.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
