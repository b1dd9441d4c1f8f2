package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmbedded(t *testing.T) {
	tables, err := Parse(defaultTables)
	require.NoError(t, err)

	e, ok := tables.Texture("ls")
	require.True(t, ok)
	assert.Equal(t, 100, e.Sum())
}

func TestValidateSchemaNumbers(t *testing.T) {
	raw := map[string]any{
		"texture": map[string]any{
			"ls": map[string]any{"sand": 45, "silt": 35, "clay": 20, "class": "L"},
		},
		"rock": map[string]any{
			"levels":    []any{10, 20, 35, 50, 70, 90},
			"mid_level": 3,
			"max_level": 6,
		},
	}
	require.NoError(t, validateSchema(raw))

	raw["texture"].(map[string]any)["ls"].(map[string]any)["sand"] = 120
	assert.Error(t, validateSchema(raw))

	raw["texture"].(map[string]any)["ls"].(map[string]any)["sand"] = 4.5
	assert.Error(t, validateSchema(raw))
}
