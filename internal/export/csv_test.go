package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/internal/pipeline"
	"estsoil-loimis/soil"
)

var cols = Columns{ID: "id", Code: "loimis", SoilType: "siffer"}

func TestReadRecords(t *testing.T) {
	in := "\ufeffid,siffer,loimis\n" +
		"1,Kh,ls\n" +
		"2,M,\n" +
		"3,G,NULL\n" +
		"4,,\"sl, ls\"\n"

	recs, err := ReadRecords(strings.NewReader(in), cols)
	require.NoError(t, err)

	assert.Equal(t, []pipeline.Record{
		{ID: "1", Code: "ls", SoilType: "Kh"},
		{ID: "2", Null: true, SoilType: "M"},
		{ID: "3", Null: true, SoilType: "G"},
		{ID: "4", Code: "sl, ls"},
	}, recs)
}

func TestReadRecordsOptionalSoilType(t *testing.T) {
	recs, err := ReadRecords(strings.NewReader("id,loimis\na,s\n"), cols)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].SoilType)
}

func TestReadRecordsMissingColumn(t *testing.T) {
	_, err := ReadRecords(strings.NewReader("id,code\n1,ls\n"), cols)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadRecordsEmpty(t *testing.T) {
	recs, err := ReadRecords(strings.NewReader(""), cols)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestHeader(t *testing.T) {
	h := Header(2)

	assert.Equal(t, []string{"id", "layer_count", "total_depth_mm", "depth_mm_1"}, h[:4])
	assert.Contains(t, h, "raw_code_2")
	assert.NotContains(t, h, "raw_code_3")
	assert.Equal(t, "peat_depth_mm", h[len(h)-1])
	assert.Len(t, h, 3+2*len(layerFields)+6)
}

func TestWriteRows(t *testing.T) {
	rows := []pipeline.Row{
		{
			ID:           "1",
			Status:       soil.StatusSuccess,
			Repaired:     "t30/ls",
			LayerCount:   2,
			TotalDepthMM: 1000,
			Layers: []soil.ResolvedLayer{
				{DepthMM: 300, ClayPct: 40, SiltPct: 40, SandPct: 20, TextureClass: "O", RawFineEarthCode: "t"},
				{DepthMM: 1000, ClayPct: 20, SiltPct: 35, SandPct: 45, TextureClass: "L", RawFineEarthCode: "ls"},
			},
			ParseTrace:  "L1:as_is;L2:as_is",
			PeatCode:    "t",
			PeatDepthMM: 300,
		},
		{ID: "2", Status: soil.StatusEmptyInput, ParseTrace: "empty"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows, 4))

	lines, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 3)

	header := lines[0]
	at := func(line []string, name string) string {
		for i, h := range header {
			if h == name {
				return line[i]
			}
		}

		t.Fatalf("no column %s", name)

		return ""
	}

	assert.Equal(t, "2", at(lines[1], "layer_count"))
	assert.Equal(t, "300", at(lines[1], "depth_mm_1"))
	assert.Equal(t, "ls", at(lines[1], "raw_code_2"))
	assert.Equal(t, "", at(lines[1], "raw_code_3"))
	assert.Equal(t, "Success", at(lines[1], "status"))
	assert.Equal(t, "300", at(lines[1], "peat_depth_mm"))

	assert.Equal(t, "EmptyInput", at(lines[2], "status"))
	assert.Equal(t, "0", at(lines[2], "total_depth_mm"))
	assert.Equal(t, "", at(lines[2], "peat_depth_mm"))
}

func TestWriteDiagnostics(t *testing.T) {
	var d diagnostic.Diagnostics
	d.AddWarning(diagnostic.CodeLookupMiss, "unknown code", "7", 2, "ls", "sl")

	var buf bytes.Buffer
	require.NoError(t, WriteDiagnostics(&buf, []pipeline.Row{{ID: "7", Diagnostics: d}}))

	lines, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"7", "2", "warning", "lookup_miss", "unknown code", "ls sl"}, lines[1])
}
