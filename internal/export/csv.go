package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"estsoil-loimis/internal/pipeline"
	"estsoil-loimis/soil"
)

// ErrMissingColumn is returned when a required input column is absent.
var ErrMissingColumn = errors.New("missing column")

// Columns names the input columns. SoilType is optional.
type Columns struct {
	ID       string
	Code     string
	SoilType string
}

var layerFields = []string{
	"depth_mm", "clay_pct", "silt_pct", "sand_pct", "rock_pct",
	"texture_class", "rock_type", "raw_code",
}

// ReadRecords reads a headed CSV. An empty or NULL code cell becomes a Null record.
func ReadRecords(r io.Reader, cols Columns) ([]pipeline.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}

	idCol, ok := index[cols.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.ID)
	}

	codeCol, ok := index[cols.Code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.Code)
	}

	typeCol := -1
	if i, ok := index[cols.SoilType]; ok && cols.SoilType != "" {
		typeCol = i
	}

	var records []pipeline.Record

	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		rec := pipeline.Record{
			ID:       cell(fields, idCol),
			Code:     cell(fields, codeCol),
			SoilType: strings.TrimSpace(cell(fields, typeCol)),
		}
		rec.Null = isNull(rec.Code)

		if rec.Null {
			rec.Code = ""
		}

		records = append(records, rec)
	}

	return records, nil
}

func cell(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}

	return fields[i]
}

func isNull(s string) bool {
	s = strings.TrimSpace(s)

	return s == "" || strings.EqualFold(s, "null")
}

// Header returns the output column names for maxLayers layer slots.
func Header(maxLayers int) []string {
	h := []string{"id", "layer_count", "total_depth_mm"}

	for i := 1; i <= maxLayers; i++ {
		for _, f := range layerFields {
			h = append(h, f+"_"+strconv.Itoa(i))
		}
	}

	return append(h,
		"parse_error_count", "parse_trace", "status",
		"repaired_code", "peat_code", "peat_depth_mm",
	)
}

// WriteRows writes the header followed by one line per row.
func WriteRows(w io.Writer, rows []pipeline.Row, maxLayers int) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header(maxLayers)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if err := cw.Write(record(row, maxLayers)); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func record(row pipeline.Row, maxLayers int) []string {
	out := []string{
		row.ID,
		strconv.Itoa(row.LayerCount),
		uint32Str(row.TotalDepthMM),
	}

	for i := range maxLayers {
		if i < len(row.Layers) {
			out = append(out, layer(row.Layers[i])...)
		} else {
			out = append(out, make([]string, len(layerFields))...)
		}
	}

	peatDepth := ""
	if row.PeatCode != "" {
		peatDepth = uint32Str(row.PeatDepthMM)
	}

	return append(out,
		strconv.Itoa(row.ParseErrorCount),
		row.ParseTrace,
		row.Status.String(),
		row.Repaired,
		row.PeatCode,
		peatDepth,
	)
}

func layer(l soil.ResolvedLayer) []string {
	return []string{
		uint32Str(l.DepthMM),
		strconv.Itoa(int(l.ClayPct)),
		strconv.Itoa(int(l.SiltPct)),
		strconv.Itoa(int(l.SandPct)),
		strconv.Itoa(int(l.RockPct)),
		l.TextureClass,
		l.RockType,
		l.RawFineEarthCode,
	}
}

func uint32Str(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// WriteDiagnostics writes every row's diagnostics as record, layer, severity, code, message.
func WriteDiagnostics(w io.Writer, rows []pipeline.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "layer", "severity", "code", "message", "suggestions"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		for _, d := range row.Diagnostics.All() {
			err := cw.Write([]string{
				row.ID,
				strconv.Itoa(d.Layer),
				d.Severity.String(),
				d.Code,
				d.Message,
				strings.Join(d.Suggestions, " "),
			})
			if err != nil {
				return fmt.Errorf("failed to write diagnostics for %s: %w", row.ID, err)
			}
		}
	}

	cw.Flush()

	return cw.Error()
}
