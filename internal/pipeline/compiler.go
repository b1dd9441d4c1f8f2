package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"estsoil-loimis/internal/common"
	"estsoil-loimis/internal/depth"
	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/internal/grammar"
	"estsoil-loimis/internal/lookup"
	"estsoil-loimis/internal/normalize"
	"estsoil-loimis/internal/repair"
	"estsoil-loimis/internal/structure"
	"estsoil-loimis/internal/texture"
	"estsoil-loimis/soil"
)

const (
	traceEmpty  = "empty"
	traceFiller = "filler"
	traceSep    = ";"
)

// Record is one input row.
type Record struct {
	ID string
	// Code is the raw texture code; Null marks a missing value.
	Code string
	Null bool
	// SoilType selects a default texture when Code is empty.
	SoilType string
}

// Row is one output row.
type Row struct {
	ID           string
	Status       soil.ParseStatus
	RawCode      string
	Repaired     string
	LayerCount   int
	TotalDepthMM uint32
	Layers       []soil.ResolvedLayer
	// ParseErrorCount is the number of layers that stayed unparsed.
	ParseErrorCount int
	ParseTrace      string
	Dialects        []string
	PeatCode        string
	PeatDepthMM     uint32
	Diagnostics     diagnostic.Diagnostics
}

// Options configures a Compiler.
type Options struct {
	MaxRounds      int
	DefaultDepthMM uint32
	MaxLayers      int
}

// DefaultOptions returns the standard options.
func DefaultOptions() Options {
	dc := depth.DefaultConfig()

	return Options{
		MaxRounds:      repair.DefaultConfig().MaxRounds,
		DefaultDepthMM: dc.DefaultDepthMM,
		MaxLayers:      dc.MaxLayers,
	}
}

// Compiler wires the stages together. It is immutable after New.
type Compiler struct {
	tables     *lookup.Tables
	set        *grammar.Set
	norm       *normalize.Normalizer
	driver     *repair.Driver
	structurer *structure.Structurer
	depths     *depth.Resolver
	texture    *texture.Resolver
	opts       Options
	logger     *slog.Logger
}

// New builds a Compiler over tables. The grammar set is built here, once.
func New(tables *lookup.Tables, opts Options, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	set := grammar.NewSet()
	norm := normalize.New(tables)

	return &Compiler{
		tables:     tables,
		set:        set,
		norm:       norm,
		driver:     repair.NewDriver(set, norm, repair.Config{MaxRounds: opts.MaxRounds}, logger),
		structurer: structure.New(tables, logger),
		depths:     depth.NewResolver(depth.Config{DefaultDepthMM: opts.DefaultDepthMM, MaxLayers: opts.MaxLayers}, logger),
		texture:    texture.NewResolver(tables, opts.MaxLayers, logger),
		opts:       opts,
		logger:     logger.With(slog.String("component", "pipeline")),
	}
}

// Grammar returns the compiler's dialect set.
func (c *Compiler) Grammar() *grammar.Set {
	return c.set
}

// Parsed is the structured form of one code plus its repair history.
type Parsed struct {
	Profile  soil.SoilProfile
	Outcomes []repair.Outcome
	Repaired []string
	Trace    []string
	Errors   int
	Diags    diagnostic.Diagnostics
}

// Parse splits, repairs and structures raw without resolving numbers.
func (c *Compiler) Parse(raw string) Parsed {
	var p Parsed

	p.Profile.Raw = raw

	for i, text := range c.norm.SplitLayers(raw) {
		n := i + 1

		if text == "" || text == soil.NoInfo {
			p.Profile.Layers = append(p.Profile.Layers, soil.LayerRecord{})
			p.Repaired = append(p.Repaired, text)
			p.Trace = append(p.Trace, fmt.Sprintf("L%d:%s", n, traceEmpty))

			continue
		}

		out := c.driver.Run(normalize.Prepare(text))
		p.Outcomes = append(p.Outcomes, out)
		p.Trace = append(p.Trace, fmt.Sprintf("L%d:%s", n, out.Trace()))

		if !out.OK() {
			p.Errors++
			p.Diags.AddError(diagnostic.CodeUnparsedInput,
				fmt.Sprintf("no dialect accepts %q after repair (best %q)", text, out.Text), "", n)
			p.Profile.Layers = append(p.Profile.Layers, soil.LayerRecord{})
			p.Repaired = append(p.Repaired, soil.NoInfo)

			continue
		}

		rec, diags := c.structurer.Structure(out.Match.Tree, n)
		p.Diags.Merge(diags)
		p.Profile.Layers = append(p.Profile.Layers, rec)
		p.Repaired = append(p.Repaired, out.Text)
	}

	p.Profile.Status = soil.StatusSuccess
	if p.Errors > 0 {
		p.Profile.Status = soil.StatusParseError
	}

	return p
}

// Compile turns one record into one row. It never fails.
func (c *Compiler) Compile(rec Record) Row {
	row := c.compile(rec)
	row.Diagnostics.SetRecord(rec.ID)
	row.Diagnostics.Log(c.logger)

	return row
}

func (c *Compiler) compile(rec Record) Row {
	code := strings.TrimSpace(rec.Code)

	var trace []string

	if rec.Null || isEmptyCode(code) {
		filler, ok := c.tables.Filler(rec.SoilType)
		if !ok {
			return c.emptyRow(rec)
		}

		code = filler
		trace = append(trace, traceFiller)
	}

	p := c.Parse(code)
	if common.IsEmpty(p.Profile.NonEmpty()) && p.Errors == 0 {
		return c.emptyRow(rec)
	}

	row := Row{
		ID:              rec.ID,
		Status:          p.Profile.Status,
		RawCode:         rec.Code,
		Repaired:        strings.Join(p.Repaired, normalize.LayerSeparator),
		ParseErrorCount: p.Errors,
		ParseTrace:      strings.Join(append(trace, p.Trace...), traceSep),
		Diagnostics:     p.Diags,
	}

	for _, out := range p.Outcomes {
		if out.OK() {
			row.Dialects = append(row.Dialects, out.Match.Dialect)
		}
	}

	if common.IsEmpty(p.Profile.NonEmpty()) {
		c.sentinel(&row)
		return row
	}

	c.resolve(&row, p.Profile)

	return row
}

// resolve fills the numeric part of row from a profile with at least one layer.
func (c *Compiler) resolve(row *Row, profile soil.SoilProfile) {
	depths, dd := c.depths.Resolve(profile)
	layers, td := c.texture.Resolve(profile)

	row.Diagnostics.Merge(dd)
	row.Diagnostics.Merge(td)

	row.LayerCount = depths.LayerCount
	row.TotalDepthMM = depths.TotalMM()
	row.Layers = make([]soil.ResolvedLayer, 0, depths.LayerCount)

	for k, idx := range depths.Kept {
		if idx >= len(layers) {
			row.Diagnostics.AddWarning(diagnostic.CodeStructuralAnomaly,
				fmt.Sprintf("layer count mismatch: depth layer %d has no texture", idx+1), "", idx+1)

			continue
		}

		l := layers[idx]
		l.DepthMM = depths.DepthsMM[k]
		row.Layers = append(row.Layers, l)
	}

	last, ok := common.Last(row.Layers)
	if !ok {
		c.sentinel(row)
		return
	}

	row.LayerCount = len(row.Layers)
	row.TotalDepthMM = last.DepthMM

	row.PeatCode, row.PeatDepthMM = organicHorizon(profile)
}

// organicHorizon returns the key and thickness of the first peat constituent.
func organicHorizon(profile soil.SoilProfile) (string, uint32) {
	for _, l := range profile.NonEmpty() {
		for _, c := range l.Constituents {
			if c.Kind != soil.KindPeat {
				continue
			}

			var mm uint32
			if c.Depth != nil {
				mm = c.Depth.Thickness()
			}

			return c.Key(), mm
		}
	}

	return "", 0
}

// sentinel resets row to one default layer with zero percentages.
func (c *Compiler) sentinel(row *Row) {
	row.LayerCount = 1
	row.TotalDepthMM = c.opts.DefaultDepthMM
	row.Layers = []soil.ResolvedLayer{{DepthMM: c.opts.DefaultDepthMM, RawFineEarthCode: soil.NoInfo}}
	row.PeatCode, row.PeatDepthMM = "", 0
}

func (c *Compiler) emptyRow(rec Record) Row {
	row := Row{
		ID:         rec.ID,
		Status:     soil.StatusEmptyInput,
		RawCode:    rec.Code,
		Repaired:   soil.NoInfo,
		ParseTrace: traceEmpty,
	}

	row.Diagnostics.AddInfo(diagnostic.CodeEmptyInput, "texture code is empty", "", 0)
	c.sentinel(&row)

	return row
}

func isEmptyCode(code string) bool {
	return code == "" || code == soil.NoInfo
}
