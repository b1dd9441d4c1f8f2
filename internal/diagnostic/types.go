package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"estsoil-loimis/internal/common"
)

// Diagnostic codes.
const (
	CodeEmptyInput        = "empty_input"
	CodeUnparsedInput     = "unparsed_input"
	CodeLookupMiss        = "lookup_miss"
	CodeStructuralAnomaly = "structural_anomaly"
)

// Diagnostics holds all diagnostic information for one record or table file.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is one of the Code* constants.
	Code string
	// Message is the human-readable description.
	Message string
	// Record identifies the source record (if any).
	Record string
	// Layer is the 1-based layer number, 0 when the finding is record-wide.
	Layer int
	// Suggestions are known codes close to an unrecognized one.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, record string, layer int) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Record:   record,
		Layer:    layer,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, record string, layer int, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Record:      record,
		Layer:       layer,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, record string, layer int) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Record:   record,
		Layer:    layer,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// SetRecord stamps every diagnostic that has no record with id.
func (d *Diagnostics) SetRecord(id string) {
	for _, list := range []*[]Diagnostic{&d.Errors, &d.Warnings, &d.Infos} {
		for i := range *list {
			if (*list)[i].Record == "" {
				(*list)[i].Record = id
			}
		}
	}
}

// Count returns how many diagnostics of any severity carry code.
func (d *Diagnostics) Count(code string) int {
	n := 0

	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			if diag.Code == code {
				n++
			}
		}
	}

	return n
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Log writes every diagnostic to logger at its severity level.
func (d *Diagnostics) Log(logger *slog.Logger) {
	if logger == nil {
		return
	}

	for _, diag := range d.All() {
		attrs := []any{slog.String("code", diag.Code)}
		if diag.Record != "" {
			attrs = append(attrs, slog.String("record", diag.Record))
		}

		if diag.Layer > 0 {
			attrs = append(attrs, slog.Int("layer", diag.Layer))
		}

		if len(diag.Suggestions) > 0 {
			attrs = append(attrs, slog.Any("suggestions", diag.Suggestions))
		}

		logger.Log(context.Background(), diag.Severity.level(), diag.Message, attrs...)
	}
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Record != "" {
		prefix = append(prefix, "["+d.Record+"]")
	}

	if d.Layer > 0 {
		prefix = append(prefix, fmt.Sprintf("layer %d", d.Layer))
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
