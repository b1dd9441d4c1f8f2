package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"estsoil-loimis/soil"
)

// Summary aggregates a batch run.
type Summary struct {
	Records     int
	ParseErrors int
	Warnings    int
	ByStatus    map[string]int
	ByDialect   map[string]int
}

func newSummary() Summary {
	return Summary{
		ByStatus:  make(map[string]int),
		ByDialect: make(map[string]int),
	}
}

// Add folds one row into the summary.
func (s *Summary) Add(row Row) {
	s.Records++
	s.ParseErrors += row.ParseErrorCount
	s.Warnings += len(row.Diagnostics.Warnings)
	s.ByStatus[row.Status.String()]++

	for _, d := range row.Dialects {
		s.ByDialect[d]++
	}
}

// String renders a one-line summary.
func (s Summary) String() string {
	return fmt.Sprintf("%d records, %d parse errors, %d warnings (success=%d empty=%d error=%d)",
		s.Records, s.ParseErrors, s.Warnings,
		s.ByStatus[soil.StatusSuccess.String()],
		s.ByStatus[soil.StatusEmptyInput.String()],
		s.ByStatus[soil.StatusParseError.String()])
}

// RunBatch compiles records on up to workers goroutines (0 means GOMAXPROCS).
// Rows keep the input order. Only context cancellation ends a batch early.
func (c *Compiler) RunBatch(ctx context.Context, records []Record, workers int) ([]Row, Summary, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rows := make([]Row, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range records {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rows[i] = c.Compile(records[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Summary{}, fmt.Errorf("batch cancelled: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, Summary{}, fmt.Errorf("batch cancelled: %w", err)
	}

	summary := newSummary()
	for _, row := range rows {
		summary.Add(row)
	}

	return rows, summary, nil
}
