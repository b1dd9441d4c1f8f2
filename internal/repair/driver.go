package repair

import (
	"fmt"
	"io"
	"log/slog"

	"estsoil-loimis/internal/grammar"
	"estsoil-loimis/internal/normalize"
)

// Branch names the decision-tree step that produced an outcome.
type Branch string

const (
	BranchAsIs              Branch = "as_is"
	BranchOverride          Branch = "override"
	BranchBracketInner      Branch = "bracket_inner"
	BranchBracketRemoved    Branch = "bracket_removed"
	BranchBracketKept       Branch = "bracket_kept"
	BranchBracketNormalized Branch = "bracket_normalized"
	BranchNormalized        Branch = "normalized"
	BranchExhausted         Branch = "exhausted"
)

// Matcher accepts or rejects a candidate string.
type Matcher interface {
	MatchAny(input string) (grammar.Match, bool)
}

// Config bounds the driver.
type Config struct {
	// MaxRounds is the number of decision-tree passes Run may make.
	MaxRounds int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{MaxRounds: 4}
}

// Attempt is one candidate handed to the matcher.
type Attempt struct {
	Round    int
	Branch   Branch
	Text     string
	Accepted bool
}

// Outcome is the result of repairing one layer string.
type Outcome struct {
	// Text is the accepted candidate, or the best candidate on failure.
	Text string
	// Err is 0 on success and 1 when every branch was exhausted.
	Err    int
	Branch Branch
	Rounds int
	Match  grammar.Match
	// Attempts lists every candidate in the order tried.
	Attempts []Attempt
}

// OK reports whether the outcome carries an accepted parse.
func (o Outcome) OK() bool {
	return o.Err == 0
}

// Trace renders the branch, prefixed with the round when more than one was needed.
func (o Outcome) Trace() string {
	if o.Rounds > 1 {
		return fmt.Sprintf("r%d/%s", o.Rounds, o.Branch)
	}

	return string(o.Branch)
}

// Driver runs the repair decision tree. It is stateless between calls.
type Driver struct {
	matcher Matcher
	norm    *normalize.Normalizer
	config  Config
	logger  *slog.Logger
}

// NewDriver creates a Driver.
func NewDriver(matcher Matcher, norm *normalize.Normalizer, config Config, logger *slog.Logger) *Driver {
	if config.MaxRounds <= 0 {
		config.MaxRounds = DefaultConfig().MaxRounds
	}

	if norm == nil {
		norm = normalize.New(nil)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Driver{
		matcher: matcher,
		norm:    norm,
		config:  config,
		logger:  logger.With(slog.String("component", "repair")),
	}
}

// Run repairs e, re-running the decision tree on the best candidate until a
// dialect accepts it, no progress is made or MaxRounds passes are spent.
func (d *Driver) Run(e string) Outcome {
	var (
		attempts []Attempt
		current  = e
		round    int
	)

	for round = 1; round <= d.config.MaxRounds; round++ {
		p := d.pass(current, round, &attempts)
		if p.accepted {
			out := Outcome{
				Text:     p.text,
				Branch:   p.branch,
				Rounds:   round,
				Match:    p.match,
				Attempts: attempts,
			}

			d.logger.Debug("repaired",
				slog.String("input", e),
				slog.String("text", out.Text),
				slog.String("trace", out.Trace()),
				slog.String("dialect", out.Match.Dialect))

			return out
		}

		if p.text == current {
			break
		}

		current = p.text
	}

	d.logger.Debug("repair exhausted",
		slog.String("input", e),
		slog.String("best", current),
		slog.Int("attempts", len(attempts)))

	return Outcome{
		Text:     current,
		Err:      1,
		Branch:   BranchExhausted,
		Rounds:   min(round, d.config.MaxRounds),
		Attempts: attempts,
	}
}

// Repair makes a single decision-tree pass over e.
func (d *Driver) Repair(e string) Outcome {
	var attempts []Attempt

	p := d.pass(e, 1, &attempts)
	if p.accepted {
		return Outcome{Text: p.text, Branch: p.branch, Rounds: 1, Match: p.match, Attempts: attempts}
	}

	return Outcome{Text: p.text, Err: 1, Branch: BranchExhausted, Rounds: 1, Attempts: attempts}
}

// passResult is an accepted candidate, or the best rejected one.
type passResult struct {
	text     string
	branch   Branch
	match    grammar.Match
	accepted bool
}

// pass walks the decision tree once. Each branch is tried at most once and
// the first accepted candidate ends the pass.
func (d *Driver) pass(e string, round int, attempts *[]Attempt) passResult {
	try := func(candidate string, branch Branch) (passResult, bool) {
		m, ok := d.matcher.MatchAny(candidate)
		*attempts = append(*attempts, Attempt{Round: round, Branch: branch, Text: candidate, Accepted: ok})

		return passResult{text: candidate, branch: branch, match: m, accepted: ok}, ok
	}

	base := BranchAsIs
	if overridden := d.norm.Override(e); overridden != e {
		e, base = overridden, BranchOverride
	}

	b, hasBracket := normalize.FindBracket(e)
	if !hasBracket {
		if r, ok := try(e, base); ok {
			return r
		}

		r, _ := try(d.normalized(e), BranchNormalized)

		return r
	}

	if _, innerOK := d.matcher.MatchAny(b.Inner); innerOK {
		if r, ok := try(b.Unwrapped(), BranchBracketInner); ok {
			return r
		}

		if r, ok := try(b.Removed(), BranchBracketRemoved); ok {
			return r
		}
	} else {
		if r, ok := try(b.Removed(), BranchBracketRemoved); ok {
			return r
		}

		if r, ok := try(b.Unwrapped(), BranchBracketKept); ok {
			return r
		}
	}

	r, _ := try(d.normalized(b.Removed()), BranchBracketNormalized)

	return r
}

// normalized is the override, alternate-stripping and normalizer step.
// Cleanup runs once per pass; a second pass is a new round.
func (d *Driver) normalized(s string) string {
	return normalize.Prepare(normalize.StripAlternates(d.norm.Override(s)))
}
