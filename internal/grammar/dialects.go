package grammar

// Dialect names in priority order.
const (
	DialectCanonical        = "canonical"
	DialectSkeletonRun      = "skeleton_run"
	DialectFineRun          = "fine_run"
	DialectFineThenSkeleton = "fine_then_skeleton"
	DialectPeatThenSkeleton = "peat_then_skeleton"
	DialectFineThenPeat     = "fine_then_peat"
	DialectDepthFirst       = "depth_first"
	DialectAlternates       = "alternates"
	DialectSpaced           = "spaced"
	DialectFreeOrder        = "free_order"
)

// Dialect is one accepted ordering of constituents.
type Dialect struct {
	Name     string
	Priority int
	body     expr
}

// Parse matches input against this dialect alone.
func (d Dialect) Parse(input string) (*Node, bool) {
	if isBlank(input) {
		return nil, false
	}

	m := newMatchState(input)
	if !m.eval(capture{NodeLayer, seq{d.body, end{}}}) {
		return nil, false
	}

	return m.result()[0], true
}

type dialectSpec struct {
	name  string
	build func(t terminals) expr
}

// dialectTable is the fixed priority order: the common dialects first, the
// catch-all last. No dialect is tried after the first success.
var dialectTable = []dialectSpec{
	{DialectCanonical, func(t terminals) expr {
		return seq{opt{t.skeleton}, opt{t.peat}, opt{t.fineEarth}}
	}},
	{DialectSkeletonRun, func(t terminals) expr {
		return seq{plus{t.skeleton}, opt{t.peat}, opt{t.fineEarth}}
	}},
	{DialectFineRun, func(t terminals) expr {
		return seq{star{t.skeleton}, opt{t.peat}, t.fineEarth, plus{t.fineEarth}}
	}},
	{DialectFineThenSkeleton, func(t terminals) expr {
		return seq{t.fineEarth, plus{t.skeleton}, opt{t.peat}}
	}},
	{DialectPeatThenSkeleton, func(t terminals) expr {
		return seq{t.peat, plus{t.skeleton}, opt{t.fineEarth}}
	}},
	{DialectFineThenPeat, func(t terminals) expr {
		return seq{t.fineEarth, t.peat, opt{t.skeleton}}
	}},
	{DialectDepthFirst, func(t terminals) expr {
		return seq{t.depth, t.unit}
	}},
	{DialectAlternates, func(t terminals) expr {
		spaces := star{literal(" ")}
		sep := capture{NodeAlternate, seq{spaces, lits(",", "-"), spaces}}

		return seq{t.unit, plus{seq{sep, t.unit}}}
	}},
	{DialectSpaced, func(t terminals) expr {
		return seq{t.constituent, plus{seq{plus{literal(" ")}, t.constituent}}}
	}},
	{DialectFreeOrder, func(t terminals) expr {
		return plus{t.constituent}
	}},
}
