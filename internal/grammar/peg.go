package grammar

import (
	"strings"
	"unicode/utf8"
)

// expr is one parsing expression. match reports success and, on success,
// leaves the state positioned after the consumed input.
type expr interface {
	match(m *matchState) bool
}

// matchState is the mutable cursor of one parse. It is never shared.
type matchState struct {
	input  string
	pos    int
	frames [][]*Node
}

func newMatchState(input string) *matchState {
	return &matchState{input: input, frames: [][]*Node{nil}}
}

// eval runs e and rewinds position and collected nodes when it fails.
func (m *matchState) eval(e expr) bool {
	pos := m.pos
	top := len(m.frames) - 1
	n := len(m.frames[top])

	if e.match(m) {
		return true
	}

	m.pos = pos
	m.frames[top] = m.frames[top][:n]

	return false
}

func (m *matchState) rest() string {
	return m.input[m.pos:]
}

func (m *matchState) atEnd() bool {
	return m.pos >= len(m.input)
}

func (m *matchState) emit(n *Node) {
	top := len(m.frames) - 1
	m.frames[top] = append(m.frames[top], n)
}

func (m *matchState) result() []*Node {
	return m.frames[0]
}

type literal string

func (l literal) match(m *matchState) bool {
	if !strings.HasPrefix(m.rest(), string(l)) {
		return false
	}

	m.pos += len(l)

	return true
}

// runeSet matches one rune from the set.
type runeSet string

func (s runeSet) match(m *matchState) bool {
	if m.atEnd() {
		return false
	}

	r, size := utf8.DecodeRuneInString(m.rest())
	if !strings.ContainsRune(string(s), r) {
		return false
	}

	m.pos += size

	return true
}

type end struct{}

func (end) match(m *matchState) bool {
	return m.atEnd()
}

type seq []expr

func (s seq) match(m *matchState) bool {
	for _, e := range s {
		if !m.eval(e) {
			return false
		}
	}

	return true
}

type alt []expr

func (a alt) match(m *matchState) bool {
	for _, e := range a {
		if m.eval(e) {
			return true
		}
	}

	return false
}

type opt struct{ e expr }

func (o opt) match(m *matchState) bool {
	m.eval(o.e)
	return true
}

type star struct{ e expr }

func (s star) match(m *matchState) bool {
	for {
		pos := m.pos
		if !m.eval(s.e) || m.pos == pos {
			return true
		}
	}
}

type plus struct{ e expr }

func (p plus) match(m *matchState) bool {
	if !m.eval(p.e) {
		return false
	}

	return star(p).match(m)
}

// not is a negative lookahead; it never consumes input.
type not struct{ e expr }

func (n not) match(m *matchState) bool {
	pos := m.pos
	top := len(m.frames) - 1
	count := len(m.frames[top])

	ok := m.eval(n.e)

	m.pos = pos
	m.frames[top] = m.frames[top][:count]

	return !ok
}

// capture wraps a successful match of e in a Node of the given kind.
type capture struct {
	kind NodeKind
	e    expr
}

func (c capture) match(m *matchState) bool {
	start := m.pos

	m.frames = append(m.frames, nil)
	ok := m.eval(c.e)
	children := m.frames[len(m.frames)-1]
	m.frames = m.frames[:len(m.frames)-1]

	if !ok {
		return false
	}

	m.emit(&Node{
		Kind:     c.kind,
		Text:     m.input[start:m.pos],
		Start:    start,
		End:      m.pos,
		Children: children,
	})

	return true
}

func lits(values ...string) alt {
	out := make(alt, len(values))
	for i, v := range values {
		out[i] = literal(v)
	}

	return out
}
