package grammar

import (
	"slices"
	"strings"
)

// Match is a successful parse.
type Match struct {
	Tree     *Node
	Dialect  string
	Priority int
}

// Set is the immutable, ordered dialect table.
type Set struct {
	dialects []Dialect
	byName   map[string]int
}

// NewSet builds every dialect over one shared set of terminals.
func NewSet() *Set {
	t := newTerminals()
	s := &Set{
		dialects: make([]Dialect, len(dialectTable)),
		byName:   make(map[string]int, len(dialectTable)),
	}

	for i, spec := range dialectTable {
		s.dialects[i] = Dialect{Name: spec.name, Priority: i + 1, body: spec.build(t)}
		s.byName[spec.name] = i
	}

	return s
}

// Dialects returns the dialect names in priority order.
func (s *Set) Dialects() []string {
	names := make([]string, len(s.dialects))
	for i, d := range s.dialects {
		names[i] = d.Name
	}

	return names
}

// Dialect returns a dialect by name.
func (s *Set) Dialect(name string) (Dialect, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Dialect{}, false
	}

	return s.dialects[i], true
}

// TryParse matches input against the named dialect only.
func (s *Set) TryParse(input, dialect string) (*Node, bool) {
	d, ok := s.Dialect(dialect)
	if !ok {
		return nil, false
	}

	return d.Parse(input)
}

// MatchAny tries every dialect in priority order and returns the first success.
func (s *Set) MatchAny(input string) (Match, bool) {
	if isBlank(input) {
		return Match{}, false
	}

	for _, d := range s.dialects {
		if tree, ok := d.Parse(input); ok {
			return Match{Tree: tree, Dialect: d.Name, Priority: d.Priority}, true
		}
	}

	return Match{}, false
}

// Matches reports whether any dialect accepts input.
func (s *Set) Matches(input string) bool {
	_, ok := s.MatchAny(input)
	return ok
}

// Accepting returns every dialect that accepts input, in priority order.
func (s *Set) Accepting(input string) []string {
	var names []string

	for _, d := range s.dialects {
		if _, ok := d.Parse(input); ok {
			names = append(names, d.Name)
		}
	}

	return slices.Clip(names)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
