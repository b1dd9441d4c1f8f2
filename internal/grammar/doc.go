// Package grammar holds the texture-code dialect grammars and the matcher
// that tries them in priority order.
//
// Grammars are parsing expression grammars (ordered choice, no ambiguity)
// built from one shared set of terminals. Each dialect is one entry in an
// ordered table; every dialect must consume the whole input.
//
// Key types:
//   - Set: the immutable dialect table, safe for concurrent use
//   - Node: the parse tree, tagged by NodeKind
//   - Match: a successful parse plus the dialect that produced it
package grammar
