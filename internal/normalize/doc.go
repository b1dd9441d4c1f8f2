// Package normalize rewrites raw texture-code strings into forms the grammar
// set is more likely to accept.
//
// Every function here is total: it never fails, it only rewrites. The full
// Normalize pipeline is not idempotent; callers re-run it between repair
// rounds.
//
// Key functions:
//   - Normalizer.Normalize: legacy substitution, cleanup, subscript collapse, bracket consolidation
//   - Normalizer.SplitLayers: column reduction and layer split
//   - Prepare: the per-layer pre-pass run before the first parse attempt
//   - StripAlternates: drop comma alternates and an unclosed bracket tail
package normalize
