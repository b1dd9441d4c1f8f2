// Package depth assigns a thickness and cumulative depth to every layer of a
// structured profile.
//
// Layers with an explicit depth contribute it (a range contributes its
// midpoint). Layers without one are filled by one of two rules, chosen by the
// explicit total: an even split of what remains of the default profile depth,
// or a tenth of the explicit total once that total already reaches the
// default. Both rules are kept as-is pending domain clarification.
package depth
