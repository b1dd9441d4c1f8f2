// Package soil defines the data model shared by every stage of the texture-code
// compiler: constituents, depth specifications, per-layer records, whole-profile
// records and the resolved numeric layers handed to downstream writers.
//
// All values are created fresh per input string and are not mutated after
// construction.
package soil
