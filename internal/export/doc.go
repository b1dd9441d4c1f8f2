// Package export reads batch input records and writes compiled rows as CSV.
//
// The output has one row per record and a fixed set of columns per layer
// slot, so profiles with fewer layers leave trailing slots blank.
package export
