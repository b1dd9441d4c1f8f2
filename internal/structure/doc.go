// Package structure turns an accepted parse tree into a soil.LayerRecord.
//
// Constituents keep their encounter order. At most one constituent of each
// kind survives: later duplicates and alternate readings after a ',' or '-'
// separator are dropped and reported, never treated as errors.
package structure
