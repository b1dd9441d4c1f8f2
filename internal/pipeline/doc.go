// Package pipeline compiles one texture code into one output row and runs
// that compilation over record batches.
//
// Compile is a pure function of its record and the read-only tables and
// grammar set held by the Compiler, so a single Compiler may be shared by any
// number of goroutines. RunBatch does exactly that with a bounded worker pool.
package pipeline
