// Package diagnostic collects the non-fatal findings produced while compiling
// texture codes.
//
// Nothing recorded here aborts processing: record-level problems are gathered
// per record and surfaced as counters, log lines and an optional report.
//
// Codes:
//   - empty_input: null, blank or no_info texture code
//   - unparsed_input: no grammar dialect accepted a layer after repair
//   - lookup_miss: a code/amplifier combination absent from the tables
//   - structural_anomaly: duplicate kinds, percentage sums, dropped layers
package diagnostic
