// Package repair coerces a malformed single-layer texture code into a form
// some grammar dialect accepts.
//
// One pass walks a fixed decision tree of rewrites (legacy override, bracket
// handling, normalization) and stops at the first candidate the matcher
// accepts. Run repeats the pass on its best candidate for a bounded number of
// rounds because normalization is not idempotent. Repair never fails: an
// unrepairable code comes back with Err set and the exhausted branch.
package repair
