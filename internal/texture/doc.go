// Package texture resolves structured layers into sand, silt, clay and
// rock-fragment percentages using the lookup tables.
//
// Misses never fail: the affected field is zeroed and a lookup_miss
// diagnostic (with close known codes) is recorded.
package texture
