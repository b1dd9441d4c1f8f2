// Package lookup holds the static lookup tables used to turn structured
// texture codes into numbers: fine-earth and peat texture percentages, the
// rock-fragment severity scale, alternate spellings and legacy substitutions.
//
// Tables are loaded once, validated against an embedded JSON schema and are
// read-only afterwards; a *Tables value is safe for concurrent use.
//
// Key functions:
//   - Default: the embedded tables
//   - Load / Parse: tables from a YAML file or bytes
//   - (*Tables).Texture, RockPercent: numeric lookups
//   - (*Tables).Suggest: closest known codes for a miss
package lookup
