// Package config loads the compiler's YAML configuration.
//
// A config file is optional. Values it sets override Default; values left
// out keep their defaults. Command-line flags are merged on top with Merge.
package config
