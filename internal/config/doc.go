// Package config loads and validates pitopd configuration.
//
// Configuration comes from a TOML file (default ~/.config/pitopd/config.toml)
// with repository defaults filling any gap, plus a small set of environment
// overrides. A missing file is not an error; the daemon runs on defaults.
package config
