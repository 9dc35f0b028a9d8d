// Package config loads, normalizes, and validates the TOML configuration that
// drives furrowd and the furrow CLI.
//
// Configuration resolution order: explicit --config path, then
// ~/.config/furrow/config.toml, then ./furrow.toml. Missing files fall back to
// repository defaults so read-only commands work on a fresh install.
package config
