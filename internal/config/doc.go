// Package config loads and validates framepipe configuration from TOML.
// Tool path overrides travel inside the loaded Config value rather than
// process-wide state so every pipeline run is reproducible in tests.
package config
