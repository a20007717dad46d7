// Package config loads and validates harvester configuration.
//
// Configuration is YAML with ${VAR} environment expansion. Defaults are
// applied for every optional field, so a minimal config only needs an
// instance id and an output destination.
package config
