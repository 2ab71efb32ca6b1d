// Package sources wires the built-in emission-source models.
//
// Each model lives in its own subpackage (enteric, manure, soil, energy,
// inputs) and implements driven.SourceModel. Models are built from
// generic config maps so factor overrides can come straight from the
// TOML config store ("models.<source>.<factor>").
package sources
