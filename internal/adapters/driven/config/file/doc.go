// Package file provides file-backed driven adapters.
//
// ConfigStore persists settings to $DAIRYGHG_HOME/config.toml as nested
// TOML tables and exposes them as flat dot-notation keys.
package file
