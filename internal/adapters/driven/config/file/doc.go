// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: settings persisted as a TOML document
//   - YAMLFilterCodec, TOMLFilterCodec: filter configuration files
package file
