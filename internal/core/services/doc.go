// Package services implements the driving port interfaces.
// The loader reads and validates tables, the corpus runs curation
// operations and records their history, and the settings service
// maps config keys to typed settings.
package services
