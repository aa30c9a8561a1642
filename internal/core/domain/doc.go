// Package domain defines the core entities of a chant corpus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chant: One occurrence of a chant in one source
//   - Source: A manuscript or printed collection
//   - Melody: Volpiano notation owned by a chant
//   - Filter: Include/exclude configuration over record fields
//   - HistoryEntry: An audit record of a curation operation
//   - Schema: Mandatory, optional and export fields per entity kind
//
// Entities are mutable until locked. A locked entity rejects every field
// assignment with ErrPermission.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
