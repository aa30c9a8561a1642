// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TableReader: Reads chant and source tables
//   - TableWriter: Writes exported tables
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Fetcher: Downloads missing input files. Without it, a missing file
//     is a configuration error.
//   - FilterCodec: Encodes filters. Without it, history records the
//     filter's plain text rendering.
//   - MelodyPipeline: Rewrites melodies. Only needed for notation transforms.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or transform package
package driven
