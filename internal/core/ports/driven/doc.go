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
//   - ConfigStore: Application configuration
//   - OutputWriter: Atomic creation of output files
//   - FrontMatterCodec: YAML front matter rendering and parsing
//
// # Optional Interfaces
//
// These can be nil - only the utilities that need them are disabled:
//
//   - Fetcher: HTTP GET with throttling. Needed by image download and meta scraping.
//   - MetadataExtractor: Reads page metadata from HTML.
//   - QREncoder: Renders QR codes.
//   - RunStore: Run history persistence. Without it, history is not recorded.
//   - FolderWatcher: Change notification for watch mode.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
