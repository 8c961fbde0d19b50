// Package domain defines the core types shared by the everyday utilities.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - Table: A header plus rows read from a delimited file
//   - Column typing: How a column of text cells maps onto JSON/YAML values
//   - PageMetadata: Metadata scraped from a web page
//   - ImageJob / ImageResult: One row of a bulk image download
//   - Run: One recorded execution of a utility
//   - AppSettings: User configuration with defaults
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
