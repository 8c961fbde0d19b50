// Package services implements the driving port interfaces.
// Services contain the utility logic and orchestrate
// calls to driven ports (adapters).
//
// Each utility is its own service. Services share plumbing such as the
// output writer and fetcher. Only the watch service calls another service,
// re-running the Markdown conversion on change.
package services
