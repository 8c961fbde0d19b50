// Package memory provides in-memory implementations of driven stores.
// They back tests and the --no-history mode, where nothing should touch disk.
package memory
