// Package mcp provides an MCP (Model Context Protocol) server adapter for everyday.
// It lets AI assistants run the everyday utilities on local files.
package mcp

import "errors"

// ErrMissingConvertService is returned when the convert service is not provided.
var ErrMissingConvertService = errors.New("mcp: convert service is required")
