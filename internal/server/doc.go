// Package server implements the MCP (Model Context Protocol) server for
// Haar-like feature extraction tools.
//
// This package provides a JSON-RPC 2.0 server that exposes Haar feature
// enumeration, evaluation and visualization through the MCP protocol. It's
// designed to work with Claude and other MCP-compatible clients, enabling AI
// systems to probe image structure numerically.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Haar Feature Operations:
//   - haar_enumerate: Enumerate feature instances for a window size
//   - haar_features: Compute feature values over an image window
//   - haar_visualize: Render one feature instance as a color overlay
//
// # Caching
//
// The server maintains two in-memory caches for the lifetime of the process:
// decoded images keyed by path, and enumerated coordinate sets keyed by
// (feature type, window height, window width). Coordinate sets are pure
// geometry, so a set enumerated once serves every window of the same size.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
