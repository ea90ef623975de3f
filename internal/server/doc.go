// Package server implements the MCP (Model Context Protocol) server for image
// size detection.
//
// This package provides a JSON-RPC 2.0 server that exposes the imagesize
// engine through the MCP protocol, so an MCP client can ask how large an
// image is without anything being decoded.
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
// Local files:
//   - image_dimensions: Width and height of a file
//   - image_load: Dimensions plus format, orientation, sub-image count and size
//
// Remote images:
//   - image_probe: Dimensions of an image at a URL, reading only its header
//
// In-memory data:
//   - image_lookup: Dimensions of base64-encoded bytes
//   - image_formats: The detectable formats in detection order
//
// # Caching
//
// Results for local files are cached by path for the lifetime of the server
// process. Remote probes and lookups are never cached.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (bad arguments),
//     -32601 (unknown method) or -32700 (unparsable request)
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "Failed to fetch image" or
//     "png: corrupt image data: first chunk is \"IDAT\", want IHDR"
//
// # Usage
//
//	srv := server.New(prober, server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
