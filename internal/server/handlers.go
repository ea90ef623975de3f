package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ironsheep/image-size-mcp/internal/imagesize"
	"github.com/ironsheep/image-size-mcp/internal/imaging"
)

// errInvalidArgs marks argument problems, reported as -32602 rather than a
// tool failure.
var errInvalidArgs = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_dimensions", "image_probe").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000;
// malformed or missing arguments return -32602.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn().Err(err).Str("tool", params.Name).Msg("tool call failed")
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
// Tools that read an image run under the server's probe timeout.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Local files
	case "image_dimensions":
		return s.handleImageDimensions(ctx, args)
	case "image_load":
		return s.handleImageLoad(ctx, args)

	// Remote images
	case "image_probe":
		return s.handleImageProbe(ctx, args)

	// In-memory data
	case "image_lookup":
		return s.handleImageLookup(args)
	case "image_formats":
		return map[string]interface{}{"formats": imagesize.Formats()}, nil

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArgs, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

// === Local File Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a *imagePathArgs) validate() error {
	if strings.TrimSpace(a.Path) == "" {
		return fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	return nil
}

func (s *Server) handleImageLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return imaging.LoadImageInfo(ctx, s.cache, a.Path)
}

func (s *Server) handleImageDimensions(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return imaging.GetDimensions(ctx, s.cache, a.Path)
}

// === Remote Image Handlers ===

type imageProbeArgs struct {
	URL string `json:"url"`
}

func (s *Server) handleImageProbe(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageProbeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	u, err := url.Parse(a.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: url must be an absolute http or https URL", errInvalidArgs)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.prober.Probe(ctx, a.URL)
}

// === In-Memory Handlers ===

type imageLookupArgs struct {
	Data string `json:"data"`
}

func (s *Server) handleImageLookup(args json.RawMessage) (interface{}, error) {
	var a imageLookupArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(a.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: data is not valid base64: %v", errInvalidArgs, err)
	}
	return imagesize.Lookup(data)
}
