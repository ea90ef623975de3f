package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Absolute path to the image file",
			},
		},
		"required": []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Local files
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file. Only the file header is read.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "image_load",
			Description: "Read an image file's header and return its dimensions, detected format, EXIF orientation, sub-image count and file size.",
			InputSchema: pathSchema(),
		},

		// Remote images
		{
			Name:        "image_probe",
			Description: "Get the dimensions of an image at a URL. The download stops as soon as the header has arrived.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "http or https URL of the image",
					},
				},
				"required": []string{"url"},
			},
		},

		// In-memory data
		{
			Name:        "image_lookup",
			Description: "Detect the format and dimensions of base64-encoded image bytes. A prefix containing the header is enough.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Standard base64 encoding of the image bytes",
					},
				},
				"required": []string{"data"},
			},
		},
		{
			Name:        "image_formats",
			Description: "List the image formats that can be detected, in detection order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
