package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image into the server cache and return its basic properties (dimensions, format, file size)",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image in pixels",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		// Haar Feature Operations
		{
			Name:        "haar_enumerate",
			Description: "Enumerate all Haar-like feature instances of one type for a detection window, returning the count and optionally the full rectangle coordinates",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"feature_type": map[string]interface{}{
						"type":        "string",
						"description": "Feature type: type-2-x, type-2-y, type-3-x, type-3-y, or type-4",
						"enum":        []string{"type-2-x", "type-2-y", "type-3-x", "type-3-y", "type-4"},
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Detection window height in pixels",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Detection window width in pixels",
					},
					"include_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the per-slot rectangle coordinates in the result (counts only when false)",
						"default":     false,
					},
				},
				"required": []string{"feature_type", "height", "width"},
			},
		},
		{
			Name:        "haar_features",
			Description: "Compute Haar-like feature values for a window of an image using its integral image",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"feature_types": map[string]interface{}{
						"type":        "array",
						"description": "Feature types to compute (default: all five types)",
						"items": map[string]interface{}{
							"type": "string",
							"enum": []string{"type-2-x", "type-2-y", "type-3-x", "type-3-y", "type-4"},
						},
					},
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Top row of the window",
						"default":     0,
					},
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Left column of the window",
						"default":     0,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Window height in pixels (default: full image height)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Window width in pixels (default: full image width)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor applied to the extracted window before evaluation",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "haar_visualize",
			Description: "Render one Haar-like feature instance over an image window and return the overlay as base64 PNG",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"feature_type": map[string]interface{}{
						"type":        "string",
						"description": "Feature type: type-2-x, type-2-y, type-3-x, type-3-y, or type-4",
						"enum":        []string{"type-2-x", "type-2-y", "type-3-x", "type-3-y", "type-4"},
					},
					"feature_index": map[string]interface{}{
						"type":        "integer",
						"description": "Index of the feature instance to render, in enumeration order",
						"default":     0,
					},
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Top row of the window",
						"default":     0,
					},
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Left column of the window",
						"default":     0,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Window height in pixels (default: full image height)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Window width in pixels (default: full image width)",
					},
					"positive_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color for additive rectangles",
						"default":     "#FF0000",
					},
					"negative_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color for subtractive rectangles",
						"default":     "#00FF00",
					},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Overlay blend factor in (0,1]",
						"default":     0.5,
					},
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also save the overlay PNG to disk",
					},
				},
				"required": []string{"path", "feature_type"},
			},
		},
	}
}

// handleToolsList responds with the available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
