package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/haar-features-mcp/internal/haar"
	"github.com/ironsheep/haar-features-mcp/internal/imaging"
	"github.com/ironsheep/haar-features-mcp/internal/integral"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "haar_features").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/integral/haar function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Haar Feature Operations
	case "haar_enumerate":
		return s.handleHaarEnumerate(args)
	case "haar_features":
		return s.handleHaarFeatures(args)
	case "haar_visualize":
		return s.handleHaarVisualize(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Haar Feature Handlers ===

type haarEnumerateArgs struct {
	FeatureType        string `json:"feature_type"`
	Height             int    `json:"height"`
	Width              int    `json:"width"`
	IncludeCoordinates bool   `json:"include_coordinates"`
}

// EnumerateResult summarizes one enumerated coordinate set.
type EnumerateResult struct {
	FeatureType string `json:"feature_type"`
	Height      int    `json:"height"`
	Width       int    `json:"width"`
	NumFeatures int    `json:"num_features"`
	NumRects    int    `json:"num_rects"`

	// Slots holds the per-slot rectangle lists when requested. Slot s,
	// index i is one rectangle of feature instance i.
	Slots [][]haar.Rect `json:"slots,omitempty"`
}

func (s *Server) handleHaarEnumerate(args json.RawMessage) (interface{}, error) {
	var a haarEnumerateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	ft, err := haar.ParseFeatureType(a.FeatureType)
	if err != nil {
		return nil, err
	}

	cs, err := s.coords.get(ft, a.Height, a.Width)
	if err != nil {
		return nil, err
	}

	result := &EnumerateResult{
		FeatureType: cs.Type.String(),
		Height:      cs.Height,
		Width:       cs.Width,
		NumFeatures: cs.NumFeatures(),
		NumRects:    cs.NumRects(),
	}
	if a.IncludeCoordinates {
		result.Slots = cs.Slots
	}
	return result, nil
}

type haarFeaturesArgs struct {
	Path         string   `json:"path"`
	FeatureTypes []string `json:"feature_types"`
	Row          int      `json:"row"`
	Col          int      `json:"col"`
	Height       int      `json:"height"`
	Width        int      `json:"width"`
	Scale        float64  `json:"scale"`
}

// TypeValues holds the computed feature values of one feature type.
type TypeValues struct {
	FeatureType string    `json:"feature_type"`
	NumFeatures int       `json:"num_features"`
	Values      []float64 `json:"values"`
}

// FeaturesResult holds the computed feature values for one image window.
type FeaturesResult struct {
	Path string `json:"path"`

	// Window is the region of the source image the features were
	// computed over, before any scaling.
	Window imaging.Window `json:"window"`

	// Height and Width are the evaluated dimensions after scaling.
	Height int `json:"height"`
	Width  int `json:"width"`

	Types         []TypeValues `json:"types"`
	TotalFeatures int          `json:"total_features"`
}

func (s *Server) handleHaarFeatures(args json.RawMessage) (interface{}, error) {
	var a haarFeaturesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	types, err := parseFeatureTypes(a.FeatureTypes)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	w := windowOrFull(img, a.Row, a.Col, a.Height, a.Width)
	win, err := imaging.ExtractWindow(img, w, a.Scale)
	if err != nil {
		return nil, err
	}

	ii := integral.FromImage(win)

	result := &FeaturesResult{
		Path:   a.Path,
		Window: w,
		Height: ii.Rows(),
		Width:  ii.Cols(),
		Types:  make([]TypeValues, 0, len(types)),
	}
	for _, ft := range types {
		cs, err := s.coords.get(ft, ii.Rows(), ii.Cols())
		if err != nil {
			return nil, err
		}
		values, err := haar.FeaturesParallel(ii, cs)
		if err != nil {
			return nil, err
		}
		result.Types = append(result.Types, TypeValues{
			FeatureType: ft.String(),
			NumFeatures: len(values),
			Values:      values,
		})
		result.TotalFeatures += len(values)
	}
	return result, nil
}

type haarVisualizeArgs struct {
	Path          string  `json:"path"`
	FeatureType   string  `json:"feature_type"`
	FeatureIndex  int     `json:"feature_index"`
	Row           int     `json:"row"`
	Col           int     `json:"col"`
	Height        int     `json:"height"`
	Width         int     `json:"width"`
	PositiveColor string  `json:"positive_color"`
	NegativeColor string  `json:"negative_color"`
	Alpha         float64 `json:"alpha"`
	SavePath      string  `json:"save_path"`
}

func (s *Server) handleHaarVisualize(args json.RawMessage) (interface{}, error) {
	var a haarVisualizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	ft, err := haar.ParseFeatureType(a.FeatureType)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	w := windowOrFull(img, a.Row, a.Col, a.Height, a.Width)
	cs, err := s.coords.get(ft, w.Height, w.Width)
	if err != nil {
		return nil, err
	}

	return imaging.DrawFeature(img, w, cs, a.FeatureIndex,
		a.PositiveColor, a.NegativeColor, a.Alpha, a.SavePath)
}

// parseFeatureTypes maps token strings to feature types, defaulting to all
// five types when none were given.
func parseFeatureTypes(tokens []string) ([]haar.FeatureType, error) {
	if len(tokens) == 0 {
		return haar.AllFeatureTypes(), nil
	}
	types := make([]haar.FeatureType, len(tokens))
	for i, tok := range tokens {
		ft, err := haar.ParseFeatureType(tok)
		if err != nil {
			return nil, err
		}
		types[i] = ft
	}
	return types, nil
}

// windowOrFull fills in unset window dimensions from the image, so that
// omitting height/width selects everything below and right of the anchor.
func windowOrFull(img image.Image, row, col, height, width int) imaging.Window {
	bounds := img.Bounds()
	if height == 0 {
		height = bounds.Dy() - row
	}
	if width == 0 {
		width = bounds.Dx() - col
	}
	return imaging.Window{Row: row, Col: col, Height: height, Width: width}
}
