package mcp

// CellInput defines the input for the per-cell tools (gridnet_toggle, gridnet_paint).
type CellInput struct {
	Cell int `json:"cell" jsonschema:"Grid cell index: 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right"`
}

// EmptyInput is the input for tools that take no arguments.
type EmptyInput struct{}

// StateOutput is the session snapshot returned by every tool.
type StateOutput struct {
	SessionID      string           `json:"session_id" jsonschema:"Identifier of the driven session"`
	Pattern        []int            `json:"pattern" jsonschema:"Grid cells in reading order, 1 means filled"`
	Phase          string           `json:"phase" jsonschema:"Reveal phase: idle, armed, hidden-computed or completed"`
	Hidden         []int            `json:"hidden" jsonschema:"Hidden unit sums; empty until the first activate"`
	Output         []int            `json:"output" jsonschema:"Output unit bits; empty until the second activate"`
	Classification string           `json:"classification,omitempty" jsonschema:"Label once the reveal is complete"`
	Label          string           `json:"label" jsonschema:"Label as displayed, ? while pending"`
	ActionEnabled  bool             `json:"action_enabled" jsonschema:"Whether gridnet_activate will be accepted"`
	ActionCaption  string           `json:"action_caption" jsonschema:"Action button caption"`
	Highlights     HighlightsOutput `json:"highlights" jsonschema:"Entities the view renders as active"`
}

// HighlightsOutput flattens projection highlights into plain JSON types.
type HighlightsOutput struct {
	Inputs      []int      `json:"inputs" jsonschema:"Lit input node indices"`
	Hidden      []string   `json:"hidden" jsonschema:"Per hidden unit level: none, partial or full"`
	InputEdges  [][]string `json:"input_edges" jsonschema:"Level of each input to hidden edge"`
	OutputEdges [][]bool   `json:"output_edges" jsonschema:"Lit hidden to output edges"`
	Outputs     []int      `json:"outputs" jsonschema:"Firing output indices"`
	Label       bool       `json:"label" jsonschema:"Whether the label is lit"`
}
