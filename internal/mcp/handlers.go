package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/gridnet/internal/constants"
	"github.com/nvandessel/gridnet/internal/session"
)

// StateResourceURI is the resource exposing the session state as markdown.
const StateResourceURI = "gridnet://session/state"

// registerTools registers all gridnet MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "gridnet_toggle",
		Description: "Flip one grid cell. Discards any computed activations.",
	}, s.handleToggle)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "gridnet_paint",
		Description: "Fill one grid cell if it is empty. Filled cells are left untouched.",
	}, s.handlePaint)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "gridnet_activate",
		Description: "Advance the reveal: first call computes the hidden layer, second computes the output and label",
	}, s.handleActivate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "gridnet_clear",
		Description: "Empty the grid and reset the reveal",
	}, s.handleClear)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "gridnet_state",
		Description: "Get the current pattern, phase, activations and highlights",
	}, s.handleState)
}

// registerResources registers MCP resources for auto-loading into context.
func (s *Server) registerResources() {
	s.server.AddResource(&sdk.Resource{
		URI:         StateResourceURI,
		Name:        "gridnet-session-state",
		Description: "Current grid, reveal phase and classification of the gridnet session.",
		MIMEType:    "text/markdown",
	}, s.handleStateResource)
}

func (s *Server) handleToggle(ctx context.Context, req *sdk.CallToolRequest, args CellInput) (*sdk.CallToolResult, StateOutput, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	snap, err := s.state.Toggle(args.Cell)
	if err != nil {
		return nil, StateOutput{}, fmt.Errorf("toggle cell %d: %w", args.Cell, err)
	}
	return nil, toOutput(snap), nil
}

func (s *Server) handlePaint(ctx context.Context, req *sdk.CallToolRequest, args CellInput) (*sdk.CallToolResult, StateOutput, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	snap, err := s.state.Paint(args.Cell)
	if err != nil {
		return nil, StateOutput{}, fmt.Errorf("paint cell %d: %w", args.Cell, err)
	}
	return nil, toOutput(snap), nil
}

func (s *Server) handleActivate(ctx context.Context, req *sdk.CallToolRequest, args EmptyInput) (*sdk.CallToolResult, StateOutput, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	snap, err := s.state.Activate()
	if err != nil {
		return nil, StateOutput{}, fmt.Errorf("activate: %w", err)
	}
	return nil, toOutput(snap), nil
}

func (s *Server) handleClear(ctx context.Context, req *sdk.CallToolRequest, args EmptyInput) (*sdk.CallToolResult, StateOutput, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	return nil, toOutput(s.state.Clear()), nil
}

func (s *Server) handleState(ctx context.Context, req *sdk.CallToolRequest, args EmptyInput) (*sdk.CallToolResult, StateOutput, error) {
	return nil, toOutput(s.Snapshot()), nil
}

// handleStateResource renders the session as markdown for context injection.
func (s *Server) handleStateResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      StateResourceURI,
				MIMEType: "text/markdown",
				Text:     FormatMarkdown(s.Snapshot()),
			},
		},
	}, nil
}

// FormatMarkdown renders a snapshot as a short markdown report.
func FormatMarkdown(snap session.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("# gridnet session\n\n")
	sb.WriteString(fmt.Sprintf("Session `%s`, phase **%s**.\n\n", snap.SessionID, snap.Phase))

	sb.WriteString("```\n")
	sb.WriteString(snap.Pattern.Grid())
	sb.WriteString("```\n\n")

	sb.WriteString("| Hidden unit | Sum |\n|---|---|\n")
	for h, name := range constants.HiddenUnitNames {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", name, valueOrPending(snap.Hidden, h)))
	}
	sb.WriteString("\n| Output unit | Fires |\n|---|---|\n")
	for o, name := range constants.OutputUnitNames {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", name, valueOrPending(snap.Output, o)))
	}

	sb.WriteString(fmt.Sprintf("\nLabel: **%s**\n", snap.Label))
	if snap.ActionEnabled {
		sb.WriteString("\nCall `gridnet_activate` to reveal the next layer.\n")
	}
	return sb.String()
}

func valueOrPending(values []int, idx int) string {
	if idx < len(values) {
		return fmt.Sprintf("%d", values[idx])
	}
	return constants.LabelPending
}

// toOutput converts a snapshot into the tool output shape.
func toOutput(snap session.Snapshot) StateOutput {
	hl := snap.Highlights

	hidden := make([]string, len(hl.Hidden))
	for h, lvl := range hl.Hidden {
		hidden[h] = lvl.String()
	}
	inputEdges := make([][]string, len(hl.InputEdges))
	for i, row := range hl.InputEdges {
		inputEdges[i] = make([]string, len(row))
		for h, lvl := range row {
			inputEdges[i][h] = lvl.String()
		}
	}

	return StateOutput{
		SessionID:      snap.SessionID,
		Pattern:        snap.Pattern.Bits(),
		Phase:          snap.Phase.String(),
		Hidden:         []int(snap.Hidden),
		Output:         []int(snap.Output),
		Classification: string(snap.Classification),
		Label:          snap.Label,
		ActionEnabled:  snap.ActionEnabled,
		ActionCaption:  snap.ActionCaption,
		Highlights: HighlightsOutput{
			Inputs:      hl.Inputs,
			Hidden:      hidden,
			InputEdges:  inputEdges,
			OutputEdges: hl.OutputEdges,
			Outputs:     hl.Outputs,
			Label:       hl.Label,
		},
	}
}
