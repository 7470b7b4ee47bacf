package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestServer_InMemoryRoundTrip(t *testing.T) {
	server := setupTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverTransport, clientTransport := sdk.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer clientSession.Close()

	tools, err := clientSession.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	names := make(map[string]bool)
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"gridnet_toggle", "gridnet_paint", "gridnet_activate", "gridnet_clear", "gridnet_state"} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}

	res, err := clientSession.CallTool(ctx, &sdk.CallToolParams{
		Name:      "gridnet_toggle",
		Arguments: map[string]any{"cell": 3},
	})
	if err != nil {
		t.Fatalf("CallTool gridnet_toggle: %v", err)
	}
	if res.IsError {
		t.Fatalf("gridnet_toggle returned tool error: %+v", res.Content)
	}

	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out StateOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	if out.Phase != "armed" || out.Pattern[3] != 1 {
		t.Errorf("toggle output = %+v", out)
	}

	// Activating an idle session is a tool-level failure, not a transport failure.
	clientSession.CallTool(ctx, &sdk.CallToolParams{Name: "gridnet_clear", Arguments: map[string]any{}})
	res, err = clientSession.CallTool(ctx, &sdk.CallToolParams{Name: "gridnet_activate", Arguments: map[string]any{}})
	if err == nil && !res.IsError {
		t.Error("expected activate on idle session to fail")
	}

	resource, err := clientSession.ReadResource(ctx, &sdk.ReadResourceParams{URI: StateResourceURI})
	if err != nil {
		t.Fatalf("ReadResource: %v", err)
	}
	if len(resource.Contents) != 1 || resource.Contents[0].MIMEType != "text/markdown" {
		t.Errorf("resource contents = %+v", resource.Contents)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	server := setupTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
