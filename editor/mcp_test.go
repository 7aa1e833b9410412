package editor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/protoboard/journal"
)

var testMCPImpl = &mcp.Implementation{Name: "protoboard-test", Version: "0.1.0"}

func mcpSession(t *testing.T, ed *Editor) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	ed.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if result.IsError {
		t.Fatalf("%s: tool error: %v", name, result.GetError())
	}
	if len(result.Content) == 0 {
		t.Fatalf("%s: no content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("%s: content is %T", name, result.Content[0])
	}
	return tc.Text
}

func TestMCP_ListTools(t *testing.T) {
	session := mcpSession(t, newTestEditor(t, nil))
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{
		"protoboard_state":        false,
		"protoboard_nodes":        false,
		"protoboard_select":       false,
		"protoboard_update_color": false,
		"protoboard_save":         false,
	}
	for _, tool := range res.Tools {
		if _, ok := want[tool.Name]; ok {
			want[tool.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestMCP_SelectColorSave(t *testing.T) {
	// WHAT: the MCP tools drive the same edit loop as the page.
	// WHY: an agent editing the prototype must see the same state.
	ed := newTestEditor(t, nil)
	session := mcpSession(t, ed)

	var state stateResponse
	text := mcpCallTool(t, session, "protoboard_select", map[string]any{"id": "btn_putaway"})
	if err := json.Unmarshal([]byte(text), &state); err != nil {
		t.Fatal(err)
	}
	if state.Selection == nil || *state.Selection != "btn_putaway" {
		t.Fatalf("selection: %v", state.Selection)
	}

	var color colorResponse
	text = mcpCallTool(t, session, "protoboard_update_color", map[string]any{"hex": "#123456"})
	if err := json.Unmarshal([]byte(text), &color); err != nil {
		t.Fatal(err)
	}
	if !color.Changed {
		t.Fatal("color not changed")
	}
	if got := colorOf(t, ed, "btn_putaway"); got != "#123456" {
		t.Fatalf("btn_putaway color: %q", got)
	}

	var out outputResponse
	text = mcpCallTool(t, session, "protoboard_save", map[string]any{})
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatal(err)
	}
	if pane, _ := ed.Output(); pane != out.Output {
		t.Fatal("display pane differs from save result")
	}

	events, err := ed.Journal(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if events[0].Action != journal.ActionSave || events[0].Transport != "mcp" {
		t.Fatalf("last event: %+v", events[0])
	}
}

func TestMCP_SelectWithoutIDClears(t *testing.T) {
	ed := newTestEditor(t, nil)
	session := mcpSession(t, ed)
	mcpCallTool(t, session, "protoboard_select", map[string]any{"id": "img_user"})
	mcpCallTool(t, session, "protoboard_select", map[string]any{})
	if _, ok := ed.Store().Selection(); ok {
		t.Fatal("selection not cleared")
	}
}

func TestMCP_ColorWithoutHex(t *testing.T) {
	ed := newTestEditor(t, nil)
	session := mcpSession(t, ed)
	mcpCallTool(t, session, "protoboard_select", map[string]any{"id": "btn_picking"})

	var color colorResponse
	text := mcpCallTool(t, session, "protoboard_update_color", map[string]any{})
	if err := json.Unmarshal([]byte(text), &color); err != nil {
		t.Fatal(err)
	}
	if color.Changed {
		t.Fatal("changed without hex")
	}
}

func TestMCP_StateAndNodes(t *testing.T) {
	session := mcpSession(t, newTestEditor(t, nil))

	var state stateResponse
	if err := json.Unmarshal([]byte(mcpCallTool(t, session, "protoboard_state", map[string]any{})), &state); err != nil {
		t.Fatal(err)
	}
	if len(state.Elements) != 4 {
		t.Fatalf("elements: %d", len(state.Elements))
	}

	var nodes []map[string]any
	if err := json.Unmarshal([]byte(mcpCallTool(t, session, "protoboard_nodes", map[string]any{})), &nodes); err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 4 {
		t.Fatalf("nodes: %d", len(nodes))
	}
}

func TestMCP_SelectEmptyIDClears(t *testing.T) {
	ed := newTestEditor(t, nil)
	session := mcpSession(t, ed)
	mcpCallTool(t, session, "protoboard_select", map[string]any{"id": "btn_picking"})
	mcpCallTool(t, session, "protoboard_select", map[string]any{"id": ""})
	if _, ok := ed.Store().Selection(); ok {
		t.Fatal("selection not cleared")
	}
}
