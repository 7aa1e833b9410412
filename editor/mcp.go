package editor

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/protoboard/kit"
	"github.com/hazyhaar/protoboard/mutate"
)

// MCPServer returns a new MCP server exposing the editor tools.
func (e *Editor) MCPServer() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "protoboard", Version: Version}, nil)
	e.RegisterMCP(srv)
	return srv
}

// RegisterMCP registers the editor tools on srv.
func (e *Editor) RegisterMCP(srv *mcp.Server) {
	noArgs := kit.InputSchema(map[string]any{}, nil)

	kit.RegisterMCPTool(srv, &mcp.Tool{
		Name:        "protoboard_state",
		Description: "Return the current element list and selection of the prototype canvas.",
		InputSchema: noArgs,
	}, e.tool("state", e.stateEndpoint), kit.DecodeJSON[struct{}]())

	kit.RegisterMCPTool(srv, &mcp.Tool{
		Name:        "protoboard_nodes",
		Description: "Return the rendered canvas nodes (kind, position style, affordance) for the current state.",
		InputSchema: noArgs,
	}, e.tool("nodes", e.nodesEndpoint), kit.DecodeJSON[struct{}]())

	kit.RegisterMCPTool(srv, &mcp.Tool{
		Name:        "protoboard_select",
		Description: "Select an element by id. Omit id, or pass null or an empty string, to clear the selection.",
		InputSchema: kit.InputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Element id to select"},
		}, nil),
	}, e.tool("select", e.selectEndpoint), kit.DecodeJSON[selectRequest]())

	kit.RegisterMCPTool(srv, &mcp.Tool{
		Name:        "protoboard_update_color",
		Description: "Set the color of the selected element. A call without hex changes nothing.",
		InputSchema: kit.InputSchema(map[string]any{
			"hex": map[string]any{"type": "string", "description": "Color, e.g. #ff0000"},
		}, nil),
	}, e.tool("update_color", e.colorEndpoint), kit.DecodeJSON[mutate.ColorValue]())

	kit.RegisterMCPTool(srv, &mcp.Tool{
		Name:        "protoboard_save",
		Description: "Serialize the current element list to indented JSON and show it in the display pane.",
		InputSchema: noArgs,
	}, e.tool("save", e.saveEndpoint), kit.DecodeJSON[struct{}]())
}

func (e *Editor) tool(op string, ep kit.Endpoint) kit.Endpoint {
	return e.endpoint(kit.TransportMCP, op, ep)
}
