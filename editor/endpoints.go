package editor

import (
	"context"

	"github.com/hazyhaar/protoboard/kit"
	"github.com/hazyhaar/protoboard/mutate"
)

// Endpoints shared by the JSON API and the MCP tools. Each surface wraps them
// with its own transport tag through endpoint().

// selectRequest clears the selection when ID is null, absent or empty.
type selectRequest struct {
	ID *string `json:"id"`
}

type colorResponse struct {
	Changed bool `json:"changed"`
	stateResponse
}

type outputResponse struct {
	Output string `json:"output"`
	Saved  bool   `json:"saved"`
}

func (e *Editor) endpoint(transport, op string, ep kit.Endpoint) kit.Endpoint {
	return kit.Chain(kit.Transport(transport), kit.Logging(e.logger, op))(ep)
}

func (e *Editor) stateEndpoint(_ context.Context, _ any) (any, error) {
	return e.stateResponse(), nil
}

func (e *Editor) nodesEndpoint(_ context.Context, _ any) (any, error) {
	return e.Nodes(), nil
}

func (e *Editor) selectEndpoint(ctx context.Context, req any) (any, error) {
	r := req.(*selectRequest)
	if r.ID == nil || *r.ID == "" {
		e.ClearSelection(ctx)
	} else {
		e.Select(ctx, *r.ID)
	}
	return e.stateResponse(), nil
}

func (e *Editor) colorEndpoint(ctx context.Context, req any) (any, error) {
	changed := e.PickColor(ctx, *req.(*mutate.ColorValue))
	return colorResponse{Changed: changed, stateResponse: e.stateResponse()}, nil
}

func (e *Editor) saveEndpoint(ctx context.Context, _ any) (any, error) {
	return outputResponse{Output: e.Save(ctx), Saved: true}, nil
}

func (e *Editor) resetEndpoint(ctx context.Context, _ any) (any, error) {
	e.Reset(ctx)
	return e.stateResponse(), nil
}
