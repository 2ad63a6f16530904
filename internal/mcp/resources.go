package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/trainlog/internal/entries"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentExercises(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -14)

	exercises, err := h.ds.SearchExercises(ctx, entries.EntryFilter{
		Kind:  entries.KindExercise,
		Start: start,
		End:   end,
	})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(exercises)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) sportTypeCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	types, err := h.ds.SportTypes(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(types)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
