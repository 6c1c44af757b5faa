package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/kvcache/internal/cache"
)

// CacheGetHandler returns the MCP tool handler for the "cache-get" tool.
func CacheGetHandler(kv cache.KV) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		key, err := req.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		v, err := kv.Get(key)
		if errors.Is(err, cache.ErrNotFound) {
			return mcp.NewToolResultText("Key not found: " + key), nil
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(v), nil
	}
}
