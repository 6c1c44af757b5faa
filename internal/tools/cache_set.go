package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/kvcache/internal/cache"
)

// CacheSetHandler returns the MCP tool handler for the "cache-set" tool.
func CacheSetHandler(kv cache.KV) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		key, err := req.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		value, err := req.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if key == "" {
			return mcp.NewToolResultError("key must not be empty"), nil
		}
		// The wire protocol is line based.
		if strings.ContainsAny(key, "\r\n") || strings.ContainsAny(value, "\r\n") {
			return mcp.NewToolResultError("key and value must not contain line breaks"), nil
		}
		ttlSeconds := req.GetFloat("ttl_seconds", 0)
		if ttlSeconds < 0 {
			return mcp.NewToolResultError("ttl_seconds must not be negative"), nil
		}

		ttl := time.Duration(ttlSeconds * float64(time.Second))
		if err := kv.Set(key, value, ttl); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatStored(key, ttl)), nil
	}
}

func formatStored(key string, ttl time.Duration) string {
	if ttl <= 0 {
		return fmt.Sprintf("Stored %s (no expiry)", key)
	}
	return fmt.Sprintf("Stored %s (expires in %s)", key, ttl)
}
