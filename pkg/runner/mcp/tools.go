package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerSearchTool(srv, svc)
	registerGetItemTool(srv, svc)
}

func registerSearchTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search",
		mcp.WithDescription("Filter catalog items by keyword and tag, as the list pane does."),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive text matched against the japanese name, latin name and id."),
		),
		mcp.WithString("tag",
			mcp.Description("Exact tag the items must carry."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of items to return (default 20)."),
			mcp.Min(1),
			mcp.Max(maxSearchLimit),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keyword := request.GetString("keyword", "")
		tag := request.GetString("tag", "")
		limit := request.GetInt("limit", defaultSearchLimit)

		results, err := svc.Search(ctx, keyword, tag, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"keyword": keyword,
			"tag":     tag,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerGetItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_item",
		mcp.WithDescription("Fetch a single catalog item by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		item, err := svc.ItemByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(item)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
