package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	itemsURI        = "herbview://items"
	itemTemplateURI = "herbview://items/{id}"
	tagsURI         = "herbview://tags"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	srv.AddResource(mcp.NewResource(
		itemsURI,
		"Items",
		mcp.WithResourceDescription("Every catalog item with its name, latin name and tags."),
		mcp.WithMIMEType("application/json"),
	), itemsHandler(svc))

	srv.AddResourceTemplate(mcp.NewResourceTemplate(
		itemTemplateURI,
		"Item Details",
		mcp.WithTemplateDescription("One catalog item in full, including its quiz and resolved model URL."),
		mcp.WithTemplateMIMEType("application/json"),
	), itemHandler(svc))

	srv.AddResource(mcp.NewResource(
		tagsURI,
		"Tags",
		mcp.WithResourceDescription("Catalog tags with the number of items carrying each."),
		mcp.WithMIMEType("application/json"),
	), tagsHandler(svc))
}

func itemsHandler(svc *Service) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		items, err := svc.ListItems(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"items": items,
			"count": len(items),
		})
	}
}

func itemHandler(svc *Service) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments, "id")
		if id == "" {
			return nil, fmt.Errorf("item id is required")
		}
		item, err := svc.ItemByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"item": item,
		})
	}
}

func tagsHandler(svc *Service) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		counts, err := svc.ListTags(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"tags":  counts,
			"count": len(counts),
		})
	}
}

// templateArg reads a URI template variable. Matched variables arrive as a
// string or as a one-element list depending on the template operator.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
