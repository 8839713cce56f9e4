package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abdul-hamid-achik/typedroutes/internal/version"
	"github.com/abdul-hamid-achik/typedroutes/pkg/config"
	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
	"github.com/abdul-hamid-achik/typedroutes/pkg/scaffold"
)

func (s *Server) loadConfig() (*config.Config, error) {
	return config.Load(config.LoadOptions{Dir: s.workdir})
}

func (s *Server) run(ctx context.Context, dryRun bool) (*generator.Result, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	gen := generator.New(cfg, nil)
	gen.DryRun = dryRun
	return gen.Run(ctx)
}

func (s *Server) handleListRoutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.run(ctx, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success":        true,
		"routes":         res.Entries,
		"classification": res.Classification,
		"degraded":       res.DegradedReason,
	})
}

func (s *Server) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.run(ctx, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success":  true,
		"routes":   len(res.Entries),
		"static":   len(res.Classification.Static),
		"dynamic":  len(res.Classification.Dynamic),
		"files":    res.Files,
		"degraded": res.DegradedReason,
	})
}

func (s *Server) handleBuildPath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := req.GetString("pattern", "")
	if pattern == "" {
		return mcp.NewToolResultError("pattern is required"), nil
	}

	args := req.GetArguments()
	params := make(map[string]string)
	for k, v := range objectArg(args, "params") {
		params[k] = fmt.Sprint(v)
	}
	query := url.Values{}
	for k, v := range objectArg(args, "query") {
		query.Set(k, fmt.Sprint(v))
	}

	cfg, err := s.loadConfig()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path, err := routes.BuildPath(pattern, params, query, cfg.Table())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"pattern": pattern,
		"path":    path,
	})
}

func (s *Server) handleNewRoute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	cfg, err := s.loadConfig()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var methods []string
	if m := req.GetString("methods", ""); m != "" {
		for _, method := range strings.Split(m, ",") {
			if method = strings.TrimSpace(method); method != "" {
				methods = append(methods, method)
			}
		}
	}

	result, err := scaffold.GenerateRoute(scaffold.RouteConfig{
		Path:         path,
		Methods:      methods,
		Page:         req.GetBool("page", false),
		SearchParams: req.GetBool("searchParams", false),
		Templ:        req.GetBool("templ", false),
		RoutesDir:    cfg.RoutesPath,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"files":   result.Files,
		"id":      result.ID,
		"pattern": result.Pattern,
	})
}

func (s *Server) handleInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success":      true,
		"version":      version.GetVersion(),
		"configFile":   cfg.File,
		"root":         cfg.Root,
		"routesPath":   cfg.RoutesPath,
		"outputs":      []string{cfg.TypedRoutesPath, cfg.ManifestPath, cfg.SearchParamsPath},
		"package":      cfg.Package,
		"replacements": cfg.Table().Map(),
	})
}

func objectArg(args map[string]any, key string) map[string]any {
	switch v := args[key].(type) {
	case map[string]any:
		return v
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err == nil {
			return m
		}
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
