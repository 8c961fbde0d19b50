package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jordyarms/everyday/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for everyday resources.
	uriScheme = "everyday://"

	// historyResourceLimit caps the runs returned by the history resource.
	historyResourceLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.History != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "history",
			Name:        "history",
			Description: "Recent utility runs, newest first",
			MIMEType:    "application/json",
		}, s.handleHistoryResource)
	}

	if s.ports.Settings != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "settings",
			Name:        "settings",
			Description: "Effective configuration values",
			MIMEType:    "application/json",
		}, s.handleSettingsResource)
	}
}

// runInfo is the JSON shape of one recorded run.
type runInfo struct {
	ID         string `json:"id"`
	Script     string `json:"script"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	StartedAt  string `json:"started_at"`
	DurationMS int64  `json:"duration_ms"`
	Items      int    `json:"items"`
	Failures   int    `json:"failures"`
	Error      string `json:"error,omitempty"`
}

// handleHistoryResource returns the most recent runs.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil || resourceName(req.Params.URI) != "history" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	runs, err := s.ports.History.List(ctx, historyResourceLimit)
	if errors.Is(err, domain.ErrHistoryDisabled) {
		runs = nil
	} else if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = runInfo{
			ID:         runs[i].ID,
			Script:     runs[i].Script,
			Input:      runs[i].Input,
			Output:     runs[i].Output,
			StartedAt:  runs[i].StartedAt.UTC().Format(time.RFC3339),
			DurationMS: runs[i].Duration().Milliseconds(),
			Items:      runs[i].Items,
			Failures:   runs[i].Failures,
			Error:      runs[i].Error,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleSettingsResource returns every setting with its effective value.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil || resourceName(req.Params.URI) != "settings" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	values := make(map[string]any, len(domain.SettingDefs))
	for _, def := range domain.SettingDefs {
		v, err := s.ports.Settings.Value(def.Key)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", def.Key, err)
		}
		values[def.Key] = v
	}

	return jsonResource(req.Params.URI, values)
}

// jsonResource wraps v as an indented JSON resource.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// resourceName extracts the name from a URI like everyday://{name}.
func resourceName(uri string) string {
	if !strings.HasPrefix(uri, uriScheme) {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(uri, uriScheme), "/")
}
