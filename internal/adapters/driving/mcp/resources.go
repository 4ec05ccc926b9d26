package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "karmicdd://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "Profile of the logged-in user",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "filters",
		Name:        "filters",
		Description: "Facet values accepted by the search filters",
		MIMEType:    "application/json",
	}, s.handleFiltersResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "matches/{matchId}/compatibility",
		Name:        "match-compatibility",
		Description: "Compatibility breakdown for a match",
		MIMEType:    "application/json",
	}, s.handleCompatibilityResource)
}

func (s *Server) handleSessionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sess, err := s.ports.Session.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	info := struct {
		UserID      string `json:"user_id"`
		Email       string `json:"email"`
		Role        string `json:"role"`
		DisplayName string `json:"display_name"`
		Counterpart string `json:"counterpart"`
		Offline     bool   `json:"offline,omitempty"`
	}{
		UserID:      sess.Profile.UserID,
		Email:       sess.Profile.Email,
		Role:        sess.Role().String(),
		DisplayName: sess.Profile.DisplayName(),
		Counterpart: sess.Role().Counterpart().String(),
		Offline:     sess.Offline,
	}
	return jsonResource(req.Params.URI, info)
}

func (s *Server) handleFiltersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Search.FilterOptions(ctx).Normalize())
}

func (s *Server) handleCompatibilityResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Compatibility == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	matchID := extractMatchID(req.Params.URI)
	if matchID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	view, err := s.ports.Compatibility.Select(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("loading compatibility: %w", err)
	}
	return jsonResource(req.Params.URI, compatibilityOutput(view))
}

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

// extractMatchID extracts the id from karmicdd://matches/{matchId}/compatibility.
func extractMatchID(uri string) string {
	const prefix = uriScheme + "matches/"
	const suffix = "/compatibility"

	rest, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, suffix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
