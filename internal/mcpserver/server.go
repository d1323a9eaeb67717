// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes portfolio content tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/models"
)

// Server wraps the MCP server with portfolio tools.
type Server struct {
	mcp *server.MCPServer
	svc *content.Service
}

// New creates a new MCP server with all portfolio tools registered.
func New(svc *content.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Folio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_projects",
		mcp.WithDescription("Search portfolio projects by title or description substring."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchProjects)

	s.mcp.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Read the full detail of one portfolio project."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id")),
	), s.getProject)

	s.mcp.AddTool(mcp.NewTool("list_skills",
		mcp.WithDescription("List all portfolio skills with resolved icon URLs."),
	), s.listSkills)

	s.mcp.AddTool(mcp.NewTool("get_section_copy",
		mcp.WithDescription("Read the current page copy for one section (about, experience or skills)."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Section key: about, experience or skills")),
	), s.getSectionCopy)

	s.mcp.AddTool(mcp.NewTool("list_technologies",
		mcp.WithDescription("List technology strip entries, including hidden ones."),
	), s.listTechnologies)

	s.mcp.AddTool(mcp.NewTool("create_technology",
		mcp.WithDescription("Add a technology strip entry. Icon is a literal asset path or URL."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Technology name")),
		mcp.WithString("icon", mcp.Required(), mcp.Description("Icon asset path or URL")),
	), s.createTechnology)

	s.mcp.AddTool(mcp.NewTool("set_technology_visibility",
		mcp.WithDescription("Show or hide a technology strip entry."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Technology id")),
		mcp.WithBoolean("visible", mcp.Required(), mcp.Description("Whether the entry is shown")),
	), s.setTechnologyVisibility)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := s.svc.ListProjects(ctx, query, 0, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(page.Projects, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.svc.GetProject(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(p, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listSkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	skills, err := s.svc.ListSkills(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(skills, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getSectionCopy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sc, err := s.svc.SectionCopy(ctx, models.SectionKey(key))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(sc, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTechnologies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	techs, err := s.svc.AdminListTechnologies(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(techs, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createTechnology(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	icon, err := req.RequireString("icon")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := s.svc.CreateTechnology(ctx, content.TechnologyInput{Name: name, Icon: icon})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", id)), nil
}

func (s *Server) setTechnologyVisibility(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	visible, err := req.RequireBool("visible")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.SetTechnologyVisibility(ctx, id, visible); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("visibility set: %s", id)), nil
}
