package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/session"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/storage"
)

// ProjectTools holds references needed by member/project/folder tool handlers.
type ProjectTools struct {
	Store   *storage.Store
	Session *session.Session
	Log     *zap.Logger
}

// --- Input types ---

type CreateMemberInput struct {
	Name string `json:"name" jsonschema:"Display name of the member"`
}

type CreateProjectInput struct {
	MemberID int64  `json:"member_id" jsonschema:"Owning member id"`
	Name     string `json:"name" jsonschema:"Project name"`
	Language string `json:"language,omitempty" jsonschema:"Language used when executing project files"`
}

type CreateFolderInput struct {
	ProjectID int64  `json:"project_id,omitempty" jsonschema:"Project id (defaults to the active project)"`
	Name      string `json:"name" jsonschema:"Folder name"`
}

type SwitchProjectInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"Id of the project to switch to"`
}

// --- Handlers ---

func (t *ProjectTools) CreateMember(ctx context.Context, _ *mcp.CallToolRequest, input CreateMemberInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Member name is required"), nil, nil
	}
	m, err := t.Store.CreateMember(ctx, input.Name)
	if err != nil {
		return toolError("Failed to create member: %v", err), nil, nil
	}
	return toolJSON(m)
}

func (t *ProjectTools) CreateProject(ctx context.Context, _ *mcp.CallToolRequest, input CreateProjectInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Project name is required"), nil, nil
	}

	proj, err := t.Store.CreateProject(ctx, input.MemberID, input.Name, input.Language)
	if err != nil {
		return toolError("Failed to create project: %v", err), nil, nil
	}

	// Auto-switch to the new project
	if _, err := t.Session.SwitchProject(ctx, t.Store, proj.ID); err != nil {
		return toolError("Project created but failed to switch: %v", err), nil, nil
	}

	return toolJSON(proj)
}

func (t *ProjectTools) CreateFolder(ctx context.Context, _ *mcp.CallToolRequest, input CreateFolderInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Folder name is required"), nil, nil
	}
	projectID, ok := t.Session.ProjectID(input.ProjectID)
	if !ok {
		return noProject(), nil, nil
	}

	folder, err := t.Store.CreateFolder(ctx, projectID, input.Name)
	if err != nil {
		return toolError("Failed to create folder: %v", err), nil, nil
	}
	return toolJSON(folder)
}

func (t *ProjectTools) SwitchProject(ctx context.Context, _ *mcp.CallToolRequest, input SwitchProjectInput) (*mcp.CallToolResult, any, error) {
	proj, err := t.Session.SwitchProject(ctx, t.Store, input.ProjectID)
	if err != nil {
		return toolError("Failed to switch project: %v", err), nil, nil
	}
	t.Log.Info("project switched",
		zap.String("session", t.Session.ID()),
		zap.Int64("project_id", proj.ID),
	)
	return toolJSON(proj)
}

func (t *ProjectTools) GetCurrentProject(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	proj, ok := t.Session.Current()
	if !ok {
		return toolText("No project is currently active. Use switch_project to select one."), nil, nil
	}
	return toolJSON(proj)
}

// --- Helpers ---

func noProject() *mcp.CallToolResult {
	return toolError("No project given and no active project. Pass project_id or use switch_project.")
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
