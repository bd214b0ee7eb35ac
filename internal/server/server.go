package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/filedb"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/session"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/storage"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/tools"
)

// New creates a fully configured MCP server with all tools registered.
func New(store *storage.Store, files *filedb.Service, log *zap.Logger) *mcp.Server {
	sess := session.New()
	log = log.With(zap.String("session", sess.ID()))

	pt := &tools.ProjectTools{Store: store, Session: sess, Log: log}
	ft := &tools.FileTools{Files: files, Session: sess}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "filedb-mcp",
		Version: "0.1.0",
	}, nil)

	// Member, project and folder tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_member",
		Description: "Create a member (tenant) that owns projects",
	}, pt.CreateMember)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_project",
		Description: "Create a project for a member and make it the active project",
	}, pt.CreateProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_folder",
		Description: "Create a folder at the top level of a project",
	}, pt.CreateFolder)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "switch_project",
		Description: "Switch the active project context for the current session",
	}, pt.SwitchProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_current_project",
		Description: "Get information about the currently active project",
	}, pt.GetCurrentProject)

	// File tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_files",
		Description: "List the files of a folder, or of the project top level",
	}, ft.ListFiles)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_file",
		Description: "Create an empty file; fails if a sibling already has the name",
	}, ft.CreateFile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_file",
		Description: "Delete a file from disk and from the catalog",
	}, ft.DeleteFile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "rename_file",
		Description: "Rename a file within its folder; fails if a sibling already has the name",
	}, ft.RenameFile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "move_file",
		Description: "Move a file to another folder of the same project, or to its top level",
	}, ft.MoveFile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "write_file",
		Description: "Replace the full content of a file",
	}, ft.WriteFile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "read_file",
		Description: "Read the full content of a file",
	}, ft.ReadFile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_exec_target",
		Description: "Get the on-disk path and project language used to execute a file",
	}, ft.GetExecTarget)

	return srv
}
