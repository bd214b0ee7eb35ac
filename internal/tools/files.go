package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/filedb"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/session"
)

// FileTools holds references needed by file tool handlers.
type FileTools struct {
	Files   *filedb.Service
	Session *session.Session
}

// --- Input types ---

// ScopeInput names a sibling scope. Older clients send folder_id 0 for the
// project top level; omitting it means the same thing.
type ScopeInput struct {
	ProjectID int64 `json:"project_id,omitempty" jsonschema:"Project id (defaults to the active project)"`
	FolderID  int64 `json:"folder_id,omitempty" jsonschema:"Folder id; omit or 0 for the project top level"`
}

type CreateFileInput struct {
	ProjectID int64  `json:"project_id,omitempty" jsonschema:"Project id (defaults to the active project)"`
	FolderID  int64  `json:"folder_id,omitempty" jsonschema:"Folder id; omit or 0 for the project top level"`
	Name      string `json:"name" jsonschema:"File name, unique within its folder"`
}

type DeleteFileInput struct {
	ProjectID int64 `json:"project_id,omitempty" jsonschema:"Project id (defaults to the active project)"`
	FolderID  int64 `json:"folder_id,omitempty" jsonschema:"Folder the caller believes holds the file"`
	FileID    int64 `json:"file_id" jsonschema:"File id"`
}

type RenameFileInput struct {
	FileID  int64  `json:"file_id" jsonschema:"File id"`
	NewName string `json:"new_name" jsonschema:"New file name"`
}

type MoveFileInput struct {
	ProjectID int64 `json:"project_id,omitempty" jsonschema:"Project id (defaults to the active project)"`
	FolderID  int64 `json:"folder_id,omitempty" jsonschema:"Destination folder id; omit or 0 for the project top level"`
	FileID    int64 `json:"file_id" jsonschema:"File id"`
}

type WriteFileInput struct {
	FileID  int64  `json:"file_id" jsonschema:"File id"`
	Content string `json:"content" jsonschema:"Full new content; replaces the file"`
}

type FileIDInput struct {
	FileID int64 `json:"file_id" jsonschema:"File id"`
}

// FileContent is the result of read_file.
type FileContent struct {
	FileID  int64  `json:"file_id"`
	Content string `json:"content"`
}

// folderRef converts the wire folder id into the service's optional folder.
func folderRef(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// fileError renders a service error as a tool error.
func fileError(action string, err error) *mcp.CallToolResult {
	var ioErr *filedb.IOError
	switch {
	case errors.Is(err, filedb.ErrDuplicateName):
		return toolError("Failed to %s: a file with that name already exists here (%v)", action, err)
	case errors.As(err, &ioErr):
		return toolError("Failed to %s: filesystem error: %v", action, ioErr)
	default:
		return toolError("Failed to %s: %v", action, err)
	}
}

// --- Handlers ---

func (t *FileTools) ListFiles(ctx context.Context, _ *mcp.CallToolRequest, input ScopeInput) (*mcp.CallToolResult, any, error) {
	projectID, ok := t.Session.ProjectID(input.ProjectID)
	if !ok {
		return noProject(), nil, nil
	}
	files, err := t.Files.ListFiles(ctx, projectID, folderRef(input.FolderID))
	if err != nil {
		return fileError("list files", err), nil, nil
	}
	if files == nil {
		files = []models.File{}
	}
	return toolJSON(files)
}

func (t *FileTools) CreateFile(ctx context.Context, _ *mcp.CallToolRequest, input CreateFileInput) (*mcp.CallToolResult, any, error) {
	projectID, ok := t.Session.ProjectID(input.ProjectID)
	if !ok {
		return noProject(), nil, nil
	}
	f, err := t.Files.Create(ctx, projectID, folderRef(input.FolderID), input.Name)
	if err != nil {
		return fileError("create file", err), nil, nil
	}
	return toolJSON(f)
}

func (t *FileTools) DeleteFile(ctx context.Context, _ *mcp.CallToolRequest, input DeleteFileInput) (*mcp.CallToolResult, any, error) {
	projectID, ok := t.Session.ProjectID(input.ProjectID)
	if !ok {
		return noProject(), nil, nil
	}
	if err := t.Files.Delete(ctx, projectID, folderRef(input.FolderID), input.FileID); err != nil {
		return fileError("delete file", err), nil, nil
	}
	return toolText(fmt.Sprintf("File %d deleted.", input.FileID)), nil, nil
}

func (t *FileTools) RenameFile(ctx context.Context, _ *mcp.CallToolRequest, input RenameFileInput) (*mcp.CallToolResult, any, error) {
	f, err := t.Files.Rename(ctx, input.FileID, input.NewName)
	if err != nil {
		return fileError("rename file", err), nil, nil
	}
	return toolJSON(f)
}

func (t *FileTools) MoveFile(ctx context.Context, _ *mcp.CallToolRequest, input MoveFileInput) (*mcp.CallToolResult, any, error) {
	projectID, ok := t.Session.ProjectID(input.ProjectID)
	if !ok {
		return noProject(), nil, nil
	}
	f, err := t.Files.Move(ctx, projectID, folderRef(input.FolderID), input.FileID)
	if err != nil {
		return fileError("move file", err), nil, nil
	}
	return toolJSON(f)
}

func (t *FileTools) WriteFile(ctx context.Context, _ *mcp.CallToolRequest, input WriteFileInput) (*mcp.CallToolResult, any, error) {
	if err := t.Files.OverwriteContent(ctx, input.FileID, input.Content); err != nil {
		return fileError("write file", err), nil, nil
	}
	return toolText(fmt.Sprintf("Wrote %d bytes to file %d.", len(input.Content), input.FileID)), nil, nil
}

func (t *FileTools) ReadFile(ctx context.Context, _ *mcp.CallToolRequest, input FileIDInput) (*mcp.CallToolResult, any, error) {
	content, err := t.Files.ReadContent(ctx, input.FileID)
	if err != nil {
		return fileError("read file", err), nil, nil
	}
	return toolJSON(FileContent{FileID: input.FileID, Content: content})
}

func (t *FileTools) GetExecTarget(ctx context.Context, _ *mcp.CallToolRequest, input FileIDInput) (*mcp.CallToolResult, any, error) {
	target, err := t.Files.ExecTarget(ctx, input.FileID)
	if err != nil {
		return fileError("resolve file", err), nil, nil
	}
	return toolJSON(target)
}
