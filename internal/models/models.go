package models

// Member is a tenant owning one or more projects.
type Member struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Project is the top-level container of folders and files.
type Project struct {
	ID        int64  `json:"id"`
	MemberID  int64  `json:"member_id"`
	Name      string `json:"name"`
	Language  string `json:"language"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Folder groups files inside a project. Folders do not nest.
type Folder struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// File is the record mirroring a single file on disk.
// FolderID is nil for files at the project top level.
type File struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	FolderID  *int64 `json:"folder_id,omitempty"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// InFolder reports whether the file lives in the given scope.
func (f *File) InFolder(folderID *int64) bool {
	if f.FolderID == nil || folderID == nil {
		return f.FolderID == nil && folderID == nil
	}
	return *f.FolderID == *folderID
}

// ExecTarget is what the execution engine needs to run a file.
type ExecTarget struct {
	Path     string `json:"path"`
	Language string `json:"language"`
}
