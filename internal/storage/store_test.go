package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedProject creates a member and a project and returns the project.
func seedProject(t *testing.T, s *Store) *models.Project {
	t.Helper()
	ctx := context.Background()
	m, err := s.CreateMember(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	p, err := s.CreateProject(ctx, m.ID, "demo", "python")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return p
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "catalog.db")); err != nil {
		t.Errorf("Expected catalog.db to exist: %v", err)
	}
}

func TestCreateAndGetProject(t *testing.T) {
	s := openTestStore(t)
	p := seedProject(t, s)

	if p.Name != "demo" {
		t.Errorf("Name = %q, want %q", p.Name, "demo")
	}
	if p.Language != "python" {
		t.Errorf("Language = %q, want %q", p.Language, "python")
	}

	got, err := s.GetProject(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.MemberID != p.MemberID {
		t.Errorf("MemberID = %d, want %d", got.MemberID, p.MemberID)
	}
}

func TestCreateProjectUnknownMember(t *testing.T) {
	s := openTestStore(t)
	_, err := s.CreateProject(context.Background(), 999, "x", "go")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetMissingRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.GetProject(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProject err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetFolder(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetFolder err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetFile(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetFile err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteFile(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteFile err = %v, want ErrNotFound", err)
	}
}

func TestInsertAndListFiles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := seedProject(t, s)
	folder, err := s.CreateFolder(ctx, p.ID, "src")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	top, err := s.InsertFile(ctx, &models.File{ProjectID: p.ID, Name: "b.txt", Path: "filedb/1/1/b.txt"})
	if err != nil {
		t.Fatalf("InsertFile top: %v", err)
	}
	if top.FolderID != nil {
		t.Errorf("FolderID = %v, want nil", *top.FolderID)
	}
	s.InsertFile(ctx, &models.File{ProjectID: p.ID, Name: "a.txt", Path: "filedb/1/1/a.txt"})

	nested, err := s.InsertFile(ctx, &models.File{ProjectID: p.ID, FolderID: &folder.ID, Name: "main.py", Path: "filedb/1/1/1/main.py"})
	if err != nil {
		t.Fatalf("InsertFile nested: %v", err)
	}
	if nested.FolderID == nil || *nested.FolderID != folder.ID {
		t.Errorf("FolderID = %v, want %d", nested.FolderID, folder.ID)
	}

	files, err := s.ListFiles(ctx, p.ID, nil)
	if err != nil {
		t.Fatalf("ListFiles top: %v", err)
	}
	if len(files) != 2 || files[0].Name != "a.txt" || files[1].Name != "b.txt" {
		t.Errorf("top-level files = %+v, want [a.txt b.txt]", files)
	}

	files, err = s.ListFiles(ctx, p.ID, &folder.ID)
	if err != nil {
		t.Fatalf("ListFiles folder: %v", err)
	}
	if len(files) != 1 || files[0].Name != "main.py" {
		t.Errorf("folder files = %+v, want [main.py]", files)
	}
}

func TestInsertDuplicateSiblingName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := seedProject(t, s)
	folder, _ := s.CreateFolder(ctx, p.ID, "src")

	if _, err := s.InsertFile(ctx, &models.File{ProjectID: p.ID, Name: "a.txt", Path: "p1"}); err != nil {
		t.Fatal(err)
	}
	_, err := s.InsertFile(ctx, &models.File{ProjectID: p.ID, Name: "a.txt", Path: "p2"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate top-level err = %v, want ErrConflict", err)
	}

	// Same name in a different scope is fine.
	if _, err := s.InsertFile(ctx, &models.File{ProjectID: p.ID, FolderID: &folder.ID, Name: "a.txt", Path: "p3"}); err != nil {
		t.Errorf("same name in folder: %v", err)
	}
}

func TestUpdateAndDeleteFile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := seedProject(t, s)
	folder, _ := s.CreateFolder(ctx, p.ID, "src")

	f, err := s.InsertFile(ctx, &models.File{ProjectID: p.ID, Name: "a.txt", Path: "filedb/1/1/a.txt"})
	if err != nil {
		t.Fatal(err)
	}

	f.FolderID = &folder.ID
	f.Name = "b.txt"
	f.Path = "filedb/1/1/1/b.txt"
	updated, err := s.UpdateFile(ctx, f)
	if err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}
	if updated.Path != "filedb/1/1/1/b.txt" || updated.Name != "b.txt" {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.InFolder(&folder.ID) {
		t.Errorf("file should be in folder %d", folder.ID)
	}

	ok, err := s.FileExists(ctx, f.ID)
	if err != nil || !ok {
		t.Fatalf("FileExists = %v, %v", ok, err)
	}
	if err := s.DeleteFile(ctx, f.ID); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	ok, _ = s.FileExists(ctx, f.ID)
	if ok {
		t.Error("file should be gone")
	}
}
