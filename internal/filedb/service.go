// Package filedb keeps project file records and the on-disk file tree in step.
//
// Every mutation resolves ids, derives the target path from the Layout,
// checks sibling-name uniqueness, performs one filesystem call and then
// persists the record. A filesystem failure aborts the operation before the
// record changes, except for Delete, where the record is authoritative and
// disk removal is best effort.
package filedb

import (
	"context"
	"errors"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/storage"
)

// Catalog is the entity store the service depends on. *storage.Store
// implements it.
type Catalog interface {
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	GetFolder(ctx context.Context, id int64) (*models.Folder, error)
	GetFile(ctx context.Context, id int64) (*models.File, error)
	ListFiles(ctx context.Context, projectID int64, folderID *int64) ([]models.File, error)
	InsertFile(ctx context.Context, f *models.File) (*models.File, error)
	UpdateFile(ctx context.Context, f *models.File) (*models.File, error)
	DeleteFile(ctx context.Context, id int64) error
}

// Service performs file operations against a Catalog and a Disk.
type Service struct {
	store  Catalog
	disk   *Disk
	layout Layout
	log    *zap.Logger
	locks  scopeLocks
}

// NewService wires a service. A nil logger disables logging.
func NewService(store Catalog, disk *Disk, layout Layout, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  store,
		disk:   disk,
		layout: layout,
		log:    log.Named("filedb"),
	}
}

// resolveScope loads the project and, if given, checks the folder belongs to it.
func (s *Service) resolveScope(ctx context.Context, projectID int64, folderID *int64) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if folderID != nil {
		folder, err := s.store.GetFolder(ctx, *folderID)
		if err != nil {
			return nil, err
		}
		if folder.ProjectID != projectID {
			return nil, fmt.Errorf("folder %d in project %d: %w", *folderID, projectID, ErrNotFound)
		}
	}
	return project, nil
}

// isDuplicate reports whether a file other than self already carries name in
// the scope. Pass self = 0 when no existing file is being renamed or moved.
func (s *Service) isDuplicate(ctx context.Context, name string, projectID int64, folderID *int64, self int64) (bool, error) {
	if folderID == nil {
		if _, err := s.store.GetProject(ctx, projectID); err != nil {
			return false, err
		}
	} else if _, err := s.store.GetFolder(ctx, *folderID); err != nil {
		return false, err
	}

	siblings, err := s.store.ListFiles(ctx, projectID, folderID)
	if err != nil {
		return false, err
	}
	for _, f := range siblings {
		if f.ID != self && f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func duplicate(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateName, name)
}

// Create makes an empty file called name in the given scope. folderID nil
// means the project top level.
func (s *Service) Create(ctx context.Context, projectID int64, folderID *int64, name string) (*models.File, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	project, err := s.resolveScope(ctx, projectID, folderID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(scopeOf(projectID, folderID))
	defer unlock()

	dup, err := s.isDuplicate(ctx, name, projectID, folderID, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, duplicate(name)
	}

	dir := s.layout.Dir(project.MemberID, projectID, folderID)
	filePath := path.Join(dir, name)
	if err := s.disk.EnsureDir(dir); err != nil {
		return nil, err
	}
	created, err := s.disk.CreateEmpty(filePath)
	if err != nil {
		return nil, err
	}
	if !created {
		// Left behind by a delete whose disk removal failed; reclaim it empty.
		s.log.Warn("reclaiming orphaned file on disk", zap.String("path", filePath))
		if err := s.disk.WriteAll(filePath, nil); err != nil {
			return nil, err
		}
	}

	f, err := s.store.InsertFile(ctx, &models.File{
		ProjectID: projectID,
		FolderID:  folderID,
		Name:      name,
		Path:      filePath,
	})
	if err != nil {
		if created {
			if rmErr := s.disk.Remove(filePath); rmErr != nil {
				s.log.Warn("remove file after failed insert", zap.Error(rmErr))
			}
		}
		if errors.Is(err, storage.ErrConflict) {
			return nil, duplicate(name)
		}
		return nil, err
	}

	s.log.Info("file created",
		zap.Int64("file_id", f.ID),
		zap.Int64("project_id", projectID),
		zap.String("path", f.Path),
	)
	return f, nil
}

// Delete removes a file from disk and then its record. The stored path is
// used; a folderID that no longer matches the record is only logged. Disk
// removal failures are logged and never stop the record from being removed.
func (s *Service) Delete(ctx context.Context, projectID int64, folderID *int64, fileID int64) error {
	f, err := s.store.GetFile(ctx, fileID)
	if err != nil {
		return err
	}
	if f.ProjectID != projectID {
		return fmt.Errorf("file %d in project %d: %w", fileID, projectID, ErrNotFound)
	}
	if !f.InFolder(folderID) {
		s.log.Warn("stale folder reference on delete",
			zap.Int64("file_id", fileID),
			zap.String("path", f.Path),
		)
	}

	if err := s.disk.Remove(f.Path); err != nil {
		s.log.Warn("remove file from disk", zap.Int64("file_id", fileID), zap.Error(err))
	}
	if err := s.store.DeleteFile(ctx, fileID); err != nil {
		return err
	}

	s.log.Info("file deleted", zap.Int64("file_id", fileID), zap.String("path", f.Path))
	return nil
}

// Rename changes a file's name within its current scope.
func (s *Service) Rename(ctx context.Context, fileID int64, newName string) (*models.File, error) {
	if err := ValidateName(newName); err != nil {
		return nil, err
	}
	f, err := s.store.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if f.Name == newName {
		return f, nil
	}

	unlock := s.locks.lock(scopeOf(f.ProjectID, f.FolderID))
	defer unlock()

	dup, err := s.isDuplicate(ctx, newName, f.ProjectID, f.FolderID, f.ID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, duplicate(newName)
	}

	oldPath := f.Path
	newPath := path.Join(path.Dir(oldPath), newName)
	if err := s.disk.Rename(oldPath, newPath); err != nil {
		return nil, err
	}

	f.Name = newName
	f.Path = newPath
	updated, err := s.store.UpdateFile(ctx, f)
	if err != nil {
		s.undoRename(newPath, oldPath)
		if errors.Is(err, storage.ErrConflict) {
			return nil, duplicate(newName)
		}
		return nil, err
	}

	s.log.Info("file renamed",
		zap.Int64("file_id", fileID),
		zap.String("from", oldPath),
		zap.String("to", newPath),
	)
	return updated, nil
}

// Move relocates a file to another scope of the same project. Both the folder
// reference and the stored path are updated.
func (s *Service) Move(ctx context.Context, projectID int64, folderID *int64, fileID int64) (*models.File, error) {
	f, err := s.store.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if f.ProjectID != projectID {
		return nil, fmt.Errorf("file %d in project %d: %w", fileID, projectID, ErrNotFound)
	}
	project, err := s.resolveScope(ctx, projectID, folderID)
	if err != nil {
		return nil, err
	}
	if f.InFolder(folderID) {
		return f, nil
	}

	unlock := s.locks.lock(scopeOf(projectID, folderID))
	defer unlock()

	dup, err := s.isDuplicate(ctx, f.Name, projectID, folderID, f.ID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, duplicate(f.Name)
	}

	dir := s.layout.Dir(project.MemberID, projectID, folderID)
	if err := s.disk.EnsureDir(dir); err != nil {
		return nil, err
	}
	oldPath := f.Path
	newPath := path.Join(dir, f.Name)
	if err := s.disk.Rename(oldPath, newPath); err != nil {
		return nil, err
	}

	f.FolderID = folderID
	f.Path = newPath
	updated, err := s.store.UpdateFile(ctx, f)
	if err != nil {
		s.undoRename(newPath, oldPath)
		if errors.Is(err, storage.ErrConflict) {
			return nil, duplicate(f.Name)
		}
		return nil, err
	}

	s.log.Info("file moved",
		zap.Int64("file_id", fileID),
		zap.String("from", oldPath),
		zap.String("to", newPath),
	)
	return updated, nil
}

func (s *Service) undoRename(from, to string) {
	if err := s.disk.Rename(from, to); err != nil {
		s.log.Error("restore file after failed update", zap.String("path", from), zap.Error(err))
	}
}

// OverwriteContent replaces the whole content of a file.
func (s *Service) OverwriteContent(ctx context.Context, fileID int64, content string) error {
	f, err := s.store.GetFile(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.disk.WriteAll(f.Path, []byte(content)); err != nil {
		return err
	}
	s.log.Debug("file content written", zap.Int64("file_id", fileID), zap.Int("bytes", len(content)))
	return nil
}

// ReadContent returns the whole content of a file.
func (s *Service) ReadContent(ctx context.Context, fileID int64) (string, error) {
	f, err := s.store.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}
	data, err := s.disk.ReadAll(f.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListFiles returns the files of one scope.
func (s *Service) ListFiles(ctx context.Context, projectID int64, folderID *int64) ([]models.File, error) {
	if _, err := s.resolveScope(ctx, projectID, folderID); err != nil {
		return nil, err
	}
	return s.store.ListFiles(ctx, projectID, folderID)
}

// ExecTarget returns what the execution engine needs to run a file.
func (s *Service) ExecTarget(ctx context.Context, fileID int64) (*models.ExecTarget, error) {
	f, err := s.store.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.GetProject(ctx, f.ProjectID)
	if err != nil {
		return nil, err
	}
	return &models.ExecTarget{Path: f.Path, Language: project.Language}, nil
}

// MemberID returns the tenant owning a project.
func (s *Service) MemberID(ctx context.Context, projectID int64) (int64, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return project.MemberID, nil
}
