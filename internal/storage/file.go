package storage

import (
	"context"
	"fmt"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/models"
)

const fileColumns = `id, project_id, folder_id, name, path, created_at, updated_at`

// GetFile looks up a file record by id.
func (s *Store) GetFile(ctx context.Context, id int64) (*models.File, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+fileColumns+` FROM files WHERE id = ?`, id,
	)
	f, err := scanFile(row)
	if err != nil {
		return nil, noRows(err, "file", id)
	}
	return f, nil
}

// FileExists reports whether a file record with the given id exists.
func (s *Store) FileExists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count file: %w", err)
	}
	return n > 0, nil
}

// ListFiles returns the files of one sibling scope ordered by name: the
// project top level when folderID is nil, otherwise the folder's files.
func (s *Store) ListFiles(ctx context.Context, projectID int64, folderID *int64) ([]models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE project_id = ? AND folder_id IS NULL ORDER BY name`
	args := []any{projectID}
	if folderID != nil {
		query = `SELECT ` + fileColumns + ` FROM files WHERE folder_id = ? ORDER BY name`
		args = []any{*folderID}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

// InsertFile persists a new file record and returns it with its id and
// timestamps filled in.
func (s *Store) InsertFile(ctx context.Context, f *models.File) (*models.File, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO files (project_id, folder_id, name, path) VALUES (?, ?, ?, ?)`,
		f.ProjectID, nullable(f.FolderID), f.Name, f.Path,
	)
	if err != nil {
		return nil, uniqueViolation(err, "insert file")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("file id: %w", err)
	}
	return s.GetFile(ctx, id)
}

// UpdateFile writes back the mutable columns (folder, name, path) of a file.
func (s *Store) UpdateFile(ctx context.Context, f *models.File) (*models.File, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE files SET folder_id = ?, name = ?, path = ?, updated_at = datetime('now') WHERE id = ?`,
		nullable(f.FolderID), f.Name, f.Path, f.ID,
	)
	if err != nil {
		return nil, uniqueViolation(err, "update file")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, fmt.Errorf("file %d: %w", f.ID, ErrNotFound)
	}
	return s.GetFile(ctx, f.ID)
}

// DeleteFile removes a file record.
func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("file %d: %w", id, ErrNotFound)
	}
	return nil
}
