package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/models"
)

// CreateMember inserts a new tenant.
func (s *Store) CreateMember(ctx context.Context, name string) (*models.Member, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO members (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("member id: %w", err)
	}
	return s.GetMember(ctx, id)
}

// GetMember looks up a member by id.
func (s *Store) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	var m models.Member
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM members WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err != nil {
		return nil, noRows(err, "member", id)
	}
	return &m, nil
}

// CreateProject inserts a project owned by memberID.
func (s *Store) CreateProject(ctx context.Context, memberID int64, name, language string) (*models.Project, error) {
	if _, err := s.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (member_id, name, language) VALUES (?, ?, ?)`,
		memberID, name, language,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("project id: %w", err)
	}
	return s.GetProject(ctx, id)
}

// GetProject looks up a project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, member_id, name, language, created_at, updated_at FROM projects WHERE id = ?`, id,
	)
	var p models.Project
	if err := row.Scan(&p.ID, &p.MemberID, &p.Name, &p.Language, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, noRows(err, "project", id)
	}
	return &p, nil
}

// CreateFolder inserts a folder at the top level of a project.
func (s *Store) CreateFolder(ctx context.Context, projectID int64, name string) (*models.Folder, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (project_id, name) VALUES (?, ?)`, projectID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert folder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("folder id: %w", err)
	}
	return s.GetFolder(ctx, id)
}

// GetFolder looks up a folder by id.
func (s *Store) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	var f models.Folder
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, created_at, updated_at FROM folders WHERE id = ?`, id,
	).Scan(&f.ID, &f.ProjectID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, noRows(err, "folder", id)
	}
	return &f, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*models.File, error) {
	var f models.File
	var folderID sql.NullInt64
	if err := row.Scan(&f.ID, &f.ProjectID, &folderID, &f.Name, &f.Path, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if folderID.Valid {
		id := folderID.Int64
		f.FolderID = &id
	}
	return &f, nil
}
