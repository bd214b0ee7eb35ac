package filedb

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/storage"
)

// memCatalog is an in-memory Catalog. It enforces the same sibling-name
// uniqueness as the SQLite index.
type memCatalog struct {
	mu       sync.Mutex
	projects map[int64]models.Project
	folders  map[int64]models.Folder
	files    map[int64]models.File
	nextID   int64

	failUpdate error
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		projects: make(map[int64]models.Project),
		folders:  make(map[int64]models.Folder),
		files:    make(map[int64]models.File),
		nextID:   100,
	}
}

func (c *memCatalog) addProject(id, memberID int64, language string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects[id] = models.Project{ID: id, MemberID: memberID, Name: fmt.Sprint("p", id), Language: language}
}

func (c *memCatalog) addFolder(id, projectID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.folders[id] = models.Folder{ID: id, ProjectID: projectID, Name: fmt.Sprint("f", id)}
}

func (c *memCatalog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files)
}

func (c *memCatalog) GetProject(_ context.Context, id int64) (*models.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, storage.ErrNotFound)
	}
	return &p, nil
}

func (c *memCatalog) GetFolder(_ context.Context, id int64) (*models.Folder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, storage.ErrNotFound)
	}
	return &f, nil
}

func (c *memCatalog) GetFile(_ context.Context, id int64) (*models.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.files[id]
	if !ok {
		return nil, fmt.Errorf("file %d: %w", id, storage.ErrNotFound)
	}
	return &f, nil
}

func (c *memCatalog) ListFiles(_ context.Context, projectID int64, folderID *int64) ([]models.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.File
	for _, f := range c.files {
		if f.ProjectID == projectID && f.InFolder(folderID) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *memCatalog) conflicts(f *models.File) bool {
	for _, other := range c.files {
		if other.ID != f.ID && other.ProjectID == f.ProjectID && other.InFolder(f.FolderID) && other.Name == f.Name {
			return true
		}
	}
	return false
}

func (c *memCatalog) InsertFile(_ context.Context, f *models.File) (*models.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conflicts(f) {
		return nil, fmt.Errorf("insert file: %w", storage.ErrConflict)
	}
	c.nextID++
	stored := *f
	stored.ID = c.nextID
	c.files[stored.ID] = stored
	return &stored, nil
}

func (c *memCatalog) UpdateFile(_ context.Context, f *models.File) (*models.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failUpdate != nil {
		return nil, c.failUpdate
	}
	if _, ok := c.files[f.ID]; !ok {
		return nil, fmt.Errorf("file %d: %w", f.ID, storage.ErrNotFound)
	}
	if c.conflicts(f) {
		return nil, fmt.Errorf("update file: %w", storage.ErrConflict)
	}
	stored := *f
	c.files[f.ID] = stored
	return &stored, nil
}

func (c *memCatalog) DeleteFile(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.files[id]; !ok {
		return fmt.Errorf("file %d: %w", id, storage.ErrNotFound)
	}
	delete(c.files, id)
	return nil
}
