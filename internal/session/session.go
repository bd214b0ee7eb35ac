package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/models"
)

// ProjectLookup resolves projects by id.
type ProjectLookup interface {
	GetProject(ctx context.Context, id int64) (*models.Project, error)
}

// Session holds the current project context for an MCP session.
type Session struct {
	id string

	mu      sync.Mutex
	project *models.Project
}

// New creates a new empty session with no active project.
func New() *Session {
	return &Session{id: uuid.New().String()}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// SwitchProject makes the given project the active one.
func (s *Session) SwitchProject(ctx context.Context, projects ProjectLookup, projectID int64) (*models.Project, error) {
	proj, err := projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = proj
	return proj, nil
}

// Current returns the active project, or false if none is active.
func (s *Session) Current() (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return models.Project{}, false
	}
	return *s.project, true
}

// ProjectID picks the explicit id when given, else the active project's id.
func (s *Session) ProjectID(explicit int64) (int64, bool) {
	if explicit != 0 {
		return explicit, true
	}
	p, ok := s.Current()
	return p.ID, ok
}

// Clear resets session state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = nil
}
