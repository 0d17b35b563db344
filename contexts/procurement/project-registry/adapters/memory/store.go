package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "agora/contexts/procurement/project-registry/domain/errors"
	"agora/contexts/procurement/project-registry/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	projects map[string]ports.Project
}

func NewStore() *Store {
	return &Store{
		projects: make(map[string]ports.Project),
	}
}

func (s *Store) CreateProject(_ context.Context, project ports.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(project.ProjectID)
	if id == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, exists := s.projects[id]; exists {
		return domainerrors.ErrAlreadyExists
	}
	s.projects[id] = project
	return nil
}

func (s *Store) GetProject(_ context.Context, projectID string) (ports.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[strings.TrimSpace(projectID)]
	if !ok {
		return ports.Project{}, domainerrors.ErrNotFound
	}
	return project, nil
}

func (s *Store) ListProjectsByTender(_ context.Context, tenderID string) ([]ports.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Project, 0)
	for _, project := range s.projects {
		if project.TenderID == strings.TrimSpace(tenderID) {
			items = append(items, project)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateStatus(_ context.Context, projectID string, status string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(projectID)
	project, ok := s.projects[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	project.Status = status
	project.UpdatedAt = updatedAt.UTC()
	s.projects[id] = project
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
