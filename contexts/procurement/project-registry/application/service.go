package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "agora/contexts/procurement/project-registry/domain/errors"
	"agora/contexts/procurement/project-registry/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreateProject opens a project record for an awarded tender. The caller is
// expected to discard the project if a later step of the award fails.
func (s Service) CreateProject(ctx context.Context, tenderID string, companyID string) (ports.Project, error) {
	tenderID = strings.TrimSpace(tenderID)
	companyID = strings.TrimSpace(companyID)
	if tenderID == "" || companyID == "" {
		return ports.Project{}, domainerrors.ErrInvalidInput
	}

	projectID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Project{}, err
	}
	now := s.Clock.Now().UTC()
	project := ports.Project{
		ProjectID: strings.TrimSpace(projectID),
		TenderID:  tenderID,
		CompanyID: companyID,
		Status:    ports.ProjectStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.CreateProject(ctx, project); err != nil {
		return ports.Project{}, err
	}

	resolveLogger(s.Logger).Info("project created",
		"event", "project_created",
		"module", "procurement/project-registry",
		"layer", "application",
		"project_id", project.ProjectID,
		"tender_id", project.TenderID,
		"company_id", project.CompanyID,
	)
	return project, nil
}

func (s Service) DiscardProject(ctx context.Context, projectID string) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return domainerrors.ErrInvalidInput
	}
	if err := s.Repo.UpdateStatus(ctx, projectID, ports.ProjectStatusDiscarded, s.Clock.Now().UTC()); err != nil {
		return err
	}

	resolveLogger(s.Logger).Warn("project discarded",
		"event", "project_discarded",
		"module", "procurement/project-registry",
		"layer", "application",
		"project_id", projectID,
	)
	return nil
}

func (s Service) GetProject(ctx context.Context, projectID string) (ports.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return ports.Project{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetProject(ctx, strings.TrimSpace(projectID))
}

func (s Service) ListProjectsByTender(ctx context.Context, tenderID string) ([]ports.Project, error) {
	if strings.TrimSpace(tenderID) == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	return s.Repo.ListProjectsByTender(ctx, strings.TrimSpace(tenderID))
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
