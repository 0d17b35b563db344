package ports

import (
	"context"
	"time"
)

const (
	ProjectStatusActive    = "active"
	ProjectStatusDiscarded = "discarded"
)

type Project struct {
	ProjectID string
	TenderID  string
	CompanyID string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	CreateProject(ctx context.Context, project Project) error
	GetProject(ctx context.Context, projectID string) (Project, error)
	ListProjectsByTender(ctx context.Context, tenderID string) ([]Project, error)
	UpdateStatus(ctx context.Context, projectID string, status string, updatedAt time.Time) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
