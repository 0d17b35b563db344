package ports

import (
	"context"
	"time"
)

type Disbursement struct {
	DisbursementID string
	ProjectID      string
	Amount         float64
	DisbursedAt    time.Time
}

type ProjectBalance struct {
	ProjectID string
	Total     float64
	Count     int
}

type Repository interface {
	CreateDisbursement(ctx context.Context, disbursement Disbursement) error
	ListDisbursementsByProject(ctx context.Context, projectID string) ([]Disbursement, error)
	BuildProjectBalance(ctx context.Context, projectID string) (ProjectBalance, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
