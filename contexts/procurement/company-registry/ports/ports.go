package ports

import (
	"context"
	"time"
)

type Company struct {
	CompanyID        string
	Name             string
	RepresentativeID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type RegisterCompanyInput struct {
	Name             string
	RepresentativeID string
}

type Repository interface {
	CreateCompany(ctx context.Context, company Company) error
	GetCompany(ctx context.Context, companyID string) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	UpdateRepresentative(ctx context.Context, companyID string, representativeID string, updatedAt time.Time) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
