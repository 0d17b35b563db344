package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainerrors "agora/contexts/procurement/company-registry/domain/errors"
	"agora/contexts/procurement/company-registry/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) RegisterCompany(ctx context.Context, input ports.RegisterCompanyInput) (ports.Company, error) {
	name := strings.TrimSpace(input.Name)
	representativeID := strings.TrimSpace(input.RepresentativeID)
	if name == "" || representativeID == "" {
		return ports.Company{}, domainerrors.ErrInvalidInput
	}

	companyID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Company{}, err
	}
	now := s.Clock.Now().UTC()
	company := ports.Company{
		CompanyID:        strings.TrimSpace(companyID),
		Name:             name,
		RepresentativeID: representativeID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.CreateCompany(ctx, company); err != nil {
		return ports.Company{}, err
	}

	resolveLogger(s.Logger).Info("company registered",
		"event", "company_registered",
		"module", "procurement/company-registry",
		"layer", "application",
		"company_id", company.CompanyID,
		"representative_id", company.RepresentativeID,
	)
	return company, nil
}

func (s Service) GetCompany(ctx context.Context, companyID string) (ports.Company, error) {
	if strings.TrimSpace(companyID) == "" {
		return ports.Company{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetCompany(ctx, strings.TrimSpace(companyID))
}

func (s Service) ListCompanies(ctx context.Context) ([]ports.Company, error) {
	return s.Repo.ListCompanies(ctx)
}

// Representative resolves a company to its registered representative. The
// found flag distinguishes an unknown company from a lookup failure so
// callers in other modules do not depend on this module's error values.
func (s Service) Representative(ctx context.Context, companyID string) (string, bool, error) {
	company, err := s.Repo.GetCompany(ctx, strings.TrimSpace(companyID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return company.RepresentativeID, true, nil
}

func (s Service) ChangeRepresentative(ctx context.Context, companyID string, representativeID string) (ports.Company, error) {
	companyID = strings.TrimSpace(companyID)
	representativeID = strings.TrimSpace(representativeID)
	if companyID == "" || representativeID == "" {
		return ports.Company{}, domainerrors.ErrInvalidInput
	}
	now := s.Clock.Now().UTC()
	if err := s.Repo.UpdateRepresentative(ctx, companyID, representativeID, now); err != nil {
		return ports.Company{}, err
	}

	resolveLogger(s.Logger).Info("company representative changed",
		"event", "company_representative_changed",
		"module", "procurement/company-registry",
		"layer", "application",
		"company_id", companyID,
		"representative_id", representativeID,
	)
	return s.Repo.GetCompany(ctx, companyID)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
