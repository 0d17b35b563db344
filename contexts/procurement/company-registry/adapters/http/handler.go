package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"agora/contexts/procurement/company-registry/application"
	"agora/contexts/procurement/company-registry/ports"
	httptransport "agora/contexts/procurement/company-registry/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// @Summary Register company
// @Description Registers a company with its representative so it can bid on tenders.
// @Tags company-registry
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterCompanyRequest true "Company"
// @Success 200 {object} httptransport.CompanyResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/companies [post]
func (h Handler) RegisterCompanyHandler(
	ctx context.Context,
	req httptransport.RegisterCompanyRequest,
) (httptransport.CompanyResponse, error) {
	company, err := h.Service.RegisterCompany(ctx, ports.RegisterCompanyInput{
		Name:             req.Name,
		RepresentativeID: req.RepresentativeID,
	})
	if err != nil {
		return httptransport.CompanyResponse{}, err
	}
	return toDTO(company), nil
}

func (h Handler) GetCompanyHandler(ctx context.Context, companyID string) (httptransport.CompanyResponse, error) {
	company, err := h.Service.GetCompany(ctx, companyID)
	if err != nil {
		return httptransport.CompanyResponse{}, err
	}
	return toDTO(company), nil
}

func (h Handler) ListCompaniesHandler(ctx context.Context) (httptransport.CompanyListResponse, error) {
	companies, err := h.Service.ListCompanies(ctx)
	if err != nil {
		return httptransport.CompanyListResponse{}, err
	}
	resp := httptransport.CompanyListResponse{
		Items: make([]httptransport.CompanyResponse, 0, len(companies)),
	}
	for _, company := range companies {
		resp.Items = append(resp.Items, toDTO(company))
	}
	return resp, nil
}

func (h Handler) ChangeRepresentativeHandler(
	ctx context.Context,
	companyID string,
	req httptransport.ChangeRepresentativeRequest,
) (httptransport.CompanyResponse, error) {
	company, err := h.Service.ChangeRepresentative(ctx, companyID, req.RepresentativeID)
	if err != nil {
		return httptransport.CompanyResponse{}, err
	}
	return toDTO(company), nil
}

func toDTO(company ports.Company) httptransport.CompanyResponse {
	return httptransport.CompanyResponse{
		CompanyID:        company.CompanyID,
		Name:             company.Name,
		RepresentativeID: company.RepresentativeID,
		CreatedAt:        company.CreatedAt.UTC().Format(time.RFC3339),
	}
}
