package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterCompanyRequest struct {
	Name             string `json:"name"`
	RepresentativeID string `json:"representative_id"`
}

type ChangeRepresentativeRequest struct {
	RepresentativeID string `json:"representative_id"`
}

type CompanyResponse struct {
	CompanyID        string `json:"company_id"`
	Name             string `json:"name"`
	RepresentativeID string `json:"representative_id"`
	CreatedAt        string `json:"created_at"`
}

type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}
