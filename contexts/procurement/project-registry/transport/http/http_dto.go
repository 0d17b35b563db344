package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ProjectResponse struct {
	ProjectID string `json:"project_id"`
	TenderID  string `json:"tender_id"`
	CompanyID string `json:"company_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
}
