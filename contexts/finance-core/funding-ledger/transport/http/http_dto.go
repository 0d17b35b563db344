package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DisbursementDTO struct {
	DisbursementID string  `json:"disbursement_id"`
	ProjectID      string  `json:"project_id"`
	Amount         float64 `json:"amount"`
	DisbursedAt    string  `json:"disbursed_at"`
}

type ProjectLedgerResponse struct {
	ProjectID string            `json:"project_id"`
	Total     float64           `json:"total"`
	Count     int               `json:"count"`
	Items     []DisbursementDTO `json:"items"`
}
