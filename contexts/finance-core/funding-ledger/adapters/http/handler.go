package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"agora/contexts/finance-core/funding-ledger/application"
	"agora/contexts/finance-core/funding-ledger/ports"
	httptransport "agora/contexts/finance-core/funding-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// @Summary Project ledger
// @Description Returns every funding disbursement recorded for a project and the running total.
// @Tags funding-ledger
// @Produce json
// @Param project_id path string true "Project id"
// @Success 200 {object} httptransport.ProjectLedgerResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/ledger/projects/{project_id} [get]
func (h Handler) ProjectLedgerHandler(ctx context.Context, projectID string) (httptransport.ProjectLedgerResponse, error) {
	balance, err := h.Service.ProjectBalance(ctx, projectID)
	if err != nil {
		return httptransport.ProjectLedgerResponse{}, err
	}
	items, err := h.Service.ListDisbursements(ctx, projectID)
	if err != nil {
		return httptransport.ProjectLedgerResponse{}, err
	}
	resp := httptransport.ProjectLedgerResponse{
		ProjectID: balance.ProjectID,
		Total:     balance.Total,
		Count:     balance.Count,
		Items:     make([]httptransport.DisbursementDTO, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toDTO(item))
	}
	return resp, nil
}

func toDTO(disbursement ports.Disbursement) httptransport.DisbursementDTO {
	return httptransport.DisbursementDTO{
		DisbursementID: disbursement.DisbursementID,
		ProjectID:      disbursement.ProjectID,
		Amount:         disbursement.Amount,
		DisbursedAt:    disbursement.DisbursedAt.UTC().Format(time.RFC3339),
	}
}
