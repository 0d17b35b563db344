package application

import (
	"context"
	"log/slog"
	"math"
	"strings"

	domainerrors "agora/contexts/finance-core/funding-ledger/domain/errors"
	"agora/contexts/finance-core/funding-ledger/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Disburse records a funding payout against a project. Amounts are rounded
// to four decimal places before they enter the ledger.
func (s Service) Disburse(ctx context.Context, amount float64, projectID string) (ports.Disbursement, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" || amount <= 0 {
		return ports.Disbursement{}, domainerrors.ErrInvalidInput
	}

	disbursementID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Disbursement{}, err
	}
	disbursement := ports.Disbursement{
		DisbursementID: strings.TrimSpace(disbursementID),
		ProjectID:      projectID,
		Amount:         round4(amount),
		DisbursedAt:    s.Clock.Now().UTC(),
	}
	if err := s.Repo.CreateDisbursement(ctx, disbursement); err != nil {
		return ports.Disbursement{}, err
	}

	resolveLogger(s.Logger).Info("funding disbursed",
		"event", "funding_disbursed",
		"module", "finance-core/funding-ledger",
		"layer", "application",
		"disbursement_id", disbursement.DisbursementID,
		"project_id", disbursement.ProjectID,
		"amount", disbursement.Amount,
	)
	return disbursement, nil
}

func (s Service) ListDisbursements(ctx context.Context, projectID string) ([]ports.Disbursement, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	return s.Repo.ListDisbursementsByProject(ctx, strings.TrimSpace(projectID))
}

func (s Service) ProjectBalance(ctx context.Context, projectID string) (ports.ProjectBalance, error) {
	if strings.TrimSpace(projectID) == "" {
		return ports.ProjectBalance{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.BuildProjectBalance(ctx, strings.TrimSpace(projectID))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
