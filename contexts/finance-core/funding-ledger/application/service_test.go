package application

import (
	"context"
	"errors"
	"testing"

	"agora/contexts/finance-core/funding-ledger/adapters/memory"
	domainerrors "agora/contexts/finance-core/funding-ledger/domain/errors"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{Repo: store, Clock: store, IDGen: store}
}

func TestDisburseRecordsRoundedAmount(t *testing.T) {
	service := newTestService()

	disbursement, err := service.Disburse(context.Background(), 100.00009, "project-1")
	if err != nil {
		t.Fatalf("disburse failed: %v", err)
	}
	if disbursement.Amount != 100.0001 {
		t.Fatalf("expected amount rounded to 4 places, got %v", disbursement.Amount)
	}
	if disbursement.DisbursementID == "" || disbursement.DisbursedAt.IsZero() {
		t.Fatalf("unexpected disbursement %+v", disbursement)
	}
}

func TestDisburseRejectsInvalidInput(t *testing.T) {
	service := newTestService()

	if _, err := service.Disburse(context.Background(), 0, "project-1"); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero amount, got %v", err)
	}
	if _, err := service.Disburse(context.Background(), -5, "project-1"); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative amount, got %v", err)
	}
	if _, err := service.Disburse(context.Background(), 10, "  "); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank project, got %v", err)
	}
}

func TestProjectBalanceAggregatesDisbursements(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	for _, amount := range []float64{100, 250.5} {
		if _, err := service.Disburse(ctx, amount, "project-1"); err != nil {
			t.Fatalf("disburse %v failed: %v", amount, err)
		}
	}
	if _, err := service.Disburse(ctx, 40, "project-2"); err != nil {
		t.Fatalf("disburse to other project failed: %v", err)
	}

	balance, err := service.ProjectBalance(ctx, "project-1")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance.Count != 2 || balance.Total != 350.5 {
		t.Fatalf("expected 2 disbursements totalling 350.5, got %+v", balance)
	}

	items, err := service.ListDisbursements(ctx, "project-1")
	if err != nil || len(items) != 2 {
		t.Fatalf("expected 2 disbursements listed, got %d err=%v", len(items), err)
	}
}
