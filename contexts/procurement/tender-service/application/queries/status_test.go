package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"agora/contexts/procurement/tender-service/adapters/memory"
	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
)

func TestResultsRankByVotesThenEarliestProposal(t *testing.T) {
	store := memory.NewStore([]entities.Tender{{TenderID: "tender-1", Phase: entities.PhaseVotingClosed}})
	ctx := context.Background()
	for _, proposal := range []entities.Proposal{
		{TenderID: "tender-1", ProposalID: 0, CompanyID: "company-a", VoteCount: 2},
		{TenderID: "tender-1", ProposalID: 1, CompanyID: "company-b", VoteCount: 5},
		{TenderID: "tender-1", ProposalID: 2, CompanyID: "company-c", VoteCount: 2},
	} {
		if err := store.SaveProposal(ctx, proposal); err != nil {
			t.Fatalf("seed proposal failed: %v", err)
		}
	}

	uc := StatusUseCase{Tenders: store}
	results, err := uc.Results(ctx, "tender-1")
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	got := make([]int, 0, len(results))
	for _, proposal := range results {
		got = append(got, proposal.ProposalID)
	}
	want := []int{1, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestGetTenderIncludesProposals(t *testing.T) {
	store := memory.NewStore([]entities.Tender{{TenderID: "tender-1", Phase: entities.PhaseProposing, CreatedAt: time.Now().UTC()}})
	ctx := context.Background()
	_ = store.SaveProposal(ctx, entities.Proposal{TenderID: "tender-1", ProposalID: 0, CompanyID: "company-a"})

	uc := StatusUseCase{Tenders: store}
	status, err := uc.GetTender(ctx, " tender-1 ")
	if err != nil {
		t.Fatalf("get tender failed: %v", err)
	}
	if status.Tender.TenderID != "tender-1" || len(status.Proposals) != 1 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestGetTenderUnknownID(t *testing.T) {
	uc := StatusUseCase{Tenders: memory.NewStore(nil)}
	if _, err := uc.GetTender(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrTenderNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
