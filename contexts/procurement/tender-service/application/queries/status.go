package queries

import (
	"context"
	"sort"
	"strings"

	"agora/contexts/procurement/tender-service/domain/entities"
	"agora/contexts/procurement/tender-service/ports"
)

type StatusUseCase struct {
	Tenders ports.TenderRepository
}

// TenderStatus is the externally published read model: phase, tallies, admin,
// and result state.
type TenderStatus struct {
	Tender    entities.Tender
	Proposals []entities.Proposal
}

func (uc StatusUseCase) GetTender(ctx context.Context, tenderID string) (TenderStatus, error) {
	tender, err := uc.Tenders.GetTender(ctx, strings.TrimSpace(tenderID))
	if err != nil {
		return TenderStatus{}, err
	}
	proposals, err := uc.Tenders.ListProposals(ctx, tender.TenderID)
	if err != nil {
		return TenderStatus{}, err
	}
	return TenderStatus{Tender: tender, Proposals: proposals}, nil
}

func (uc StatusUseCase) ListProposals(ctx context.Context, tenderID string) ([]entities.Proposal, error) {
	proposals, err := uc.Tenders.ListProposals(ctx, strings.TrimSpace(tenderID))
	if err != nil {
		return nil, err
	}
	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].ProposalID < proposals[j].ProposalID
	})
	return proposals, nil
}

// Results ranks proposals by vote count, earliest proposal first among ties,
// matching the winner-tracking tie-break applied during voting.
func (uc StatusUseCase) Results(ctx context.Context, tenderID string) ([]entities.Proposal, error) {
	proposals, err := uc.Tenders.ListProposals(ctx, strings.TrimSpace(tenderID))
	if err != nil {
		return nil, err
	}
	sort.Slice(proposals, func(i, j int) bool {
		if proposals[i].VoteCount == proposals[j].VoteCount {
			return proposals[i].ProposalID < proposals[j].ProposalID
		}
		return proposals[i].VoteCount > proposals[j].VoteCount
	})
	return proposals, nil
}

func (uc StatusUseCase) ListTenders(ctx context.Context) ([]entities.Tender, error) {
	tenders, err := uc.Tenders.ListTenders(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(tenders, func(i, j int) bool {
		return tenders[i].CreatedAt.Before(tenders[j].CreatedAt)
	})
	return tenders, nil
}
