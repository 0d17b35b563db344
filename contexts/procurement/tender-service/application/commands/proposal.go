package commands

import (
	"context"
	"strings"

	application "agora/contexts/procurement/tender-service/application"
	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
)

// SubmitProposalCommand is a company bid submitted by its authorized
// representative during the proposing phase.
type SubmitProposalCommand struct {
	TenderID      string
	CompanyID     string
	CallerID      string
	DescriptorURI string
}

// VoteForProposalCommand records one voter's choice among competing proposals.
type VoteForProposalCommand struct {
	TenderID   string
	ProposalID int
	VoterID    string
}

// VoteForProposalResult reports the proposal's new tally and the running
// winner after this vote.
type VoteForProposalResult struct {
	Proposal           entities.Proposal
	CurrentWinningID   int
	DisplacedIncumbent bool
}

// SubmitProposal validates the caller against the company directory and
// appends a proposal with the next sequential id. The descriptor URI is
// opaque; only the representative match is enforced.
func (uc TenderUseCase) SubmitProposal(ctx context.Context, cmd SubmitProposalCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)
	companyID := strings.TrimSpace(cmd.CompanyID)
	callerID := strings.TrimSpace(cmd.CallerID)
	if strings.TrimSpace(cmd.TenderID) == "" || companyID == "" || callerID == "" {
		return entities.Proposal{}, domainerrors.ErrInvalidTenderInput
	}

	unlock := uc.lockTender(cmd.TenderID)
	defer unlock()

	tender, err := uc.loadTender(ctx, cmd.TenderID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if tender.Phase != entities.PhaseProposing {
		return entities.Proposal{}, domainerrors.ErrInvalidPhase
	}

	representative, found, err := uc.Directory.Representative(ctx, companyID)
	if err != nil {
		logger.Error("company directory lookup failed",
			"event", "tender_directory_lookup_failed",
			"module", "procurement/tender-service",
			"layer", "application",
			"tender_id", tender.TenderID,
			"company_id", companyID,
			"error", err.Error(),
		)
		return entities.Proposal{}, domainerrors.ErrDependencyFailed
	}
	if !found {
		return entities.Proposal{}, domainerrors.ErrCompanyNotFound
	}
	if !strings.EqualFold(strings.TrimSpace(representative), callerID) {
		logger.Warn("proposal submission by non-representative",
			"event", "tender_proposal_auth_rejected",
			"module", "procurement/tender-service",
			"layer", "application",
			"tender_id", tender.TenderID,
			"company_id", companyID,
			"caller_id", callerID,
		)
		return entities.Proposal{}, domainerrors.ErrNotRepresentative
	}

	now := uc.now()
	proposal := entities.Proposal{
		TenderID:      tender.TenderID,
		ProposalID:    tender.ProposalCount,
		CompanyID:     companyID,
		DescriptorURI: strings.TrimSpace(cmd.DescriptorURI),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.Tenders.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	tender.ProposalCount++
	tender.UpdatedAt = now
	if err := uc.Tenders.SaveTender(ctx, tender); err != nil {
		return entities.Proposal{}, err
	}

	if err := uc.appendTenderEvent(ctx, "tender.proposal_submitted", tender, now, map[string]any{
		"proposal_id": proposal.ProposalID,
		"company_id":  proposal.CompanyID,
	}); err != nil {
		return entities.Proposal{}, err
	}

	logger.Info("proposal submitted",
		"event", "tender_proposal_submitted",
		"module", "procurement/tender-service",
		"layer", "application",
		"tender_id", tender.TenderID,
		"proposal_id", proposal.ProposalID,
		"company_id", proposal.CompanyID,
	)
	return proposal, nil
}

// VoteForProposal records a (voter, proposal) vote during proposal voting and
// maintains the running winner. A tie never displaces the incumbent, so the
// earliest-submitted proposal keeps the lead.
func (uc TenderUseCase) VoteForProposal(ctx context.Context, cmd VoteForProposalCommand) (VoteForProposalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	if strings.TrimSpace(cmd.TenderID) == "" || voterID == "" || cmd.ProposalID < 0 {
		return VoteForProposalResult{}, domainerrors.ErrInvalidTenderInput
	}

	unlock := uc.lockTender(cmd.TenderID)
	defer unlock()

	tender, err := uc.loadTender(ctx, cmd.TenderID)
	if err != nil {
		return VoteForProposalResult{}, err
	}
	if tender.Phase != entities.PhaseProposalVoting {
		return VoteForProposalResult{}, domainerrors.ErrInvalidPhase
	}
	if cmd.ProposalID >= tender.ProposalCount {
		return VoteForProposalResult{}, domainerrors.ErrProposalNotFound
	}

	voted, err := uc.Tenders.HasProposalVote(ctx, tender.TenderID, cmd.ProposalID, voterID)
	if err != nil {
		return VoteForProposalResult{}, err
	}
	if voted {
		return VoteForProposalResult{}, domainerrors.ErrDuplicateVote
	}

	proposal, err := uc.Tenders.GetProposal(ctx, tender.TenderID, cmd.ProposalID)
	if err != nil {
		return VoteForProposalResult{}, err
	}

	now := uc.now()
	if err := uc.Tenders.SaveProposalVote(ctx, entities.ProposalVote{
		TenderID:   tender.TenderID,
		ProposalID: cmd.ProposalID,
		VoterID:    voterID,
		CreatedAt:  now,
	}); err != nil {
		return VoteForProposalResult{}, err
	}

	proposal.VoteCount++
	proposal.UpdatedAt = now
	if err := uc.Tenders.SaveProposal(ctx, proposal); err != nil {
		return VoteForProposalResult{}, err
	}

	displaced := false
	if proposal.ProposalID != tender.CurrentWinningProposalID {
		incumbent, err := uc.Tenders.GetProposal(ctx, tender.TenderID, tender.CurrentWinningProposalID)
		if err != nil {
			return VoteForProposalResult{}, err
		}
		if proposal.VoteCount > incumbent.VoteCount {
			tender.CurrentWinningProposalID = proposal.ProposalID
			displaced = true
		}
	}
	tender.UpdatedAt = now
	if err := uc.Tenders.SaveTender(ctx, tender); err != nil {
		return VoteForProposalResult{}, err
	}

	if err := uc.appendTenderEvent(ctx, "tender.proposal_vote_cast", tender, now, map[string]any{
		"proposal_id":        proposal.ProposalID,
		"voter_id":           voterID,
		"vote_count":         proposal.VoteCount,
		"current_winning_id": tender.CurrentWinningProposalID,
	}); err != nil {
		return VoteForProposalResult{}, err
	}

	logger.Info("proposal vote cast",
		"event", "tender_proposal_vote_cast",
		"module", "procurement/tender-service",
		"layer", "application",
		"tender_id", tender.TenderID,
		"proposal_id", proposal.ProposalID,
		"voter_id", voterID,
		"vote_count", proposal.VoteCount,
		"current_winning_id", tender.CurrentWinningProposalID,
	)
	return VoteForProposalResult{
		Proposal:           proposal,
		CurrentWinningID:   tender.CurrentWinningProposalID,
		DisplacedIncumbent: displaced,
	}, nil
}
