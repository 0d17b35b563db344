package commands

import (
	"context"
	"strings"

	application "agora/contexts/procurement/tender-service/application"
	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
)

// CastApprovalVoteCommand records one community yes-vote on whether the
// tender proceeds to solicitation.
type CastApprovalVoteCommand struct {
	TenderID string
	VoterID  string
}

// CastApprovalVoteResult reports the post-vote tally and whether this vote
// tipped the tender into the approved phase.
type CastApprovalVoteResult struct {
	Tender       entities.Tender
	AutoApproved bool
}

// CastApprovalVote accepts a yes-vote while the tender is in the voting phase
// and the deadline has not elapsed. Each voter identity counts once for the
// lifetime of the tender; reaching the required threshold approves the tender
// as a side effect of the same call.
func (uc TenderUseCase) CastApprovalVote(ctx context.Context, cmd CastApprovalVoteCommand) (CastApprovalVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	if strings.TrimSpace(cmd.TenderID) == "" || voterID == "" {
		return CastApprovalVoteResult{}, domainerrors.ErrInvalidTenderInput
	}

	unlock := uc.lockTender(cmd.TenderID)
	defer unlock()

	tender, err := uc.loadTender(ctx, cmd.TenderID)
	if err != nil {
		return CastApprovalVoteResult{}, err
	}
	if tender.Phase != entities.PhaseVoting {
		logger.Warn("approval vote rejected outside voting phase",
			"event", "tender_approval_vote_phase_rejected",
			"module", "procurement/tender-service",
			"layer", "application",
			"tender_id", tender.TenderID,
			"phase", string(tender.Phase),
			"voter_id", voterID,
		)
		return CastApprovalVoteResult{}, domainerrors.ErrInvalidPhase
	}

	now := uc.now()
	if !tender.ApprovalVotingOpen(now) {
		return CastApprovalVoteResult{}, domainerrors.ErrVotingDeadlinePassed
	}

	voted, err := uc.Tenders.HasApprovalVote(ctx, tender.TenderID, voterID)
	if err != nil {
		return CastApprovalVoteResult{}, err
	}
	if voted {
		return CastApprovalVoteResult{}, domainerrors.ErrDuplicateVote
	}

	if err := uc.Tenders.SaveApprovalVote(ctx, entities.ApprovalVote{
		TenderID:  tender.TenderID,
		VoterID:   voterID,
		CreatedAt: now,
	}); err != nil {
		return CastApprovalVoteResult{}, err
	}

	tender.YesVoteCount++
	tender.UpdatedAt = now
	autoApproved := false
	if tender.ApprovalThresholdReached() {
		tender.Phase = entities.PhaseApproved
		autoApproved = true
	}
	if err := uc.Tenders.SaveTender(ctx, tender); err != nil {
		return CastApprovalVoteResult{}, err
	}

	if err := uc.appendTenderEvent(ctx, "tender.approval_vote_cast", tender, now, map[string]any{
		"voter_id":       voterID,
		"yes_vote_count": tender.YesVoteCount,
	}); err != nil {
		return CastApprovalVoteResult{}, err
	}
	if autoApproved {
		if err := uc.appendTenderEvent(ctx, "tender.approved", tender, now, map[string]any{
			"trigger": "approval_threshold",
		}); err != nil {
			return CastApprovalVoteResult{}, err
		}
	}

	logger.Info("approval vote cast",
		"event", "tender_approval_vote_cast",
		"module", "procurement/tender-service",
		"layer", "application",
		"tender_id", tender.TenderID,
		"voter_id", voterID,
		"yes_vote_count", tender.YesVoteCount,
		"auto_approved", autoApproved,
	)
	return CastApprovalVoteResult{Tender: tender, AutoApproved: autoApproved}, nil
}
