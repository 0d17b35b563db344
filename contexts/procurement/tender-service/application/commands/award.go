package commands

import (
	"context"

	application "agora/contexts/procurement/tender-service/application"
	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
)

// AwardProposalCommand allocates funding to the current winning proposal and
// closes out the tender.
type AwardProposalCommand struct {
	TenderID      string
	CallerID      string
	FundingAmount float64
}

// AwardProposalResult reports the terminal tender state and the identity of
// the project record created for the winner.
type AwardProposalResult struct {
	Tender    entities.Tender
	ProjectID string
}

// AwardProposal is the terminal admin operation: it creates the winning
// company's project record, disburses the funding amount to it, and moves the
// tender to the awarded phase. The three effects commit together — a failing
// collaborator call aborts the award, the tender state is never written, and
// an already-created project record is discarded as compensation.
//
// Award requires the voting-closed phase. The reference behavior carried no
// phase guard here; that permissiveness let an admin award before proposal
// voting ended, so the guard is enforced like every other admin transition.
func (uc TenderUseCase) AwardProposal(ctx context.Context, cmd AwardProposalCommand) (AwardProposalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.FundingAmount <= 0 {
		return AwardProposalResult{}, domainerrors.ErrInvalidTenderInput
	}

	unlock := uc.lockTender(cmd.TenderID)
	defer unlock()

	tender, err := uc.requireAdmin(ctx, AdminCommand{TenderID: cmd.TenderID, CallerID: cmd.CallerID})
	if err != nil {
		return AwardProposalResult{}, err
	}
	if tender.Phase != entities.PhaseVotingClosed {
		return AwardProposalResult{}, domainerrors.ErrInvalidPhase
	}
	if tender.ProposalCount == 0 {
		return AwardProposalResult{}, domainerrors.ErrNoProposals
	}

	winner, err := uc.Tenders.GetProposal(ctx, tender.TenderID, tender.CurrentWinningProposalID)
	if err != nil {
		return AwardProposalResult{}, err
	}

	projectID, err := uc.Projects.CreateProject(ctx, tender.TenderID, winner.CompanyID)
	if err != nil {
		logger.Error("project creation failed; award aborted",
			"event", "tender_award_project_failed",
			"module", "procurement/tender-service",
			"layer", "application",
			"tender_id", tender.TenderID,
			"proposal_id", winner.ProposalID,
			"company_id", winner.CompanyID,
			"error", err.Error(),
		)
		return AwardProposalResult{}, domainerrors.ErrDependencyFailed
	}

	if err := uc.Ledger.Disburse(ctx, cmd.FundingAmount, projectID); err != nil {
		logger.Error("funding disbursement failed; award aborted",
			"event", "tender_award_disburse_failed",
			"module", "procurement/tender-service",
			"layer", "application",
			"tender_id", tender.TenderID,
			"project_id", projectID,
			"amount", cmd.FundingAmount,
			"error", err.Error(),
		)
		if discardErr := uc.Projects.DiscardProject(ctx, projectID); discardErr != nil {
			logger.Error("project discard after failed disbursement also failed",
				"event", "tender_award_discard_failed",
				"module", "procurement/tender-service",
				"layer", "application",
				"tender_id", tender.TenderID,
				"project_id", projectID,
				"error", discardErr.Error(),
			)
		}
		return AwardProposalResult{}, domainerrors.ErrDependencyFailed
	}

	winningID := winner.ProposalID
	tender.WinningProposalID = &winningID
	tender.AwardedProjectID = projectID
	tender.AwardedAmount = cmd.FundingAmount

	awarded, err := uc.applyTransition(ctx, tender, entities.PhaseAwarded, "tender.awarded", cmd.CallerID)
	if err != nil {
		return AwardProposalResult{}, err
	}

	logger.Info("tender awarded",
		"event", "tender_awarded",
		"module", "procurement/tender-service",
		"layer", "application",
		"tender_id", awarded.TenderID,
		"winning_proposal_id", winningID,
		"company_id", winner.CompanyID,
		"project_id", projectID,
		"amount", cmd.FundingAmount,
	)
	return AwardProposalResult{Tender: awarded, ProjectID: projectID}, nil
}
