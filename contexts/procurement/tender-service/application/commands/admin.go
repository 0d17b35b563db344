package commands

import (
	"context"
	"strings"

	application "agora/contexts/procurement/tender-service/application"
	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
)

// AdminCommand identifies the tender and the caller claiming admin authority.
type AdminCommand struct {
	TenderID string
	CallerID string
}

// UpdateAdminCommand transfers override authority. The transfer is
// unconditional once the caller is the current admin; there is no handshake.
type UpdateAdminCommand struct {
	TenderID   string
	CallerID   string
	NewAdminID string
}

// OverrideApprove forces the tender into the approved phase from voting or
// declined, outside the normal voter-driven flow.
func (uc TenderUseCase) OverrideApprove(ctx context.Context, cmd AdminCommand) (entities.Tender, error) {
	return uc.adminTransition(ctx, cmd, entities.PhaseApproved, "tender.approved",
		[]entities.Phase{entities.PhaseVoting, entities.PhaseDeclined})
}

// OverrideDecline forces the tender into the declined phase from voting or
// approved.
func (uc TenderUseCase) OverrideDecline(ctx context.Context, cmd AdminCommand) (entities.Tender, error) {
	return uc.adminTransition(ctx, cmd, entities.PhaseDeclined, "tender.declined",
		[]entities.Phase{entities.PhaseVoting, entities.PhaseApproved})
}

// OpenProposals moves an approved tender into the proposing phase.
func (uc TenderUseCase) OpenProposals(ctx context.Context, cmd AdminCommand) (entities.Tender, error) {
	return uc.adminTransition(ctx, cmd, entities.PhaseProposing, "tender.proposing_opened",
		[]entities.Phase{entities.PhaseApproved})
}

// CloseProposalsOpenVoting closes the solicitation window and opens proposal
// voting. At least one proposal must exist so the running winner always
// refers to a real proposal.
func (uc TenderUseCase) CloseProposalsOpenVoting(ctx context.Context, cmd AdminCommand) (entities.Tender, error) {
	unlock := uc.lockTender(cmd.TenderID)
	defer unlock()

	tender, err := uc.requireAdmin(ctx, cmd)
	if err != nil {
		return entities.Tender{}, err
	}
	if tender.Phase != entities.PhaseProposing {
		return entities.Tender{}, domainerrors.ErrInvalidPhase
	}
	if tender.ProposalCount == 0 {
		return entities.Tender{}, domainerrors.ErrNoProposals
	}
	return uc.applyTransition(ctx, tender, entities.PhaseProposalVoting, "tender.proposal_voting_opened", cmd.CallerID)
}

// CloseProposalVoting freezes proposal tallies ahead of the award.
func (uc TenderUseCase) CloseProposalVoting(ctx context.Context, cmd AdminCommand) (entities.Tender, error) {
	return uc.adminTransition(ctx, cmd, entities.PhaseVotingClosed, "tender.voting_closed",
		[]entities.Phase{entities.PhaseProposalVoting})
}

// UpdateAdmin replaces the admin identity. A wrong value permanently hands
// authority to whoever now holds it.
func (uc TenderUseCase) UpdateAdmin(ctx context.Context, cmd UpdateAdminCommand) (entities.Tender, error) {
	logger := application.ResolveLogger(uc.Logger)
	newAdminID := strings.TrimSpace(cmd.NewAdminID)
	if newAdminID == "" {
		return entities.Tender{}, domainerrors.ErrInvalidTenderInput
	}

	unlock := uc.lockTender(cmd.TenderID)
	defer unlock()

	tender, err := uc.requireAdmin(ctx, AdminCommand{TenderID: cmd.TenderID, CallerID: cmd.CallerID})
	if err != nil {
		return entities.Tender{}, err
	}

	now := uc.now()
	previous := tender.AdminID
	tender.AdminID = newAdminID
	tender.UpdatedAt = now
	if err := uc.Tenders.SaveTender(ctx, tender); err != nil {
		return entities.Tender{}, err
	}
	if err := uc.appendTenderEvent(ctx, "tender.admin_changed", tender, now, map[string]any{
		"previous_admin_id": previous,
		"new_admin_id":      newAdminID,
	}); err != nil {
		return entities.Tender{}, err
	}

	logger.Info("tender admin changed",
		"event", "tender_admin_changed",
		"module", "procurement/tender-service",
		"layer", "application",
		"tender_id", tender.TenderID,
		"previous_admin_id", previous,
		"new_admin_id", newAdminID,
	)
	return tender, nil
}

func (uc TenderUseCase) adminTransition(
	ctx context.Context,
	cmd AdminCommand,
	to entities.Phase,
	eventType string,
	fromAny []entities.Phase,
) (entities.Tender, error) {
	unlock := uc.lockTender(cmd.TenderID)
	defer unlock()

	tender, err := uc.requireAdmin(ctx, cmd)
	if err != nil {
		return entities.Tender{}, err
	}

	allowed := false
	for _, phase := range fromAny {
		if tender.Phase == phase {
			allowed = true
			break
		}
	}
	if !allowed {
		return entities.Tender{}, domainerrors.ErrInvalidPhase
	}
	return uc.applyTransition(ctx, tender, to, eventType, cmd.CallerID)
}

func (uc TenderUseCase) requireAdmin(ctx context.Context, cmd AdminCommand) (entities.Tender, error) {
	callerID := strings.TrimSpace(cmd.CallerID)
	if strings.TrimSpace(cmd.TenderID) == "" || callerID == "" {
		return entities.Tender{}, domainerrors.ErrInvalidTenderInput
	}
	tender, err := uc.loadTender(ctx, cmd.TenderID)
	if err != nil {
		return entities.Tender{}, err
	}
	if !strings.EqualFold(tender.AdminID, callerID) {
		return entities.Tender{}, domainerrors.ErrNotAdmin
	}
	return tender, nil
}

// applyTransition is the one write path for phase changes. The entity
// transition table is consulted even after the per-operation guard so an
// illegal edge can never be persisted.
func (uc TenderUseCase) applyTransition(
	ctx context.Context,
	tender entities.Tender,
	to entities.Phase,
	eventType string,
	actorID string,
) (entities.Tender, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !tender.Phase.CanTransitionTo(to) {
		return entities.Tender{}, domainerrors.ErrInvalidPhase
	}

	now := uc.now()
	from := tender.Phase
	tender.Phase = to
	tender.UpdatedAt = now
	if err := uc.Tenders.SaveTender(ctx, tender); err != nil {
		return entities.Tender{}, err
	}
	if err := uc.appendTenderEvent(ctx, eventType, tender, now, map[string]any{
		"from_phase": string(from),
		"to_phase":   string(to),
		"actor_id":   strings.TrimSpace(actorID),
	}); err != nil {
		return entities.Tender{}, err
	}

	logger.Info("tender phase changed",
		"event", "tender_phase_changed",
		"module", "procurement/tender-service",
		"layer", "application",
		"tender_id", tender.TenderID,
		"from_phase", string(from),
		"to_phase", string(to),
		"actor_id", strings.TrimSpace(actorID),
	)
	return tender, nil
}
