package commands

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	application "agora/contexts/procurement/tender-service/application"
	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
	"agora/contexts/procurement/tender-service/ports"
)

// LockRegistry serializes all command execution per tender. The reference
// behavior assumes every operation observes and mutates the aggregate
// transactionally; a single mutex per tender id provides that outside a
// transactional runtime.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locks: make(map[string]*sync.Mutex)}
}

func (r *LockRegistry) Acquire(tenderID string) func() {
	r.mu.Lock()
	lock, ok := r.locks[tenderID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[tenderID] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// TenderUseCase orchestrates every tender command: approval voting, proposal
// submission and voting, admin overrides, and the award handoff. All mutating
// paths run under the per-tender lock so no caller observes torn state.
type TenderUseCase struct {
	Tenders   ports.TenderRepository
	Directory ports.CompanyDirectory
	Projects  ports.ProjectFactory
	Ledger    ports.FundingLedger
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Locks     *LockRegistry
	Logger    *slog.Logger
}

// CreateTenderCommand opens a new tender in the approval-voting phase.
type CreateTenderCommand struct {
	AdminID          string
	Title            string
	DescriptorURI    string
	VotingDuration   time.Duration
	RequiredYesVotes int
}

func (uc TenderUseCase) CreateTender(ctx context.Context, cmd CreateTenderCommand) (entities.Tender, error) {
	logger := application.ResolveLogger(uc.Logger)
	adminID := strings.TrimSpace(cmd.AdminID)
	if adminID == "" || strings.TrimSpace(cmd.Title) == "" ||
		cmd.VotingDuration <= 0 || cmd.RequiredYesVotes <= 0 {
		logger.Warn("tender create validation failed",
			"event", "tender_create_validation_failed",
			"module", "procurement/tender-service",
			"layer", "application",
			"admin_id", adminID,
		)
		return entities.Tender{}, domainerrors.ErrInvalidTenderInput
	}

	now := uc.now()
	tenderID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Tender{}, err
	}
	tender := entities.Tender{
		TenderID:         tenderID,
		Title:            strings.TrimSpace(cmd.Title),
		DescriptorURI:    strings.TrimSpace(cmd.DescriptorURI),
		AdminID:          adminID,
		Phase:            entities.PhaseVoting,
		VotingDeadline:   now.Add(cmd.VotingDuration),
		RequiredYesVotes: cmd.RequiredYesVotes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.Tenders.SaveTender(ctx, tender); err != nil {
		return entities.Tender{}, err
	}
	if err := uc.appendTenderEvent(ctx, "tender.created", tender, now, map[string]any{
		"voting_deadline":    tender.VotingDeadline.Format(time.RFC3339),
		"required_yes_votes": tender.RequiredYesVotes,
	}); err != nil {
		return entities.Tender{}, err
	}

	logger.Info("tender created",
		"event", "tender_created",
		"module", "procurement/tender-service",
		"layer", "application",
		"tender_id", tender.TenderID,
		"admin_id", tender.AdminID,
		"required_yes_votes", tender.RequiredYesVotes,
	)
	return tender, nil
}

func (uc TenderUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc TenderUseCase) lockTender(tenderID string) func() {
	if uc.Locks == nil {
		return func() {}
	}
	return uc.Locks.Acquire(strings.TrimSpace(tenderID))
}

func (uc TenderUseCase) loadTender(ctx context.Context, tenderID string) (entities.Tender, error) {
	tender, err := uc.Tenders.GetTender(ctx, strings.TrimSpace(tenderID))
	if err != nil {
		return entities.Tender{}, err
	}
	return tender, nil
}
