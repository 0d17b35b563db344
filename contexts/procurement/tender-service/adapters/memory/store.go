package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
	"agora/contexts/procurement/tender-service/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store backs the tender module for tests and local wiring. Besides the
// repository it carries projections of the collaborator contexts (company
// representatives, project records, disbursements) the way module stores do
// elsewhere in this codebase.
type Store struct {
	mu sync.RWMutex

	tenders       map[string]entities.Tender
	proposals     map[string]map[int]entities.Proposal
	approvalVotes map[string]map[string]entities.ApprovalVote
	proposalVotes map[string]map[string]entities.ProposalVote
	outbox        map[string]outboxRecord

	representatives map[string]string
	projects        map[string]projectRecord
	disbursements   []Disbursement

	projectSeq int
}

type projectRecord struct {
	ProjectID string
	TenderID  string
	CompanyID string
}

// Disbursement captures one funding transfer recorded by the in-memory ledger.
type Disbursement struct {
	ProjectID string
	Amount    float64
}

func NewStore(seed []entities.Tender) *Store {
	tenders := make(map[string]entities.Tender, len(seed))
	for _, tender := range seed {
		tenders[tender.TenderID] = tender
	}
	return &Store{
		tenders:         tenders,
		proposals:       make(map[string]map[int]entities.Proposal),
		approvalVotes:   make(map[string]map[string]entities.ApprovalVote),
		proposalVotes:   make(map[string]map[string]entities.ProposalVote),
		outbox:          make(map[string]outboxRecord),
		representatives: make(map[string]string),
		projects:        make(map[string]projectRecord),
	}
}

func (s *Store) SetRepresentative(companyID string, representativeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.representatives[strings.TrimSpace(companyID)] = strings.TrimSpace(representativeID)
}

func (s *Store) Disbursements() []Disbursement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Disbursement(nil), s.disbursements...)
}

func (s *Store) ProjectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

func (s *Store) SaveTender(_ context.Context, tender entities.Tender) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenders[strings.TrimSpace(tender.TenderID)] = tender
	return nil
}

func (s *Store) GetTender(_ context.Context, tenderID string) (entities.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tender, ok := s.tenders[strings.TrimSpace(tenderID)]
	if !ok {
		return entities.Tender{}, domainerrors.ErrTenderNotFound
	}
	return tender, nil
}

func (s *Store) ListTenders(_ context.Context) ([]entities.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Tender, 0, len(s.tenders))
	for _, tender := range s.tenders {
		items = append(items, tender)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) SaveProposal(_ context.Context, proposal entities.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenderID := strings.TrimSpace(proposal.TenderID)
	if s.proposals[tenderID] == nil {
		s.proposals[tenderID] = make(map[int]entities.Proposal)
	}
	s.proposals[tenderID][proposal.ProposalID] = proposal
	return nil
}

func (s *Store) GetProposal(_ context.Context, tenderID string, proposalID int) (entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals[strings.TrimSpace(tenderID)][proposalID]
	if !ok {
		return entities.Proposal{}, domainerrors.ErrProposalNotFound
	}
	return proposal, nil
}

func (s *Store) ListProposals(_ context.Context, tenderID string) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.proposals[strings.TrimSpace(tenderID)]
	items := make([]entities.Proposal, 0, len(rows))
	for _, proposal := range rows {
		items = append(items, proposal)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProposalID < items[j].ProposalID
	})
	return items, nil
}

func (s *Store) SaveApprovalVote(_ context.Context, vote entities.ApprovalVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenderID := strings.TrimSpace(vote.TenderID)
	voterID := strings.TrimSpace(vote.VoterID)
	if s.approvalVotes[tenderID] == nil {
		s.approvalVotes[tenderID] = make(map[string]entities.ApprovalVote)
	}
	if _, exists := s.approvalVotes[tenderID][voterID]; exists {
		return domainerrors.ErrDuplicateVote
	}
	s.approvalVotes[tenderID][voterID] = vote
	return nil
}

func (s *Store) HasApprovalVote(_ context.Context, tenderID string, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.approvalVotes[strings.TrimSpace(tenderID)][strings.TrimSpace(voterID)]
	return ok, nil
}

func (s *Store) SaveProposalVote(_ context.Context, vote entities.ProposalVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenderID := strings.TrimSpace(vote.TenderID)
	key := proposalVoteKey(vote.ProposalID, vote.VoterID)
	if s.proposalVotes[tenderID] == nil {
		s.proposalVotes[tenderID] = make(map[string]entities.ProposalVote)
	}
	if _, exists := s.proposalVotes[tenderID][key]; exists {
		return domainerrors.ErrDuplicateVote
	}
	s.proposalVotes[tenderID][key] = vote
	return nil
}

func (s *Store) HasProposalVote(_ context.Context, tenderID string, proposalID int, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.proposalVotes[strings.TrimSpace(tenderID)][proposalVoteKey(proposalID, voterID)]
	return ok, nil
}

func (s *Store) Representative(_ context.Context, companyID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	representative, ok := s.representatives[strings.TrimSpace(companyID)]
	if !ok {
		return "", false, nil
	}
	return representative, true, nil
}

func (s *Store) CreateProject(_ context.Context, tenderID string, companyID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectSeq++
	projectID := fmt.Sprintf("project-%d", s.projectSeq)
	s.projects[projectID] = projectRecord{
		ProjectID: projectID,
		TenderID:  strings.TrimSpace(tenderID),
		CompanyID: strings.TrimSpace(companyID),
	}
	return projectID, nil
}

func (s *Store) DiscardProject(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, strings.TrimSpace(projectID))
	return nil
}

func (s *Store) Disburse(_ context.Context, amount float64, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount <= 0 {
		return domainerrors.ErrInvalidTenderInput
	}
	s.disbursements = append(s.disbursements, Disbursement{
		ProjectID: strings.TrimSpace(projectID),
		Amount:    amount,
	})
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.message.Payload, payload) {
			return domainerrors.ErrConflict
		}
		return nil
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrConflict
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func proposalVoteKey(proposalID int, voterID string) string {
	return fmt.Sprintf("%d|%s", proposalID, strings.TrimSpace(voterID))
}

var _ ports.TenderRepository = (*Store)(nil)
var _ ports.CompanyDirectory = (*Store)(nil)
var _ ports.ProjectFactory = (*Store)(nil)
var _ ports.FundingLedger = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
