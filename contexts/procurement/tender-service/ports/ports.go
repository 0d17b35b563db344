package ports

import (
	"context"
	"time"

	"agora/contexts/procurement/tender-service/domain/entities"
	contractsv1 "agora/contracts/gen/events/v1"
)

// TenderRepository owns tender aggregate persistence: the tender row, its
// proposal collection, and both per-voter ledgers. Vote writes must fail with
// the duplicate-vote domain error when the (voter, round) identity already
// exists, so storage backs invariant enforcement instead of trusting callers.
type TenderRepository interface {
	SaveTender(ctx context.Context, tender entities.Tender) error
	GetTender(ctx context.Context, tenderID string) (entities.Tender, error)
	ListTenders(ctx context.Context) ([]entities.Tender, error)

	SaveProposal(ctx context.Context, proposal entities.Proposal) error
	GetProposal(ctx context.Context, tenderID string, proposalID int) (entities.Proposal, error)
	ListProposals(ctx context.Context, tenderID string) ([]entities.Proposal, error)

	SaveApprovalVote(ctx context.Context, vote entities.ApprovalVote) error
	HasApprovalVote(ctx context.Context, tenderID string, voterID string) (bool, error)

	SaveProposalVote(ctx context.Context, vote entities.ProposalVote) error
	HasProposalVote(ctx context.Context, tenderID string, proposalID int, voterID string) (bool, error)
}

// CompanyDirectory resolves a company id to its authorized representative.
// found=false means the company is unknown; err is reserved for infra failure.
type CompanyDirectory interface {
	Representative(ctx context.Context, companyID string) (string, bool, error)
}

// ProjectFactory instantiates the project record for an awarded tender and
// returns its identity. Failure aborts the award. DiscardProject is the
// compensation hook: when a later award step fails, the freshly created
// record is removed so the aborted award leaves no observable side effect.
type ProjectFactory interface {
	CreateProject(ctx context.Context, tenderID string, companyID string) (string, error)
	DiscardProject(ctx context.Context, projectID string) error
}

// FundingLedger disburses funding to a project account. Failure aborts the
// award; the tender core never retries.
type FundingLedger interface {
	Disburse(ctx context.Context, amount float64, projectID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a consumer-group handler for a topic.
type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, EventEnvelope) error) error
}
