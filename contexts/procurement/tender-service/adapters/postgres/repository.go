package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
	"agora/contexts/procurement/tender-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveTender(ctx context.Context, tender entities.Tender) error {
	row := tenderModelFromEntity(tender)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"title":                       row.Title,
			"descriptor_uri":              row.DescriptorURI,
			"admin_id":                    row.AdminID,
			"phase":                       row.Phase,
			"voting_deadline":             row.VotingDeadline,
			"required_yes_votes":          row.RequiredYesVotes,
			"yes_vote_count":              row.YesVoteCount,
			"proposal_count":              row.ProposalCount,
			"current_winning_proposal_id": row.CurrentWinningProposalID,
			"winning_proposal_id":         row.WinningProposalID,
			"awarded_project_id":          row.AwardedProjectID,
			"awarded_amount":              row.AwardedAmount,
			"updated_at":                  row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("tender_repo_save_tender_failed", create.Error,
			"tender_id", strings.TrimSpace(tender.TenderID),
		)
	}
	return nil
}

func (r *Repository) GetTender(ctx context.Context, tenderID string) (entities.Tender, error) {
	var row tenderModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(tenderID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Tender{}, domainerrors.ErrTenderNotFound
		}
		return entities.Tender{}, r.logError("tender_repo_get_tender_failed", err,
			"tender_id", strings.TrimSpace(tenderID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListTenders(ctx context.Context) ([]entities.Tender, error) {
	var rows []tenderModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("tender_repo_list_tenders_failed", err)
	}
	items := make([]entities.Tender, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SaveProposal(ctx context.Context, proposal entities.Proposal) error {
	row := proposalModelFromEntity(proposal)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tender_id"}, {Name: "proposal_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"company_id":     row.CompanyID,
			"descriptor_uri": row.DescriptorURI,
			"vote_count":     row.VoteCount,
			"updated_at":     row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("tender_repo_save_proposal_failed", create.Error,
			"tender_id", strings.TrimSpace(proposal.TenderID),
			"proposal_id", proposal.ProposalID,
		)
	}
	return nil
}

func (r *Repository) GetProposal(ctx context.Context, tenderID string, proposalID int) (entities.Proposal, error) {
	var row proposalModel
	err := r.db.WithContext(ctx).
		Where("tender_id = ?", strings.TrimSpace(tenderID)).
		Where("proposal_id = ?", proposalID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proposal{}, domainerrors.ErrProposalNotFound
		}
		return entities.Proposal{}, r.logError("tender_repo_get_proposal_failed", err,
			"tender_id", strings.TrimSpace(tenderID),
			"proposal_id", proposalID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProposals(ctx context.Context, tenderID string) ([]entities.Proposal, error) {
	var rows []proposalModel
	if err := r.db.WithContext(ctx).
		Where("tender_id = ?", strings.TrimSpace(tenderID)).
		Order("proposal_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("tender_repo_list_proposals_failed", err,
			"tender_id", strings.TrimSpace(tenderID),
		)
	}
	items := make([]entities.Proposal, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SaveApprovalVote(ctx context.Context, vote entities.ApprovalVote) error {
	row := approvalVoteModel{
		TenderID:  strings.TrimSpace(vote.TenderID),
		VoterID:   strings.TrimSpace(vote.VoterID),
		CreatedAt: vote.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// The primary key doubles as the one-vote-per-voter invariant.
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateVote
		}
		return r.logError("tender_repo_save_approval_vote_failed", err,
			"tender_id", row.TenderID,
			"voter_id", row.VoterID,
		)
	}
	return nil
}

func (r *Repository) HasApprovalVote(ctx context.Context, tenderID string, voterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&approvalVoteModel{}).
		Where("tender_id = ?", strings.TrimSpace(tenderID)).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("tender_repo_has_approval_vote_failed", err,
			"tender_id", strings.TrimSpace(tenderID),
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return count > 0, nil
}

func (r *Repository) SaveProposalVote(ctx context.Context, vote entities.ProposalVote) error {
	row := proposalVoteModel{
		TenderID:   strings.TrimSpace(vote.TenderID),
		ProposalID: vote.ProposalID,
		VoterID:    strings.TrimSpace(vote.VoterID),
		CreatedAt:  vote.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateVote
		}
		return r.logError("tender_repo_save_proposal_vote_failed", err,
			"tender_id", row.TenderID,
			"proposal_id", row.ProposalID,
			"voter_id", row.VoterID,
		)
	}
	return nil
}

func (r *Repository) HasProposalVote(ctx context.Context, tenderID string, proposalID int, voterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&proposalVoteModel{}).
		Where("tender_id = ?", strings.TrimSpace(tenderID)).
		Where("proposal_id = ?", proposalID).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("tender_repo_has_proposal_vote_failed", err,
			"tender_id", strings.TrimSpace(tenderID),
			"proposal_id", proposalID,
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return count > 0, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	row := outboxModel{
		ID:           outboxID,
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    createdAt,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("tender_repo_append_outbox_failed", create.Error,
			"outbox_id", outboxID,
			"event_type", row.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("tender_repo_list_pending_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.ID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	update := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if update.Error != nil {
		return r.logError("tender_repo_mark_outbox_published_failed", update.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "procurement/tender-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("tender repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type tenderModel struct {
	ID                       string    `gorm:"column:id;primaryKey"`
	Title                    string    `gorm:"column:title"`
	DescriptorURI            string    `gorm:"column:descriptor_uri"`
	AdminID                  string    `gorm:"column:admin_id"`
	Phase                    string    `gorm:"column:phase"`
	VotingDeadline           time.Time `gorm:"column:voting_deadline"`
	RequiredYesVotes         int       `gorm:"column:required_yes_votes"`
	YesVoteCount             int       `gorm:"column:yes_vote_count"`
	ProposalCount            int       `gorm:"column:proposal_count"`
	CurrentWinningProposalID int       `gorm:"column:current_winning_proposal_id"`
	WinningProposalID        *int      `gorm:"column:winning_proposal_id"`
	AwardedProjectID         string    `gorm:"column:awarded_project_id"`
	AwardedAmount            float64   `gorm:"column:awarded_amount"`
	CreatedAt                time.Time `gorm:"column:created_at"`
	UpdatedAt                time.Time `gorm:"column:updated_at"`
}

func (tenderModel) TableName() string { return "tenders" }

func tenderModelFromEntity(tender entities.Tender) tenderModel {
	return tenderModel{
		ID:                       strings.TrimSpace(tender.TenderID),
		Title:                    tender.Title,
		DescriptorURI:            tender.DescriptorURI,
		AdminID:                  strings.TrimSpace(tender.AdminID),
		Phase:                    string(tender.Phase),
		VotingDeadline:           tender.VotingDeadline.UTC(),
		RequiredYesVotes:         tender.RequiredYesVotes,
		YesVoteCount:             tender.YesVoteCount,
		ProposalCount:            tender.ProposalCount,
		CurrentWinningProposalID: tender.CurrentWinningProposalID,
		WinningProposalID:        tender.WinningProposalID,
		AwardedProjectID:         tender.AwardedProjectID,
		AwardedAmount:            tender.AwardedAmount,
		CreatedAt:                tender.CreatedAt.UTC(),
		UpdatedAt:                tender.UpdatedAt.UTC(),
	}
}

func (m tenderModel) toEntity() entities.Tender {
	return entities.Tender{
		TenderID:                 m.ID,
		Title:                    m.Title,
		DescriptorURI:            m.DescriptorURI,
		AdminID:                  m.AdminID,
		Phase:                    entities.Phase(m.Phase),
		VotingDeadline:           m.VotingDeadline,
		RequiredYesVotes:         m.RequiredYesVotes,
		YesVoteCount:             m.YesVoteCount,
		ProposalCount:            m.ProposalCount,
		CurrentWinningProposalID: m.CurrentWinningProposalID,
		WinningProposalID:        m.WinningProposalID,
		AwardedProjectID:         m.AwardedProjectID,
		AwardedAmount:            m.AwardedAmount,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

type proposalModel struct {
	TenderID      string    `gorm:"column:tender_id;primaryKey"`
	ProposalID    int       `gorm:"column:proposal_id;primaryKey"`
	CompanyID     string    `gorm:"column:company_id"`
	DescriptorURI string    `gorm:"column:descriptor_uri"`
	VoteCount     int       `gorm:"column:vote_count"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string { return "proposals" }

func proposalModelFromEntity(proposal entities.Proposal) proposalModel {
	return proposalModel{
		TenderID:      strings.TrimSpace(proposal.TenderID),
		ProposalID:    proposal.ProposalID,
		CompanyID:     strings.TrimSpace(proposal.CompanyID),
		DescriptorURI: proposal.DescriptorURI,
		VoteCount:     proposal.VoteCount,
		CreatedAt:     proposal.CreatedAt.UTC(),
		UpdatedAt:     proposal.UpdatedAt.UTC(),
	}
}

func (m proposalModel) toEntity() entities.Proposal {
	return entities.Proposal{
		TenderID:      m.TenderID,
		ProposalID:    m.ProposalID,
		CompanyID:     m.CompanyID,
		DescriptorURI: m.DescriptorURI,
		VoteCount:     m.VoteCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type approvalVoteModel struct {
	TenderID  string    `gorm:"column:tender_id;primaryKey"`
	VoterID   string    `gorm:"column:voter_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (approvalVoteModel) TableName() string { return "approval_votes" }

type proposalVoteModel struct {
	TenderID   string    `gorm:"column:tender_id;primaryKey"`
	ProposalID int       `gorm:"column:proposal_id;primaryKey"`
	VoterID    string    `gorm:"column:voter_id;primaryKey"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (proposalVoteModel) TableName() string { return "proposal_votes" }

type outboxModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "tender_outbox" }

var _ ports.TenderRepository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
