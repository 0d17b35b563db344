package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "agora/contexts/finance-core/funding-ledger/domain/errors"
	"agora/contexts/finance-core/funding-ledger/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) CreateDisbursement(ctx context.Context, disbursement ports.Disbursement) error {
	row := disbursementModel{
		ID:          strings.TrimSpace(disbursement.DisbursementID),
		ProjectID:   strings.TrimSpace(disbursement.ProjectID),
		Amount:      disbursement.Amount,
		DisbursedAt: disbursement.DisbursedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return r.logError("ledger_repo_create_failed", err, "disbursement_id", row.ID)
	}
	return nil
}

func (r *Repository) ListDisbursementsByProject(ctx context.Context, projectID string) ([]ports.Disbursement, error) {
	var rows []disbursementModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Order("disbursed_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_failed", err, "project_id", strings.TrimSpace(projectID))
	}
	items := make([]ports.Disbursement, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) BuildProjectBalance(ctx context.Context, projectID string) (ports.ProjectBalance, error) {
	var result struct {
		Total float64
		Count int
	}
	err := r.db.WithContext(ctx).
		Model(&disbursementModel{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Scan(&result).
		Error
	if err != nil {
		return ports.ProjectBalance{}, r.logError("ledger_repo_balance_failed", err, "project_id", strings.TrimSpace(projectID))
	}
	return ports.ProjectBalance{
		ProjectID: strings.TrimSpace(projectID),
		Total:     result.Total,
		Count:     result.Count,
	}, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "finance-core/funding-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ledger repository operation failed", fields...)
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

type disbursementModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ProjectID   string    `gorm:"column:project_id"`
	Amount      float64   `gorm:"column:amount"`
	DisbursedAt time.Time `gorm:"column:disbursed_at"`
}

func (disbursementModel) TableName() string { return "disbursements" }

func (m disbursementModel) toPort() ports.Disbursement {
	return ports.Disbursement{
		DisbursementID: m.ID,
		ProjectID:      m.ProjectID,
		Amount:         m.Amount,
		DisbursedAt:    m.DisbursedAt,
	}
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
