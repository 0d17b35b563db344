package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "agora/contexts/procurement/company-registry/domain/errors"
	"agora/contexts/procurement/company-registry/ports"

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

func (r *Repository) CreateCompany(ctx context.Context, company ports.Company) error {
	row := companyModel{
		ID:               strings.TrimSpace(company.CompanyID),
		Name:             company.Name,
		RepresentativeID: strings.TrimSpace(company.RepresentativeID),
		CreatedAt:        company.CreatedAt.UTC(),
		UpdatedAt:        company.UpdatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return r.logError("company_repo_create_failed", err, "company_id", row.ID)
	}
	return nil
}

func (r *Repository) GetCompany(ctx context.Context, companyID string) (ports.Company, error) {
	var row companyModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(companyID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Company{}, domainerrors.ErrNotFound
		}
		return ports.Company{}, r.logError("company_repo_get_failed", err, "company_id", strings.TrimSpace(companyID))
	}
	return row.toPort(), nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]ports.Company, error) {
	var rows []companyModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("company_repo_list_failed", err)
	}
	items := make([]ports.Company, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) UpdateRepresentative(ctx context.Context, companyID string, representativeID string, updatedAt time.Time) error {
	update := r.db.WithContext(ctx).
		Model(&companyModel{}).
		Where("id = ?", strings.TrimSpace(companyID)).
		Updates(map[string]any{
			"representative_id": strings.TrimSpace(representativeID),
			"updated_at":        updatedAt.UTC(),
		})
	if update.Error != nil {
		return r.logError("company_repo_update_representative_failed", update.Error, "company_id", strings.TrimSpace(companyID))
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "procurement/company-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("company repository operation failed", fields...)
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

type companyModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	Name             string    `gorm:"column:name"`
	RepresentativeID string    `gorm:"column:representative_id"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (companyModel) TableName() string { return "companies" }

func (m companyModel) toPort() ports.Company {
	return ports.Company{
		CompanyID:        m.ID,
		Name:             m.Name,
		RepresentativeID: m.RepresentativeID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
