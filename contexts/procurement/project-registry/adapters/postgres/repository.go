package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "agora/contexts/procurement/project-registry/domain/errors"
	"agora/contexts/procurement/project-registry/ports"

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

func (r *Repository) CreateProject(ctx context.Context, project ports.Project) error {
	row := projectModel{
		ID:        strings.TrimSpace(project.ProjectID),
		TenderID:  strings.TrimSpace(project.TenderID),
		CompanyID: strings.TrimSpace(project.CompanyID),
		Status:    project.Status,
		CreatedAt: project.CreatedAt.UTC(),
		UpdatedAt: project.UpdatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return r.logError("project_repo_create_failed", err, "project_id", row.ID)
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, projectID string) (ports.Project, error) {
	var row projectModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(projectID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Project{}, domainerrors.ErrNotFound
		}
		return ports.Project{}, r.logError("project_repo_get_failed", err, "project_id", strings.TrimSpace(projectID))
	}
	return row.toPort(), nil
}

func (r *Repository) ListProjectsByTender(ctx context.Context, tenderID string) ([]ports.Project, error) {
	var rows []projectModel
	if err := r.db.WithContext(ctx).
		Where("tender_id = ?", strings.TrimSpace(tenderID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("project_repo_list_failed", err, "tender_id", strings.TrimSpace(tenderID))
	}
	items := make([]ports.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, projectID string, status string, updatedAt time.Time) error {
	update := r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("id = ?", strings.TrimSpace(projectID)).
		Updates(map[string]any{
			"status":     status,
			"updated_at": updatedAt.UTC(),
		})
	if update.Error != nil {
		return r.logError("project_repo_update_status_failed", update.Error, "project_id", strings.TrimSpace(projectID))
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
		"module", "procurement/project-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("project repository operation failed", fields...)
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

type projectModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	TenderID  string    `gorm:"column:tender_id"`
	CompanyID string    `gorm:"column:company_id"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (projectModel) TableName() string { return "projects_registry" }

func (m projectModel) toPort() ports.Project {
	return ports.Project{
		ProjectID: m.ID,
		TenderID:  m.TenderID,
		CompanyID: m.CompanyID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
