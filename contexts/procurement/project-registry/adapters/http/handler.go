package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"agora/contexts/procurement/project-registry/application"
	"agora/contexts/procurement/project-registry/ports"
	httptransport "agora/contexts/procurement/project-registry/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// @Summary Get project
// @Description Returns the project record created when a tender was awarded.
// @Tags project-registry
// @Produce json
// @Param project_id path string true "Project id"
// @Success 200 {object} httptransport.ProjectResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/projects/{project_id} [get]
func (h Handler) GetProjectHandler(ctx context.Context, projectID string) (httptransport.ProjectResponse, error) {
	project, err := h.Service.GetProject(ctx, projectID)
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return toDTO(project), nil
}

func (h Handler) ListProjectsByTenderHandler(ctx context.Context, tenderID string) (httptransport.ProjectListResponse, error) {
	projects, err := h.Service.ListProjectsByTender(ctx, tenderID)
	if err != nil {
		return httptransport.ProjectListResponse{}, err
	}
	resp := httptransport.ProjectListResponse{
		Items: make([]httptransport.ProjectResponse, 0, len(projects)),
	}
	for _, project := range projects {
		resp.Items = append(resp.Items, toDTO(project))
	}
	return resp, nil
}

func toDTO(project ports.Project) httptransport.ProjectResponse {
	return httptransport.ProjectResponse{
		ProjectID: project.ProjectID,
		TenderID:  project.TenderID,
		CompanyID: project.CompanyID,
		Status:    project.Status,
		CreatedAt: project.CreatedAt.UTC().Format(time.RFC3339),
	}
}
