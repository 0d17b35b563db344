package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	fundingledger "agora/contexts/finance-core/funding-ledger"
	ledgererrors "agora/contexts/finance-core/funding-ledger/domain/errors"
	ledgerhttp "agora/contexts/finance-core/funding-ledger/transport/http"
	companyregistry "agora/contexts/procurement/company-registry"
	companyerrors "agora/contexts/procurement/company-registry/domain/errors"
	companyhttp "agora/contexts/procurement/company-registry/transport/http"
	projectregistry "agora/contexts/procurement/project-registry"
	projecterrors "agora/contexts/procurement/project-registry/domain/errors"
	projecthttp "agora/contexts/procurement/project-registry/transport/http"
	tenderservice "agora/contexts/procurement/tender-service"
	tendererrors "agora/contexts/procurement/tender-service/domain/errors"
	tenderhttp "agora/contexts/procurement/tender-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "agora/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	tenders   tenderservice.Module
	companies companyregistry.Module
	projects  projectregistry.Module
	ledger    fundingledger.Module
}

func New(
	tenders tenderservice.Module,
	companies companyregistry.Module,
	projects projectregistry.Module,
	ledger fundingledger.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		tenders:   tenders,
		companies: companies,
		projects:  projects,
		ledger:    ledger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/tenders", s.handleCreateTender)
	s.mux.HandleFunc("GET /v1/tenders/{tender_id}", s.handleGetTender)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/approval-votes", s.handleCastApprovalVote)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/proposals", s.handleSubmitProposal)
	s.mux.HandleFunc("GET /v1/tenders/{tender_id}/proposals", s.handleListProposals)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/proposals/{proposal_id}/votes", s.handleVoteForProposal)
	s.mux.HandleFunc("GET /v1/tenders/{tender_id}/results", s.handleResults)

	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/admin/approve", s.handleOverrideApprove)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/admin/decline", s.handleOverrideDecline)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/admin/open-proposals", s.handleOpenProposals)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/admin/close-proposals", s.handleCloseProposals)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/admin/close-voting", s.handleCloseProposalVoting)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/admin/award", s.handleAwardProposal)
	s.mux.HandleFunc("POST /v1/tenders/{tender_id}/admin/transfer", s.handleTransferAdmin)

	s.mux.HandleFunc("POST /v1/companies", s.handleRegisterCompany)
	s.mux.HandleFunc("GET /v1/companies", s.handleListCompanies)
	s.mux.HandleFunc("GET /v1/companies/{company_id}", s.handleGetCompany)
	s.mux.HandleFunc("POST /v1/companies/{company_id}/representative", s.handleChangeRepresentative)

	s.mux.HandleFunc("GET /v1/projects/{project_id}", s.handleGetProject)
	s.mux.HandleFunc("GET /v1/ledger/projects/{project_id}", s.handleProjectLedger)
}

func (s *Server) handleCreateTender(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeTenderError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req tenderhttp.CreateTenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenderError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tenders.Handler.CreateTenderHandler(r.Context(), callerID, req)
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTender(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tenders.Handler.GetTenderHandler(r.Context(), r.PathValue("tender_id"))
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastApprovalVote(w http.ResponseWriter, r *http.Request) {
	voterID := r.Header.Get("X-User-Id")
	if voterID == "" {
		writeTenderError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.tenders.Handler.CastApprovalVoteHandler(r.Context(), r.PathValue("tender_id"), voterID)
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitProposal(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeTenderError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req tenderhttp.SubmitProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenderError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tenders.Handler.SubmitProposalHandler(r.Context(), r.PathValue("tender_id"), callerID, req)
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tenders.Handler.ListProposalsHandler(r.Context(), r.PathValue("tender_id"))
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoteForProposal(w http.ResponseWriter, r *http.Request) {
	voterID := r.Header.Get("X-User-Id")
	if voterID == "" {
		writeTenderError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	proposalID, err := strconv.Atoi(r.PathValue("proposal_id"))
	if err != nil {
		writeTenderError(w, http.StatusBadRequest, "invalid_proposal_id", "proposal_id must be an integer")
		return
	}

	resp, err := s.tenders.Handler.VoteForProposalHandler(r.Context(), r.PathValue("tender_id"), proposalID, voterID)
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tenders.Handler.ResultsHandler(r.Context(), r.PathValue("tender_id"))
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOverrideApprove(w http.ResponseWriter, r *http.Request) {
	s.handleAdminTransition(w, r, s.tenders.Handler.OverrideApproveHandler)
}

func (s *Server) handleOverrideDecline(w http.ResponseWriter, r *http.Request) {
	s.handleAdminTransition(w, r, s.tenders.Handler.OverrideDeclineHandler)
}

func (s *Server) handleOpenProposals(w http.ResponseWriter, r *http.Request) {
	s.handleAdminTransition(w, r, s.tenders.Handler.OpenProposalsHandler)
}

func (s *Server) handleCloseProposals(w http.ResponseWriter, r *http.Request) {
	s.handleAdminTransition(w, r, s.tenders.Handler.CloseProposalsHandler)
}

func (s *Server) handleCloseProposalVoting(w http.ResponseWriter, r *http.Request) {
	s.handleAdminTransition(w, r, s.tenders.Handler.CloseProposalVotingHandler)
}

func (s *Server) handleAdminTransition(
	w http.ResponseWriter,
	r *http.Request,
	handler func(ctx context.Context, tenderID string, callerID string) (tenderhttp.TenderResponse, error),
) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeTenderError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := handler(r.Context(), r.PathValue("tender_id"), callerID)
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAwardProposal(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeTenderError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req tenderhttp.AwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenderError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tenders.Handler.AwardProposalHandler(r.Context(), r.PathValue("tender_id"), callerID, req)
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferAdmin(w http.ResponseWriter, r *http.Request) {
	callerID := r.Header.Get("X-User-Id")
	if callerID == "" {
		writeTenderError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req tenderhttp.TransferAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTenderError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tenders.Handler.TransferAdminHandler(r.Context(), r.PathValue("tender_id"), callerID, req)
	if err != nil {
		writeTenderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req companyhttp.RegisterCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompanyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.companies.Handler.RegisterCompanyHandler(r.Context(), req)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.companies.Handler.ListCompaniesHandler(r.Context())
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	resp, err := s.companies.Handler.GetCompanyHandler(r.Context(), r.PathValue("company_id"))
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeRepresentative(w http.ResponseWriter, r *http.Request) {
	var req companyhttp.ChangeRepresentativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompanyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.companies.Handler.ChangeRepresentativeHandler(r.Context(), r.PathValue("company_id"), req)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	resp, err := s.projects.Handler.GetProjectHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProjectLedger(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.ProjectLedgerHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTenderDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tendererrors.ErrInvalidTenderInput):
		writeTenderError(w, http.StatusBadRequest, "invalid_tender_input", err.Error())
	case errors.Is(err, tendererrors.ErrTenderNotFound):
		writeTenderError(w, http.StatusNotFound, "tender_not_found", err.Error())
	case errors.Is(err, tendererrors.ErrProposalNotFound):
		writeTenderError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, tendererrors.ErrCompanyNotFound):
		writeTenderError(w, http.StatusNotFound, "company_not_found", err.Error())
	case errors.Is(err, tendererrors.ErrInvalidPhase):
		writeTenderError(w, http.StatusConflict, "invalid_phase", err.Error())
	case errors.Is(err, tendererrors.ErrNotAdmin):
		writeTenderError(w, http.StatusForbidden, "not_admin", err.Error())
	case errors.Is(err, tendererrors.ErrNotRepresentative):
		writeTenderError(w, http.StatusForbidden, "not_representative", err.Error())
	case errors.Is(err, tendererrors.ErrDuplicateVote):
		writeTenderError(w, http.StatusConflict, "duplicate_vote", err.Error())
	case errors.Is(err, tendererrors.ErrVotingDeadlinePassed):
		writeTenderError(w, http.StatusConflict, "voting_deadline_passed", err.Error())
	case errors.Is(err, tendererrors.ErrNoProposals):
		writeTenderError(w, http.StatusConflict, "no_proposals", err.Error())
	case errors.Is(err, tendererrors.ErrConflict):
		writeTenderError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, tendererrors.ErrDependencyFailed):
		writeTenderError(w, http.StatusBadGateway, "dependency_failed", err.Error())
	default:
		writeTenderError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCompanyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, companyerrors.ErrInvalidInput):
		writeCompanyError(w, http.StatusBadRequest, "invalid_company_input", err.Error())
	case errors.Is(err, companyerrors.ErrNotFound):
		writeCompanyError(w, http.StatusNotFound, "company_not_found", err.Error())
	case errors.Is(err, companyerrors.ErrAlreadyExists):
		writeCompanyError(w, http.StatusConflict, "company_already_exists", err.Error())
	default:
		writeCompanyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeProjectDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, projecterrors.ErrInvalidInput):
		writeProjectError(w, http.StatusBadRequest, "invalid_project_input", err.Error())
	case errors.Is(err, projecterrors.ErrNotFound):
		writeProjectError(w, http.StatusNotFound, "project_not_found", err.Error())
	case errors.Is(err, projecterrors.ErrAlreadyExists):
		writeProjectError(w, http.StatusConflict, "project_already_exists", err.Error())
	default:
		writeProjectError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrInvalidInput):
		writeLedgerError(w, http.StatusBadRequest, "invalid_ledger_input", err.Error())
	case errors.Is(err, ledgererrors.ErrNotFound):
		writeLedgerError(w, http.StatusNotFound, "disbursement_not_found", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTenderError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tenderhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeCompanyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, companyhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeProjectError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, projecthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
