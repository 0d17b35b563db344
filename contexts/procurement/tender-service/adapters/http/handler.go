package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"agora/contexts/procurement/tender-service/application/commands"
	"agora/contexts/procurement/tender-service/application/queries"
	"agora/contexts/procurement/tender-service/domain/entities"
	httptransport "agora/contexts/procurement/tender-service/transport/http"
)

type Handler struct {
	Tenders commands.TenderUseCase
	Status  queries.StatusUseCase
	Logger  *slog.Logger
}

// @Summary Create tender
// @Description Opens a new tender in the approval-voting phase. The caller becomes its admin.
// @Tags tender-service
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller identity"
// @Param request body httptransport.CreateTenderRequest true "Tender definition"
// @Success 200 {object} httptransport.TenderResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/tenders [post]
func (h Handler) CreateTenderHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CreateTenderRequest,
) (httptransport.TenderResponse, error) {
	tender, err := h.Tenders.CreateTender(ctx, commands.CreateTenderCommand{
		AdminID:          callerID,
		Title:            req.Title,
		DescriptorURI:    req.DescriptorURI,
		VotingDuration:   time.Duration(req.VotingDurationSec) * time.Second,
		RequiredYesVotes: req.RequiredYesVotes,
	})
	if err != nil {
		return httptransport.TenderResponse{}, err
	}
	return mapTender(tender, nil), nil
}

func (h Handler) GetTenderHandler(ctx context.Context, tenderID string) (httptransport.TenderResponse, error) {
	status, err := h.Status.GetTender(ctx, tenderID)
	if err != nil {
		return httptransport.TenderResponse{}, err
	}
	return mapTender(status.Tender, status.Proposals), nil
}

// @Summary Cast approval vote
// @Description Records one community yes-vote; reaching the threshold approves the tender in the same call.
// @Tags tender-service
// @Produce json
// @Param X-User-Id header string true "Voter identity"
// @Param tender_id path string true "Tender id"
// @Success 200 {object} httptransport.ApprovalVoteResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/tenders/{tender_id}/approval-votes [post]
func (h Handler) CastApprovalVoteHandler(
	ctx context.Context,
	tenderID string,
	voterID string,
) (httptransport.ApprovalVoteResponse, error) {
	result, err := h.Tenders.CastApprovalVote(ctx, commands.CastApprovalVoteCommand{
		TenderID: tenderID,
		VoterID:  voterID,
	})
	if err != nil {
		return httptransport.ApprovalVoteResponse{}, err
	}
	return httptransport.ApprovalVoteResponse{
		TenderID:     result.Tender.TenderID,
		Phase:        string(result.Tender.Phase),
		YesVoteCount: result.Tender.YesVoteCount,
		AutoApproved: result.AutoApproved,
	}, nil
}

// @Summary Submit proposal
// @Description Submits a company bid; the caller must be the company's registered representative.
// @Tags tender-service
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller identity"
// @Param tender_id path string true "Tender id"
// @Param request body httptransport.SubmitProposalRequest true "Proposal"
// @Success 200 {object} httptransport.ProposalResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /v1/tenders/{tender_id}/proposals [post]
func (h Handler) SubmitProposalHandler(
	ctx context.Context,
	tenderID string,
	callerID string,
	req httptransport.SubmitProposalRequest,
) (httptransport.ProposalResponse, error) {
	proposal, err := h.Tenders.SubmitProposal(ctx, commands.SubmitProposalCommand{
		TenderID:      tenderID,
		CompanyID:     req.CompanyID,
		CallerID:      callerID,
		DescriptorURI: req.DescriptorURI,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) ListProposalsHandler(ctx context.Context, tenderID string) ([]httptransport.ProposalResponse, error) {
	proposals, err := h.Status.ListProposals(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.ProposalResponse, 0, len(proposals))
	for _, proposal := range proposals {
		items = append(items, mapProposal(proposal))
	}
	return items, nil
}

func (h Handler) VoteForProposalHandler(
	ctx context.Context,
	tenderID string,
	proposalID int,
	voterID string,
) (httptransport.ProposalVoteResponse, error) {
	result, err := h.Tenders.VoteForProposal(ctx, commands.VoteForProposalCommand{
		TenderID:   tenderID,
		ProposalID: proposalID,
		VoterID:    voterID,
	})
	if err != nil {
		return httptransport.ProposalVoteResponse{}, err
	}
	return httptransport.ProposalVoteResponse{
		TenderID:         result.Proposal.TenderID,
		ProposalID:       result.Proposal.ProposalID,
		VoteCount:        result.Proposal.VoteCount,
		CurrentWinningID: result.CurrentWinningID,
	}, nil
}

func (h Handler) ResultsHandler(ctx context.Context, tenderID string) (httptransport.ResultsResponse, error) {
	status, err := h.Status.GetTender(ctx, tenderID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	ranked, err := h.Status.Results(ctx, tenderID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	items := make([]httptransport.ProposalResponse, 0, len(ranked))
	for _, proposal := range ranked {
		items = append(items, mapProposal(proposal))
	}
	return httptransport.ResultsResponse{
		TenderID: status.Tender.TenderID,
		Phase:    string(status.Tender.Phase),
		Items:    items,
	}, nil
}

func (h Handler) OverrideApproveHandler(ctx context.Context, tenderID string, callerID string) (httptransport.TenderResponse, error) {
	tender, err := h.Tenders.OverrideApprove(ctx, commands.AdminCommand{TenderID: tenderID, CallerID: callerID})
	if err != nil {
		return httptransport.TenderResponse{}, err
	}
	return mapTender(tender, nil), nil
}

func (h Handler) OverrideDeclineHandler(ctx context.Context, tenderID string, callerID string) (httptransport.TenderResponse, error) {
	tender, err := h.Tenders.OverrideDecline(ctx, commands.AdminCommand{TenderID: tenderID, CallerID: callerID})
	if err != nil {
		return httptransport.TenderResponse{}, err
	}
	return mapTender(tender, nil), nil
}

func (h Handler) OpenProposalsHandler(ctx context.Context, tenderID string, callerID string) (httptransport.TenderResponse, error) {
	tender, err := h.Tenders.OpenProposals(ctx, commands.AdminCommand{TenderID: tenderID, CallerID: callerID})
	if err != nil {
		return httptransport.TenderResponse{}, err
	}
	return mapTender(tender, nil), nil
}

func (h Handler) CloseProposalsHandler(ctx context.Context, tenderID string, callerID string) (httptransport.TenderResponse, error) {
	tender, err := h.Tenders.CloseProposalsOpenVoting(ctx, commands.AdminCommand{TenderID: tenderID, CallerID: callerID})
	if err != nil {
		return httptransport.TenderResponse{}, err
	}
	return mapTender(tender, nil), nil
}

func (h Handler) CloseProposalVotingHandler(ctx context.Context, tenderID string, callerID string) (httptransport.TenderResponse, error) {
	tender, err := h.Tenders.CloseProposalVoting(ctx, commands.AdminCommand{TenderID: tenderID, CallerID: callerID})
	if err != nil {
		return httptransport.TenderResponse{}, err
	}
	return mapTender(tender, nil), nil
}

// @Summary Award proposal
// @Description Creates the winner's project record, disburses funding, and closes the tender as awarded.
// @Tags tender-service
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Admin identity"
// @Param tender_id path string true "Tender id"
// @Param request body httptransport.AwardRequest true "Funding amount"
// @Success 200 {object} httptransport.AwardResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/tenders/{tender_id}/admin/award [post]
func (h Handler) AwardProposalHandler(
	ctx context.Context,
	tenderID string,
	callerID string,
	req httptransport.AwardRequest,
) (httptransport.AwardResponse, error) {
	result, err := h.Tenders.AwardProposal(ctx, commands.AwardProposalCommand{
		TenderID:      tenderID,
		CallerID:      callerID,
		FundingAmount: req.FundingAmount,
	})
	if err != nil {
		return httptransport.AwardResponse{}, err
	}
	winningID := 0
	if result.Tender.WinningProposalID != nil {
		winningID = *result.Tender.WinningProposalID
	}
	return httptransport.AwardResponse{
		TenderID:          result.Tender.TenderID,
		Phase:             string(result.Tender.Phase),
		WinningProposalID: winningID,
		ProjectID:         result.ProjectID,
		FundingAmount:     result.Tender.AwardedAmount,
	}, nil
}

func (h Handler) TransferAdminHandler(
	ctx context.Context,
	tenderID string,
	callerID string,
	req httptransport.TransferAdminRequest,
) (httptransport.TenderResponse, error) {
	tender, err := h.Tenders.UpdateAdmin(ctx, commands.UpdateAdminCommand{
		TenderID:   tenderID,
		CallerID:   callerID,
		NewAdminID: req.NewAdminID,
	})
	if err != nil {
		return httptransport.TenderResponse{}, err
	}
	return mapTender(tender, nil), nil
}

func mapTender(tender entities.Tender, proposals []entities.Proposal) httptransport.TenderResponse {
	resp := httptransport.TenderResponse{
		TenderID:          tender.TenderID,
		Title:             tender.Title,
		DescriptorURI:     tender.DescriptorURI,
		AdminID:           tender.AdminID,
		Phase:             string(tender.Phase),
		VotingDeadline:    tender.VotingDeadline.UTC().Format(time.RFC3339),
		RequiredYesVotes:  tender.RequiredYesVotes,
		YesVoteCount:      tender.YesVoteCount,
		ProposalCount:     tender.ProposalCount,
		CurrentWinningID:  tender.CurrentWinningProposalID,
		WinningProposalID: tender.WinningProposalID,
		AwardedProjectID:  tender.AwardedProjectID,
		AwardedAmount:     tender.AwardedAmount,
	}
	for _, proposal := range proposals {
		resp.Proposals = append(resp.Proposals, mapProposal(proposal))
	}
	return resp
}

func mapProposal(proposal entities.Proposal) httptransport.ProposalResponse {
	return httptransport.ProposalResponse{
		TenderID:      proposal.TenderID,
		ProposalID:    proposal.ProposalID,
		CompanyID:     proposal.CompanyID,
		DescriptorURI: proposal.DescriptorURI,
		VoteCount:     proposal.VoteCount,
	}
}
