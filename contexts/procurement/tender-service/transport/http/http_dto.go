package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateTenderRequest struct {
	Title             string `json:"title"`
	DescriptorURI     string `json:"descriptor_uri,omitempty"`
	VotingDurationSec int64  `json:"voting_duration_sec"`
	RequiredYesVotes  int    `json:"required_yes_votes"`
}

type TenderResponse struct {
	TenderID          string             `json:"tender_id"`
	Title             string             `json:"title"`
	DescriptorURI     string             `json:"descriptor_uri,omitempty"`
	AdminID           string             `json:"admin_id"`
	Phase             string             `json:"phase"`
	VotingDeadline    string             `json:"voting_deadline"`
	RequiredYesVotes  int                `json:"required_yes_votes"`
	YesVoteCount      int                `json:"yes_vote_count"`
	ProposalCount     int                `json:"proposal_count"`
	CurrentWinningID  int                `json:"current_winning_proposal_id"`
	WinningProposalID *int               `json:"winning_proposal_id,omitempty"`
	AwardedProjectID  string             `json:"awarded_project_id,omitempty"`
	AwardedAmount     float64            `json:"awarded_amount,omitempty"`
	Proposals         []ProposalResponse `json:"proposals,omitempty"`
}

type ApprovalVoteResponse struct {
	TenderID     string `json:"tender_id"`
	Phase        string `json:"phase"`
	YesVoteCount int    `json:"yes_vote_count"`
	AutoApproved bool   `json:"auto_approved"`
}

type SubmitProposalRequest struct {
	CompanyID     string `json:"company_id"`
	DescriptorURI string `json:"descriptor_uri,omitempty"`
}

type ProposalResponse struct {
	TenderID      string `json:"tender_id"`
	ProposalID    int    `json:"proposal_id"`
	CompanyID     string `json:"company_id"`
	DescriptorURI string `json:"descriptor_uri,omitempty"`
	VoteCount     int    `json:"vote_count"`
}

type ProposalVoteResponse struct {
	TenderID         string `json:"tender_id"`
	ProposalID       int    `json:"proposal_id"`
	VoteCount        int    `json:"vote_count"`
	CurrentWinningID int    `json:"current_winning_proposal_id"`
}

type AwardRequest struct {
	FundingAmount float64 `json:"funding_amount"`
}

type AwardResponse struct {
	TenderID          string  `json:"tender_id"`
	Phase             string  `json:"phase"`
	WinningProposalID int     `json:"winning_proposal_id"`
	ProjectID         string  `json:"project_id"`
	FundingAmount     float64 `json:"funding_amount"`
}

type TransferAdminRequest struct {
	NewAdminID string `json:"new_admin_id"`
}

type ResultsResponse struct {
	TenderID string             `json:"tender_id"`
	Phase    string             `json:"phase"`
	Items    []ProposalResponse `json:"items"`
}
