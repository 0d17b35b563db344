package entities

import "time"

type Phase string

const (
	PhaseVoting         Phase = "voting"
	PhaseApproved       Phase = "approved"
	PhaseDeclined       Phase = "declined"
	PhaseProposing      Phase = "proposing"
	PhaseProposalVoting Phase = "proposal_voting"
	PhaseVotingClosed   Phase = "voting_closed"
	PhaseAwarded        Phase = "awarded"
)

// legalTransitions is the single source of truth for the tender lifecycle.
// Voter-driven approval, admin overrides, and the award path all consult this
// table; an edge missing here is an edge the system cannot take.
var legalTransitions = map[Phase][]Phase{
	PhaseVoting:         {PhaseApproved, PhaseDeclined},
	PhaseApproved:       {PhaseDeclined, PhaseProposing},
	PhaseDeclined:       {PhaseApproved},
	PhaseProposing:      {PhaseProposalVoting},
	PhaseProposalVoting: {PhaseVotingClosed},
	PhaseVotingClosed:   {PhaseAwarded},
}

func (p Phase) CanTransitionTo(to Phase) bool {
	for _, next := range legalTransitions[p] {
		if next == to {
			return true
		}
	}
	return false
}

func IsSupportedPhase(value Phase) bool {
	switch value {
	case PhaseVoting, PhaseApproved, PhaseDeclined, PhaseProposing,
		PhaseProposalVoting, PhaseVotingClosed, PhaseAwarded:
		return true
	default:
		return false
	}
}

type Tender struct {
	TenderID         string
	Title            string
	DescriptorURI    string
	AdminID          string
	Phase            Phase
	VotingDeadline   time.Time
	RequiredYesVotes int
	YesVoteCount     int
	ProposalCount    int

	// CurrentWinningProposalID tracks the running leader during proposal
	// voting. It starts at proposal 0 and is displaced only by a strictly
	// greater vote count, so the earliest proposal keeps ties.
	CurrentWinningProposalID int

	WinningProposalID *int
	AwardedProjectID  string
	AwardedAmount     float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApprovalVotingOpen reports whether ordinary yes-votes are still accepted.
func (t Tender) ApprovalVotingOpen(now time.Time) bool {
	return now.UTC().Before(t.VotingDeadline.UTC())
}

// ApprovalThresholdReached is evaluated after each yes-vote; reaching the
// threshold auto-approves the tender within the same call.
func (t Tender) ApprovalThresholdReached() bool {
	return t.RequiredYesVotes > 0 && t.YesVoteCount >= t.RequiredYesVotes
}

type Proposal struct {
	TenderID      string
	ProposalID    int
	CompanyID     string
	DescriptorURI string
	VoteCount     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ApprovalVote struct {
	TenderID  string
	VoterID   string
	CreatedAt time.Time
}

type ProposalVote struct {
	TenderID   string
	ProposalID int
	VoterID    string
	CreatedAt  time.Time
}
