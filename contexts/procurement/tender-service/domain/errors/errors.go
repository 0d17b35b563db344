package errors

import "errors"

var (
	ErrInvalidTenderInput   = errors.New("invalid tender input")
	ErrTenderNotFound       = errors.New("tender not found")
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrInvalidPhase         = errors.New("operation is not allowed in the current phase")
	ErrNotAdmin             = errors.New("caller is not the tender admin")
	ErrNotRepresentative    = errors.New("caller is not the registered company representative")
	ErrDuplicateVote        = errors.New("identity has already voted in this round")
	ErrVotingDeadlinePassed = errors.New("approval voting deadline has passed")
	ErrNoProposals          = errors.New("tender has no submitted proposals")
	ErrDependencyFailed     = errors.New("collaborator call failed")
	ErrConflict             = errors.New("tender conflict")
)
