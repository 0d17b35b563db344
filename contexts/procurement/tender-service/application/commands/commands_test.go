package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"agora/contexts/procurement/tender-service/adapters/memory"
	"agora/contexts/procurement/tender-service/domain/entities"
	domainerrors "agora/contexts/procurement/tender-service/domain/errors"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

func (c *stubClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n), nil
}

type failingLedger struct{}

func (failingLedger) Disburse(_ context.Context, _ float64, _ string) error {
	return errors.New("ledger unavailable")
}

type failingFactory struct{}

func (failingFactory) CreateProject(_ context.Context, _ string, _ string) (string, error) {
	return "", errors.New("project registry unavailable")
}

func (failingFactory) DiscardProject(_ context.Context, _ string) error {
	return nil
}

func newTestUseCase(store *memory.Store, clock *stubClock) TenderUseCase {
	return TenderUseCase{
		Tenders:   store,
		Directory: store,
		Projects:  store,
		Ledger:    store,
		Outbox:    store,
		Clock:     clock,
		IDGen:     &seqIDGen{prefix: "tender"},
		Locks:     NewLockRegistry(),
	}
}

func seedTender(store *memory.Store, phase entities.Phase, clock *stubClock) entities.Tender {
	tender := entities.Tender{
		TenderID:         "tender-1",
		Title:            "road resurfacing",
		AdminID:          "admin-1",
		Phase:            phase,
		VotingDeadline:   clock.now.Add(time.Hour),
		RequiredYesVotes: 2,
		CreatedAt:        clock.now,
		UpdatedAt:        clock.now,
	}
	_ = store.SaveTender(context.Background(), tender)
	return tender
}

func seedProposal(store *memory.Store, tenderID string, proposalID int, companyID string) {
	_ = store.SaveProposal(context.Background(), entities.Proposal{
		TenderID:   tenderID,
		ProposalID: proposalID,
		CompanyID:  companyID,
	})
	tender, _ := store.GetTender(context.Background(), tenderID)
	if proposalID >= tender.ProposalCount {
		tender.ProposalCount = proposalID + 1
		_ = store.SaveTender(context.Background(), tender)
	}
}

func TestCreateTenderOpensApprovalVoting(t *testing.T) {
	clock := &stubClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)

	tender, err := uc.CreateTender(context.Background(), CreateTenderCommand{
		AdminID:          "admin-1",
		Title:            "bridge repair",
		VotingDuration:   48 * time.Hour,
		RequiredYesVotes: 3,
	})
	if err != nil {
		t.Fatalf("create tender failed: %v", err)
	}
	if tender.Phase != entities.PhaseVoting {
		t.Fatalf("expected voting phase, got %q", tender.Phase)
	}
	if got, want := tender.VotingDeadline, clock.now.Add(48*time.Hour); !got.Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, got)
	}
	if tender.YesVoteCount != 0 || tender.ProposalCount != 0 {
		t.Fatalf("expected zeroed counters, got %+v", tender)
	}
}

func TestCreateTenderRejectsInvalidInput(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	uc := newTestUseCase(memory.NewStore(nil), clock)

	cases := []CreateTenderCommand{
		{AdminID: "", Title: "t", VotingDuration: time.Hour, RequiredYesVotes: 1},
		{AdminID: "a", Title: "  ", VotingDuration: time.Hour, RequiredYesVotes: 1},
		{AdminID: "a", Title: "t", VotingDuration: 0, RequiredYesVotes: 1},
		{AdminID: "a", Title: "t", VotingDuration: time.Hour, RequiredYesVotes: 0},
	}
	for i, cmd := range cases {
		if _, err := uc.CreateTender(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidTenderInput) {
			t.Fatalf("case %d: expected invalid input error, got %v", i, err)
		}
	}
}

func TestApprovalVoteAutoApprovesAtThreshold(t *testing.T) {
	clock := &stubClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVoting, clock)

	first, err := uc.CastApprovalVote(context.Background(), CastApprovalVoteCommand{TenderID: "tender-1", VoterID: "voter-1"})
	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if first.AutoApproved || first.Tender.Phase != entities.PhaseVoting {
		t.Fatalf("expected tender still in voting after one of two votes, got %+v", first)
	}

	second, err := uc.CastApprovalVote(context.Background(), CastApprovalVoteCommand{TenderID: "tender-1", VoterID: "voter-2"})
	if err != nil {
		t.Fatalf("second vote failed: %v", err)
	}
	if !second.AutoApproved || second.Tender.Phase != entities.PhaseApproved {
		t.Fatalf("expected threshold vote to approve tender, got %+v", second)
	}
	if second.Tender.YesVoteCount != 2 {
		t.Fatalf("expected yes count 2, got %d", second.Tender.YesVoteCount)
	}
}

func TestApprovalVoteRejectsDuplicateVoter(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVoting, clock)

	if _, err := uc.CastApprovalVote(context.Background(), CastApprovalVoteCommand{TenderID: "tender-1", VoterID: "voter-1"}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if _, err := uc.CastApprovalVote(context.Background(), CastApprovalVoteCommand{TenderID: "tender-1", VoterID: "voter-1"}); !errors.Is(err, domainerrors.ErrDuplicateVote) {
		t.Fatalf("expected duplicate vote error, got %v", err)
	}

	tender, _ := store.GetTender(context.Background(), "tender-1")
	if tender.YesVoteCount != 1 {
		t.Fatalf("expected count unchanged at 1, got %d", tender.YesVoteCount)
	}
}

func TestApprovalVoteRejectsAfterDeadline(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVoting, clock)

	clock.Advance(2 * time.Hour)
	if _, err := uc.CastApprovalVote(context.Background(), CastApprovalVoteCommand{TenderID: "tender-1", VoterID: "voter-1"}); !errors.Is(err, domainerrors.ErrVotingDeadlinePassed) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestApprovalVoteRejectsOutsideVotingPhase(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseDeclined, clock)

	if _, err := uc.CastApprovalVote(context.Background(), CastApprovalVoteCommand{TenderID: "tender-1", VoterID: "voter-1"}); !errors.Is(err, domainerrors.ErrInvalidPhase) {
		t.Fatalf("expected invalid phase error, got %v", err)
	}
}

func TestOverrideTriangle(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVoting, clock)
	admin := AdminCommand{TenderID: "tender-1", CallerID: "admin-1"}

	tender, err := uc.OverrideApprove(context.Background(), admin)
	if err != nil || tender.Phase != entities.PhaseApproved {
		t.Fatalf("expected voting->approved, got %q err=%v", tender.Phase, err)
	}
	tender, err = uc.OverrideDecline(context.Background(), admin)
	if err != nil || tender.Phase != entities.PhaseDeclined {
		t.Fatalf("expected approved->declined, got %q err=%v", tender.Phase, err)
	}
	tender, err = uc.OverrideApprove(context.Background(), admin)
	if err != nil || tender.Phase != entities.PhaseApproved {
		t.Fatalf("expected declined->approved, got %q err=%v", tender.Phase, err)
	}
}

func TestAdminTransitionsRejectIllegalEdges(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	admin := AdminCommand{TenderID: "tender-1", CallerID: "admin-1"}

	cases := []struct {
		phase entities.Phase
		run   func(uc TenderUseCase) error
	}{
		{entities.PhaseVoting, func(uc TenderUseCase) error {
			_, err := uc.OpenProposals(context.Background(), admin)
			return err
		}},
		{entities.PhaseProposing, func(uc TenderUseCase) error {
			_, err := uc.OverrideApprove(context.Background(), admin)
			return err
		}},
		{entities.PhaseProposalVoting, func(uc TenderUseCase) error {
			_, err := uc.OverrideDecline(context.Background(), admin)
			return err
		}},
		{entities.PhaseAwarded, func(uc TenderUseCase) error {
			_, err := uc.CloseProposalVoting(context.Background(), admin)
			return err
		}},
	}
	for i, tc := range cases {
		store := memory.NewStore(nil)
		uc := newTestUseCase(store, clock)
		seedTender(store, tc.phase, clock)
		if err := tc.run(uc); !errors.Is(err, domainerrors.ErrInvalidPhase) {
			t.Fatalf("case %d (from %q): expected invalid phase error, got %v", i, tc.phase, err)
		}
	}
}

func TestAdminTransitionsRejectNonAdmin(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVoting, clock)

	if _, err := uc.OverrideApprove(context.Background(), AdminCommand{TenderID: "tender-1", CallerID: "intruder"}); !errors.Is(err, domainerrors.ErrNotAdmin) {
		t.Fatalf("expected not-admin error, got %v", err)
	}
	tender, _ := store.GetTender(context.Background(), "tender-1")
	if tender.Phase != entities.PhaseVoting {
		t.Fatalf("expected phase untouched, got %q", tender.Phase)
	}
}

func TestSubmitProposalEnforcesRepresentative(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseProposing, clock)
	store.SetRepresentative("company-1", "rep-1")

	if _, err := uc.SubmitProposal(context.Background(), SubmitProposalCommand{
		TenderID: "tender-1", CompanyID: "company-9", CallerID: "rep-1",
	}); !errors.Is(err, domainerrors.ErrCompanyNotFound) {
		t.Fatalf("expected company-not-found error, got %v", err)
	}
	if _, err := uc.SubmitProposal(context.Background(), SubmitProposalCommand{
		TenderID: "tender-1", CompanyID: "company-1", CallerID: "someone-else",
	}); !errors.Is(err, domainerrors.ErrNotRepresentative) {
		t.Fatalf("expected not-representative error, got %v", err)
	}

	proposal, err := uc.SubmitProposal(context.Background(), SubmitProposalCommand{
		TenderID: "tender-1", CompanyID: "company-1", CallerID: "rep-1",
	})
	if err != nil {
		t.Fatalf("representative submission failed: %v", err)
	}
	if proposal.ProposalID != 0 {
		t.Fatalf("expected first proposal id 0, got %d", proposal.ProposalID)
	}

	store.SetRepresentative("company-2", "rep-2")
	proposal, err = uc.SubmitProposal(context.Background(), SubmitProposalCommand{
		TenderID: "tender-1", CompanyID: "company-2", CallerID: "rep-2",
	})
	if err != nil {
		t.Fatalf("second submission failed: %v", err)
	}
	if proposal.ProposalID != 1 {
		t.Fatalf("expected sequential proposal id 1, got %d", proposal.ProposalID)
	}
}

func TestSubmitProposalRejectsOutsideProposingPhase(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVoting, clock)
	store.SetRepresentative("company-1", "rep-1")

	if _, err := uc.SubmitProposal(context.Background(), SubmitProposalCommand{
		TenderID: "tender-1", CompanyID: "company-1", CallerID: "rep-1",
	}); !errors.Is(err, domainerrors.ErrInvalidPhase) {
		t.Fatalf("expected invalid phase error, got %v", err)
	}
}

func TestCloseProposalsRequiresAtLeastOneProposal(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseProposing, clock)

	if _, err := uc.CloseProposalsOpenVoting(context.Background(), AdminCommand{TenderID: "tender-1", CallerID: "admin-1"}); !errors.Is(err, domainerrors.ErrNoProposals) {
		t.Fatalf("expected no-proposals error, got %v", err)
	}
}

func TestProposalVoteKeepsIncumbentOnTie(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseProposalVoting, clock)
	seedProposal(store, "tender-1", 0, "company-1")
	seedProposal(store, "tender-1", 1, "company-2")

	vote := func(proposalID int, voterID string) VoteForProposalResult {
		t.Helper()
		result, err := uc.VoteForProposal(context.Background(), VoteForProposalCommand{
			TenderID: "tender-1", ProposalID: proposalID, VoterID: voterID,
		})
		if err != nil {
			t.Fatalf("vote by %s for %d failed: %v", voterID, proposalID, err)
		}
		return result
	}

	vote(0, "voter-1")
	result := vote(0, "voter-2")
	if result.CurrentWinningID != 0 {
		t.Fatalf("expected proposal 0 leading, got %d", result.CurrentWinningID)
	}

	vote(1, "voter-3")
	result = vote(1, "voter-4")
	if result.CurrentWinningID != 0 || result.DisplacedIncumbent {
		t.Fatalf("tie must not displace incumbent, got winner %d displaced=%v", result.CurrentWinningID, result.DisplacedIncumbent)
	}

	result = vote(1, "voter-5")
	if result.CurrentWinningID != 1 || !result.DisplacedIncumbent {
		t.Fatalf("strictly greater tally must take the lead, got winner %d displaced=%v", result.CurrentWinningID, result.DisplacedIncumbent)
	}
}

func TestProposalVoteAllowsOneVotePerProposalPerVoter(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseProposalVoting, clock)
	seedProposal(store, "tender-1", 0, "company-1")
	seedProposal(store, "tender-1", 1, "company-2")

	if _, err := uc.VoteForProposal(context.Background(), VoteForProposalCommand{TenderID: "tender-1", ProposalID: 0, VoterID: "voter-1"}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if _, err := uc.VoteForProposal(context.Background(), VoteForProposalCommand{TenderID: "tender-1", ProposalID: 0, VoterID: "voter-1"}); !errors.Is(err, domainerrors.ErrDuplicateVote) {
		t.Fatalf("expected duplicate vote error, got %v", err)
	}
	if _, err := uc.VoteForProposal(context.Background(), VoteForProposalCommand{TenderID: "tender-1", ProposalID: 1, VoterID: "voter-1"}); err != nil {
		t.Fatalf("same voter on a different proposal must pass, got %v", err)
	}
}

func TestProposalVoteRejectsUnknownProposal(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseProposalVoting, clock)
	seedProposal(store, "tender-1", 0, "company-1")

	if _, err := uc.VoteForProposal(context.Background(), VoteForProposalCommand{TenderID: "tender-1", ProposalID: 7, VoterID: "voter-1"}); !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("expected proposal-not-found error, got %v", err)
	}
}

func TestAwardCreatesProjectAndDisbursesFunding(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVotingClosed, clock)
	seedProposal(store, "tender-1", 0, "company-1")
	seedProposal(store, "tender-1", 1, "company-2")

	tender, _ := store.GetTender(context.Background(), "tender-1")
	tender.CurrentWinningProposalID = 1
	_ = store.SaveTender(context.Background(), tender)

	result, err := uc.AwardProposal(context.Background(), AwardProposalCommand{
		TenderID: "tender-1", CallerID: "admin-1", FundingAmount: 2500,
	})
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if result.Tender.Phase != entities.PhaseAwarded {
		t.Fatalf("expected awarded phase, got %q", result.Tender.Phase)
	}
	if result.Tender.WinningProposalID == nil || *result.Tender.WinningProposalID != 1 {
		t.Fatalf("expected winning proposal 1, got %+v", result.Tender.WinningProposalID)
	}
	if result.ProjectID == "" || result.Tender.AwardedProjectID != result.ProjectID {
		t.Fatalf("expected project id recorded on tender, got %+v", result)
	}
	if result.Tender.AwardedAmount != 2500 {
		t.Fatalf("expected awarded amount 2500, got %v", result.Tender.AwardedAmount)
	}

	disbursements := store.Disbursements()
	if len(disbursements) != 1 || disbursements[0].ProjectID != result.ProjectID || disbursements[0].Amount != 2500 {
		t.Fatalf("expected one disbursement to %s, got %+v", result.ProjectID, disbursements)
	}
	if store.ProjectCount() != 1 {
		t.Fatalf("expected one project record, got %d", store.ProjectCount())
	}
}

func TestAwardAbortsAndDiscardsProjectWhenDisbursementFails(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	uc.Ledger = failingLedger{}
	seedTender(store, entities.PhaseVotingClosed, clock)
	seedProposal(store, "tender-1", 0, "company-1")

	if _, err := uc.AwardProposal(context.Background(), AwardProposalCommand{
		TenderID: "tender-1", CallerID: "admin-1", FundingAmount: 100,
	}); !errors.Is(err, domainerrors.ErrDependencyFailed) {
		t.Fatalf("expected dependency failure, got %v", err)
	}

	tender, _ := store.GetTender(context.Background(), "tender-1")
	if tender.Phase != entities.PhaseVotingClosed {
		t.Fatalf("aborted award must not change phase, got %q", tender.Phase)
	}
	if tender.AwardedProjectID != "" || tender.WinningProposalID != nil {
		t.Fatalf("aborted award must not record outcome, got %+v", tender)
	}
	if store.ProjectCount() != 0 {
		t.Fatalf("expected compensating discard to remove project, got %d", store.ProjectCount())
	}
}

func TestAwardAbortsWhenProjectCreationFails(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	uc.Projects = failingFactory{}
	seedTender(store, entities.PhaseVotingClosed, clock)
	seedProposal(store, "tender-1", 0, "company-1")

	if _, err := uc.AwardProposal(context.Background(), AwardProposalCommand{
		TenderID: "tender-1", CallerID: "admin-1", FundingAmount: 100,
	}); !errors.Is(err, domainerrors.ErrDependencyFailed) {
		t.Fatalf("expected dependency failure, got %v", err)
	}
	if len(store.Disbursements()) != 0 {
		t.Fatalf("no disbursement may happen without a project, got %+v", store.Disbursements())
	}
}

func TestAwardRequiresVotingClosedPhase(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseProposalVoting, clock)
	seedProposal(store, "tender-1", 0, "company-1")

	if _, err := uc.AwardProposal(context.Background(), AwardProposalCommand{
		TenderID: "tender-1", CallerID: "admin-1", FundingAmount: 100,
	}); !errors.Is(err, domainerrors.ErrInvalidPhase) {
		t.Fatalf("expected invalid phase error, got %v", err)
	}
}

func TestAwardRequiresPositiveFunding(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVotingClosed, clock)

	if _, err := uc.AwardProposal(context.Background(), AwardProposalCommand{
		TenderID: "tender-1", CallerID: "admin-1", FundingAmount: 0,
	}); !errors.Is(err, domainerrors.ErrInvalidTenderInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestUpdateAdminTransfersAuthorityAtomically(t *testing.T) {
	clock := &stubClock{now: time.Now().UTC()}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	seedTender(store, entities.PhaseVoting, clock)

	tender, err := uc.UpdateAdmin(context.Background(), UpdateAdminCommand{
		TenderID: "tender-1", CallerID: "admin-1", NewAdminID: "admin-2",
	})
	if err != nil {
		t.Fatalf("admin transfer failed: %v", err)
	}
	if tender.AdminID != "admin-2" {
		t.Fatalf("expected new admin, got %q", tender.AdminID)
	}

	if _, err := uc.OverrideDecline(context.Background(), AdminCommand{TenderID: "tender-1", CallerID: "admin-1"}); !errors.Is(err, domainerrors.ErrNotAdmin) {
		t.Fatalf("previous admin must lose authority, got %v", err)
	}
	if _, err := uc.OverrideDecline(context.Background(), AdminCommand{TenderID: "tender-1", CallerID: "admin-2"}); err != nil {
		t.Fatalf("new admin must hold authority, got %v", err)
	}
}

func TestFullLifecycleEndsAwarded(t *testing.T) {
	clock := &stubClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	store := memory.NewStore(nil)
	uc := newTestUseCase(store, clock)
	store.SetRepresentative("company-1", "rep-1")
	store.SetRepresentative("company-2", "rep-2")

	tender, err := uc.CreateTender(context.Background(), CreateTenderCommand{
		AdminID: "admin-1", Title: "harbor dredging", VotingDuration: time.Hour, RequiredYesVotes: 2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := tender.TenderID
	ctx := context.Background()

	for _, voter := range []string{"voter-1", "voter-2"} {
		if _, err := uc.CastApprovalVote(ctx, CastApprovalVoteCommand{TenderID: id, VoterID: voter}); err != nil {
			t.Fatalf("approval vote by %s failed: %v", voter, err)
		}
	}
	if _, err := uc.OpenProposals(ctx, AdminCommand{TenderID: id, CallerID: "admin-1"}); err != nil {
		t.Fatalf("open proposals failed: %v", err)
	}
	if _, err := uc.SubmitProposal(ctx, SubmitProposalCommand{TenderID: id, CompanyID: "company-1", CallerID: "rep-1"}); err != nil {
		t.Fatalf("proposal 0 failed: %v", err)
	}
	if _, err := uc.SubmitProposal(ctx, SubmitProposalCommand{TenderID: id, CompanyID: "company-2", CallerID: "rep-2"}); err != nil {
		t.Fatalf("proposal 1 failed: %v", err)
	}
	if _, err := uc.CloseProposalsOpenVoting(ctx, AdminCommand{TenderID: id, CallerID: "admin-1"}); err != nil {
		t.Fatalf("close proposals failed: %v", err)
	}
	for _, vote := range []struct {
		proposal int
		voter    string
	}{{0, "voter-1"}, {1, "voter-2"}, {1, "voter-3"}} {
		if _, err := uc.VoteForProposal(ctx, VoteForProposalCommand{TenderID: id, ProposalID: vote.proposal, VoterID: vote.voter}); err != nil {
			t.Fatalf("proposal vote by %s failed: %v", vote.voter, err)
		}
	}
	if _, err := uc.CloseProposalVoting(ctx, AdminCommand{TenderID: id, CallerID: "admin-1"}); err != nil {
		t.Fatalf("close voting failed: %v", err)
	}

	result, err := uc.AwardProposal(ctx, AwardProposalCommand{TenderID: id, CallerID: "admin-1", FundingAmount: 9000})
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if result.Tender.Phase != entities.PhaseAwarded {
		t.Fatalf("expected awarded phase, got %q", result.Tender.Phase)
	}
	if result.Tender.WinningProposalID == nil || *result.Tender.WinningProposalID != 1 {
		t.Fatalf("expected company-2's proposal to win, got %+v", result.Tender.WinningProposalID)
	}

	pending, _ := store.ListPendingOutbox(ctx, 100)
	var awardedSeen bool
	for _, row := range pending {
		if row.EventType == "tender.awarded" {
			awardedSeen = true
		}
	}
	if !awardedSeen {
		t.Fatalf("expected tender.awarded in outbox, got %d rows", len(pending))
	}
}
