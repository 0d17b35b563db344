package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	fundingledger "agora/contexts/finance-core/funding-ledger"
	companyregistry "agora/contexts/procurement/company-registry"
	projectregistry "agora/contexts/procurement/project-registry"
	tenderservice "agora/contexts/procurement/tender-service"
	tenderhttp "agora/contexts/procurement/tender-service/transport/http"
)

func newTestServer() (*Server, tenderservice.Module) {
	logger := slog.Default()
	tenders := tenderservice.NewInMemoryModule(nil, logger)
	server := New(
		tenders,
		companyregistry.NewInMemoryModule(nil, logger),
		projectregistry.NewInMemoryModule(logger),
		fundingledger.NewInMemoryModule(logger),
		logger,
		":0",
	)
	return server, tenders
}

func doJSON(t *testing.T, server *Server, method string, path string, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func createTender(t *testing.T, server *Server, adminID string) string {
	t.Helper()
	rr := doJSON(t, server, http.MethodPost, "/v1/tenders", adminID, map[string]any{
		"title":               "sewer upgrade",
		"voting_duration_sec": 3600,
		"required_yes_votes":  1,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("create tender returned %d: %s", rr.Code, rr.Body.String())
	}
	var resp tenderhttp.TenderResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode tender response failed: %v", err)
	}
	if resp.TenderID == "" {
		t.Fatal("expected tender id in response")
	}
	return resp.TenderID
}

func TestMutatingTenderRoutesRequireIdentity(t *testing.T) {
	server, _ := newTestServer()
	paths := []string{
		"/v1/tenders",
		"/v1/tenders/t-1/approval-votes",
		"/v1/tenders/t-1/proposals",
		"/v1/tenders/t-1/proposals/0/votes",
		"/v1/tenders/t-1/admin/approve",
		"/v1/tenders/t-1/admin/award",
	}
	for _, path := range paths {
		rr := doJSON(t, server, http.MethodPost, path, "", map[string]any{})
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without X-User-Id, got %d", path, rr.Code)
		}
	}
}

func TestCreateTenderRejectsMalformedBody(t *testing.T) {
	server, _ := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/tenders", bytes.NewReader([]byte(`{"title":`)))
	req.Header.Set("X-User-Id", "admin-1")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rr.Code)
	}
}

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	server, _ := newTestServer()
	tenderID := createTender(t, server, "admin-1")

	rr := doJSON(t, server, http.MethodPost, "/v1/tenders/"+tenderID+"/admin/approve", "intruder", nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestProposalVoteRejectsNonNumericProposalID(t *testing.T) {
	server, _ := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/v1/tenders/t-1/proposals/abc/votes", "voter-1", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric proposal id, got %d", rr.Code)
	}
}

func TestGetTenderUnknownReturnsNotFound(t *testing.T) {
	server, _ := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/v1/tenders/missing", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown tender, got %d", rr.Code)
	}
}

func TestDuplicateApprovalVoteReturnsConflict(t *testing.T) {
	server, _ := newTestServer()
	tenderID := createTender(t, server, "admin-1")

	path := "/v1/tenders/" + tenderID + "/approval-votes"
	if rr := doJSON(t, server, http.MethodPost, path, "voter-1", nil); rr.Code != http.StatusOK {
		t.Fatalf("first vote returned %d: %s", rr.Code, rr.Body.String())
	}
	if rr := doJSON(t, server, http.MethodPost, path, "voter-1", nil); rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate vote, got %d", rr.Code)
	}
}

func TestTenderLifecycleOverHTTP(t *testing.T) {
	server, tenders := newTestServer()
	tenders.Store.SetRepresentative("company-1", "rep-1")
	tenderID := createTender(t, server, "admin-1")

	if rr := doJSON(t, server, http.MethodPost, "/v1/tenders/"+tenderID+"/approval-votes", "voter-1", nil); rr.Code != http.StatusOK {
		t.Fatalf("approval vote returned %d: %s", rr.Code, rr.Body.String())
	}
	if rr := doJSON(t, server, http.MethodPost, "/v1/tenders/"+tenderID+"/admin/open-proposals", "admin-1", nil); rr.Code != http.StatusOK {
		t.Fatalf("open proposals returned %d: %s", rr.Code, rr.Body.String())
	}
	if rr := doJSON(t, server, http.MethodPost, "/v1/tenders/"+tenderID+"/proposals", "rep-1", map[string]any{
		"company_id": "company-1",
	}); rr.Code != http.StatusOK {
		t.Fatalf("submit proposal returned %d: %s", rr.Code, rr.Body.String())
	}
	if rr := doJSON(t, server, http.MethodPost, "/v1/tenders/"+tenderID+"/admin/close-proposals", "admin-1", nil); rr.Code != http.StatusOK {
		t.Fatalf("close proposals returned %d: %s", rr.Code, rr.Body.String())
	}
	if rr := doJSON(t, server, http.MethodPost, "/v1/tenders/"+tenderID+"/proposals/0/votes", "voter-1", nil); rr.Code != http.StatusOK {
		t.Fatalf("proposal vote returned %d: %s", rr.Code, rr.Body.String())
	}
	if rr := doJSON(t, server, http.MethodPost, "/v1/tenders/"+tenderID+"/admin/close-voting", "admin-1", nil); rr.Code != http.StatusOK {
		t.Fatalf("close voting returned %d: %s", rr.Code, rr.Body.String())
	}

	rr := doJSON(t, server, http.MethodPost, "/v1/tenders/"+tenderID+"/admin/award", "admin-1", map[string]any{
		"funding_amount": 1200.5,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("award returned %d: %s", rr.Code, rr.Body.String())
	}
	var award tenderhttp.AwardResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &award); err != nil {
		t.Fatalf("decode award response failed: %v", err)
	}
	if award.Phase != "awarded" || award.ProjectID == "" || award.WinningProposalID != 0 {
		t.Fatalf("unexpected award response %+v", award)
	}

	status := doJSON(t, server, http.MethodGet, "/v1/tenders/"+tenderID, "", nil)
	var tender tenderhttp.TenderResponse
	if err := json.Unmarshal(status.Body.Bytes(), &tender); err != nil {
		t.Fatalf("decode tender failed: %v", err)
	}
	if tender.Phase != "awarded" || tender.AwardedProjectID != award.ProjectID {
		t.Fatalf("unexpected tender state %+v", tender)
	}
}

func TestCompanyRegistrationAndLookup(t *testing.T) {
	server, _ := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/v1/companies", "", map[string]any{
		"name":              "Acme Civil Works",
		"representative_id": "rep-1",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("register company returned %d: %s", rr.Code, rr.Body.String())
	}
	var created struct {
		CompanyID string `json:"company_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil || created.CompanyID == "" {
		t.Fatalf("decode company response failed: %v (%s)", err, rr.Body.String())
	}

	if rr := doJSON(t, server, http.MethodGet, "/v1/companies/"+created.CompanyID, "", nil); rr.Code != http.StatusOK {
		t.Fatalf("get company returned %d", rr.Code)
	}
	if rr := doJSON(t, server, http.MethodGet, "/v1/companies/missing", "", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown company, got %d", rr.Code)
	}
}
