package application

import (
	"context"
	"errors"
	"testing"

	"agora/contexts/procurement/company-registry/adapters/memory"
	domainerrors "agora/contexts/procurement/company-registry/domain/errors"
	"agora/contexts/procurement/company-registry/ports"
)

func newTestService() (Service, *memory.Store) {
	store := memory.NewStore(nil)
	return Service{Repo: store, Clock: store, IDGen: store}, store
}

func TestRegisterCompanyAssignsIDAndTimestamps(t *testing.T) {
	service, _ := newTestService()

	company, err := service.RegisterCompany(context.Background(), ports.RegisterCompanyInput{
		Name:             "  Acme Civil Works  ",
		RepresentativeID: "rep-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if company.CompanyID == "" {
		t.Fatal("expected generated company id")
	}
	if company.Name != "Acme Civil Works" {
		t.Fatalf("expected trimmed name, got %q", company.Name)
	}
	if company.CreatedAt.IsZero() || !company.CreatedAt.Equal(company.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %+v", company)
	}

	fetched, err := service.GetCompany(context.Background(), company.CompanyID)
	if err != nil || fetched.RepresentativeID != "rep-1" {
		t.Fatalf("lookup after register failed: %+v err=%v", fetched, err)
	}
}

func TestRegisterCompanyRejectsBlankFields(t *testing.T) {
	service, _ := newTestService()

	cases := []ports.RegisterCompanyInput{
		{Name: "", RepresentativeID: "rep-1"},
		{Name: "Acme", RepresentativeID: "  "},
	}
	for i, input := range cases {
		if _, err := service.RegisterCompany(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input error, got %v", i, err)
		}
	}
}

func TestRepresentativeLookup(t *testing.T) {
	service, _ := newTestService()
	company, err := service.RegisterCompany(context.Background(), ports.RegisterCompanyInput{
		Name:             "Acme",
		RepresentativeID: "rep-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	representative, found, err := service.Representative(context.Background(), company.CompanyID)
	if err != nil || !found || representative != "rep-1" {
		t.Fatalf("expected rep-1 found, got %q found=%v err=%v", representative, found, err)
	}

	representative, found, err = service.Representative(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unknown company must not error, got %v", err)
	}
	if found || representative != "" {
		t.Fatalf("expected not-found flag for unknown company, got %q found=%v", representative, found)
	}
}

func TestChangeRepresentative(t *testing.T) {
	service, _ := newTestService()
	company, err := service.RegisterCompany(context.Background(), ports.RegisterCompanyInput{
		Name:             "Acme",
		RepresentativeID: "rep-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := service.ChangeRepresentative(context.Background(), company.CompanyID, "rep-2")
	if err != nil {
		t.Fatalf("change representative failed: %v", err)
	}
	if updated.RepresentativeID != "rep-2" {
		t.Fatalf("expected rep-2, got %q", updated.RepresentativeID)
	}

	if _, err := service.ChangeRepresentative(context.Background(), "missing", "rep-2"); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
