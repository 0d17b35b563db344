package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "agora/contexts/procurement/company-registry/domain/errors"
	"agora/contexts/procurement/company-registry/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	companies map[string]ports.Company
}

func NewStore(seed []ports.Company) *Store {
	store := &Store{
		companies: make(map[string]ports.Company),
	}
	for _, company := range seed {
		store.companies[strings.TrimSpace(company.CompanyID)] = company
	}
	return store
}

func (s *Store) CreateCompany(_ context.Context, company ports.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(company.CompanyID)
	if id == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, exists := s.companies[id]; exists {
		return domainerrors.ErrAlreadyExists
	}
	s.companies[id] = company
	return nil
}

func (s *Store) GetCompany(_ context.Context, companyID string) (ports.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.companies[strings.TrimSpace(companyID)]
	if !ok {
		return ports.Company{}, domainerrors.ErrNotFound
	}
	return company, nil
}

func (s *Store) ListCompanies(_ context.Context) ([]ports.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Company, 0, len(s.companies))
	for _, company := range s.companies {
		items = append(items, company)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateRepresentative(_ context.Context, companyID string, representativeID string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(companyID)
	company, ok := s.companies[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	company.RepresentativeID = strings.TrimSpace(representativeID)
	company.UpdatedAt = updatedAt.UTC()
	s.companies[id] = company
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
