package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "agora/contexts/finance-core/funding-ledger/domain/errors"
	"agora/contexts/finance-core/funding-ledger/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	disbursements map[string]ports.Disbursement
}

func NewStore() *Store {
	return &Store{
		disbursements: make(map[string]ports.Disbursement),
	}
}

func (s *Store) CreateDisbursement(_ context.Context, disbursement ports.Disbursement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(disbursement.DisbursementID)
	if id == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, exists := s.disbursements[id]; exists {
		return domainerrors.ErrAlreadyExists
	}
	s.disbursements[id] = disbursement
	return nil
}

func (s *Store) ListDisbursementsByProject(_ context.Context, projectID string) ([]ports.Disbursement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Disbursement, 0)
	for _, item := range s.disbursements {
		if item.ProjectID == strings.TrimSpace(projectID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DisbursedAt.Before(items[j].DisbursedAt)
	})
	return items, nil
}

func (s *Store) BuildProjectBalance(_ context.Context, projectID string) (ports.ProjectBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance := ports.ProjectBalance{ProjectID: strings.TrimSpace(projectID)}
	for _, item := range s.disbursements {
		if item.ProjectID != balance.ProjectID {
			continue
		}
		balance.Count++
		balance.Total += item.Amount
	}
	return balance, nil
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
