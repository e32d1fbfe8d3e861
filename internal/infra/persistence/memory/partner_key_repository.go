package memory

import (
	"context"
	"sync"
	"time"

	"wasul/internal/domain/entity"
	"wasul/internal/domain/repository"

	"github.com/google/uuid"
)

// PartnerKeyRepository is the in-memory implementation of
// repository.PartnerKeyRepository.
type PartnerKeyRepository struct {
	mu   sync.RWMutex
	keys map[string]*entity.PartnerKey
}

// NewPartnerKeyRepository creates an empty in-memory key ledger.
func NewPartnerKeyRepository() *PartnerKeyRepository {
	return &PartnerKeyRepository{
		keys: make(map[string]*entity.PartnerKey),
	}
}

// Create persists a newly issued partner key.
func (s *PartnerKeyRepository) Create(_ context.Context, key *entity.PartnerKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.keys[key.Key]; exists {
		return repository.ErrKeyAlreadyExists
	}

	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}

	stored := clonePartnerKey(key)
	s.keys[stored.Key] = stored

	return nil
}

// FindByKey retrieves a partner key by its token.
func (s *PartnerKeyRepository) FindByKey(_ context.Context, key string) (*entity.PartnerKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if record, exists := s.keys[key]; exists {
		return clonePartnerKey(record), nil
	}

	return nil, repository.ErrKeyNotFound
}

// IncrementUsage atomically increments the usage counter of the key.
func (s *PartnerKeyRepository) IncrementUsage(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.keys[key]
	if !exists {
		return repository.ErrKeyNotFound
	}
	record.UsageCount++

	return nil
}

// CountActive returns the number of active partner keys.
func (s *PartnerKeyRepository) CountActive(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.keys {
		if record.Active {
			count++
		}
	}

	return count, nil
}

// TotalUsage returns the sum of usage counters across all keys.
func (s *PartnerKeyRepository) TotalUsage(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, record := range s.keys {
		total += record.UsageCount
	}

	return total, nil
}

func clonePartnerKey(key *entity.PartnerKey) *entity.PartnerKey {
	cloned := *key

	return &cloned
}
