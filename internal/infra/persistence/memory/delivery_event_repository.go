package memory

import (
	"context"
	"sync"

	"wasul/internal/domain/entity"

	"github.com/google/uuid"
)

// DeliveryEventRepository is the in-memory implementation of
// repository.DeliveryEventRepository.
type DeliveryEventRepository struct {
	mu     sync.RWMutex
	events []*entity.DeliveryEvent
}

// NewDeliveryEventRepository creates an empty in-memory audit trail.
func NewDeliveryEventRepository() *DeliveryEventRepository {
	return &DeliveryEventRepository{}
}

// Append persists a reported delivery outcome.
func (s *DeliveryEventRepository) Append(_ context.Context, event *entity.DeliveryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	cloned := *event
	s.events = append(s.events, &cloned)

	return nil
}

// CountSuccessful returns the number of successful delivery reports.
func (s *DeliveryEventRepository) CountSuccessful(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, event := range s.events {
		if event.Success {
			count++
		}
	}

	return count, nil
}
