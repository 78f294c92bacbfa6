package calendar

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// InMemoryService is a thread-safe in-memory calendar, used in development
// mode and by tests.
type InMemoryService struct {
	mu     sync.RWMutex
	events map[string]map[string]Event // calendarID -> eventID -> event
}

// NewInMemoryService creates an empty in-memory calendar.
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{events: make(map[string]map[string]Event)}
}

func (s *InMemoryService) CreateEvent(_ context.Context, calendarID string, ev Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events[calendarID] == nil {
		s.events[calendarID] = make(map[string]Event)
	}
	ev.ID = uuid.New().String()
	s.events[calendarID][ev.ID] = ev
	return ev.ID, nil
}

func (s *InMemoryService) UpdateEvent(_ context.Context, calendarID, eventID string, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.events[calendarID][eventID]
	if !ok {
		return fmt.Errorf("event %s not found in calendar %s", eventID, calendarID)
	}
	existing.Start = ev.Start
	existing.End = ev.End
	existing.Timezone = ev.Timezone
	s.events[calendarID][eventID] = existing
	return nil
}

func (s *InMemoryService) DeleteEvent(_ context.Context, calendarID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[calendarID][eventID]; !ok {
		return fmt.Errorf("event %s not found in calendar %s", eventID, calendarID)
	}
	delete(s.events[calendarID], eventID)
	return nil
}

// Event returns a stored event, for assertions in tests.
func (s *InMemoryService) Event(calendarID, eventID string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[calendarID][eventID]
	return ev, ok
}

// Count returns the number of events in a calendar.
func (s *InMemoryService) Count(calendarID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events[calendarID])
}
