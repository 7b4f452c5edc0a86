// Package leaderboard stores named participants and their running totals.
// It is plain CRUD kept separate from the poker engine; the REST layer is
// its only consumer.
package leaderboard

import (
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for an unknown person id
var ErrNotFound = errors.New("person not found")

// Person is a leaderboard entry
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Update sets a person's amount
type Update struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

// Store is the persistence surface the API needs
type Store interface {
	List() []Person
	Get(id string) (Person, error)
	Create(name string, amount float64) Person
	UpdateAmount(id string, amount float64) (Person, error)
	BulkUpdate(updates []Update) []Person
	ResetAll() []Person
}

// MemoryStore is an in-memory Store guarded by a single lock
type MemoryStore struct {
	mu      sync.RWMutex
	persons map[string]*Person
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{persons: make(map[string]*Person)}
}

// Seed replaces the store contents with the given names at amount zero,
// using stable ids "1".."n"
func (s *MemoryStore) Seed(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persons = make(map[string]*Person, len(names))
	now := time.Now().UTC()
	for i, name := range names {
		id := strconv.Itoa(i + 1)
		s.persons[id] = &Person{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	}
}

// List returns all persons sorted by amount, highest first
func (s *MemoryStore) List() []Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *MemoryStore) sortedLocked() []Person {
	out := make([]Person, 0, len(s.persons))
	for _, p := range s.persons {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Get returns a person by id
func (s *MemoryStore) Get(id string) (Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.persons[id]
	if !ok {
		return Person{}, ErrNotFound
	}
	return *p, nil
}

// Create adds a new person
func (s *MemoryStore) Create(name string, amount float64) Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p := &Person{
		ID:        uuid.NewString(),
		Name:      name,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.persons[p.ID] = p
	return *p
}

// UpdateAmount sets a person's amount
func (s *MemoryStore) UpdateAmount(id string, amount float64) (Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.persons[id]
	if !ok {
		return Person{}, ErrNotFound
	}
	p.Amount = amount
	p.UpdatedAt = time.Now().UTC()
	return *p, nil
}

// BulkUpdate applies multiple amount updates, skipping unknown ids, and
// returns the resulting sorted list
func (s *MemoryStore) BulkUpdate(updates []Update) []Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, u := range updates {
		if p, ok := s.persons[u.ID]; ok {
			p.Amount = u.Amount
			p.UpdatedAt = now
		}
	}
	return s.sortedLocked()
}

// ResetAll zeroes every person's amount and returns the sorted list
func (s *MemoryStore) ResetAll() []Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, p := range s.persons {
		p.Amount = 0
		p.UpdatedAt = now
	}
	return s.sortedLocked()
}
