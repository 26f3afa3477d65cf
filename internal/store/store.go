// Package store holds the in-memory baby-food records and the operations
// that keep them consistent with each other. Every mutation goes through a
// Store method; observers (persistence, change feed) hear about each slot
// that changed, one call per slot.
package store

import (
	"sync"
	"time"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/lucsky/cuid"
)

// Observer is told about every slot a mutation changed. value is a copy.
type Observer interface {
	Changed(slot Slot, value any)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(slot Slot, value any)

func (f ObserverFunc) Changed(slot Slot, value any) { f(slot, value) }

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the cuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithObserver(o Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, o) }
}

// WithSelectedDate sets the date that feeding and meal deletion act on.
func WithSelectedDate(date string) Option {
	return func(s *Store) { s.selected = date }
}

type Store struct {
	mu        sync.Mutex
	state     State
	selected  string
	now       func() time.Time
	newID     func() string
	observers []Observer
}

type change struct {
	slot  Slot
	value any
}

// New creates a store owning initial. The selected date defaults to today.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state: initial,
		now:   time.Now,
		newID: cuid.New,
	}
	s.state.normalize()
	for _, o := range opts {
		o(s)
	}
	if s.selected == "" {
		s.selected = models.Today(s.now())
	}
	return s
}

// AddObserver registers o for all later mutations.
func (s *Store) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// mutate runs fn under the lock and then notifies observers of every slot
// fn reports as changed, in that order.
func (s *Store) mutate(fn func() []Slot) {
	s.mu.Lock()
	slots := fn()
	changes := make([]change, 0, len(slots))
	for _, slot := range slots {
		changes = append(changes, change{slot: slot, value: s.state.Value(slot)})
	}
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, c := range changes {
		for _, o := range observers {
			o.Changed(c.slot, c.value)
		}
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SetSelectedDate changes the date FeedCube and DeleteMeal act on. It is
// view state and is not persisted.
func (s *Store) SetSelectedDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = date
}

func (s *Store) WeightPerCube() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.WeightPerCube
}

// SetWeightPerCube replaces the global grams-per-cube default.
func (s *Store) SetWeightPerCube(grams int) {
	s.mutate(func() []Slot {
		s.state.WeightPerCube = grams
		return []Slot{SlotWeight}
	})
}

// IngredientStatus returns the recorded status of name, success by default.
func (s *Store) IngredientStatus(name string) models.IngredientStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Statuses.Status(name)
}

// SetIngredientStatus upserts one entry of the ingredient status map.
func (s *Store) SetIngredientStatus(name string, status models.IngredientStatus) {
	s.mutate(func() []Slot {
		s.state.Statuses[name] = status
		return []Slot{SlotStatuses}
	})
}
