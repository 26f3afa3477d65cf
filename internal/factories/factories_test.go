package factories

import (
	"testing"
	"time"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/store"
)

var today = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestFactoryRecordsAreValid(t *testing.T) {
	f := New(42, today)
	for i := 0; i < 50; i++ {
		c := f.Cube()
		if c.Name == "" || c.Quantity < 2 || c.Quantity > 12 {
			t.Fatalf("implausible cube %+v", c)
		}
		if n, err := models.DaysBetween(c.MadeDate, "2024-03-10"); err != nil || n < 0 || n > 10 {
			t.Fatalf("made date %s out of range (%d, %v)", c.MadeDate, n, err)
		}

		m := f.Meal()
		if !m.Type.Valid() || m.Type == models.MealTypeTimeBased {
			t.Fatalf("unexpected meal type %q", m.Type)
		}
		if err := models.ValidateFedTime(m.FedTime); err != nil {
			t.Fatalf("bad fed time: %v", err)
		}
		if len(m.Ingredients) < 1 || len(m.Ingredients) > 3 {
			t.Fatalf("expected 1-3 ingredients, got %d", len(m.Ingredients))
		}
		if !f.Status().Valid() {
			t.Fatal("invalid status")
		}
	}
}

func TestFactorySeedIsDeterministic(t *testing.T) {
	a, b := New(7, today), New(7, today)
	for i := 0; i < 10; i++ {
		if a.Cube() != b.Cube() {
			t.Fatal("same seed produced different cubes")
		}
	}
}

func TestSeedGoesThroughStore(t *testing.T) {
	var slots []store.Slot
	s := store.New(store.DefaultState(),
		store.WithClock(func() time.Time { return today }),
		store.WithSelectedDate("2024-03-10"),
		store.WithObserver(store.ObserverFunc(func(slot store.Slot, _ any) { slots = append(slots, slot) })),
	)

	opts := SeedOptions{Days: 5, Cubes: 4, Orders: 3, Preps: 2}
	ticks := 0
	res := Seed(s, New(1, today), opts, func() { ticks++ })

	if ticks != opts.Steps() {
		t.Fatalf("expected %d ticks, got %d", opts.Steps(), ticks)
	}
	state := s.Snapshot()
	if len(state.Cubes) != 4 || len(state.Orders) != 3 || len(state.Preps) != 2 {
		t.Fatalf("unexpected counts: %d cubes, %d orders, %d preps", len(state.Cubes), len(state.Orders), len(state.Preps))
	}
	for _, c := range state.Cubes {
		if c.ID == "" || c.ExpiryDate == "" {
			t.Fatalf("cube missing store-derived fields: %+v", c)
		}
	}
	meals := 0
	for _, p := range state.Plans {
		meals += len(p.Meals)
	}
	if meals != res.Meals+res.Feedings {
		t.Fatalf("expected %d meals in plans, got %d", res.Meals+res.Feedings, meals)
	}
	if res.Feedings == 0 {
		t.Fatal("expected at least one cube feeding")
	}
	if len(state.Statuses) != res.Statuses {
		t.Fatalf("expected %d statuses, got %d", res.Statuses, len(state.Statuses))
	}
	if s.SelectedDate() != "2024-03-10" {
		t.Fatalf("seed should restore the selected date, got %s", s.SelectedDate())
	}
	if len(slots) == 0 {
		t.Fatal("expected observer notifications")
	}
}
