package views

import (
	"fmt"
	"time"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/store"
)

// DayEvents is everything that happened, or is due, on one calendar date.
type DayEvents struct {
	Date          string
	CubesMade     []models.CubeRecord
	CubesExpiring []models.CubeRecord
	Orders        []models.OrderRecord
	Preps         []models.PreparationRecord
	Meals         []models.MealRecord
}

// Empty reports whether the date has no markers at all.
func (d DayEvents) Empty() bool {
	return len(d.CubesMade) == 0 && len(d.CubesExpiring) == 0 &&
		len(d.Orders) == 0 && len(d.Preps) == 0 && len(d.Meals) == 0
}

// Events collects the day's records from state.
func Events(state store.State, date string) DayEvents {
	ev := DayEvents{Date: date, Meals: []models.MealRecord{}}
	for _, c := range state.Cubes {
		if c.MadeDate == date {
			ev.CubesMade = append(ev.CubesMade, c)
		}
		if c.ExpiryDate == date {
			ev.CubesExpiring = append(ev.CubesExpiring, c)
		}
	}
	for _, o := range state.Orders {
		if o.OrderDate == date {
			ev.Orders = append(ev.Orders, o)
		}
	}
	for _, p := range state.Preps {
		if p.PrepDate == date {
			ev.Preps = append(ev.Preps, p)
		}
	}
	for _, p := range state.Plans {
		if p.Date == date {
			for _, m := range p.Meals {
				ev.Meals = append(ev.Meals, m.Clone())
			}
			break
		}
	}
	return ev
}

// MonthEvents returns one DayEvents per cell of a Sunday-first month grid:
// the whole weeks covering the month of the given "YYYY-MM".
func MonthEvents(state store.State, month string) ([]DayEvents, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: month %q", models.ErrInvalidDate, month)
	}
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var out []DayEvents
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, Events(state, models.FormatDate(d)))
	}
	return out, nil
}
