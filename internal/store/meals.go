package store

import "github.com/chrisdamba/weaning/internal/models"

func (s *Store) planIndex(date string) int {
	for i := range s.state.Plans {
		if s.state.Plans[i].Date == date {
			return i
		}
	}
	return -1
}

// insertMeal appends meal to the plan for date, creating the plan if this
// is the first meal of the day, and keeps the day sorted by fed time.
func (s *Store) insertMeal(date string, meal models.MealRecord) {
	i := s.planIndex(date)
	if i < 0 {
		s.state.Plans = append(s.state.Plans, models.DayPlan{Date: date})
		i = len(s.state.Plans) - 1
	}
	plan := &s.state.Plans[i]
	plan.Meals = append(plan.Meals, meal)
	plan.SortMeals()
}

// Plan returns a copy of the day plan for date.
func (s *Store) Plan(date string) (models.DayPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.planIndex(date); i >= 0 {
		return s.state.Plans[i].Clone(), true
	}
	return models.DayPlan{Date: date, Meals: []models.MealRecord{}}, false
}

// Meal finds a meal by id across every day and reports the day it is on.
func (s *Store) Meal(id string) (models.MealRecord, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Plans {
		for _, m := range p.Meals {
			if m.ID == id {
				return m.Clone(), p.Date, true
			}
		}
	}
	return models.MealRecord{}, "", false
}

// AddMeal records a meal entered by hand on date. The meal gets a fresh id.
func (s *Store) AddMeal(date string, meal models.MealRecord) models.MealRecord {
	meal = meal.Clone()
	s.mutate(func() []Slot {
		meal.ID = s.newID()
		if meal.Type == "" {
			meal.Type = models.MealTypeTimeBased
		}
		s.insertMeal(date, meal)
		return []Slot{SlotPlans}
	})
	return meal
}

// UpdateMeal merges patch into the meal with the given id, wherever it is,
// and re-sorts that day.
func (s *Store) UpdateMeal(mealID string, patch models.MealPatch) bool {
	found := false
	s.mutate(func() []Slot {
		for pi := range s.state.Plans {
			plan := &s.state.Plans[pi]
			for mi := range plan.Meals {
				if plan.Meals[mi].ID != mealID {
					continue
				}
				patch.Apply(&plan.Meals[mi])
				plan.SortMeals()
				found = true
				return []Slot{SlotPlans}
			}
		}
		return nil
	})
	return found
}

// DeleteMeal removes a meal from the selected date's plan only. A meal that
// came from a cube puts one cube back in stock if that cube still exists.
func (s *Store) DeleteMeal(mealID string) bool {
	found := false
	s.mutate(func() []Slot {
		pi := s.planIndex(s.selected)
		if pi < 0 {
			return nil
		}
		plan := &s.state.Plans[pi]
		for mi, m := range plan.Meals {
			if m.ID != mealID {
				continue
			}
			var slots []Slot
			if m.IsFromCube && m.CubeID != "" && s.adjustCubeQuantity(m.CubeID, 1) {
				slots = append(slots, SlotCubes)
			}
			plan.Meals = append(plan.Meals[:mi], plan.Meals[mi+1:]...)
			found = true
			return append(slots, SlotPlans)
		}
		return nil
	})
	return found
}
