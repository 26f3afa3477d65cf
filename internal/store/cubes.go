package store

import (
	"fmt"

	"github.com/chrisdamba/weaning/internal/models"
)

func (s *Store) cubeIndex(id string) int {
	for i := range s.state.Cubes {
		if s.state.Cubes[i].ID == id {
			return i
		}
	}
	return -1
}

// Cube looks up a cube by id.
func (s *Store) Cube(id string) (models.CubeRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.cubeIndex(id); i >= 0 {
		return s.state.Cubes[i], true
	}
	return models.CubeRecord{}, false
}

// AddCube prepends a new cube with a fresh id. An empty ExpiryDate is
// derived from MadeDate.
func (s *Store) AddCube(data models.CubeRecord) models.CubeRecord {
	cube := data
	s.mutate(func() []Slot {
		cube.ID = s.newID()
		if cube.ExpiryDate == "" {
			if expiry, err := models.ExpiryFor(cube.MadeDate); err == nil {
				cube.ExpiryDate = expiry
			}
		}
		s.state.Cubes = append([]models.CubeRecord{cube}, s.state.Cubes...)
		return []Slot{SlotCubes}
	})
	return cube
}

// UpdateCube merges patch into the cube with the given id. See
// models.CubePatch for how MadeDate and ExpiryDate interact.
func (s *Store) UpdateCube(id string, patch models.CubePatch) bool {
	found := false
	s.mutate(func() []Slot {
		i := s.cubeIndex(id)
		if i < 0 {
			return nil
		}
		patch.Apply(&s.state.Cubes[i])
		found = true
		return []Slot{SlotCubes}
	})
	return found
}

// AdjustCubeQuantity adds delta to the cube's quantity, never going below zero.
func (s *Store) AdjustCubeQuantity(id string, delta int) bool {
	found := false
	s.mutate(func() []Slot {
		found = s.adjustCubeQuantity(id, delta)
		if !found {
			return nil
		}
		return []Slot{SlotCubes}
	})
	return found
}

func (s *Store) adjustCubeQuantity(id string, delta int) bool {
	i := s.cubeIndex(id)
	if i < 0 {
		return false
	}
	s.state.Cubes[i].Quantity = max(0, s.state.Cubes[i].Quantity+delta)
	return true
}

// DeleteCube removes a cube. Meals that reference it keep their cube id.
func (s *Store) DeleteCube(id string) bool {
	found := false
	s.mutate(func() []Slot {
		i := s.cubeIndex(id)
		if i < 0 {
			return nil
		}
		s.state.Cubes = append(s.state.Cubes[:i], s.state.Cubes[i+1:]...)
		found = true
		return []Slot{SlotCubes}
	})
	return found
}

// FeedCube records one cube being fed at time (HH:MM) on the selected date.
// Nothing happens if the cube is unknown or out of stock.
func (s *Store) FeedCube(cubeID, fedTime string) (models.MealRecord, bool) {
	var meal models.MealRecord
	fed := false
	s.mutate(func() []Slot {
		i := s.cubeIndex(cubeID)
		if i < 0 || s.state.Cubes[i].Quantity <= 0 {
			return nil
		}
		s.adjustCubeQuantity(cubeID, -1)
		cube := s.state.Cubes[i]

		meal = models.MealRecord{
			ID:      s.newID(),
			Title:   fmt.Sprintf("%s cube", cube.Name),
			Type:    models.MealTypeTimeBased,
			FedTime: fedTime,
			Ingredients: []models.Ingredient{{
				Name:   cube.Name,
				IsNew:  false,
				Status: s.state.Statuses.Status(cube.Name),
			}},
			Notes:      "cube feeding",
			Amount:     fmt.Sprintf("%dg", cube.UnitWeight(s.state.WeightPerCube)),
			IsFromCube: true,
			CubeID:     cube.ID,
		}
		s.insertMeal(s.selected, meal)
		fed = true
		return []Slot{SlotCubes, SlotPlans}
	})
	return meal.Clone(), fed
}
