package store

import "github.com/chrisdamba/weaning/internal/models"

// AddManufacturingRecord archives a finished batch. CreatedAt and UpdatedAt
// are both set to now; a zero TotalWeight is filled in as weight x count.
func (s *Store) AddManufacturingRecord(data models.ManufacturingRecord) models.ManufacturingRecord {
	rec := data
	s.mutate(func() []Slot {
		now := s.now().UTC()
		rec.ID = s.newID()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if rec.TotalWeight == 0 {
			rec.TotalWeight = rec.CubeWeight * rec.CubeCount
		}
		s.state.Archive = append([]models.ManufacturingRecord{rec}, s.state.Archive...)
		return []Slot{SlotArchive}
	})
	return rec
}

// UpdateManufacturingRecord merges patch and always refreshes UpdatedAt.
func (s *Store) UpdateManufacturingRecord(id string, patch models.ManufacturingPatch) bool {
	found := false
	s.mutate(func() []Slot {
		for i := range s.state.Archive {
			if s.state.Archive[i].ID == id {
				patch.Apply(&s.state.Archive[i])
				s.state.Archive[i].UpdatedAt = s.now().UTC()
				found = true
				return []Slot{SlotArchive}
			}
		}
		return nil
	})
	return found
}

func (s *Store) DeleteManufacturingRecord(id string) bool {
	found := false
	s.mutate(func() []Slot {
		for i := range s.state.Archive {
			if s.state.Archive[i].ID == id {
				s.state.Archive = append(s.state.Archive[:i], s.state.Archive[i+1:]...)
				found = true
				return []Slot{SlotArchive}
			}
		}
		return nil
	})
	return found
}

// SaveRecipe keeps a recipe-helper answer.
func (s *Store) SaveRecipe(data models.SavedRecipe) models.SavedRecipe {
	rec := data
	s.mutate(func() []Slot {
		rec.ID = s.newID()
		rec.CreatedAt = s.now().UTC()
		s.state.Recipes = append([]models.SavedRecipe{rec}, s.state.Recipes...)
		return []Slot{SlotRecipes}
	})
	return rec
}

func (s *Store) DeleteRecipe(id string) bool {
	found := false
	s.mutate(func() []Slot {
		for i := range s.state.Recipes {
			if s.state.Recipes[i].ID == id {
				s.state.Recipes = append(s.state.Recipes[:i], s.state.Recipes[i+1:]...)
				found = true
				return []Slot{SlotRecipes}
			}
		}
		return nil
	})
	return found
}
