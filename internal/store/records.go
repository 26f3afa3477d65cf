package store

import "github.com/chrisdamba/weaning/internal/models"

// AddOrder prepends a new ingredient order.
func (s *Store) AddOrder(data models.OrderRecord) models.OrderRecord {
	order := data
	s.mutate(func() []Slot {
		order.ID = s.newID()
		s.state.Orders = append([]models.OrderRecord{order}, s.state.Orders...)
		return []Slot{SlotOrders}
	})
	return order
}

// ToggleOrder flips the received flag.
func (s *Store) ToggleOrder(id string) bool {
	return s.editOrder(id, func(o *models.OrderRecord) { o.IsReceived = !o.IsReceived })
}

func (s *Store) UpdateOrder(id string, patch models.OrderPatch) bool {
	return s.editOrder(id, patch.Apply)
}

func (s *Store) DeleteOrder(id string) bool {
	found := false
	s.mutate(func() []Slot {
		for i := range s.state.Orders {
			if s.state.Orders[i].ID == id {
				s.state.Orders = append(s.state.Orders[:i], s.state.Orders[i+1:]...)
				found = true
				return []Slot{SlotOrders}
			}
		}
		return nil
	})
	return found
}

func (s *Store) editOrder(id string, edit func(*models.OrderRecord)) bool {
	found := false
	s.mutate(func() []Slot {
		for i := range s.state.Orders {
			if s.state.Orders[i].ID == id {
				edit(&s.state.Orders[i])
				found = true
				return []Slot{SlotOrders}
			}
		}
		return nil
	})
	return found
}

// AddPrep prepends a planned batch-cooking task.
func (s *Store) AddPrep(data models.PreparationRecord) models.PreparationRecord {
	prep := data
	s.mutate(func() []Slot {
		prep.ID = s.newID()
		s.state.Preps = append([]models.PreparationRecord{prep}, s.state.Preps...)
		return []Slot{SlotPreps}
	})
	return prep
}

// TogglePrep flips the completed flag.
func (s *Store) TogglePrep(id string) bool {
	return s.editPrep(id, func(p *models.PreparationRecord) { p.IsCompleted = !p.IsCompleted })
}

func (s *Store) UpdatePrep(id string, patch models.PrepPatch) bool {
	return s.editPrep(id, patch.Apply)
}

func (s *Store) DeletePrep(id string) bool {
	found := false
	s.mutate(func() []Slot {
		for i := range s.state.Preps {
			if s.state.Preps[i].ID == id {
				s.state.Preps = append(s.state.Preps[:i], s.state.Preps[i+1:]...)
				found = true
				return []Slot{SlotPreps}
			}
		}
		return nil
	})
	return found
}

func (s *Store) editPrep(id string, edit func(*models.PreparationRecord)) bool {
	found := false
	s.mutate(func() []Slot {
		for i := range s.state.Preps {
			if s.state.Preps[i].ID == id {
				edit(&s.state.Preps[i])
				found = true
				return []Slot{SlotPreps}
			}
		}
		return nil
	})
	return found
}
