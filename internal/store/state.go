package store

import "github.com/chrisdamba/weaning/internal/models"

// Slot names one independently persisted piece of state.
type Slot string

const (
	SlotPlans    Slot = "plans"
	SlotCubes    Slot = "cubes"
	SlotOrders   Slot = "orders"
	SlotPreps    Slot = "preps"
	SlotArchive  Slot = "archive"
	SlotStatuses Slot = "statuses"
	SlotWeight   Slot = "weight"
	SlotRecipes  Slot = "recipes"
)

// Slots lists every slot in load order.
var Slots = []Slot{
	SlotPlans, SlotCubes, SlotOrders, SlotPreps,
	SlotArchive, SlotStatuses, SlotWeight, SlotRecipes,
}

// State is the full set of collections the store owns.
type State struct {
	Plans         []models.DayPlan
	Cubes         []models.CubeRecord
	Orders        []models.OrderRecord
	Preps         []models.PreparationRecord
	Archive       []models.ManufacturingRecord
	Recipes       []models.SavedRecipe
	Statuses      models.IngredientStatuses
	WeightPerCube int
}

// DefaultState is what an empty or unreadable store starts from.
func DefaultState() State {
	return State{
		Plans:         []models.DayPlan{},
		Cubes:         []models.CubeRecord{},
		Orders:        []models.OrderRecord{},
		Preps:         []models.PreparationRecord{},
		Archive:       []models.ManufacturingRecord{},
		Recipes:       []models.SavedRecipe{},
		Statuses:      models.IngredientStatuses{},
		WeightPerCube: models.DefaultWeightPerCube,
	}
}

// Clone returns a deep copy, safe to read while the store keeps mutating.
func (s State) Clone() State {
	out := State{
		Plans:         make([]models.DayPlan, len(s.Plans)),
		Cubes:         append([]models.CubeRecord{}, s.Cubes...),
		Orders:        append([]models.OrderRecord{}, s.Orders...),
		Preps:         append([]models.PreparationRecord{}, s.Preps...),
		Archive:       append([]models.ManufacturingRecord{}, s.Archive...),
		Recipes:       append([]models.SavedRecipe{}, s.Recipes...),
		Statuses:      s.Statuses.Clone(),
		WeightPerCube: s.WeightPerCube,
	}
	for i, p := range s.Plans {
		out.Plans[i] = p.Clone()
	}
	return out
}

// Value returns a copy of the slot's current value.
func (s State) Value(slot Slot) any {
	switch slot {
	case SlotPlans:
		plans := make([]models.DayPlan, len(s.Plans))
		for i, p := range s.Plans {
			plans[i] = p.Clone()
		}
		return plans
	case SlotCubes:
		return append([]models.CubeRecord{}, s.Cubes...)
	case SlotOrders:
		return append([]models.OrderRecord{}, s.Orders...)
	case SlotPreps:
		return append([]models.PreparationRecord{}, s.Preps...)
	case SlotArchive:
		return append([]models.ManufacturingRecord{}, s.Archive...)
	case SlotStatuses:
		return s.Statuses.Clone()
	case SlotWeight:
		return s.WeightPerCube
	case SlotRecipes:
		return append([]models.SavedRecipe{}, s.Recipes...)
	}
	return nil
}

// normalize replaces nil collections with empty ones.
func (s *State) normalize() {
	d := DefaultState()
	if s.Plans == nil {
		s.Plans = d.Plans
	}
	if s.Cubes == nil {
		s.Cubes = d.Cubes
	}
	if s.Orders == nil {
		s.Orders = d.Orders
	}
	if s.Preps == nil {
		s.Preps = d.Preps
	}
	if s.Archive == nil {
		s.Archive = d.Archive
	}
	if s.Recipes == nil {
		s.Recipes = d.Recipes
	}
	if s.Statuses == nil {
		s.Statuses = d.Statuses
	}
	if s.WeightPerCube <= 0 {
		s.WeightPerCube = d.WeightPerCube
	}
}
