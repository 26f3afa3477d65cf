package factories

import (
	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/store"
)

// SeedOptions controls how much demo data Seed creates.
type SeedOptions struct {
	Days   int
	Cubes  int
	Orders int
	Preps  int
}

// SeedResult counts what Seed created.
type SeedResult struct {
	Cubes, Orders, Preps, Meals, Feedings, Statuses int
}

// Steps is the number of progress ticks Seed will report for opts.
func (o SeedOptions) Steps() int {
	return o.Cubes + o.Orders + o.Preps + o.Days
}

// Seed fills s through its normal operations so every record gets an id and
// the usual derived fields. Each of the last opts.Days days gets one or two
// meals plus a cube feeding when any cube is in stock. tick is called
// once per step and may be nil.
func Seed(s *store.Store, f *Factory, opts SeedOptions, tick func()) SeedResult {
	if tick == nil {
		tick = func() {}
	}
	var res SeedResult
	for i := 0; i < opts.Cubes; i++ {
		s.AddCube(f.Cube())
		res.Cubes++
		tick()
	}
	for i := 0; i < opts.Orders; i++ {
		s.AddOrder(f.Order())
		res.Orders++
		tick()
	}
	for i := 0; i < opts.Preps; i++ {
		s.AddPrep(f.Prep())
		res.Preps++
		tick()
	}

	selected := s.SelectedDate()
	defer s.SetSelectedDate(selected)

	seenStatus := map[string]bool{}
	for d := opts.Days - 1; d >= 0; d-- {
		date := models.FormatDate(f.today.AddDate(0, 0, -d))
		s.SetSelectedDate(date)
		meals := f.fake.IntBetween(1, 2)
		for m := 0; m < meals; m++ {
			meal := s.AddMeal(date, f.Meal())
			res.Meals++
			for _, ing := range meal.Ingredients {
				if !seenStatus[ing.Name] {
					seenStatus[ing.Name] = true
					s.SetIngredientStatus(ing.Name, f.Status())
					res.Statuses++
				}
			}
		}
		if cube, ok := firstInStock(s.Snapshot().Cubes); ok {
			if _, fed := s.FeedCube(cube.ID, f.fake.RandomStringElement(fedTimes[models.MealTypeSnack])); fed {
				res.Feedings++
			}
		}
		tick()
	}
	return res
}

func firstInStock(cubes []models.CubeRecord) (models.CubeRecord, bool) {
	for _, c := range cubes {
		if c.Quantity > 0 {
			return c, true
		}
	}
	return models.CubeRecord{}, false
}
