// Package factories generates plausible demo records for the seed command.
package factories

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/jaswdr/faker"
)

var ingredients = []string{
	"Rice", "Oat", "Carrot", "Pumpkin", "Sweet potato", "Potato", "Broccoli",
	"Zucchini", "Cabbage", "Spinach", "Pea", "Apple", "Pear", "Banana",
	"Beef", "Chicken", "Tofu", "Egg yolk", "Cod", "Avocado",
}

var mealTitles = []string{"porridge", "puree", "mash", "soup", "congee"}

var fedTimes = map[models.MealType][]string{
	models.MealTypeBreakfast: {"07:00", "07:30", "08:00", "08:30"},
	models.MealTypeLunch:     {"11:30", "12:00", "12:30"},
	models.MealTypeDinner:    {"17:30", "18:00", "18:30"},
	models.MealTypeSnack:     {"10:00", "15:00", "15:30"},
}

type Factory struct {
	fake  faker.Faker
	today time.Time
}

// New returns a factory whose dates are relative to today. A zero seed
// draws from the clock.
func New(seed int64, today time.Time) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{fake: faker.NewWithSeed(rand.NewSource(seed)), today: today}
}

// Ingredient picks one name from the demo pantry.
func (f *Factory) Ingredient() string {
	return f.fake.RandomStringElement(ingredients)
}

func (f *Factory) date(minDays, maxDays int) string {
	return models.FormatDate(f.today.AddDate(0, 0, f.fake.IntBetween(minDays, maxDays)))
}

// Cube is made within the last ten days; expiry is left for the store to derive.
func (f *Factory) Cube() models.CubeRecord {
	return models.CubeRecord{
		Name:     f.Ingredient(),
		MadeDate: f.date(-10, 0),
		Quantity: f.fake.IntBetween(2, 12),
		Color:    f.fake.Color().Hex(),
		Weight:   f.fake.RandomIntElement([]int{0, 15, 20, 25, 30}),
	}
}

func (f *Factory) Order() models.OrderRecord {
	return models.OrderRecord{
		ItemName:   fmt.Sprintf("%s %dkg", f.Ingredient(), f.fake.IntBetween(1, 3)),
		OrderDate:  f.date(-7, 3),
		IsReceived: f.fake.Bool(),
	}
}

func (f *Factory) Prep() models.PreparationRecord {
	return models.PreparationRecord{
		ItemName:    f.Ingredient(),
		PrepDate:    f.date(-3, 5),
		IsCompleted: f.fake.Bool(),
	}
}

// Meal builds a non-cube meal of 1 to 3 ingredients.
func (f *Factory) Meal() models.MealRecord {
	mealType := models.MealType(f.fake.RandomStringElement([]string{
		string(models.MealTypeBreakfast), string(models.MealTypeLunch),
		string(models.MealTypeDinner), string(models.MealTypeSnack),
	}))
	n := f.fake.IntBetween(1, 3)
	seen := make(map[string]bool, n)
	var ings []models.Ingredient
	for len(ings) < n {
		name := f.Ingredient()
		if seen[name] {
			continue
		}
		seen[name] = true
		ings = append(ings, models.Ingredient{Name: name, IsNew: f.fake.IntBetween(1, 10) == 1})
	}
	return models.MealRecord{
		Title:       fmt.Sprintf("%s %s", ings[0].Name, f.fake.RandomStringElement(mealTitles)),
		Type:        mealType,
		FedTime:     f.fake.RandomStringElement(fedTimes[mealType]),
		Ingredients: ings,
		Notes:       f.fake.Lorem().Sentence(6),
		Amount:      fmt.Sprintf("%dg", f.fake.IntBetween(3, 16)*10),
	}
}

// Status returns a weighted random status: mostly success.
func (f *Factory) Status() models.IngredientStatus {
	switch r := f.fake.IntBetween(1, 20); {
	case r == 1:
		return models.StatusAllergic
	case r <= 4:
		return models.StatusWatching
	default:
		return models.StatusSuccess
	}
}
