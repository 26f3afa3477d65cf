package views

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/store"
)

type IngredientCount struct {
	Name  string
	Count int
}

type Statistics struct {
	Success  []IngredientCount
	Allergic []IngredientCount
	Watching []IngredientCount

	TotalMeals   int
	TotalWeight  int // grams
	CubesInStock int
	ExpiredCubes int
	ExpiringSoon int
}

var firstNumber = regexp.MustCompile(`\d+`)

// MealWeight reads the grams out of a meal amount such as "20g". Amounts
// without a number count as one cube of the global weight.
func MealWeight(amount string, weightPerCube int) int {
	if m := firstNumber.FindString(amount); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return weightPerCube
}

// IngredientStatistics tallies ingredient use over every meal, lists stocked
// cube names with a zero count, and buckets names by their status. today is
// the "YYYY-MM-DD" reference for expiry counts.
func IngredientStatistics(state store.State, today string) Statistics {
	var st Statistics
	counts := map[string]int{}
	var order []string
	seen := func(name string) {
		if _, ok := counts[name]; !ok {
			counts[name] = 0
			order = append(order, name)
		}
	}

	for _, p := range state.Plans {
		for _, m := range p.Meals {
			st.TotalMeals++
			st.TotalWeight += MealWeight(m.Amount, state.WeightPerCube)
			for _, ing := range m.Ingredients {
				seen(ing.Name)
				counts[ing.Name]++
			}
		}
	}
	for _, c := range state.Cubes {
		seen(c.Name)
		st.CubesInStock += c.Quantity
		switch ExpiryStatus(c, today).Level {
		case ExpiryExpired:
			st.ExpiredCubes++
		case ExpiryNear:
			st.ExpiringSoon++
		}
	}

	ranked := make([]IngredientCount, len(order))
	for i, name := range order {
		ranked[i] = IngredientCount{Name: name, Count: counts[name]}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	for _, ic := range ranked {
		switch state.Statuses.Status(ic.Name) {
		case models.StatusSuccess:
			st.Success = append(st.Success, ic)
		case models.StatusAllergic:
			st.Allergic = append(st.Allergic, ic)
		case models.StatusWatching:
			st.Watching = append(st.Watching, ic)
		}
	}
	return st
}
