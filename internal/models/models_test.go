package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpiryFor(t *testing.T) {
	tests := []struct {
		made string
		want string
	}{
		{"2024-01-01", "2024-01-15"},
		{"2024-02-20", "2024-03-05"}, // leap year
		{"2023-12-25", "2024-01-08"},
	}
	for _, tt := range tests {
		got, err := ExpiryFor(tt.made)
		if err != nil {
			t.Fatalf("ExpiryFor(%s): %v", tt.made, err)
		}
		if got != tt.want {
			t.Errorf("ExpiryFor(%s) = %s, want %s", tt.made, got, tt.want)
		}
	}

	if _, err := ExpiryFor("01/02/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDaysBetween(t *testing.T) {
	got, err := DaysBetween("2024-03-01", "2024-02-27")
	if err != nil {
		t.Fatal(err)
	}
	if got != -3 {
		t.Fatalf("expected -3, got %d", got)
	}
}

func TestValidateFedTime(t *testing.T) {
	for _, ok := range []string{"", "00:00", "08:30", "23:59"} {
		if err := ValidateFedTime(ok); err != nil {
			t.Errorf("ValidateFedTime(%q): unexpected error %v", ok, err)
		}
	}
	for _, bad := range []string{"8:30", "24:00", "noon", "08:30:00"} {
		if err := ValidateFedTime(bad); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ValidateFedTime(%q): expected ErrInvalidTime, got %v", bad, err)
		}
	}
}

func TestIngredientStatusesDefault(t *testing.T) {
	m := IngredientStatuses{"Egg": StatusAllergic, "Blank": ""}
	if got := m.Status("Egg"); got != StatusAllergic {
		t.Fatalf("expected allergic, got %s", got)
	}
	if got := m.Status("Tofu"); got != StatusSuccess {
		t.Fatalf("expected success default, got %s", got)
	}
	if got := m.Status("Blank"); got != StatusSuccess {
		t.Fatalf("expected success for empty entry, got %s", got)
	}
	var nilMap IngredientStatuses
	if got := nilMap.Status("Egg"); got != StatusSuccess {
		t.Fatalf("expected success from nil map, got %s", got)
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseIngredientStatus(" Allergic "); err != nil || s != StatusAllergic {
		t.Fatalf("ParseIngredientStatus: %v %v", s, err)
	}
	if _, err := ParseIngredientStatus("fine"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := ParseMealType("brunch"); !errors.Is(err, ErrInvalidMealType) {
		t.Fatalf("expected ErrInvalidMealType, got %v", err)
	}
}

func TestCubePatchClampsQuantity(t *testing.T) {
	c := CubeRecord{Quantity: 3}
	q := -4
	CubePatch{Quantity: &q}.Apply(&c)
	if c.Quantity != 0 {
		t.Fatalf("expected clamp to 0, got %d", c.Quantity)
	}
}

func TestSortMealsStable(t *testing.T) {
	p := DayPlan{Meals: []MealRecord{
		{ID: "a", FedTime: "12:00"},
		{ID: "b"},
		{ID: "c", FedTime: "08:00"},
		{ID: "d", FedTime: "08:00"},
	}}
	p.SortMeals()
	var got []string
	for _, m := range p.Meals {
		got = append(got, m.ID)
	}
	if diff := cmp.Diff([]string{"b", "c", "d", "a"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
