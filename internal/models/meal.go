package models

import (
	"fmt"
	"sort"
)

// MealType is the slot a meal was fed in.
type MealType string

func (t MealType) Valid() bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack, MealTypeTimeBased:
		return true
	}
	return false
}

func ParseMealType(s string) (MealType, error) {
	t := MealType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMealType, s)
	}
	return t, nil
}

type MealRecord struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        MealType     `json:"type"`
	FedTime     string       `json:"fedTime,omitempty"` // HH:MM, 24h
	Ingredients []Ingredient `json:"ingredients"`
	Notes       string       `json:"notes"`
	Amount      string       `json:"amount"` // free text, usually "<N>g"
	IsFromCube  bool         `json:"isFromCube,omitempty"`
	CubeID      string       `json:"cubeId,omitempty"`
}

func (m MealRecord) Clone() MealRecord {
	m.Ingredients = append([]Ingredient(nil), m.Ingredients...)
	return m
}

// MealPatch carries the fields of a partial meal update. Nil fields are left untouched.
type MealPatch struct {
	Title       *string
	Type        *MealType
	FedTime     *string
	Ingredients []Ingredient
	Notes       *string
	Amount      *string
}

func (p MealPatch) Apply(m *MealRecord) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.FedTime != nil {
		m.FedTime = *p.FedTime
	}
	if p.Ingredients != nil {
		m.Ingredients = append([]Ingredient(nil), p.Ingredients...)
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	if p.Amount != nil {
		m.Amount = *p.Amount
	}
}

type DayPlan struct {
	Date  string       `json:"date"` // YYYY-MM-DD, unique
	Meals []MealRecord `json:"meals"`
}

// SortMeals orders meals by fed time; a missing time sorts first and equal
// times keep their insertion order.
func (p *DayPlan) SortMeals() {
	sort.SliceStable(p.Meals, func(i, j int) bool {
		return p.Meals[i].FedTime < p.Meals[j].FedTime
	})
}

func (p DayPlan) Clone() DayPlan {
	meals := make([]MealRecord, len(p.Meals))
	for i, m := range p.Meals {
		meals[i] = m.Clone()
	}
	p.Meals = meals
	return p
}
