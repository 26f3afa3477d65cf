package models

import "time"

// SavedRecipe keeps a recipe-helper answer the user chose to hold on to.
type SavedRecipe struct {
	ID            string    `json:"id"`
	Query         string    `json:"query"`
	Text          string    `json:"text"`
	WeightPerCube int       `json:"weightPerCube"`
	TargetCount   int       `json:"targetCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
