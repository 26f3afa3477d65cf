package models

import (
	"fmt"
	"strings"
)

// IngredientStatus classifies how the baby reacted to an ingredient.
type IngredientStatus string

func (s IngredientStatus) Valid() bool {
	switch s {
	case StatusNone, StatusSuccess, StatusAllergic, StatusWatching:
		return true
	}
	return false
}

func ParseIngredientStatus(s string) (IngredientStatus, error) {
	status := IngredientStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

type Ingredient struct {
	Name   string           `json:"name"`
	IsNew  bool             `json:"isNew"`
	Status IngredientStatus `json:"status"`
}

// IngredientStatuses maps an ingredient name to its recorded status.
type IngredientStatuses map[string]IngredientStatus

// Status is the only lookup into the map: names without an entry are
// treated as StatusSuccess.
func (m IngredientStatuses) Status(name string) IngredientStatus {
	if s, ok := m[name]; ok && s != "" {
		return s
	}
	return StatusSuccess
}

func (m IngredientStatuses) Clone() IngredientStatuses {
	out := make(IngredientStatuses, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
