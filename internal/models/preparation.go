package models

// PreparationRecord is a planned batch-cooking task.
type PreparationRecord struct {
	ID          string `json:"id"`
	ItemName    string `json:"itemName"`
	PrepDate    string `json:"prepDate"`
	IsCompleted bool   `json:"isCompleted"`
}

type PrepPatch struct {
	ItemName    *string
	PrepDate    *string
	IsCompleted *bool
}

func (p PrepPatch) Apply(r *PreparationRecord) {
	if p.ItemName != nil {
		r.ItemName = *p.ItemName
	}
	if p.PrepDate != nil {
		r.PrepDate = *p.PrepDate
	}
	if p.IsCompleted != nil {
		r.IsCompleted = *p.IsCompleted
	}
}
