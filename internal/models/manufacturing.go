package models

import "time"

// ManufacturingRecord archives a finished batch-cooking session. It is
// history, not inventory: cubes are tracked separately as CubeRecords.
type ManufacturingRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CubeWeight  int       `json:"cubeWeight"`
	CubeCount   int       `json:"cubeCount"`
	TotalWeight int       `json:"totalWeight"` // expected CubeWeight * CubeCount, not enforced
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ManufacturingPatch struct {
	Title       *string
	CubeWeight  *int
	CubeCount   *int
	TotalWeight *int
	Note        *string
}

func (p ManufacturingPatch) Apply(r *ManufacturingRecord) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.CubeWeight != nil {
		r.CubeWeight = *p.CubeWeight
	}
	if p.CubeCount != nil {
		r.CubeCount = *p.CubeCount
	}
	if p.TotalWeight != nil {
		r.TotalWeight = *p.TotalWeight
	}
	if p.Note != nil {
		r.Note = *p.Note
	}
}
