package models

// CubeRecord is one batch of frozen, portioned food in storage.
type CubeRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MadeDate   string `json:"madeDate"`
	ExpiryDate string `json:"expiryDate"`
	Quantity   int    `json:"quantity"`
	Color      string `json:"color"`
	Weight     int    `json:"weight"` // grams per cube, 0 means "use the global setting"
}

// UnitWeight is the grams of one cube, falling back to the global setting.
func (c CubeRecord) UnitWeight(fallback int) int {
	if c.Weight > 0 {
		return c.Weight
	}
	return fallback
}

// CubePatch is a partial cube update.
//
// Setting MadeDate recomputes ExpiryDate even when ExpiryDate is also set,
// unless PinExpiry is true, in which case an explicit ExpiryDate is kept.
type CubePatch struct {
	Name       *string
	MadeDate   *string
	ExpiryDate *string
	Quantity   *int
	Color      *string
	Weight     *int
	PinExpiry  bool
}

func (p CubePatch) Apply(c *CubeRecord) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ExpiryDate != nil {
		c.ExpiryDate = *p.ExpiryDate
	}
	if p.Quantity != nil {
		c.Quantity = max(0, *p.Quantity)
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
	if p.MadeDate != nil {
		c.MadeDate = *p.MadeDate
		if p.PinExpiry && p.ExpiryDate != nil {
			return
		}
		if expiry, err := ExpiryFor(c.MadeDate); err == nil {
			c.ExpiryDate = expiry
		}
	}
}
