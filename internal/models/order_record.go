package models

// OrderRecord is an ingredient purchase, pending until received.
type OrderRecord struct {
	ID         string `json:"id"`
	ItemName   string `json:"itemName"`
	OrderDate  string `json:"orderDate"`
	IsReceived bool   `json:"isReceived"`
}

type OrderPatch struct {
	ItemName   *string
	OrderDate  *string
	IsReceived *bool
}

func (p OrderPatch) Apply(o *OrderRecord) {
	if p.ItemName != nil {
		o.ItemName = *p.ItemName
	}
	if p.OrderDate != nil {
		o.OrderDate = *p.OrderDate
	}
	if p.IsReceived != nil {
		o.IsReceived = *p.IsReceived
	}
}
