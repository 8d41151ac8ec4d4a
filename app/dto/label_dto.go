package dto

// GenerateLabelRequest holds order data to be printed on a shipping label.
// OrderID, Customer and Items are passed through to the label as sent.
type GenerateLabelRequest struct {
	OrderID  any    `json:"orderId" validate:"required" swaggertype:"string" example:"A-1001"`
	Customer any    `json:"customer" validate:"required" swaggertype:"string" example:"Maria"`
	Items    []any  `json:"items" validate:"required,min=1" swaggertype:"array,string"`
	Address  string `json:"address,omitempty" example:"Rua A, 10"`
}

// LabelDTO is the generated label
type LabelDTO struct {
	OrderID    any    `json:"orderId" swaggertype:"string"`
	Customer   any    `json:"customer" swaggertype:"string"`
	Items      []any  `json:"items" swaggertype:"array,string"`
	Address    string `json:"address"`
	Restaurant string `json:"restaurant"`
	Date       string `json:"date"`
}

// GenerateLabelResponse wraps the label
type GenerateLabelResponse struct {
	Label LabelDTO `json:"label"`
}
