package dto

// CreateProductRequest represents a new catalog entry. Price, quantity and status are
// pointers so that an explicit zero or false is distinguishable from an absent field.
type CreateProductRequest struct {
	Name             string   `json:"name" validate:"required,max=255" example:"Margherita"`
	SKUCode          string   `json:"sku_code" validate:"required,max=255" example:"PZ-001"`
	Sector           string   `json:"sector" validate:"required,max=255" example:"kitchen"`
	Price            *float64 `json:"price" validate:"required,gte=0" example:"12.5"`
	PromotionalPrice *float64 `json:"promotional_price,omitempty" validate:"omitempty,gte=0" example:"9.9"`
	Quantity         *int     `json:"quantity" validate:"required,gte=0" example:"10"`
	Brand            string   `json:"brand" validate:"required,max=255" example:"House"`
	SupplierID       *int     `json:"supplier_id,omitempty" example:"3"`
	Status           *bool    `json:"status" validate:"required" example:"true"`
	Barcode          *string  `json:"barcode,omitempty" validate:"omitempty,max=255" example:"7891234567890"`
	Cost             *float64 `json:"cost,omitempty" validate:"omitempty,gte=0" example:"4.2"`
	UnitOfMeasure    *string  `json:"unit_of_measure,omitempty" validate:"omitempty,max=255" example:"unit"`
}

// ProductDTO is the catalog projection of a product
type ProductDTO struct {
	UID              uint     `json:"uid" example:"1"`
	Name             string   `json:"name" example:"Margherita"`
	SKUCode          string   `json:"sku_code" example:"PZ-001"`
	Sector           string   `json:"sector" example:"kitchen"`
	Price            float64  `json:"price" example:"12.5"`
	PromotionalPrice *float64 `json:"promotional_price" example:"9.9"`
	Quantity         int      `json:"quantity" example:"10"`
	Brand            string   `json:"brand" example:"House"`
	SupplierID       *int     `json:"supplier_id" example:"3"`
	Status           bool     `json:"status" example:"true"`
	Barcode          *string  `json:"barcode" example:"7891234567890"`
	Cost             *float64 `json:"cost" example:"4.2"`
	UnitOfMeasure    *string  `json:"unit_of_measure" example:"unit"`
	CreatedAt        string   `json:"created_at" example:"2024-05-01 12:00:00"`
}
