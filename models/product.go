package models

// ProductTimestampLayout is the stored layout of Product.CreatedAt: second precision, UTC, no zone suffix.
const ProductTimestampLayout = "2006-01-02 15:04:05"

// Product is an entry of the shared catalog. Products are never updated or deleted.
type Product struct {
	UID              uint     `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Name             string   `gorm:"size:255;not null" json:"name"`
	SKUCode          string   `gorm:"column:sku_code;size:255;not null" json:"sku_code"`
	Sector           string   `gorm:"size:255;not null" json:"sector"`
	Price            float64  `gorm:"not null" json:"price"`
	PromotionalPrice *float64 `json:"promotional_price"`
	Quantity         int      `gorm:"not null" json:"quantity"`
	Brand            string   `gorm:"size:255;not null" json:"brand"`
	SupplierID       *int     `gorm:"column:supplier_id" json:"supplier_id"`
	Status           bool     `gorm:"not null" json:"status"`
	Barcode          *string  `gorm:"size:255" json:"barcode"`
	Cost             *float64 `json:"cost"`
	UnitOfMeasure    *string  `gorm:"column:unit_of_measure;size:255" json:"unit_of_measure"`
	CreatedAt        string   `gorm:"column:created_at;size:19;not null;autoCreateTime:false" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
