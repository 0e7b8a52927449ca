package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant is a sellable configuration of a product. It only exists inside
// its parent product's variants array and is addressed either by position
// (barcode sells) or by its own id (manual sells).
type Variant struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
	Stock int                `bson:"stock" json:"stock"`
}

type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Barcode    string             `bson:"barcode" json:"barcode"`
	SupplierID primitive.ObjectID `bson:"supplier" json:"supplierId"`
	Variants   []Variant          `bson:"variants" json:"variants"`
	PhotoURL   string             `bson:"photourl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt  time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt  time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// VariantIndexByID returns the position of the variant with the given id,
// or -1 when no variant matches.
func (p Product) VariantIndexByID(id primitive.ObjectID) int {
	for i, v := range p.Variants {
		if v.ID == id {
			return i
		}
	}
	return -1
}

type CreateProductInput struct {
	Name     string    `json:"name" binding:"required"`
	Barcode  string    `json:"barcode" binding:"required"`
	Supplier string    `json:"supplier" binding:"required"`
	Variants []Variant `json:"variants"`
}

type UpdateProductInput struct {
	Name     string    `json:"name"`
	Variants []Variant `json:"variants"`
}

// ProductWithSupplier is the catalog list row: the product joined with its
// owning supplier for display.
type ProductWithSupplier struct {
	Product  `bson:",inline"`
	Supplier *Supplier `bson:"supplier_doc,omitempty" json:"supplier,omitempty"`
}

// LowStockItem is one row of the nightly stock scan.
type LowStockItem struct {
	ProductName string `json:"productName"`
	Barcode     string `json:"barcode"`
	VariantName string `json:"variantName"`
	Stock       int    `json:"stock"`
}
