package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentType string

const (
	PaymentCash      PaymentType = "Cash"
	PaymentCard      PaymentType = "Card"
	PaymentMobilePay PaymentType = "MobilePay"
)

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentMobilePay:
		return true
	}
	return false
}

// Sale is one ledger entry. Entries are written once by the sell path and
// never updated or deleted. TotalAmount is the price at the moment of sale
// times quantity and is never recomputed from the catalog.
type Sale struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID    primitive.ObjectID `bson:"product" json:"product"`
	VariantIndex int                `bson:"variantIndex" json:"variantIndex"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	PaymentType  PaymentType        `bson:"paymentType" json:"paymentType"`
	TotalAmount  float64            `bson:"totalAmount" json:"totalAmount"`
	SoldBy       primitive.ObjectID `bson:"soldBy" json:"soldBy"`
	SoldByModel  Role               `bson:"soldByModel" json:"soldByModel"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type SellInput struct {
	Barcode     string      `json:"barcode"`
	ProductID   string      `json:"productId"`
	VariantID   string      `json:"variantId"`
	Quantity    int         `json:"quantity"`
	PaymentType PaymentType `json:"paymentType"`
	SoldBy      string      `json:"soldBy"`
	SoldByModel Role        `json:"soldByModel"`
}

// ActorInfo is the display projection of a sale actor for receipts.
type ActorInfo struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  Role               `json:"role"`
}

// SaleWithRefs is a ledger entry joined with its product and actor for the
// single-sale (receipt) view.
type SaleWithRefs struct {
	Sale
	Product *Product   `json:"productInfo,omitempty"`
	Seller  *ActorInfo `json:"soldByInfo,omitempty"`
}
