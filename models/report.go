package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentTypeTotal struct {
	PaymentType PaymentType `json:"paymentType"`
	Total       float64     `json:"total"`
}

type DailyTotal struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Total float64 `json:"total"`
}

type MonthlyTotal struct {
	Month int     `json:"month"` // 1..12
	Total float64 `json:"total"`
}

type YearlyTotal struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// ActorTotal groups ledger totals by the role-tagged actor reference.
type ActorTotal struct {
	SoldBy      primitive.ObjectID `json:"soldBy"`
	SoldByModel Role               `json:"soldByModel"`
	TotalSales  float64            `json:"totalSales"`
	TotalQty    int                `json:"totalQty"`
}

// StaffSales is ActorTotal joined with the principal's display fields.
type StaffSales struct {
	Name       string  `json:"name"`
	Role       Role    `json:"role"`
	TotalSales float64 `json:"totalSales"`
	TotalQty   int     `json:"totalQty"`
}

// SupplierTotal groups ledger totals by the supplier owning the sold product.
type SupplierTotal struct {
	SupplierID primitive.ObjectID `json:"supplierId"`
	TotalSales float64            `json:"totalSales"`
	TotalQty   int                `json:"totalQty"`
}

type SupplierPayment struct {
	SupplierName string  `json:"supplierName"`
	Email        string  `json:"email"`
	TotalSales   float64 `json:"totalSales"`
	TotalQty     int     `json:"totalQty"`
}
