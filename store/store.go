package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-backend/models"
)

// Store is the persistence boundary for accounts, the product catalog and
// the sale ledger. Two implementations exist: mongostore for production and
// memstore for tests and for running without a database.
type Store interface {
	// Accounts. Create* return models.ErrDuplicateAccount when the email
	// is already registered; Find* return models.ErrAccountNotFound.
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (models.Admin, error)
	FindAdminByID(ctx context.Context, id primitive.ObjectID) (models.Admin, error)
	CreateSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error)
	FindSupplierByEmail(ctx context.Context, email string) (models.Supplier, error)
	FindSupplierByID(ctx context.Context, id primitive.ObjectID) (models.Supplier, error)

	// Catalog.
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	FindProductByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindProductByBarcode(ctx context.Context, barcode string) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.ProductWithSupplier, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, update models.UpdateProductInput) (models.Product, error)
	SetProductPhoto(ctx context.Context, id primitive.ObjectID, photoURL string) error
	LowStock(ctx context.Context, threshold int) ([]models.LowStockItem, error)

	// DecrementStock is the atomic decrement-if-sufficient over one
	// variant's stock count: the check and the decrement are a single
	// conditional update against the persisted value. Returns
	// models.ErrInsufficientStock without mutating when stock < qty.
	DecrementStock(ctx context.Context, productID primitive.ObjectID, variantIndex, qty int) error
	// IncrementStock undoes a decrement when the ledger write fails.
	IncrementStock(ctx context.Context, productID primitive.ObjectID, variantIndex, qty int) error

	// Ledger. InsertSale appends; sales are never updated or removed.
	InsertSale(ctx context.Context, sale models.Sale) (models.Sale, error)
	ListSales(ctx context.Context) ([]models.Sale, error)
	FindSaleByID(ctx context.Context, id primitive.ObjectID) (models.Sale, error)

	// Reports. All are read-committed aggregations over the ledger.
	TotalsByPaymentType(ctx context.Context) ([]models.PaymentTypeTotal, error)
	TotalsByDay(ctx context.Context) ([]models.DailyTotal, error)
	TotalsByMonth(ctx context.Context, year int) ([]models.MonthlyTotal, error)
	TotalsByYear(ctx context.Context) ([]models.YearlyTotal, error)
	TotalsByActor(ctx context.Context) ([]models.ActorTotal, error)
	TotalsBySupplier(ctx context.Context) ([]models.SupplierTotal, error)
}
