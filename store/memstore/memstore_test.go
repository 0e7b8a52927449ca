package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestDuplicateAccountRejected(t *testing.T) {
	st := New()
	ctx := context.Background()

	_, err := st.CreateAdmin(ctx, models.Admin{Username: "alice", Email: "a@shop.test", Password: "x"})
	require.NoError(t, err)

	_, err = st.CreateAdmin(ctx, models.Admin{Username: "other", Email: "a@shop.test", Password: "y"})
	assert.ErrorIs(t, err, models.ErrDuplicateAccount)

	// only the first account exists
	admin, err := st.FindAdminByEmail(ctx, "a@shop.test")
	require.NoError(t, err)
	assert.Equal(t, "alice", admin.Username)

	_, err = st.CreateSupplier(ctx, models.Supplier{Name: "acme", Email: "s@shop.test", Password: "x"})
	require.NoError(t, err)
	_, err = st.CreateSupplier(ctx, models.Supplier{Name: "dup", Email: "s@shop.test", Password: "y"})
	assert.ErrorIs(t, err, models.ErrDuplicateAccount)
}

func TestDuplicateBarcodeRejected(t *testing.T) {
	st := New()
	ctx := context.Background()

	_, err := st.CreateProduct(ctx, models.Product{Name: "A", Barcode: "111", SupplierID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = st.CreateProduct(ctx, models.Product{Name: "B", Barcode: "111", SupplierID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, models.ErrDuplicateProduct)
}

func TestDecrementStockBounds(t *testing.T) {
	st := New()
	ctx := context.Background()

	product, err := st.CreateProduct(ctx, models.Product{
		Name: "A", Barcode: "111", SupplierID: primitive.NewObjectID(),
		Variants: []models.Variant{{Name: "v", Price: 10, Stock: 2}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, st.DecrementStock(ctx, primitive.NewObjectID(), 0, 1), models.ErrProductNotFound)
	assert.ErrorIs(t, st.DecrementStock(ctx, product.ID, 5, 1), models.ErrVariantNotFound)
	assert.ErrorIs(t, st.DecrementStock(ctx, product.ID, 0, 3), models.ErrInsufficientStock)

	require.NoError(t, st.DecrementStock(ctx, product.ID, 0, 2))
	got, err := st.FindProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Variants[0].Stock)

	assert.ErrorIs(t, st.DecrementStock(ctx, product.ID, 0, 1), models.ErrInsufficientStock)
}

func TestListSalesNewestFirst(t *testing.T) {
	st := New()
	ctx := context.Background()

	for _, d := range []time.Time{date(2024, 1, 1), date(2024, 1, 3), date(2024, 1, 2)} {
		_, err := st.InsertSale(ctx, models.Sale{
			ProductID:   primitive.NewObjectID(),
			Quantity:    1,
			PaymentType: models.PaymentCash,
			TotalAmount: 10,
			SoldBy:      primitive.NewObjectID(),
			SoldByModel: models.RoleAdmin,
			CreatedAt:   d,
		})
		require.NoError(t, err)
	}

	sales, err := st.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, date(2024, 1, 3), sales[0].CreatedAt)
	assert.Equal(t, date(2024, 1, 2), sales[1].CreatedAt)
	assert.Equal(t, date(2024, 1, 1), sales[2].CreatedAt)
}

func seedSale(t *testing.T, st *Store, productID primitive.ObjectID, actor models.Actor, pt models.PaymentType, total float64, qty int, at time.Time) {
	t.Helper()
	_, err := st.InsertSale(context.Background(), models.Sale{
		ProductID:   productID,
		Quantity:    qty,
		PaymentType: pt,
		TotalAmount: total,
		SoldBy:      actor.ID,
		SoldByModel: actor.Role,
		CreatedAt:   at,
	})
	require.NoError(t, err)
}

func TestTotalsByPaymentType(t *testing.T) {
	st := New()
	pid := primitive.NewObjectID()
	actor := models.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	seedSale(t, st, pid, actor, models.PaymentCash, 10, 1, date(2024, 1, 1))
	seedSale(t, st, pid, actor, models.PaymentCash, 5, 1, date(2024, 1, 2))
	seedSale(t, st, pid, actor, models.PaymentCard, 7, 1, date(2024, 1, 2))

	totals, err := st.TotalsByPaymentType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.PaymentTypeTotal{
		{PaymentType: models.PaymentCard, Total: 7},
		{PaymentType: models.PaymentCash, Total: 15},
	}, totals)
}

func TestTotalsByDayAscending(t *testing.T) {
	st := New()
	pid := primitive.NewObjectID()
	actor := models.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	// inserted out of order on purpose
	seedSale(t, st, pid, actor, models.PaymentCash, 50, 1, date(2024, 1, 2))
	seedSale(t, st, pid, actor, models.PaymentCash, 10, 1, date(2024, 1, 1))
	seedSale(t, st, pid, actor, models.PaymentCard, 20, 1, date(2024, 1, 1))

	totals, err := st.TotalsByDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.DailyTotal{
		{Date: "2024-01-01", Total: 30},
		{Date: "2024-01-02", Total: 50},
	}, totals)
}

func TestTotalsByMonthFiltersYear(t *testing.T) {
	st := New()
	pid := primitive.NewObjectID()
	actor := models.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	seedSale(t, st, pid, actor, models.PaymentCash, 10, 1, date(2024, 3, 5))
	seedSale(t, st, pid, actor, models.PaymentCash, 15, 1, date(2024, 3, 20))
	seedSale(t, st, pid, actor, models.PaymentCash, 40, 1, date(2024, 11, 1))
	seedSale(t, st, pid, actor, models.PaymentCash, 99, 1, date(2023, 3, 5)) // other year

	totals, err := st.TotalsByMonth(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, []models.MonthlyTotal{
		{Month: 3, Total: 25},
		{Month: 11, Total: 40},
	}, totals)
}

func TestTotalsByYearAscending(t *testing.T) {
	st := New()
	pid := primitive.NewObjectID()
	actor := models.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	seedSale(t, st, pid, actor, models.PaymentCash, 10, 1, date(2024, 3, 5))
	seedSale(t, st, pid, actor, models.PaymentCash, 30, 1, date(2022, 3, 5))
	seedSale(t, st, pid, actor, models.PaymentCash, 20, 1, date(2023, 3, 5))

	totals, err := st.TotalsByYear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.YearlyTotal{
		{Year: 2022, Total: 30},
		{Year: 2023, Total: 20},
		{Year: 2024, Total: 10},
	}, totals)
}

func TestTotalsByActor(t *testing.T) {
	st := New()
	pid := primitive.NewObjectID()
	admin := models.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	supplier := models.Actor{ID: primitive.NewObjectID(), Role: models.RoleSupplier}

	seedSale(t, st, pid, admin, models.PaymentCash, 10, 2, date(2024, 1, 1))
	seedSale(t, st, pid, admin, models.PaymentCard, 30, 1, date(2024, 1, 2))
	seedSale(t, st, pid, supplier, models.PaymentCash, 5, 1, date(2024, 1, 3))

	totals, err := st.TotalsByActor(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byID := map[primitive.ObjectID]models.ActorTotal{}
	for _, tt := range totals {
		byID[tt.SoldBy] = tt
	}
	assert.Equal(t, models.ActorTotal{SoldBy: admin.ID, SoldByModel: models.RoleAdmin, TotalSales: 40, TotalQty: 3}, byID[admin.ID])
	assert.Equal(t, models.ActorTotal{SoldBy: supplier.ID, SoldByModel: models.RoleSupplier, TotalSales: 5, TotalQty: 1}, byID[supplier.ID])
}

func TestTotalsBySupplier(t *testing.T) {
	st := New()
	ctx := context.Background()
	actor := models.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	supplierA := primitive.NewObjectID()
	supplierB := primitive.NewObjectID()
	prodA, err := st.CreateProduct(ctx, models.Product{Name: "A", Barcode: "1", SupplierID: supplierA})
	require.NoError(t, err)
	prodB, err := st.CreateProduct(ctx, models.Product{Name: "B", Barcode: "2", SupplierID: supplierB})
	require.NoError(t, err)

	seedSale(t, st, prodA.ID, actor, models.PaymentCash, 10, 1, date(2024, 1, 1))
	seedSale(t, st, prodA.ID, actor, models.PaymentCash, 15, 2, date(2024, 1, 2))
	seedSale(t, st, prodB.ID, actor, models.PaymentCash, 7, 1, date(2024, 1, 3))
	// sale of a vanished product is skipped, like the source join
	seedSale(t, st, primitive.NewObjectID(), actor, models.PaymentCash, 100, 1, date(2024, 1, 4))

	totals, err := st.TotalsBySupplier(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byID := map[primitive.ObjectID]models.SupplierTotal{}
	for _, tt := range totals {
		byID[tt.SupplierID] = tt
	}
	assert.Equal(t, models.SupplierTotal{SupplierID: supplierA, TotalSales: 25, TotalQty: 3}, byID[supplierA])
	assert.Equal(t, models.SupplierTotal{SupplierID: supplierB, TotalSales: 7, TotalQty: 1}, byID[supplierB])
}

func TestLowStock(t *testing.T) {
	st := New()
	ctx := context.Background()

	_, err := st.CreateProduct(ctx, models.Product{
		Name: "A", Barcode: "1", SupplierID: primitive.NewObjectID(),
		Variants: []models.Variant{
			{Name: "low", Price: 1, Stock: 2},
			{Name: "ok", Price: 1, Stock: 50},
		},
	})
	require.NoError(t, err)

	items, err := st.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.LowStockItem{ProductName: "A", Barcode: "1", VariantName: "low", Stock: 2}, items[0])
}

func TestUpdateProductAssignsVariantIDs(t *testing.T) {
	st := New()
	ctx := context.Background()

	product, err := st.CreateProduct(ctx, models.Product{
		Name: "A", Barcode: "1", SupplierID: primitive.NewObjectID(),
		Variants: []models.Variant{{Name: "v1", Price: 5, Stock: 3}},
	})
	require.NoError(t, err)
	assert.False(t, product.Variants[0].ID.IsZero())

	updated, err := st.UpdateProduct(ctx, product.ID, models.UpdateProductInput{
		Name:     "A2",
		Variants: append(product.Variants, models.Variant{Name: "v2", Price: 6, Stock: 1}),
	})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	require.Len(t, updated.Variants, 2)
	assert.Equal(t, product.Variants[0].ID, updated.Variants[0].ID)
	assert.False(t, updated.Variants[1].ID.IsZero())
}
