package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-backend/models"
	"pos-backend/store"
	"pos-backend/store/memstore"
)

func newTestService(t *testing.T) (*SellService, *memstore.Store) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	st := memstore.New()
	return NewSellService(st, log), st
}

func seedProduct(t *testing.T, st *memstore.Store, barcode string, price float64, stock int) models.Product {
	t.Helper()
	product, err := st.CreateProduct(context.Background(), models.Product{
		Name:       "Coffee",
		Barcode:    barcode,
		SupplierID: primitive.NewObjectID(),
		Variants: []models.Variant{
			{Name: "250g", Price: price, Stock: stock},
		},
	})
	require.NoError(t, err)
	return product
}

func sellInput(product models.Product, qty int) models.SellInput {
	return models.SellInput{
		Barcode:     product.Barcode,
		Quantity:    qty,
		PaymentType: models.PaymentCash,
		SoldBy:      primitive.NewObjectID().Hex(),
		SoldByModel: models.RoleAdmin,
	}
}

func currentStock(t *testing.T, st *memstore.Store, productID primitive.ObjectID, idx int) int {
	t.Helper()
	product, err := st.FindProductByID(context.Background(), productID)
	require.NoError(t, err)
	return product.Variants[idx].Stock
}

func ledgerLen(t *testing.T, st *memstore.Store) int {
	t.Helper()
	sales, err := st.ListSales(context.Background())
	require.NoError(t, err)
	return len(sales)
}

func TestSellRejectsNonPositiveQuantity(t *testing.T) {
	svc, st := newTestService(t)
	product := seedProduct(t, st, "111", 10, 5)

	for _, qty := range []int{0, -1, -100} {
		_, err := svc.Sell(context.Background(), sellInput(product, qty))
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	}
	assert.Equal(t, 5, currentStock(t, st, product.ID, 0))
	assert.Equal(t, 0, ledgerLen(t, st))
}

func TestSellRejectsMissingAddressing(t *testing.T) {
	svc, st := newTestService(t)
	seedProduct(t, st, "111", 10, 5)

	input := models.SellInput{
		Quantity:    1,
		PaymentType: models.PaymentCash,
		SoldBy:      primitive.NewObjectID().Hex(),
		SoldByModel: models.RoleAdmin,
	}
	_, err := svc.Sell(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrInvalidSellRequest)

	// productId without variantId is not a valid manual sell either
	input.ProductID = primitive.NewObjectID().Hex()
	_, err = svc.Sell(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrInvalidSellRequest)

	assert.Equal(t, 0, ledgerLen(t, st))
}

func TestSellRejectsBadPaymentTypeAndActor(t *testing.T) {
	svc, st := newTestService(t)
	product := seedProduct(t, st, "111", 10, 5)

	input := sellInput(product, 1)
	input.PaymentType = "Cheque"
	_, err := svc.Sell(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrInvalidSellRequest)

	input = sellInput(product, 1)
	input.SoldByModel = "Cashier"
	_, err = svc.Sell(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrInvalidSellRequest)

	input = sellInput(product, 1)
	input.SoldBy = "not-a-hex-id"
	_, err = svc.Sell(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrInvalidSellRequest)

	assert.Equal(t, 5, currentStock(t, st, product.ID, 0))
	assert.Equal(t, 0, ledgerLen(t, st))
}

func TestSellUnknownBarcode(t *testing.T) {
	svc, st := newTestService(t)
	product := seedProduct(t, st, "111", 10, 5)

	input := sellInput(product, 1)
	input.Barcode = "does-not-exist"
	_, err := svc.Sell(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.Equal(t, 0, ledgerLen(t, st))
}

func TestSellUnknownProductAndVariant(t *testing.T) {
	svc, st := newTestService(t)
	product := seedProduct(t, st, "111", 10, 5)

	input := models.SellInput{
		ProductID:   primitive.NewObjectID().Hex(),
		VariantID:   primitive.NewObjectID().Hex(),
		Quantity:    1,
		PaymentType: models.PaymentCard,
		SoldBy:      primitive.NewObjectID().Hex(),
		SoldByModel: models.RoleAdmin,
	}
	_, err := svc.Sell(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrProductNotFound)

	input.ProductID = product.ID.Hex()
	_, err = svc.Sell(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrVariantNotFound)

	assert.Equal(t, 5, currentStock(t, st, product.ID, 0))
	assert.Equal(t, 0, ledgerLen(t, st))
}

func TestSellBarcodeWithNoVariants(t *testing.T) {
	svc, st := newTestService(t)
	product, err := st.CreateProduct(context.Background(), models.Product{
		Name:       "Empty",
		Barcode:    "222",
		SupplierID: primitive.NewObjectID(),
	})
	require.NoError(t, err)

	_, err = svc.Sell(context.Background(), sellInput(product, 1))
	assert.ErrorIs(t, err, models.ErrVariantNotFound)
	assert.Equal(t, 0, ledgerLen(t, st))
}

func TestSellInsufficientStock(t *testing.T) {
	svc, st := newTestService(t)
	product := seedProduct(t, st, "111", 10, 3)

	_, err := svc.Sell(context.Background(), sellInput(product, 4))
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	assert.Equal(t, 3, currentStock(t, st, product.ID, 0))
	assert.Equal(t, 0, ledgerLen(t, st))
}

func TestSellSuccessByBarcode(t *testing.T) {
	svc, st := newTestService(t)
	product := seedProduct(t, st, "111", 12.5, 10)

	actorID := primitive.NewObjectID()
	input := sellInput(product, 3)
	input.SoldBy = actorID.Hex()

	sale, err := svc.Sell(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, product.ID, sale.ProductID)
	assert.Equal(t, 0, sale.VariantIndex)
	assert.Equal(t, 3, sale.Quantity)
	assert.Equal(t, models.PaymentCash, sale.PaymentType)
	assert.Equal(t, 37.5, sale.TotalAmount)
	assert.Equal(t, actorID, sale.SoldBy)
	assert.Equal(t, models.RoleAdmin, sale.SoldByModel)
	assert.False(t, sale.CreatedAt.IsZero())

	assert.Equal(t, 7, currentStock(t, st, product.ID, 0))
	assert.Equal(t, 1, ledgerLen(t, st))
}

func TestSellSuccessManualVariant(t *testing.T) {
	svc, st := newTestService(t)
	product, err := st.CreateProduct(context.Background(), models.Product{
		Name:       "Tea",
		Barcode:    "333",
		SupplierID: primitive.NewObjectID(),
		Variants: []models.Variant{
			{Name: "small", Price: 5, Stock: 4},
			{Name: "large", Price: 8, Stock: 6},
		},
	})
	require.NoError(t, err)

	input := models.SellInput{
		ProductID:   product.ID.Hex(),
		VariantID:   product.Variants[1].ID.Hex(),
		Quantity:    2,
		PaymentType: models.PaymentMobilePay,
		SoldBy:      primitive.NewObjectID().Hex(),
		SoldByModel: models.RoleSupplier,
	}
	sale, err := svc.Sell(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, sale.VariantIndex)
	assert.Equal(t, 16.0, sale.TotalAmount)
	assert.Equal(t, 4, currentStock(t, st, product.ID, 0))
	assert.Equal(t, 4, currentStock(t, st, product.ID, 1))
}

func TestSellPriceChangeDoesNotAlterLedger(t *testing.T) {
	svc, st := newTestService(t)
	product := seedProduct(t, st, "111", 10, 5)

	sale, err := svc.Sell(context.Background(), sellInput(product, 2))
	require.NoError(t, err)
	assert.Equal(t, 20.0, sale.TotalAmount)

	// raise the price after the fact
	updated := product.Variants
	updated[0].Price = 99
	updated[0].Stock = 3
	_, err = st.UpdateProduct(context.Background(), product.ID, models.UpdateProductInput{Variants: updated})
	require.NoError(t, err)

	stored, err := st.FindSaleByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, stored.TotalAmount)
}

func TestSellLedgerFailureRestoresStock(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	st := memstore.New()
	svc := NewSellService(failingLedger{st}, log)

	product := seedProduct(t, st, "111", 10, 5)

	_, err := svc.Sell(context.Background(), sellInput(product, 2))
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInsufficientStock)

	assert.Equal(t, 5, currentStock(t, st, product.ID, 0))
	assert.Equal(t, 0, ledgerLen(t, st))
}

// failingLedger forwards everything to the real store but refuses ledger
// writes, simulating a storage failure between the decrement and the
// sale insert.
type failingLedger struct {
	store.Store
}

func (failingLedger) InsertSale(context.Context, models.Sale) (models.Sale, error) {
	return models.Sale{}, errors.New("ledger unavailable")
}

func TestConcurrentSellsSingleUnit(t *testing.T) {
	svc, st := newTestService(t)
	const initialStock = 12
	const workers = 20
	product := seedProduct(t, st, "111", 10, initialStock)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Sell(context.Background(), sellInput(product, 1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, models.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, initialStock, ok)
	assert.Equal(t, workers-initialStock, insufficient)
	assert.Equal(t, 0, currentStock(t, st, product.ID, 0))
	assert.Equal(t, initialStock, ledgerLen(t, st))
}

func TestConcurrentSellsMultiUnit(t *testing.T) {
	svc, st := newTestService(t)
	product := seedProduct(t, st, "111", 10, 5)

	var wg sync.WaitGroup
	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Sell(context.Background(), sellInput(product, 2))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, models.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 1, currentStock(t, st, product.ID, 0))

	sales, err := st.ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 2)
	for _, sale := range sales {
		assert.Equal(t, 20.0, sale.TotalAmount)
	}
}
