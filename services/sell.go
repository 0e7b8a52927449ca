// Package services holds the business logic behind the HTTP controllers.
package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-backend/models"
	"pos-backend/store"
)

// SellService turns a sell request into exactly one of: a ledger entry
// plus a stock decrement, or a rejection with no visible effect.
type SellService struct {
	store store.Store
	log   *logrus.Logger
}

func NewSellService(st store.Store, log *logrus.Logger) *SellService {
	return &SellService{store: st, log: log}
}

func (s *SellService) Sell(ctx context.Context, input models.SellInput) (models.Sale, error) {
	if input.Quantity <= 0 {
		return models.Sale{}, models.ErrInvalidQuantity
	}
	if !input.PaymentType.Valid() {
		return models.Sale{}, models.ErrInvalidSellRequest
	}

	actor, err := parseActor(input.SoldBy, input.SoldByModel)
	if err != nil {
		return models.Sale{}, err
	}

	var (
		product      models.Product
		variantIndex int
	)
	switch {
	case input.Barcode != "":
		product, err = s.store.FindProductByBarcode(ctx, input.Barcode)
		if err != nil {
			return models.Sale{}, err
		}
		// A barcode names a product, not a variant; barcode sells always
		// target the first variant. Kept for compatibility with existing
		// clients even though it is ambiguous for multi-variant products.
		variantIndex = 0
		if len(product.Variants) == 0 {
			return models.Sale{}, models.ErrVariantNotFound
		}

	case input.ProductID != "" && input.VariantID != "":
		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			return models.Sale{}, models.ErrInvalidSellRequest
		}
		variantID, err := primitive.ObjectIDFromHex(input.VariantID)
		if err != nil {
			return models.Sale{}, models.ErrInvalidSellRequest
		}
		product, err = s.store.FindProductByID(ctx, productID)
		if err != nil {
			return models.Sale{}, err
		}
		variantIndex = product.VariantIndexByID(variantID)
		if variantIndex == -1 {
			return models.Sale{}, models.ErrVariantNotFound
		}

	default:
		return models.Sale{}, models.ErrInvalidSellRequest
	}

	variant := product.Variants[variantIndex]

	// Check and decrement happen as one conditional update inside the
	// store, so concurrent sells against the same variant serialize.
	if err := s.store.DecrementStock(ctx, product.ID, variantIndex, input.Quantity); err != nil {
		return models.Sale{}, err
	}

	sale := models.Sale{
		ProductID:    product.ID,
		VariantIndex: variantIndex,
		Quantity:     input.Quantity,
		PaymentType:  input.PaymentType,
		// Price snapshot: the amount is fixed now and never recomputed,
		// regardless of later catalog edits.
		TotalAmount: variant.Price * float64(input.Quantity),
		SoldBy:      actor.ID,
		SoldByModel: actor.Role,
		CreatedAt:   time.Now(),
	}

	created, err := s.store.InsertSale(ctx, sale)
	if err != nil {
		// The ledger write failed after the decrement committed. Restore
		// the stock so the two never diverge; a sale must not exist
		// without its decrement and vice versa.
		if rbErr := s.store.IncrementStock(ctx, product.ID, variantIndex, input.Quantity); rbErr != nil {
			s.log.WithError(rbErr).WithFields(logrus.Fields{
				"product":      product.ID.Hex(),
				"variantIndex": variantIndex,
				"quantity":     input.Quantity,
			}).Error("stock restore failed after ledger write failure")
		}
		return models.Sale{}, err
	}
	return created, nil
}

func parseActor(soldBy string, role models.Role) (models.Actor, error) {
	id, err := primitive.ObjectIDFromHex(soldBy)
	if err != nil {
		return models.Actor{}, models.ErrInvalidSellRequest
	}
	actor := models.Actor{ID: id, Role: role}
	if !actor.Valid() {
		return models.Actor{}, models.ErrInvalidSellRequest
	}
	return actor, nil
}
