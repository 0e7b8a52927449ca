package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-backend/models"
	"pos-backend/store"
)

type SalesController struct {
	store store.Store
	log   *logrus.Logger
}

func NewSalesController(st store.Store, log *logrus.Logger) *SalesController {
	return &SalesController{store: st, log: log}
}

// List returns the ledger, newest entries first.
func (sc *SalesController) List(c *gin.Context) {
	sales, err := sc.store.ListSales(c.Request.Context())
	if err != nil {
		sc.log.WithError(err).Error("listing sales failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// Get returns a single ledger entry joined with its product and actor
// display fields, the shape receipts are rendered from.
func (sc *SalesController) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sale id"})
		return
	}

	ctx := c.Request.Context()
	sale, err := sc.store.FindSaleByID(ctx, id)
	if err == models.ErrSaleNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found"})
		return
	}
	if err != nil {
		sc.log.WithError(err).Error("sale lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	out := models.SaleWithRefs{Sale: sale}
	if product, err := sc.store.FindProductByID(ctx, sale.ProductID); err == nil {
		out.Product = &product
	}
	switch sale.SoldByModel {
	case models.RoleAdmin:
		if admin, err := sc.store.FindAdminByID(ctx, sale.SoldBy); err == nil {
			out.Seller = &models.ActorInfo{ID: admin.ID, Name: admin.Username, Email: admin.Email, Role: models.RoleAdmin}
		}
	case models.RoleSupplier:
		if supplier, err := sc.store.FindSupplierByID(ctx, sale.SoldBy); err == nil {
			out.Seller = &models.ActorInfo{ID: supplier.ID, Name: supplier.Name, Email: supplier.Email, Role: models.RoleSupplier}
		}
	}

	c.JSON(http.StatusOK, out)
}
