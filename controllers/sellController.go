package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos-backend/middleware"
	"pos-backend/models"
	"pos-backend/services"
)

type SellController struct {
	sell *services.SellService
	log  *logrus.Logger
}

func NewSellController(sell *services.SellService, log *logrus.Logger) *SellController {
	return &SellController{sell: sell, log: log}
}

func (sc *SellController) Sell(c *gin.Context) {
	var input models.SellInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sell request"})
		return
	}

	sale, err := sc.sell.Sell(c.Request.Context(), input)
	switch err {
	case nil:
	case models.ErrInvalidQuantity:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid quantity"})
		return
	case models.ErrInvalidSellRequest:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sell request"})
		return
	case models.ErrProductNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	case models.ErrVariantNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Variant not found"})
		return
	case models.ErrInsufficientStock:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough stock"})
		return
	default:
		sc.log.WithError(err).Error("sell transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	middleware.SalesTotal.WithLabelValues(string(sale.PaymentType)).Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale successful",
		"sale":    sale,
	})
}
