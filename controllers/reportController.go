package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos-backend/models"
	"pos-backend/store"
)

// ReportController serves read-only aggregations over the sale ledger.
// Every report is computed from the ledger at request time.
type ReportController struct {
	store store.Store
	log   *logrus.Logger
}

func NewReportController(st store.Store, log *logrus.Logger) *ReportController {
	return &ReportController{store: st, log: log}
}

func (rc *ReportController) PaymentTypes(c *gin.Context) {
	data, err := rc.store.TotalsByPaymentType(c.Request.Context())
	if err != nil {
		rc.log.WithError(err).Error("payment type report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (rc *ReportController) Daily(c *gin.Context) {
	data, err := rc.store.TotalsByDay(c.Request.Context())
	if err != nil {
		rc.log.WithError(err).Error("daily report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// Monthly covers the current calendar year only.
func (rc *ReportController) Monthly(c *gin.Context) {
	data, err := rc.store.TotalsByMonth(c.Request.Context(), time.Now().Year())
	if err != nil {
		rc.log.WithError(err).Error("monthly report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (rc *ReportController) Yearly(c *gin.Context) {
	data, err := rc.store.TotalsByYear(c.Request.Context())
	if err != nil {
		rc.log.WithError(err).Error("yearly report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// StaffSales joins per-actor ledger totals with the principal's display
// name and role. Actors whose account has since disappeared are skipped.
func (rc *ReportController) StaffSales(c *gin.Context) {
	ctx := c.Request.Context()
	totals, err := rc.store.TotalsByActor(ctx)
	if err != nil {
		rc.log.WithError(err).Error("staff sales report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	results := make([]models.StaffSales, 0, len(totals))
	for _, t := range totals {
		var name string
		switch t.SoldByModel {
		case models.RoleAdmin:
			admin, err := rc.store.FindAdminByID(ctx, t.SoldBy)
			if err != nil {
				continue
			}
			name = admin.Username
		case models.RoleSupplier:
			supplier, err := rc.store.FindSupplierByID(ctx, t.SoldBy)
			if err != nil {
				continue
			}
			name = supplier.Name
		default:
			continue
		}
		results = append(results, models.StaffSales{
			Name:       name,
			Role:       t.SoldByModel,
			TotalSales: t.TotalSales,
			TotalQty:   t.TotalQty,
		})
	}

	c.JSON(http.StatusOK, results)
}

// SupplierPayments totals every sale of each supplier's products.
func (rc *ReportController) SupplierPayments(c *gin.Context) {
	ctx := c.Request.Context()
	totals, err := rc.store.TotalsBySupplier(ctx)
	if err != nil {
		rc.log.WithError(err).Error("supplier payments report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	results := make([]models.SupplierPayment, 0, len(totals))
	for _, t := range totals {
		supplier, err := rc.store.FindSupplierByID(ctx, t.SupplierID)
		if err != nil {
			continue
		}
		results = append(results, models.SupplierPayment{
			SupplierName: supplier.Name,
			Email:        supplier.Email,
			TotalSales:   t.TotalSales,
			TotalQty:     t.TotalQty,
		})
	}

	c.JSON(http.StatusOK, results)
}
