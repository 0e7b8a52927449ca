package routes

import (
	"github.com/gin-gonic/gin"

	"pos-backend/config"
	"pos-backend/controllers"
	"pos-backend/middleware"
	"pos-backend/models"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Sell     *controllers.SellController
	Sales    *controllers.SalesController
	Reports  *controllers.ReportController
}

func InitializeRoutes(router *gin.Engine, ctrl Controllers, cfg config.Config) {
	router.Static("/uploads", cfg.UploadsDir)

	accounts := router.Group("/accounts")
	{
		accounts.POST("/admin/register", ctrl.Auth.RegisterAdmin)
		accounts.POST("/admin/login", ctrl.Auth.LoginAdmin)
		accounts.POST("/supplier/register", ctrl.Auth.RegisterSupplier)
		accounts.POST("/supplier/login", ctrl.Auth.LoginSupplier)
	}

	staff := router.Group("")
	staff.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		staff.POST("/products", ctrl.Products.Create)
		staff.GET("/products", ctrl.Products.List)
		staff.PUT("/products/:id", ctrl.Products.Update)
		staff.POST("/products/:id/photo", ctrl.Products.UploadPhoto)

		staff.POST("/sell", ctrl.Sell.Sell)

		staff.GET("/sales", ctrl.Sales.List)
		staff.GET("/sales/:id", ctrl.Sales.Get)
	}

	reports := router.Group("/reports")
	reports.Use(middleware.RequireAuth(cfg.JWTSecret, string(models.RoleAdmin)))
	{
		reports.GET("/payment-types", ctrl.Reports.PaymentTypes)
		reports.GET("/daily", ctrl.Reports.Daily)
		reports.GET("/monthly", ctrl.Reports.Monthly)
		reports.GET("/yearly", ctrl.Reports.Yearly)
		reports.GET("/staff-sales", ctrl.Reports.StaffSales)
		reports.GET("/supplier-payments", ctrl.Reports.SupplierPayments)
	}
}
