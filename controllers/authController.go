package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos-backend/models"
	"pos-backend/store"
	"pos-backend/utils"
)

type AuthController struct {
	store     store.Store
	jwtSecret string
	log       *logrus.Logger
}

func NewAuthController(st store.Store, jwtSecret string, log *logrus.Logger) *AuthController {
	return &AuthController{store: st, jwtSecret: jwtSecret, log: log}
}

func (ac *AuthController) RegisterAdmin(c *gin.Context) {
	var input models.RegisterAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		ac.log.WithError(err).Error("hashing password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	admin, err := ac.store.CreateAdmin(c.Request.Context(), models.Admin{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
	})
	if err == models.ErrDuplicateAccount {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Admin already exists"})
		return
	}
	if err != nil {
		ac.log.WithError(err).Error("creating admin failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := utils.GenerateToken(ac.jwtSecret, admin.ID.Hex(), string(models.RoleAdmin))
	if err != nil {
		ac.log.WithError(err).Error("generating token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "admin": admin})
}

func (ac *AuthController) LoginAdmin(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	admin, err := ac.store.FindAdminByEmail(c.Request.Context(), input.Email)
	if err == models.ErrAccountNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		ac.log.WithError(err).Error("admin lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if utils.VerifyPassword(admin.Password, input.Password) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(ac.jwtSecret, admin.ID.Hex(), string(models.RoleAdmin))
	if err != nil {
		ac.log.WithError(err).Error("generating token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "admin": admin})
}

func (ac *AuthController) RegisterSupplier(c *gin.Context) {
	var input models.RegisterSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		ac.log.WithError(err).Error("hashing password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	supplier, err := ac.store.CreateSupplier(c.Request.Context(), models.Supplier{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
	})
	if err == models.ErrDuplicateAccount {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Supplier already exists"})
		return
	}
	if err != nil {
		ac.log.WithError(err).Error("creating supplier failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := utils.GenerateToken(ac.jwtSecret, supplier.ID.Hex(), string(models.RoleSupplier))
	if err != nil {
		ac.log.WithError(err).Error("generating token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "supplier": supplier})
}

func (ac *AuthController) LoginSupplier(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	supplier, err := ac.store.FindSupplierByEmail(c.Request.Context(), input.Email)
	if err == models.ErrAccountNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		ac.log.WithError(err).Error("supplier lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if utils.VerifyPassword(supplier.Password, input.Password) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(ac.jwtSecret, supplier.ID.Hex(), string(models.RoleSupplier))
	if err != nil {
		ac.log.WithError(err).Error("generating token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "supplier": supplier})
}
