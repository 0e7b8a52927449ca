package controllers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-backend/models"
	"pos-backend/store"
)

const maxPhotoSize = 5 * 1024 * 1024
const compressThreshold = 1 * 1024 * 1024

type ProductController struct {
	store      store.Store
	uploadsDir string
	log        *logrus.Logger
}

func NewProductController(st store.Store, uploadsDir string, log *logrus.Logger) *ProductController {
	return &ProductController{store: st, uploadsDir: uploadsDir, log: log}
}

func (pc *ProductController) Create(c *gin.Context) {
	var input models.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	supplierID, err := primitive.ObjectIDFromHex(input.Supplier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid supplier id"})
		return
	}
	for _, v := range input.Variants {
		if v.Price < 0 || v.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Variant price and stock must be non-negative"})
			return
		}
	}

	product, err := pc.store.CreateProduct(c.Request.Context(), models.Product{
		Name:       input.Name,
		Barcode:    input.Barcode,
		SupplierID: supplierID,
		Variants:   input.Variants,
	})
	if err == models.ErrDuplicateProduct {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product already exists"})
		return
	}
	if err != nil {
		pc.log.WithError(err).Error("creating product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.store.ListProducts(c.Request.Context())
	if err != nil {
		pc.log.WithError(err).Error("listing products failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	var input models.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	for _, v := range input.Variants {
		if v.Price < 0 || v.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Variant price and stock must be non-negative"})
			return
		}
	}

	product, err := pc.store.UpdateProduct(c.Request.Context(), id, input)
	if err == models.ErrProductNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	if err != nil {
		pc.log.WithError(err).Error("updating product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// UploadPhoto stores a product photo under the uploads dir, compressing
// large images down to 800px wide before saving.
func (pc *ProductController) UploadPhoto(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}
	if _, err := pc.store.FindProductByID(c.Request.Context(), id); err != nil {
		if err == models.ErrProductNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		pc.log.WithError(err).Error("product lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Photo file is required"})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File size exceeds the 5MB limit"})
		return
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	if fileExt != ".jpg" && fileExt != ".jpeg" && fileExt != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Unsupported file format: %s", fileExt)})
		return
	}

	productDir := filepath.Join(pc.uploadsDir, "products")
	if err := os.MkdirAll(productDir, os.ModePerm); err != nil {
		pc.log.WithError(err).Error("creating uploads dir failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	filename := fmt.Sprintf("%s_%d%s", id.Hex(), time.Now().Unix(), fileExt)
	fullPath := filepath.Join(productDir, filename)

	if file.Size > compressThreshold {
		srcFile, err := file.Open()
		if err != nil {
			pc.log.WithError(err).Error("opening uploaded file failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		defer srcFile.Close()

		var img image.Image
		if fileExt == ".png" {
			img, err = png.Decode(srcFile)
		} else {
			img, err = jpeg.Decode(srcFile)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to decode image"})
			return
		}

		compressed := resize.Resize(800, 0, img, resize.Lanczos3)

		outFile, err := os.Create(fullPath)
		if err != nil {
			pc.log.WithError(err).Error("creating photo file failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		defer outFile.Close()

		if err := jpeg.Encode(outFile, compressed, &jpeg.Options{Quality: 80}); err != nil {
			pc.log.WithError(err).Error("saving compressed photo failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
	} else {
		if err := c.SaveUploadedFile(file, fullPath); err != nil {
			pc.log.WithError(err).Error("saving photo failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
	}

	photoURL := "/uploads/products/" + filename
	if err := pc.store.SetProductPhoto(c.Request.Context(), id, photoURL); err != nil {
		pc.log.WithError(err).Error("saving photo url failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo uploaded", "photoUrl": photoURL})
}
