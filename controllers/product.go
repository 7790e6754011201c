package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"coursemart-backend/config"
	"coursemart-backend/models"
	"coursemart-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProductInput defines the expected JSON structure for creating a product
type CreateProductInput struct {
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price" binding:"required,min=0"`
	Stock         int     `json:"stock" binding:"min=0"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"imageUrl"`
	ProductTypeID *uint   `json:"productTypeId"`
}

// UpdateProductInput defines the expected JSON structure for updating a product.
// Stock is deliberately absent: stock moves only through the guarded
// adjustment endpoint so edits cannot race checkouts into negative stock.
type UpdateProductInput struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"imageUrl"`
	ProductTypeID *uint    `json:"productTypeId"`
}

// AdjustStockInput is a relative stock change (restock or correction).
type AdjustStockInput struct {
	Delta int `json:"delta" binding:"required"`
}

func CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.ProductTypeID != nil {
		var productType models.ProductType
		if err := config.DB.First(&productType, "id = ?", *input.ProductTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Product type not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	product := models.Product{
		Name:          input.Name,
		Price:         input.Price,
		Stock:         input.Stock,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		ProductTypeID: input.ProductTypeID,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func GetProducts(c *gin.Context) {
	var products []models.Product
	if err := config.DB.Preload("ProductType").Order("name").Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := config.DB.Preload("ProductType").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

func UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.ProductTypeID != nil {
		product.ProductTypeID = input.ProductTypeID
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// AdjustProductStock applies a relative stock change under the same guard the
// checkout uses, so a restock or correction can never drive stock negative
// while checkouts run.
func AdjustProductStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, input.Delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", input.Delta))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to adjust stock")
		return
	}
	if result.RowsAffected == 0 {
		var product models.Product
		if err := config.DB.First(&product, "id = ?", id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusConflict, "Adjustment would drive stock negative")
		}
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, product)
}

func DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result := config.DB.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
