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

type ProductTypeInput struct {
	Name string `json:"name" binding:"required"`
}

func CreateProductType(c *gin.Context) {
	var input ProductTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	productType := models.ProductType{Name: input.Name}
	if err := config.DB.Create(&productType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product type")
		return
	}

	c.JSON(http.StatusCreated, productType)
}

func GetProductTypes(c *gin.Context) {
	var types []models.ProductType
	if err := config.DB.Order("name").Find(&types).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve product types")
		return
	}
	c.JSON(http.StatusOK, types)
}

func GetProductType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product type ID")
		return
	}

	var productType models.ProductType
	if err := config.DB.First(&productType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, productType)
}

func UpdateProductType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product type ID")
		return
	}

	var input ProductTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.ProductType{}).
		Where("id = ?", id).
		Update("name", input.Name)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product type")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product type not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product type updated successfully"})
}

func DeleteProductType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product type ID")
		return
	}

	result := config.DB.Delete(&models.ProductType{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product type")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product type not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product type deleted successfully"})
}
