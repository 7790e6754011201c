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

type PaymentMethodInput struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl"`
	IsActive *bool  `json:"isActive"`
}

func CreatePaymentMethod(c *gin.Context) {
	var input PaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	method := models.PaymentMethod{
		Name:     input.Name,
		ImageURL: input.ImageURL,
		IsActive: true,
	}
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&method).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment method")
		return
	}

	c.JSON(http.StatusCreated, method)
}

func GetPaymentMethods(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := config.DB.Where("is_active = ?", true).Order("name").Find(&methods).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payment methods")
		return
	}
	c.JSON(http.StatusOK, methods)
}

func GetPaymentMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method ID")
		return
	}

	var method models.PaymentMethod
	if err := config.DB.First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment method not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, method)
}

func UpdatePaymentMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method ID")
		return
	}

	var input PaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var method models.PaymentMethod
	if err := config.DB.First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment method not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	method.Name = input.Name
	method.ImageURL = input.ImageURL
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&method).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment method")
		return
	}

	c.JSON(http.StatusOK, method)
}

func DeletePaymentMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method ID")
		return
	}

	result := config.DB.Delete(&models.PaymentMethod{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment method")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Payment method not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted successfully"})
}
