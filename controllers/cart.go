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

// CreateCartInput defines the expected JSON structure for staging a cart line
type CreateCartInput struct {
	ProductID  uint  `json:"productId" binding:"required"`
	ScheduleID *uint `json:"scheduleId"`
	Quantity   int   `json:"quantity" binding:"required,min=1"`
}

// GetCart lists the caller's staged lines with product and schedule data.
func GetCart(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var carts []models.Cart
	if err := config.DB.Preload("Product").Preload("Product.ProductType").
		Preload("Schedule").
		Where("user_id = ?", userID).
		Find(&carts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve cart")
		return
	}

	c.JSON(http.StatusOK, carts)
}

// AddToCart stages one product line for the caller.
func AddToCart(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ScheduleID != nil {
		var schedule models.Schedule
		if err := config.DB.First(&schedule, "id = ?", *input.ScheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Schedule not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	cart := models.Cart{
		UserID:     userID.(uint),
		ProductID:  input.ProductID,
		ScheduleID: input.ScheduleID,
		Quantity:   input.Quantity,
	}

	if err := config.DB.Create(&cart).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	c.JSON(http.StatusCreated, cart)
}

// RemoveFromCart deletes one of the caller's staged lines.
func RemoveFromCart(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid cart ID")
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Cart{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove cart line")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Cart line not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart line removed"})
}
