package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"coursemart-backend/config"
	"coursemart-backend/models"
	"coursemart-backend/services"
	"coursemart-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// Register creates an account, issues a session token and fires the
// verification email.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email already exists
	var existingUser models.User
	result := config.DB.Where("email = ?", input.Email).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	expiry := time.Now().Add(24 * time.Hour)
	newUser := models.User{
		Username:           input.Username,
		Email:              input.Email,
		Password:           input.Password, // Hashed in BeforeCreate hook
		Phone:              input.Phone,
		RoleID:             models.RoleUser,
		IsActive:           true,
		VerificationToken:  uuid.NewString(),
		VerificationExpiry: &expiry,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(newUser.ID, newUser.RoleID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Delivery outcome is logged inside the service; registration succeeds
	// either way.
	go services.NewEmailService().SendVerificationEmail(
		newUser.Email, newUser.Username, newUser.VerificationToken)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":       newUser.ID,
			"username": newUser.Username,
			"email":    newUser.Email,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	email := strings.TrimSpace(input.Email)

	var user models.User
	result := config.DB.Where("email = ? AND is_active = ?", email, true).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"roleId":   user.RoleID,
		},
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"roleId":        user.RoleID,
			"emailVerified": user.EmailVerified,
		},
	})
}

// VerifyEmail consumes a verification token from the emailed link.
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Verification token required")
		return
	}

	var user models.User
	if err := config.DB.Where("verification_token = ?", token).First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid verification token")
		return
	}

	if user.VerificationExpiry == nil || time.Now().After(*user.VerificationExpiry) {
		utils.RespondWithError(c, http.StatusBadRequest, "Verification token expired")
		return
	}

	updates := map[string]interface{}{
		"email_verified":      true,
		"verification_token":  "",
		"verification_expiry": nil,
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to verify email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// RequestPasswordReset issues a reset token. The response does not reveal
// whether the email exists.
func RequestPasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? AND is_active = ?", input.Email, true).
		First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		log.Printf("Password reset requested for unknown email %s", input.Email)
		c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset link was sent"})
		return
	}

	expiry := time.Now().Add(time.Hour)
	resetToken := uuid.NewString()
	updates := map[string]interface{}{
		"reset_token":  resetToken,
		"reset_expiry": &expiry,
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reset token")
		return
	}

	go services.NewEmailService().SendPasswordResetEmail(user.Email, user.Username, resetToken)

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset link was sent"})
}

// ResetPassword consumes a reset token and stores the new password.
func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("reset_token = ?", input.Token).First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reset token")
		return
	}

	if user.ResetExpiry == nil || time.Now().After(*user.ResetExpiry) {
		utils.RespondWithError(c, http.StatusBadRequest, "Reset token expired")
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	updates := map[string]interface{}{
		"password":     hashed,
		"reset_token":  "",
		"reset_expiry": nil,
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
