package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"bookmycuts-backend/config"
	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=customer owner"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

// controllers/auth.go
func Register(c *gin.Context) {
	var input RegisterInput

	// Bind and validate input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if email or phone already exists
	var existingUser models.User
	result := config.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}

	newUser := models.User{
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     role,
		IsActive: true,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), newUser.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	setTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    userResponse(&newUser),
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	// Clean identifier
	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := config.DB.Where("email = ? OR phone = ?", strings.ToLower(identifier), identifier).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !user.IsActive || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	setTokenCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse(&user),
	})
}

func Me(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	resp := userResponse(&user)
	if user.Role == models.RoleOwner {
		var shop models.Shop
		if err := config.DB.Where("owner_id = ?", user.ID).First(&shop).Error; err == nil {
			resp["shopId"] = shop.ID
			resp["shopName"] = shop.Name
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": resp})
}

func setTokenCookie(c *gin.Context, token string) {
	maxAge := utils.TokenExpiryHours() * 3600
	c.SetCookie("token", token, maxAge, "/", "", config.IsProduction(), true)
}

func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"phone": u.Phone,
		"name":  u.Name,
		"role":  u.Role,
	}
}
