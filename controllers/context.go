package controllers

import (
	"errors"
	"net/http"

	"bookmycuts-backend/config"
	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// currentUserID reads the authenticated user's id set by AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	return userID, true
}

// ownerShop loads the shop owned by the authenticated user.
func ownerShop(c *gin.Context) (*models.Shop, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	var shop models.Shop
	if err := config.DB.Where("owner_id = ?", userID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Shop not found. Please add your shop first")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &shop, true
}

func idParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
