package controllers

import (
	"errors"
	"net/http"

	"bookmycuts-backend/config"
	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateBarberInput struct {
	Name        string `json:"name" binding:"required"`
	NativePlace string `json:"nativePlace"`
}

type UpdateBarberInput struct {
	Name        *string `json:"name"`
	NativePlace *string `json:"nativePlace"`
	IsActive    *bool   `json:"isActive"`
}

// CreateBarber adds a barber to the owner's shop
func CreateBarber(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var input CreateBarberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	barber := models.Barber{
		ShopID:      shop.ID,
		Name:        input.Name,
		NativePlace: input.NativePlace,
		IsActive:    true,
	}
	if err := config.DB.Create(&barber).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create barber")
		return
	}

	c.JSON(http.StatusCreated, barber)
}

// GetBarbers retrieves all barbers of the owner's shop, inactive included
func GetBarbers(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var barbers []models.Barber
	if err := config.DB.Where("shop_id = ?", shop.ID).Order("name").Find(&barbers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve barbers")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func findShopBarber(c *gin.Context, shop *models.Shop) (*models.Barber, bool) {
	barberID, ok := idParam(c, "id", "barber")
	if !ok {
		return nil, false
	}
	var barber models.Barber
	if err := config.DB.Where("shop_id = ? AND id = ?", shop.ID, barberID).First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &barber, true
}

func GetBarber(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}
	barber, ok := findShopBarber(c, shop)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, barber)
}

// UpdateBarber updates the provided fields of a barber
func UpdateBarber(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var input UpdateBarberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	barber, ok := findShopBarber(c, shop)
	if !ok {
		return
	}

	if input.Name != nil {
		barber.Name = *input.Name
	}
	if input.NativePlace != nil {
		barber.NativePlace = *input.NativePlace
	}
	if input.IsActive != nil {
		barber.IsActive = *input.IsActive
	}

	if err := config.DB.Save(barber).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update barber")
		return
	}

	c.JSON(http.StatusOK, barber)
}

// DeleteBarber soft deletes a barber
func DeleteBarber(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}
	barberID, ok := idParam(c, "id", "barber")
	if !ok {
		return
	}

	result := config.DB.Where("shop_id = ? AND id = ?", shop.ID, barberID).Delete(&models.Barber{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete barber")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barber deleted successfully"})
}
