// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/config"
	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service.
// Price is in rupees.
type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Duration    int     `json:"duration" binding:"min=0"` // in minutes
	Category    string  `json:"category"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Duration    *int     `json:"duration" binding:"omitempty,min=0"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

// CreateService creates a new service for the shop
func CreateService(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		ShopID:      shop.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       booking.FromRupees(input.Price),
		Duration:    input.Duration,
		Category:    input.Category,
		IsActive:    true,
	}
	if service.Category == "" {
		service.Category = "General"
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services for the shop
func GetServices(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("shop_id = ?", shop.ID).Order("category, name").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func findShopService(c *gin.Context, shop *models.Shop) (*models.Service, bool) {
	serviceID, ok := idParam(c, "id", "service")
	if !ok {
		return nil, false
	}
	var service models.Service
	if err := config.DB.Where("shop_id = ? AND id = ?", shop.ID, serviceID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &service, true
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}
	service, ok := findShopService(c, shop)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, ok := findShopService(c, shop)
	if !ok {
		return
	}

	// Update fields if provided
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = booking.FromRupees(*input.Price)
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService soft deletes a service. Past bookings keep their own copy of it.
func DeleteService(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}
	serviceID, ok := idParam(c, "id", "service")
	if !ok {
		return
	}

	result := config.DB.Where("shop_id = ? AND id = ?", shop.ID, serviceID).Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
