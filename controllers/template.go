// controllers/template.go
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

type CreateTemplateInput struct {
	Type    string `json:"type" binding:"required,oneof=confirmation reminder"`
	Message string `json:"message" binding:"required"`
}

type UpdateTemplateInput struct {
	Message  *string `json:"message"`
	IsActive *bool   `json:"isActive"`
}

// CreateTemplate creates a message template; one per type per shop
func CreateTemplate(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.NotificationTemplate
	if err := config.DB.Where("shop_id = ? AND type = ?", shop.ID, input.Type).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Template for this type already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	template := models.NotificationTemplate{
		ShopID:   shop.ID,
		Type:     input.Type,
		Message:  input.Message,
		IsActive: true,
	}
	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

func GetTemplates(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var templates []models.NotificationTemplate
	if err := config.DB.Where("shop_id = ?", shop.ID).Order("type").Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

func UpdateTemplate(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}
	templateID, ok := idParam(c, "id", "template")
	if !ok {
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.NotificationTemplate
	if err := config.DB.Where("shop_id = ? AND id = ?", shop.ID, templateID).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Message != nil {
		template.Message = *input.Message
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

func DeleteTemplate(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}
	templateID, ok := idParam(c, "id", "template")
	if !ok {
		return
	}

	result := config.DB.Where("shop_id = ? AND id = ?", shop.ID, templateID).
		Delete(&models.NotificationTemplate{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
