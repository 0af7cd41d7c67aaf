package controllers

import (
	"errors"
	"net/http"
	"strings"

	"bookmycuts-backend/config"
	"bookmycuts-backend/models"
	"bookmycuts-backend/services"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ShopInput struct {
	Name    string `json:"shopName"`
	City    string `json:"city"`
	Mobile  string `json:"mobile"`
	Timing  string `json:"timing"`
	Website string `json:"website"`
	Address string `json:"address"`
}

// Validate applies the shop registration rules and returns the first problem found.
func (in *ShopInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Timing = strings.TrimSpace(in.Timing)
	in.Website = strings.TrimSpace(in.Website)

	if in.Name == "" || in.City == "" || in.Mobile == "" || in.Timing == "" || in.Website == "" {
		return errors.New("All fields are required")
	}
	if !utils.ValidateMobile(in.Mobile) {
		return errors.New("Please enter a valid 10-digit mobile number")
	}
	if !utils.ValidateWebsite(in.Website) {
		return errors.New("Please enter a valid website URL")
	}
	return nil
}

// AddShop registers the owner's shop. An owner has at most one shop.
func AddShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input ShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := input.Validate(); err != nil {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var existing models.Shop
	if err := config.DB.Where("owner_id = ?", userID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Shop already registered for this account")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	shop := models.Shop{
		OwnerID:          userID,
		Name:             input.Name,
		City:             input.City,
		Mobile:           input.Mobile,
		Timing:           input.Timing,
		Website:          input.Website,
		Address:          input.Address,
		SMSNotifications: true,
	}

	tx := config.DB.Begin()
	if err := tx.Create(&shop).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create shop")
		return
	}
	if err := createDefaultTemplates(tx, shop); err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create message templates")
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to commit transaction")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shop details added successfully",
		"shop":    shop,
	})
}

func createDefaultTemplates(tx *gorm.DB, shop models.Shop) error {
	for kind, message := range services.DefaultTemplates {
		template := models.NotificationTemplate{
			ShopID:   shop.ID,
			Type:     kind,
			Message:  message,
			IsActive: true,
		}
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetMyShop returns the owner's shop with its barbers and services.
func GetMyShop(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}
	if err := config.DB.Preload("Barbers").Preload("Services").First(shop, "id = ?", shop.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load shop")
		return
	}
	c.JSON(http.StatusOK, shop)
}

// UpdateShop edits the owner's shop details under the registration rules.
func UpdateShop(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var input ShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := input.Validate(); err != nil {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	shop.Name = input.Name
	shop.City = input.City
	shop.Mobile = input.Mobile
	shop.Timing = input.Timing
	shop.Website = input.Website
	shop.Address = input.Address

	if err := config.DB.Save(shop).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update shop")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop updated", "shop": shop})
}

func UpdateShopTiming(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var input struct {
		Timing string `json:"timing" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	shop.Timing = strings.TrimSpace(input.Timing)
	if err := config.DB.Save(shop).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update timing")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Timing updated",
		"timing":      shop.Timing,
		"openingTime": shop.OpeningTime,
		"closingTime": shop.ClosingTime,
	})
}

func UpdateNotificationSettings(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	var input struct {
		WhatsAppNotifications bool `json:"whatsAppNotifications"`
		SMSNotifications      bool `json:"smsNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(shop).Updates(map[string]interface{}{
		"whats_app_notifications": input.WhatsAppNotifications,
		"sms_notifications":       input.SMSNotifications,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}

// ViewAllShops lists shops customers can book, optionally by city.
func ViewAllShops(c *gin.Context) {
	query := config.DB.Model(&models.Shop{}).Order("rating DESC, name")
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(city))
	}

	var shops []models.Shop
	if err := query.Find(&shops).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve shops")
		return
	}
	c.JSON(http.StatusOK, shops)
}

// ShopController serves the booking screen's read side of a shop.
type ShopController struct {
	Directory services.ShopDirectory
}

func (sc *ShopController) GetShop(c *gin.Context) {
	shop, err := sc.Directory.GetShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDirectoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// GetCatalog returns the shop, its slots, services and barbers. Services or
// barbers that fail to load are reported under "failures" instead of failing
// the request.
func (sc *ShopController) GetCatalog(c *gin.Context) {
	catalog := services.LoadCatalog(c.Request.Context(), sc.Directory, c.Param("id"))
	if err := catalog.ShopErr(); err != nil {
		respondDirectoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

func (sc *ShopController) GetSlots(c *gin.Context) {
	shop, err := sc.Directory.GetShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDirectoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"openingTime": shop.OpeningClock,
		"closingTime": shop.ClosingClock,
		"slots":       shop.Slots(),
	})
}

func respondDirectoryError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrShopNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, "Shop not found")
		return
	}
	utils.RespondWithError(c, http.StatusBadGateway, "Failed to load shop")
}
