// controllers/cart.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/services"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartController drives a customer's booking cart from first pick to checkout.
type CartController struct {
	Carts      services.CartStore
	Directory  services.ShopDirectory
	Calculator *booking.Calculator
	Checkout   *services.CheckoutService
}

type CreateCartInput struct {
	ShopID string `json:"shopId" binding:"required"`
}

type PickBarberInput struct {
	BarberID string `json:"barberId" binding:"required"`
}

type PickDateInput struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type PickSlotInput struct {
	SlotID int `json:"timeSlotId" binding:"required"`
}

type PaymentModeInput struct {
	PaymentType string `json:"paymentType" binding:"required"`
}

// CartView is a cart with everything the booking screen derives from it.
type CartView struct {
	*services.Cart
	Totals   booking.Totals       `json:"totals"`
	Payment  booking.PaymentSplit `json:"payment"`
	Progress booking.Progress     `json:"progress"`
}

func (cc *CartController) view(cart *services.Cart) CartView {
	return CartView{
		Cart:     cart,
		Totals:   booking.ComputeTotals(cart.Selection),
		Payment:  cc.Calculator.PaymentPreview(cart.Selection),
		Progress: booking.ComputeProgress(cart.Selection),
	}
}

func (cc *CartController) now() time.Time {
	if cc.Calculator != nil && cc.Calculator.Now != nil {
		return cc.Calculator.Now()
	}
	return time.Now()
}

// loadCart fetches the cart in the URL and checks it belongs to the caller.
func (cc *CartController) loadCart(c *gin.Context) (*services.Cart, bool) {
	cart, err := services.LoadOwnedCart(c.Request.Context(), cc.Carts, c.Param("id"), c.GetString("userId"))
	if err != nil {
		// another customer's cart is reported as missing
		if errors.Is(err, services.ErrCartNotFound) || errors.Is(err, services.ErrNotCartOwner) {
			utils.RespondWithError(c, http.StatusNotFound, "Cart not found or expired")
		} else {
			utils.RespondWithError(c, http.StatusBadGateway, "Failed to load cart")
		}
		return nil, false
	}
	return cart, true
}

func (cc *CartController) saveAndRespond(c *gin.Context, cart *services.Cart) {
	if err := cc.Carts.Save(c.Request.Context(), cart); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to save cart")
		return
	}
	c.JSON(http.StatusOK, cc.view(cart))
}

// CreateCart starts an empty booking at a shop.
func (cc *CartController) CreateCart(c *gin.Context) {
	var input CreateCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, err := cc.Directory.GetShop(c.Request.Context(), input.ShopID); err != nil {
		respondDirectoryError(c, err)
		return
	}

	cart := services.NewCart(c.GetString("userId"), input.ShopID)
	if err := cc.Carts.Create(c.Request.Context(), cart); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to create cart")
		return
	}

	c.JSON(http.StatusCreated, cc.view(cart))
}

func (cc *CartController) GetCart(c *gin.Context) {
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cc.view(cart))
}

func (cc *CartController) PickBarber(c *gin.Context) {
	var input PickBarberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	barbers, err := cc.Directory.GetBarbers(c.Request.Context(), cart.ShopID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to load barbers")
		return
	}
	barber, found := services.FindBarber(barbers, input.BarberID)
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		return
	}
	cart.Selection.PickBarber(barber)
	cc.saveAndRespond(c, cart)
}

// ToggleService adds the service to the cart, or removes it if already there.
func (cc *CartController) ToggleService(c *gin.Context) {
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	serviceID := c.Param("serviceId")
	if cart.Selection.HasService(serviceID) {
		cart.Selection.ToggleService(booking.Service{ID: serviceID})
		cc.saveAndRespond(c, cart)
		return
	}

	catalog, err := cc.Directory.GetServices(c.Request.Context(), cart.ShopID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to load services")
		return
	}
	service, found := services.FindService(catalog, serviceID)
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	cart.Selection.ToggleService(service)
	cc.saveAndRespond(c, cart)
}

func (cc *CartController) PickDate(c *gin.Context) {
	var input PickDateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	now := cc.now()
	date, err := time.ParseInLocation(booking.DateLayout, input.Date, now.Location())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date must be YYYY-MM-DD")
		return
	}
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	if err := cart.Selection.PickDate(date, now); err != nil {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	cc.saveAndRespond(c, cart)
}

func (cc *CartController) PickSlot(c *gin.Context) {
	var input PickSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	shop, err := cc.Directory.GetShop(c.Request.Context(), cart.ShopID)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}
	slot, found := booking.FindSlot(shop.Slots(), input.SlotID)
	if !found {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Unknown time slot")
		return
	}
	cart.Selection.PickSlot(slot)
	cc.saveAndRespond(c, cart)
}

func (cc *CartController) SetPaymentMode(c *gin.Context) {
	var input PaymentModeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	mode, err := booking.ParsePaymentMode(input.PaymentType)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	cart.Selection.SetPaymentMode(mode)
	cc.saveAndRespond(c, cart)
}

func (cc *CartController) DeleteCart(c *gin.Context) {
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}
	if err := cc.Carts.Delete(c.Request.Context(), cart.ID); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to delete cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart discarded"})
}

// CheckoutCart turns a complete cart into a pending booking.
func (cc *CartController) CheckoutCart(c *gin.Context) {
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	shop, err := cc.Directory.GetShop(c.Request.Context(), cart.ShopID)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	result, err := cc.Checkout.Checkout(c.Request.Context(), cart, shop)
	if err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Reason, "field": verr.Field})
			return
		}
		utils.GetLogger().Error("checkout failed", zap.String("cartId", cart.ID), zap.Error(err))
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to submit booking")
		return
	}

	c.JSON(http.StatusCreated, result)
}
