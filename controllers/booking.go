// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"

	"bookmycuts-backend/models"
	"bookmycuts-backend/services"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
)

// BookingController serves booking history, status changes and payments.
type BookingController struct {
	Bookings services.BookingStore
	Checkout *services.CheckoutService
	Payments *services.PaymentService
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}

type ConfirmPaymentInput struct {
	Reference string `json:"reference" binding:"required"`
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// ListMyBookings returns the caller's bookings, newest first.
func (bc *BookingController) ListMyBookings(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookings, err := bc.Bookings.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (bc *BookingController) GetMyBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id", "booking")
	if !ok {
		return
	}

	b, err := bc.Bookings.Get(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if b.CustomerID != customerID {
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id", "booking")
	if !ok {
		return
	}

	b, err := bc.Checkout.Cancel(c.Request.Context(), customerID, bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "booking": b})
}

// GetShopBookings lists the owner's bookings with a payment summary.
// ?status= filters the list; the summary always covers every booking.
func (bc *BookingController) GetShopBookings(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	bookings, err := bc.Bookings.ListForShop(c.Request.Context(), shop.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	items := services.FormatShopBookings(bookings)
	c.JSON(http.StatusOK, gin.H{
		"bookings": services.FilterByStatus(items, c.DefaultQuery("status", "all")),
		"summary":  services.SummarizePayments(items),
	})
}

func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id", "booking")
	if !ok {
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	b, err := bc.Checkout.UpdateStatus(c.Request.Context(), shop.ID, bookingID, input.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPaymentAborted):
		utils.RespondWithError(c, http.StatusConflict, "Payment was cancelled. You can try again")
	case errors.Is(err, services.ErrPaymentDeclined):
		utils.RespondWithError(c, http.StatusPaymentRequired, "Payment could not be completed")
	case errors.Is(err, services.ErrPaymentPending):
		c.JSON(http.StatusAccepted, gin.H{"message": "Payment is still processing"})
	case errors.Is(err, services.ErrNothingToPay), errors.Is(err, services.ErrNotPayable):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnknownCharge):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrBookingNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
	default:
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to process payment")
	}
}

// CreatePayment opens a gateway charge for the amount due now.
func (bc *BookingController) CreatePayment(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id", "booking")
	if !ok {
		return
	}

	charge, err := bc.Payments.CreateOrder(c.Request.Context(), bookingID, customerID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, charge)
}

func (bc *BookingController) ConfirmPayment(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id", "booking")
	if !ok {
		return
	}

	var input ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	b, err := bc.Payments.Confirm(c.Request.Context(), bookingID, customerID, input.Reference)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	message := "Payment received"
	if b.PaymentStatus == models.PaymentPartial {
		message = "Advance received. Remaining " + b.RemainingAmount.String() + " to be paid at the shop"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "booking": b})
}
