package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookmycuts-backend/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

var (
	// ErrPaymentAborted means the customer walked away from the payment. The
	// booking stays unpaid and payment can be retried.
	ErrPaymentAborted  = errors.New("payment was cancelled")
	ErrPaymentDeclined = errors.New("payment was declined")
	ErrPaymentPending  = errors.New("payment is still processing")
	ErrNothingToPay    = errors.New("booking has nothing left to pay")
	ErrNotPayable      = errors.New("booking can no longer be paid")
	ErrUnknownCharge   = errors.New("payment reference does not match booking")
)

// Charge statuses as reported by a gateway.
const (
	ChargeSucceeded       = "succeeded"
	ChargeProcessing      = "processing"
	ChargeCanceled        = "canceled"
	ChargeRequiresPayment = "requires_payment_method"
	ChargeRequiresAction  = "requires_action"
)

type ChargeRequest struct {
	AmountMinorUnits int64
	Currency         string
	OrderRef         string
	Description      string
	// IdempotencyKey identifies one payment attempt. Retries of the same
	// attempt reuse it, a new attempt after a cancelled charge does not.
	IdempotencyKey string
}

type Charge struct {
	Reference        string `json:"reference"`
	ClientSecret     string `json:"clientSecret,omitempty"`
	Status           string `json:"status"`
	AmountMinorUnits int64  `json:"-"`
}

type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Charge, error)
	Lookup(ctx context.Context, reference string) (Charge, error)
}

// StripeGateway charges through Stripe PaymentIntents.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(strings.TrimSpace(secretKey), nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (Charge, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.AmountMinorUnits),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	key := req.IdempotencyKey
	if key == "" {
		key = req.OrderRef
	}
	params.IdempotencyKey = stripe.String(key)
	params.AddMetadata("booking_id", req.OrderRef)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return Charge{}, mapStripeError(err)
	}
	return chargeFromIntent(pi), nil
}

func (g *StripeGateway) Lookup(ctx context.Context, reference string) (Charge, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.Get(reference, params)
	if err != nil {
		return Charge{}, mapStripeError(err)
	}
	return chargeFromIntent(pi), nil
}

func chargeFromIntent(pi *stripe.PaymentIntent) Charge {
	return Charge{
		Reference:        pi.ID,
		ClientSecret:     pi.ClientSecret,
		Status:           string(pi.Status),
		AmountMinorUnits: pi.AmountReceived,
	}
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
		return fmt.Errorf("%w: %s", ErrPaymentDeclined, stripeErr.Msg)
	}
	return fmt.Errorf("payment gateway: %w", err)
}

// ConfirmationSender tells a customer their booking is confirmed.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) error
}

type PaymentService struct {
	Gateway  PaymentGateway
	Bookings BookingStore
	Notifier ConfirmationSender
	Logger   *zap.Logger
}

func NewPaymentService(gateway PaymentGateway, bookings BookingStore, notifier ConfirmationSender) *PaymentService {
	return &PaymentService{Gateway: gateway, Bookings: bookings, Notifier: notifier, Logger: zap.L()}
}

func (s *PaymentService) customerBooking(ctx context.Context, bookingID, customerID uuid.UUID) (*models.Booking, error) {
	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// CreateOrder opens a charge for the booking's amount to pay now.
func (s *PaymentService) CreateOrder(ctx context.Context, bookingID, customerID uuid.UUID) (Charge, error) {
	b, err := s.customerBooking(ctx, bookingID, customerID)
	if err != nil {
		return Charge{}, err
	}
	if b.BookingStatus == models.BookingCancelled || b.BookingStatus == models.BookingCompleted {
		return Charge{}, ErrNotPayable
	}
	if b.PaymentStatus != models.PaymentUnpaid {
		return Charge{}, ErrNothingToPay
	}
	if b.AmountToPay.MinorUnits() <= 0 {
		return Charge{}, ErrNothingToPay
	}

	charge, err := s.Gateway.Charge(ctx, ChargeRequest{
		AmountMinorUnits: b.AmountToPay.MinorUnits(),
		Currency:         b.Currency,
		OrderRef:         b.ID.String(),
		Description:      "Booking " + b.BookingNumber,
		IdempotencyKey:   chargeAttemptKey(b),
	})
	if err != nil {
		return Charge{}, err
	}

	b.PaymentReference = charge.Reference
	if err := s.Bookings.Save(ctx, b); err != nil {
		return Charge{}, err
	}
	s.Logger.Info("payment order created",
		zap.String("bookingId", b.ID.String()),
		zap.String("reference", charge.Reference),
		zap.Int64("amountPaise", b.AmountToPay.MinorUnits()))
	return charge, nil
}

// chargeAttemptKey is the booking id, chained to the previous charge when
// one exists so a retry after a cancelled charge opens a fresh one.
func chargeAttemptKey(b *models.Booking) string {
	if b.PaymentReference == "" {
		return b.ID.String()
	}
	return b.ID.String() + ":" + b.PaymentReference
}

// Confirm settles the booking once the gateway reports the charge succeeded.
func (s *PaymentService) Confirm(ctx context.Context, bookingID, customerID uuid.UUID, reference string) (*models.Booking, error) {
	b, err := s.customerBooking(ctx, bookingID, customerID)
	if err != nil {
		return nil, err
	}
	if reference == "" || reference != b.PaymentReference {
		return nil, ErrUnknownCharge
	}
	if b.PaymentStatus != models.PaymentUnpaid {
		return b, nil
	}

	charge, err := s.Gateway.Lookup(ctx, reference)
	if err != nil {
		return nil, err
	}

	switch charge.Status {
	case ChargeSucceeded:
	case ChargeCanceled:
		s.Logger.Info("payment aborted", zap.String("bookingId", b.ID.String()))
		return nil, ErrPaymentAborted
	case ChargeRequiresPayment:
		return nil, ErrPaymentDeclined
	default:
		return nil, ErrPaymentPending
	}

	settle(b)
	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.SendBookingConfirmation(ctx, b.ID); err != nil {
			s.Logger.Warn("booking confirmation not sent",
				zap.String("bookingId", b.ID.String()),
				zap.Error(err))
		}
	}
	return b, nil
}

// settle marks the amount due now as paid and confirms the booking.
func settle(b *models.Booking) {
	b.AmountPaid = b.AmountToPay
	if b.RemainingAmount == 0 {
		b.PaymentStatus = models.PaymentPaid
	} else {
		b.PaymentStatus = models.PaymentPartial
	}
	b.BookingStatus = models.BookingConfirmed
}
