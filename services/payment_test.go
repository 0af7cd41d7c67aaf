package services

import (
	"context"
	"errors"
	"testing"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/models"

	"github.com/google/uuid"
)

func unpaidBooking(mode booking.PaymentMode, total booking.Money) *models.Booking {
	split := booking.NewCalculator(booking.Rupees(20)).Split(total, mode)
	return &models.Booking{
		ID:              uuid.New(),
		BookingNumber:   "BK-20240601-ABC123",
		ShopID:          testShopID,
		CustomerID:      testCustomerID,
		TotalPrice:      total,
		PaymentMode:     string(mode),
		AmountToPay:     split.AmountToPay,
		RemainingAmount: split.Remaining,
		Currency:        booking.CurrencyINR,
		BookingStatus:   models.BookingPending,
		PaymentStatus:   models.PaymentUnpaid,
	}
}

func newTestPayments(b *models.Booking, status string) (*PaymentService, *fakeGateway, *memBookingStore, *fakeNotifier) {
	gw := &fakeGateway{status: status}
	store := newMemBookingStore()
	store.bookings[b.ID] = b
	notifier := &fakeNotifier{}
	return NewPaymentService(gw, store, notifier), gw, store, notifier
}

func TestCreateOrder_ChargesAmountToPayInPaise(t *testing.T) {
	b := unpaidBooking(booking.PaymentAdvance, booking.Rupees(300))
	svc, gw, _, _ := newTestPayments(b, ChargeSucceeded)

	charge, err := svc.CreateOrder(context.Background(), b.ID, testCustomerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gw.charges) != 1 || gw.charges[0].AmountMinorUnits != 2000 {
		t.Fatalf("expected one 2000 paise charge, got %+v", gw.charges)
	}
	if gw.charges[0].Currency != "INR" || gw.charges[0].OrderRef != b.ID.String() {
		t.Fatalf("unexpected charge request %+v", gw.charges[0])
	}
	if b.PaymentReference != charge.Reference {
		t.Fatalf("expected reference %s stored, got %s", charge.Reference, b.PaymentReference)
	}
}

func TestCreateOrder_RetryAfterCancelUsesNewAttemptKey(t *testing.T) {
	b := unpaidBooking(booking.PaymentFull, booking.Rupees(300))
	svc, gw, _, _ := newTestPayments(b, ChargeCanceled)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, b.ID, testCustomerID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(ctx, b.ID, testCustomerID, first.Reference); !errors.Is(err, ErrPaymentAborted) {
		t.Fatalf("expected ErrPaymentAborted, got %v", err)
	}

	second, err := svc.CreateOrder(ctx, b.ID, testCustomerID)
	if err != nil {
		t.Fatalf("expected retry to be allowed, got %v", err)
	}
	if len(gw.charges) != 2 {
		t.Fatalf("expected 2 charge attempts, got %d", len(gw.charges))
	}
	if gw.charges[0].IdempotencyKey != b.ID.String() {
		t.Errorf("first key = %v, want %v", gw.charges[0].IdempotencyKey, b.ID.String())
	}
	if gw.charges[1].IdempotencyKey == gw.charges[0].IdempotencyKey {
		t.Fatalf("expected a fresh idempotency key on retry, got %q twice", gw.charges[1].IdempotencyKey)
	}
	if b.PaymentReference != second.Reference || second.Reference == first.Reference {
		t.Fatalf("expected new reference stored, got %s (first %s)", b.PaymentReference, first.Reference)
	}
}

func TestCreateOrder_Rejections(t *testing.T) {
	free := unpaidBooking(booking.PaymentFull, 0)
	svc, _, _, _ := newTestPayments(free, ChargeSucceeded)
	if _, err := svc.CreateOrder(context.Background(), free.ID, testCustomerID); !errors.Is(err, ErrNothingToPay) {
		t.Fatalf("expected ErrNothingToPay for zero amount, got %v", err)
	}

	cancelled := unpaidBooking(booking.PaymentFull, booking.Rupees(100))
	cancelled.BookingStatus = models.BookingCancelled
	svc, _, _, _ = newTestPayments(cancelled, ChargeSucceeded)
	if _, err := svc.CreateOrder(context.Background(), cancelled.ID, testCustomerID); !errors.Is(err, ErrNotPayable) {
		t.Fatalf("expected ErrNotPayable, got %v", err)
	}

	other := unpaidBooking(booking.PaymentFull, booking.Rupees(100))
	svc, _, _, _ = newTestPayments(other, ChargeSucceeded)
	if _, err := svc.CreateOrder(context.Background(), other.ID, uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound for another customer, got %v", err)
	}
}

func TestConfirm_AdvanceIsPartial(t *testing.T) {
	b := unpaidBooking(booking.PaymentAdvance, booking.Rupees(300))
	b.PaymentReference = "pi_1"
	svc, _, _, notifier := newTestPayments(b, ChargeSucceeded)

	got, err := svc.Confirm(context.Background(), b.ID, testCustomerID, "pi_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PaymentStatus != models.PaymentPartial || got.AmountPaid != booking.Rupees(20) {
		t.Fatalf("expected partial 20, got %s %v", got.PaymentStatus, got.AmountPaid)
	}
	if got.BookingStatus != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", got.BookingStatus)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != b.ID {
		t.Fatalf("expected one confirmation, got %v", notifier.sent)
	}
}

func TestConfirm_FullIsPaid(t *testing.T) {
	b := unpaidBooking(booking.PaymentFull, booking.Rupees(300))
	b.PaymentReference = "pi_2"
	svc, _, _, _ := newTestPayments(b, ChargeSucceeded)

	got, err := svc.Confirm(context.Background(), b.ID, testCustomerID, "pi_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PaymentStatus != models.PaymentPaid || got.AmountPaid != booking.Rupees(300) {
		t.Fatalf("expected paid 300, got %s %v", got.PaymentStatus, got.AmountPaid)
	}
}

func TestConfirm_NonSuccessOutcomes(t *testing.T) {
	cases := []struct {
		status string
		want   error
	}{
		{ChargeCanceled, ErrPaymentAborted},
		{ChargeRequiresPayment, ErrPaymentDeclined},
		{ChargeProcessing, ErrPaymentPending},
		{ChargeRequiresAction, ErrPaymentPending},
	}
	for _, tc := range cases {
		b := unpaidBooking(booking.PaymentAdvance, booking.Rupees(300))
		b.PaymentReference = "pi_3"
		svc, _, store, notifier := newTestPayments(b, tc.status)

		if _, err := svc.Confirm(context.Background(), b.ID, testCustomerID, "pi_3"); !errors.Is(err, tc.want) {
			t.Errorf("status %s: expected %v, got %v", tc.status, tc.want, err)
		}
		if b.PaymentStatus != models.PaymentUnpaid || b.BookingStatus != models.BookingPending {
			t.Errorf("status %s: booking changed to %s/%s", tc.status, b.BookingStatus, b.PaymentStatus)
		}
		if store.saves != 0 || len(notifier.sent) != 0 {
			t.Errorf("status %s: expected no save or notification", tc.status)
		}
	}
}

func TestConfirm_WrongReference(t *testing.T) {
	b := unpaidBooking(booking.PaymentAdvance, booking.Rupees(300))
	b.PaymentReference = "pi_real"
	svc, _, _, _ := newTestPayments(b, ChargeSucceeded)
	if _, err := svc.Confirm(context.Background(), b.ID, testCustomerID, "pi_other"); !errors.Is(err, ErrUnknownCharge) {
		t.Fatalf("expected ErrUnknownCharge, got %v", err)
	}
}
