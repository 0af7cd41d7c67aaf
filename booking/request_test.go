package booking

import (
	"errors"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC)

func completeSelection() *Selection {
	sel := NewSelection()
	sel.PickBarber(Barber{ID: "B1", Name: "John Doe", OriginLabel: "Mumbai"})
	sel.ToggleService(haircut)
	sel.ToggleService(beardTrim)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sel.Date = &date
	morning, _ := FindSlot(DeriveTimeSlots("09:00", "21:00"), 1)
	sel.PickSlot(morning)
	return sel
}

func testCalculator() *Calculator {
	c := NewCalculator(Rupees(20))
	c.Now = func() time.Time { return fixedNow }
	return c
}

func TestValidate_PriorityOrder(t *testing.T) {
	sel := NewSelection()
	if err := Validate(sel); err != ErrMissingBarber {
		t.Fatalf("expected ErrMissingBarber, got %v", err)
	}
	sel.PickBarber(Barber{ID: "B1"})
	if err := Validate(sel); err != ErrMissingServices {
		t.Fatalf("expected ErrMissingServices, got %v", err)
	}
	sel.ToggleService(haircut)
	if err := Validate(sel); err != ErrMissingDate {
		t.Fatalf("expected ErrMissingDate, got %v", err)
	}
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sel.Date = &date
	err := Validate(sel)
	if err != ErrMissingSlot {
		t.Fatalf("expected ErrMissingSlot, got %v", err)
	}
	if err.Error() != "Please select a time slot" {
		t.Fatalf("unexpected reason %q", err.Error())
	}
	sel.PickSlot(DeriveTimeSlots("09:00", "21:00")[2])
	if err := Validate(sel); err != nil {
		t.Fatalf("expected complete selection to validate, got %v", err)
	}
}

func TestValidate_ReportsBarberBeforeOtherGaps(t *testing.T) {
	sel := completeSelection()
	sel.Barber = nil
	sel.Slot = nil
	var verr *ValidationError
	if err := Validate(sel); !errors.As(err, &verr) || verr.Field != "barber" {
		t.Fatalf("expected barber validation error, got %v", err)
	}
}

func TestBuildBookingRequest_AdvanceScenario(t *testing.T) {
	req, err := testCalculator().BuildBookingRequest(completeSelection(), ShopContext{ID: "shop-1", Name: "Premium Barber Shop"}, PaymentAdvance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.TotalPrice != Rupees(300) {
		t.Errorf("TotalPrice = %v, want %v", req.TotalPrice, Rupees(300))
	}
	if req.TotalDuration != 45 {
		t.Errorf("TotalDuration = %v, want %v", req.TotalDuration, 45)
	}
	if req.AmountToPay != Rupees(20) {
		t.Errorf("AmountToPay = %v, want %v", req.AmountToPay, Rupees(20))
	}
	if req.Remaining != Rupees(280) {
		t.Errorf("Remaining = %v, want %v", req.Remaining, Rupees(280))
	}
	if req.Status != StatusPending || req.PaymentStatus != PaymentUnpaid {
		t.Errorf("status = %s/%s, want pending/unpaid", req.Status, req.PaymentStatus)
	}
	if req.BookingDate != "2024-06-01" {
		t.Errorf("BookingDate = %v, want 2024-06-01", req.BookingDate)
	}
	if req.SlotStart != "09:00" || req.SlotEnd != "12:00" || req.SlotLabel != "Morning" {
		t.Errorf("slot = %s %s-%s, want Morning 09:00-12:00", req.SlotLabel, req.SlotStart, req.SlotEnd)
	}
	if len(req.ServiceIDs) != 2 || req.ServiceIDs[0] != "svc-1" || req.ServiceIDs[1] != "svc-2" {
		t.Errorf("ServiceIDs = %v, want [svc-1 svc-2]", req.ServiceIDs)
	}
	if req.BarberID != "B1" || req.Currency != CurrencyINR {
		t.Errorf("barber/currency = %s/%s", req.BarberID, req.Currency)
	}
	if !req.RequestedAt.Equal(fixedNow) {
		t.Errorf("RequestedAt = %v, want %v", req.RequestedAt, fixedNow)
	}
}

func TestBuildBookingRequest_SplitAlwaysAddsUp(t *testing.T) {
	calc := testCalculator()
	for _, total := range []Money{0, Rupees(20), Rupees(19), Rupees(1000)} {
		for _, mode := range []PaymentMode{PaymentAdvance, PaymentFull} {
			sel := completeSelection()
			sel.Services = []Service{{ID: "x", Name: "Custom", UnitPrice: total, DurationMinutes: 10}}

			req, err := calc.BuildBookingRequest(sel, ShopContext{ID: "shop-1"}, mode)
			if err != nil {
				t.Fatalf("total %v mode %s: unexpected error %v", total, mode, err)
			}
			if req.AmountToPay+req.Remaining != req.TotalPrice {
				t.Errorf("total %v mode %s: %v + %v != %v", total, mode, req.AmountToPay, req.Remaining, req.TotalPrice)
			}
			if req.AmountToPay > req.TotalPrice {
				t.Errorf("total %v mode %s: pays %v, more than total", total, mode, req.AmountToPay)
			}
			if mode == PaymentFull && req.Remaining != 0 {
				t.Errorf("total %v full: remaining %v, want 0", total, req.Remaining)
			}
		}
	}
}

func TestBuildBookingRequest_AdvanceCappedAtTotal(t *testing.T) {
	sel := completeSelection()
	sel.Services = []Service{{ID: "x", UnitPrice: Rupees(19), DurationMinutes: 5}}
	req, err := testCalculator().BuildBookingRequest(sel, ShopContext{ID: "shop-1"}, PaymentAdvance)
	if err != nil {
		t.Fatal(err)
	}
	if req.AmountToPay != Rupees(19) || req.Remaining != 0 {
		t.Fatalf("expected to pay 19 with nothing remaining, got %v / %v", req.AmountToPay, req.Remaining)
	}
}

func TestBuildBookingRequest_Rejections(t *testing.T) {
	calc := testCalculator()

	incomplete := completeSelection()
	incomplete.Slot = nil
	if _, err := calc.BuildBookingRequest(incomplete, ShopContext{ID: "shop-1"}, PaymentFull); err != ErrMissingSlot {
		t.Fatalf("expected ErrMissingSlot, got %v", err)
	}

	if _, err := calc.BuildBookingRequest(completeSelection(), ShopContext{}, PaymentFull); !errors.Is(err, ErrShopMissing) {
		t.Fatalf("expected ErrShopMissing, got %v", err)
	}

	if _, err := calc.BuildBookingRequest(completeSelection(), ShopContext{ID: "shop-1"}, "later"); !errors.Is(err, ErrUnknownPaymentMode) {
		t.Fatalf("expected ErrUnknownPaymentMode, got %v", err)
	}
}

func TestNewCalculator_FallsBackToDefaultAdvance(t *testing.T) {
	for _, advance := range []Money{0, -Rupees(5)} {
		if got := NewCalculator(advance).AdvanceAmount; got != DefaultAdvanceAmount {
			t.Errorf("NewCalculator(%v).AdvanceAmount = %v, want %v", advance, got, DefaultAdvanceAmount)
		}
	}
	if got := NewCalculator(Rupees(50)).AdvanceAmount; got != Rupees(50) {
		t.Errorf("NewCalculator(50).AdvanceAmount = %v, want %v", got, Rupees(50))
	}
}

func TestPaymentPreview(t *testing.T) {
	calc := testCalculator()
	sel := completeSelection()
	if p := calc.PaymentPreview(sel); p.AmountToPay != Rupees(20) || p.Remaining != Rupees(280) {
		t.Fatalf("advance preview = %+v", p)
	}
	sel.SetPaymentMode(PaymentFull)
	if p := calc.PaymentPreview(sel); p.AmountToPay != Rupees(300) || p.Remaining != 0 {
		t.Fatalf("full preview = %+v", p)
	}
}
