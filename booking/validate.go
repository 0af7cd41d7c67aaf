// booking/validate.go
package booking

// ValidationError names the first thing missing from a selection.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	ErrMissingBarber   = &ValidationError{Field: "barber", Reason: "Please select a barber"}
	ErrMissingServices = &ValidationError{Field: "services", Reason: "Please select at least one service"}
	ErrMissingDate     = &ValidationError{Field: "date", Reason: "Please select a date"}
	ErrMissingSlot     = &ValidationError{Field: "slot", Reason: "Please select a time slot"}
)

// Validate returns nil when the selection can be booked, otherwise the first
// unmet step in the order barber, services, date, slot.
func Validate(s *Selection) error {
	switch {
	case s == nil || s.Barber == nil:
		return ErrMissingBarber
	case len(s.Services) == 0:
		return ErrMissingServices
	case s.Date == nil:
		return ErrMissingDate
	case s.Slot == nil:
		return ErrMissingSlot
	}
	return nil
}
