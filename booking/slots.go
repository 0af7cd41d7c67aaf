// booking/slots.go
package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultClock is returned by ParseClockLabel for input it cannot read.
	// Callers must treat it as "unparsed", not as the shop's real hours.
	DefaultClock = "09:00"
	// DefaultClosingClock is used when a timing string has no closing side.
	DefaultClosingClock = "20:00"

	noonClock    = "12:00"
	eveningClock = "15:00"
	nightClock   = "19:00"
)

// TimeSlotWindow is one of the four named windows a shop day is split into.
type TimeSlotWindow struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

var (
	clockPattern     = regexp.MustCompile(`^(\d{1,2})(?::\d{2})?\s*(am|pm)?`)
	timingSeparators = regexp.MustCompile(`\s*(?:-|–|—|\bto\b)\s*`)
)

// DeriveTimeSlots splits a shop day into Morning, Noon, Evening and Night.
// Hours are not checked: an inverted or unusual opening/closing pair is
// returned as-is.
func DeriveTimeSlots(openingClock, closingClock string) []TimeSlotWindow {
	return []TimeSlotWindow{
		{ID: 1, Label: "Morning", Start: openingClock, End: noonClock},
		{ID: 2, Label: "Noon", Start: noonClock, End: eveningClock},
		{ID: 3, Label: "Evening", Start: eveningClock, End: nightClock},
		{ID: 4, Label: "Night", Start: nightClock, End: closingClock},
	}
}

// FindSlot returns the slot with the given id.
func FindSlot(slots []TimeSlotWindow, id int) (TimeSlotWindow, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlotWindow{}, false
}

// ParseClockLabel turns labels like "9am" or "9:00 PM" into a 24-hour "HH:MM"
// clock. Minutes are always "00". Anything it cannot read yields DefaultClock.
func ParseClockLabel(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultClock
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultClock
	}
	switch m[2] {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	}
	if hour > 23 {
		return DefaultClock
	}
	return fmt.Sprintf("%02d:00", hour)
}

// ParseTiming reads a shop timing string such as "9am - 8pm", "10am – 9pm"
// or "10am to 9pm" into opening and closing clocks.
func ParseTiming(timing string) (opening, closing string) {
	t := strings.ToLower(strings.TrimSpace(timing))
	parts := timingSeparators.Split(t, 2)

	opening = ParseClockLabel(parts[0])
	closing = DefaultClosingClock
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		closing = ParseClockLabel(parts[1])
	}
	return opening, closing
}
