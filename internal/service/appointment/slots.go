package appointment

import "fmt"

const (
	slotOpenHour  = 8
	slotCloseHour = 18
	slotMinutes   = 10
)

// allSlots returns every bookable time for one working day: 10-minute
// boundaries from 08:00:00 through 17:50:00, 60 in total, formatted
// HH:MM:SS.
func allSlots() []string {
	slots := make([]string, 0, (slotCloseHour-slotOpenHour)*60/slotMinutes)
	for hour := slotOpenHour; hour < slotCloseHour; hour++ {
		for minute := 0; minute < 60; minute += slotMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d:00", hour, minute))
		}
	}
	return slots
}

// ValidSlot reports whether t is one of the bookable times.
func ValidSlot(t string) bool {
	for _, s := range allSlots() {
		if s == t {
			return true
		}
	}
	return false
}
