package domain

// BookedSlot represents one reserved slot in a day schedule, tagged with the
// sport and booking that hold it
type BookedSlot struct {
	Slot      string
	Sport     string
	BookingID int64
}

// FrozenSlotEntry represents one administratively blocked slot in a day schedule
type FrozenSlotEntry struct {
	Slot  string
	Sport string
}
