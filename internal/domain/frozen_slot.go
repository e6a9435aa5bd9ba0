package domain

import "time"

// FrozenSlot represents an administrative hold on a single time slot.
// A freeze is recorded under the sport the administrator was managing, but it
// blocks the slot for every sport on that ground and date.
type FrozenSlot struct {
	ID         int64
	Ground     string
	FreezeDate time.Time
	Sport      string
	Slot       string
	Active     bool
	FrozenBy   int64 // ID администратора, установившего блокировку

	DeactivatedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsBlocking returns true if the freeze currently blocks its slot
func (f *FrozenSlot) IsBlocking() bool {
	return f.Active
}
