package domain

// Grounds: one physical asset per usage class, rented by exactly one party at
// a time regardless of the sport it is rented under
const (
	GroundCompetitive = "competitive"
	GroundPractice    = "practice"
)

// Grounds список известных полей
var Grounds = []string{
	GroundCompetitive,
	GroundPractice,
}

// IsValidGround проверяет, что идентификатор поля известен системе
func IsValidGround(ground string) bool {
	for _, g := range Grounds {
		if g == ground {
			return true
		}
	}
	return false
}

// Business validation constants
const (
	MaxSlotsPerBooking = 12
	MaxSportLength     = 64
	MaxReasonLength    = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// SlotDelimiter разделитель идентификаторов слотов в составной строке
const SlotDelimiter = ","

// BlockingStatuses статусы бронирований, удерживающие слоты.
// Используется детектором конфликтов: отменённые и завершённые
// бронирования слоты не удерживают.
var BlockingStatuses = []BookingStatus{
	StatusConfirmed,
}

// ReportableStatuses статусы бронирований, попадающие в расписание дня
var ReportableStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}
