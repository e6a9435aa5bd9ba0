package check_conflict

import (
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// Request модель запроса проверки конфликтов
type Request struct {
	Ground           string    // Поле
	Date             time.Time // Дата
	Slots            []string  // Кандидаты в порядке, заданном вызывающим
	ExcludeBookingID *int64    // Бронирование, исключаемое из поиска (сценарии переноса)
}

// Response результат проверки: найденный конфликт и/или блокировка.
// nil-поля означают, что соответствующей помехи нет.
type Response struct {
	Conflict *domain.SlotConflict
	Freeze   *domain.SlotFreeze
}

// IsFree возвращает true, если все кандидаты свободны
func (r *Response) IsFree() bool {
	return r.Conflict == nil && r.Freeze == nil
}
