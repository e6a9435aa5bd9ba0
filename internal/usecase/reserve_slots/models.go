package reserve_slots

import (
	"encoding/json"
	"time"
)

// Request модель запроса на резервирование слотов
type Request struct {
	Ground  string          // Поле ("competitive" | "practice")
	Date    time.Time       // Дата бронирования (без времени)
	Sport   string          // Вид спорта, под которым делается бронирование
	Slots   []string        // Упорядоченный список слотов, например ["06:00-07:00", "07:00-08:00"]
	Payload json.RawMessage // Непрозрачные данные внешних контуров (клиент, цена и т.п.)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64           // ID созданного бронирования
	Ground    string          // Поле
	Date      time.Time       // Дата бронирования
	Sport     string          // Вид спорта
	Slots     string          // Составная строка слотов
	Status    string          // Статус бронирования
	Payload   json.RawMessage // Непрозрачные данные
	CreatedAt time.Time       // Время создания
	UpdatedAt time.Time       // Время обновления
}
