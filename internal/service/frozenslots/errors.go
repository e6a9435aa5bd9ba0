package frozenslots

import "errors"

var (
	// ErrFrozenSlotNotFound возвращается, когда блокировка не найдена
	ErrFrozenSlotNotFound = errors.New("frozen slot not found")

	// ErrAlreadyFrozen возвращается, когда на слоте уже есть активная блокировка
	ErrAlreadyFrozen = errors.New("slot is already frozen")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
