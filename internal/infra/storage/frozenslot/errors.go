package frozenslot

import "errors"

var (
	// ErrFrozenSlotNotFound возвращается, когда блокировка не найдена
	ErrFrozenSlotNotFound = errors.New("frozenslot.repository: frozen slot not found")

	// ErrAlreadyFrozen возвращается при попытке повторно заблокировать слот,
	// на котором уже есть активная блокировка
	ErrAlreadyFrozen = errors.New("frozenslot.repository: slot is already frozen")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("frozenslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("frozenslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("frozenslot.repository: failed to scan row")
)
