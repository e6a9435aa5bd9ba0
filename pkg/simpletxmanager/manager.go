// Package simpletxmanager деградированный путь координатора: тот же интерфейс,
// что у txmanager, но функции выполняются без транзакции. Между проверками и
// вставкой остаётся окно гонки - последней линией защиты служит уникальный
// индекс по (ground, booking_date, slot) на уровне хранилища.
package simpletxmanager

import "context"

// TransactionManager выполняет функции напрямую, без транзакции
type TransactionManager struct{}

// NewTransactionManager создает новый simple transaction manager
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

// Do выполняет fn без транзакции
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoSerializable выполняет fn без транзакции.
// Изоляция не обеспечивается: конкурентная вставка ловится только
// уникальным ограничением хранилища.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoReadOnly выполняет fn без транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
