package frozenslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroundBookingService/pkg/psqlbuilder"
)

// SQLSTATE 23505: unique_violation
const pqUniqueViolation = "23505"

var frozenSlotColumns = []string{
	"id",
	"ground",
	"freeze_date",
	"sport",
	"slot",
	"active",
	"frozen_by",
	"deactivated_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с административными блокировками слотов.
// Ядро бронирования эти записи только читает: создаёт и снимает их
// административный контур.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку слота.
// Частичный уникальный индекс по (ground, freeze_date, slot) WHERE active
// не даёт завести вторую активную блокировку на тот же слот.
func (r *Repository) Create(ctx context.Context, frozen *domain.FrozenSlot) (*domain.FrozenSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("frozen_slots").
		Columns(
			"ground",
			"freeze_date",
			"sport",
			"slot",
			"active",
			"frozen_by",
		).
		Values(
			frozen.Ground,
			frozen.FreezeDate,
			frozen.Sport,
			frozen.Slot,
			true,
			frozen.FrozenBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&frozen.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyFrozen
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	frozen.Active = true
	frozen.CreatedAt = createdAt.Time
	frozen.UpdatedAt = updatedAt.Time

	return frozen, nil
}

// Deactivate снимает блокировку слота
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("frozen_slots").
		Set("active", false).
		Set("deactivated_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFrozenSlotNotFound
	}

	return nil
}

// FindActive ищет первую активную блокировку среди кандидатов.
// Кандидаты проверяются в порядке, заданном вызывающим, - сообщение об
// ошибке при повторных одинаковых запросах детерминировано. Блокировка
// действует на все виды спорта, поэтому фильтра по спорту нет.
// Чтение без побочных эффектов: метод безопасно вызывать внутри транзакции.
func (r *Repository) FindActive(ctx context.Context, ground string, date time.Time, slots []string) (*domain.SlotFreeze, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, slot := range slots {
		query, args, err := psqlbuilder.Select("sport").
			From("frozen_slots").
			Where(squirrel.Eq{
				"ground":      ground,
				"freeze_date": date,
				"slot":        slot,
				"active":      true,
			}).
			OrderBy("id ASC").
			Limit(1).
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: FindActive - build select query: %v", ErrBuildQuery, err)
		}

		var freeze domain.SlotFreeze
		err = executor.QueryRowContext(ctx, query, args...).Scan(&freeze.Sport)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: FindActive - scan frozen slot: %v", ErrScanRow, err)
		}

		freeze.Slot = slot
		return &freeze, nil
	}

	return nil, nil
}

// ListActive получает все активные блокировки поля на дату
func (r *Repository) ListActive(ctx context.Context, ground string, date time.Time) ([]*domain.FrozenSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(frozenSlotColumns...).
		From("frozen_slots").
		Where(squirrel.Eq{
			"ground":      ground,
			"freeze_date": date,
			"active":      true,
		}).
		OrderBy("slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	frozenSlots := make([]*domain.FrozenSlot, 0)
	for rows.Next() {
		var frozen domain.FrozenSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&frozen.ID,
			&frozen.Ground,
			&frozen.FreezeDate,
			&frozen.Sport,
			&frozen.Slot,
			&frozen.Active,
			&frozen.FrozenBy,
			&frozen.DeactivatedAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		frozen.CreatedAt = createdAt.Time
		frozen.UpdatedAt = updatedAt.Time

		frozenSlots = append(frozenSlots, &frozen)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return frozenSlots, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}
