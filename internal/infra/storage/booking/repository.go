package booking

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

var bookingColumns = []string{
	"id",
	"ground",
	"booking_date",
	"sport",
	"slots",
	"status",
	"payload",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями.
// Помимо таблицы bookings ведёт таблицу booking_slots: по одной строке на
// каждый слот подтверждённого бронирования. Уникальный индекс по
// (ground, booking_date, slot) в booking_slots - последняя линия защиты от
// гонки на каждом отдельном слоте, а не на составной строке целиком.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со строками-держателями слотов.
// Если в контексте передана активная транзакция, использует её.
//
// Нарушение уникального индекса booking_slots транслируется в ErrSlotTaken:
// на неизолированном пути исполнения это означает, что конкурентный запрос
// успел занять один из слотов между проверкой и вставкой.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"ground",
			"booking_date",
			"sport",
			"slots",
			"status",
			"payload",
		).
		Values(
			booking.Ground,
			booking.BookingDate,
			booking.Sport,
			booking.Slots,
			booking.Status,
			booking.Payload,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	// Строки-держатели вставляются одним запросом: либо встают все слоты
	// бронирования, либо ни одного
	if err := r.claimSlots(ctx, executor, booking); err != nil {
		// Внутри транзакции откат делает transaction manager. На
		// неизолированном пути вставка в bookings уже зафиксирована -
		// без компенсации осиротевшая запись навсегда останется видимой
		// детектору конфликтов и расписанию.
		if !dbmetrics.IsInTransaction(ctx) {
			if delErr := r.deleteBooking(ctx, executor, booking.ID); delErr != nil {
				return nil, fmt.Errorf("%w: Create - compensate orphan booking id=%d: %v",
					ErrExecQuery, booking.ID, delErr)
			}
		}
		return nil, err
	}

	return booking, nil
}

// deleteBooking удаляет запись бронирования. Компенсация для Create на
// неизолированном пути; строки booking_slots уходят каскадом.
func (r *Repository) deleteBooking(ctx context.Context, executor DBExecutor, id int64) error {
	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: deleteBooking - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteBooking - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// claimSlots вставляет по строке на каждый слот подтверждённого бронирования
func (r *Repository) claimSlots(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	if !booking.BlocksSlots() {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_slots").
		Columns("booking_id", "ground", "booking_date", "slot")

	for _, slot := range domain.SplitSlotSet(booking.Slots) {
		insertBuilder = insertBuilder.Values(booking.ID, booking.Ground, booking.BookingDate, slot)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: claimSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: claimSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReleaseSlots удаляет строки-держатели слотов бронирования.
// Вызывается при переводе бронирования из confirmed в cancelled/completed:
// такие бронирования слоты не удерживают.
func (r *Repository) ReleaseSlots(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseSlots - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// FindSlotConflict ищет первый конфликт кандидатов со слотами подтверждённых
// бронирований на том же поле и дате.
//
// Кандидаты проверяются строго в порядке, заданном вызывающим: при повторении
// одинакового запроса сообщение об ошибке детерминировано. Фильтра по виду
// спорта нет намеренно - слоты принадлежат полю, а не виду спорта.
// excludeBookingID исключает из поиска собственное бронирование (сценарии
// переноса/обновления).
func (r *Repository) FindSlotConflict(
	ctx context.Context,
	ground string,
	date time.Time,
	slots []string,
	excludeBookingID *int64,
) (*domain.SlotConflict, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, slot := range slots {
		selectBuilder := psqlbuilder.Select("id", "sport").
			From("bookings").
			Where(squirrel.Eq{
				"ground":       ground,
				"booking_date": date,
				"status":       domain.BlockingStatuses,
			}).
			// Совпадение по границам поля внутри составной строки слотов;
			// шаблон общий с Go-стороной кодека (domain.SlotPattern)
			Where("slots ~ ?", domain.SlotPattern(slot)).
			OrderBy("id ASC").
			Limit(1)

		if excludeBookingID != nil {
			selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeBookingID})
		}

		query, args, err := selectBuilder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: FindSlotConflict - build select query: %v", ErrBuildQuery, err)
		}

		var conflict domain.SlotConflict
		err = executor.QueryRowContext(ctx, query, args...).Scan(&conflict.BookingID, &conflict.Sport)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: FindSlotConflict - scan booking: %v", ErrScanRow, err)
		}

		conflict.Slot = slot
		return &conflict, nil
	}

	return nil, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByGroundWithFilter получает бронирования поля с гибкой фильтрацией:
// по периоду, виду спорта, статусу и включению неактивных бронирований
func (r *Repository) GetByGroundWithFilter(ctx context.Context, filter domain.GroundBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"ground": filter.Ground})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по виду спорта
	if filter.Sport != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sport": *filter.Sport})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	// Для конкретной даты сортируем по слотам, иначе - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("slots ASC, id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, id DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroundWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroundWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetReportable получает бронирования для расписания дня: подтверждённые и
// завершённые. Отменённые в расписание не попадают.
func (r *Repository) GetReportable(ctx context.Context, ground string, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"ground":       ground,
			"booking_date": date,
			"status":       domain.ReportableStatuses,
		}).
		OrderBy("slots ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetReportable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetReportable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку результата в бронирование
func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Ground,
		&booking.BookingDate,
		&booking.Sport,
		&booking.Slots,
		&booking.Status,
		&booking.Payload,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Ground,
			&booking.BookingDate,
			&booking.Sport,
			&booking.Slots,
			&booking.Status,
			&booking.Payload,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}
