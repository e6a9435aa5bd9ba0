package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/dbmetrics"
)

// queryLog потокобезопасный журнал SQL запросов фиктивного драйвера
type queryLog struct {
	mu      sync.Mutex
	queries []string
}

func (l *queryLog) add(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, q)
}

func (l *queryLog) has(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, q := range l.queries {
		if strings.HasPrefix(q, prefix) {
			return true
		}
	}
	return false
}

// fakeConn фиктивное соединение: журналирует запросы, вставка строк-держателей
// может имитировать нарушение уникального индекса
type fakeConn struct {
	log      *queryLog
	claimErr error
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return nil, errors.New("begin is not supported")
}

func (c *fakeConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.log.add(query)

	if strings.HasPrefix(query, "INSERT INTO booking_slots") && c.claimErr != nil {
		return nil, c.claimErr
	}
	return driver.RowsAffected(1), nil
}

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.log.add(query)

	if strings.HasPrefix(query, "INSERT INTO bookings ") {
		return &insertedBookingRows{}, nil
	}
	return nil, errors.New("unexpected query: " + query)
}

// insertedBookingRows результат RETURNING id, created_at, updated_at
type insertedBookingRows struct {
	done bool
}

func (r *insertedBookingRows) Columns() []string { return []string{"id", "created_at", "updated_at"} }

func (r *insertedBookingRows) Close() error { return nil }

func (r *insertedBookingRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	dest[0] = int64(1)
	dest[1] = time.Now()
	dest[2] = time.Now()
	r.done = true
	return nil
}

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("use the connector")
}

type fakeConnector struct {
	conn *fakeConn
}

func (c *fakeConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }

func (c *fakeConnector) Driver() driver.Driver { return fakeDriver{} }

// fakeTx исполнитель "внутри транзакции": делегирует запросы тому же
// фиктивному соединению, фиксацию и откат делает transaction manager
type fakeTx struct {
	db *sql.DB
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.db.ExecContext(ctx, query, args...)
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.db.QueryContext(ctx, query, args...)
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.db.QueryRowContext(ctx, query, args...)
}

func (t *fakeTx) Commit() error   { return nil }
func (t *fakeTx) Rollback() error { return nil }

func confirmedDraft() *domain.Booking {
	return &domain.Booking{
		Ground:      domain.GroundCompetitive,
		BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Sport:       "cricket",
		Slots:       "06:00-07:00,07:00-08:00",
		Status:      domain.StatusConfirmed,
		Payload:     json.RawMessage("{}"),
	}
}

func TestCreate_Success(t *testing.T) {
	conn := &fakeConn{log: &queryLog{}}
	db := sql.OpenDB(&fakeConnector{conn: conn})
	defer db.Close()

	repo := NewRepository(db)

	created, err := repo.Create(context.Background(), confirmedDraft())
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.True(t, conn.log.has("INSERT INTO bookings "))
	assert.True(t, conn.log.has("INSERT INTO booking_slots"))
	assert.False(t, conn.log.has("DELETE FROM bookings"))
}

// Неизолированный путь: вставка в bookings уже зафиксирована, когда
// строки-держатели натыкаются на уникальный индекс. Проигравший запрос
// обязан подчистить запись бронирования - иначе осиротевшая confirmed
// строка навсегда останется видимой детектору конфликтов и расписанию.
func TestCreate_CompensatesOrphanOnClaimConflict(t *testing.T) {
	conn := &fakeConn{
		log:      &queryLog{},
		claimErr: &pq.Error{Code: "23505"},
	}
	db := sql.OpenDB(&fakeConnector{conn: conn})
	defer db.Close()

	repo := NewRepository(db)

	_, err := repo.Create(context.Background(), confirmedDraft())
	require.ErrorIs(t, err, ErrSlotTaken)

	assert.True(t, conn.log.has("INSERT INTO bookings "))
	assert.True(t, conn.log.has("INSERT INTO booking_slots"))
	assert.True(t, conn.log.has("DELETE FROM bookings"))
}

// Внутри транзакции компенсация не нужна: откат обеих вставок
// делает transaction manager
func TestCreate_NoCompensationInsideTransaction(t *testing.T) {
	conn := &fakeConn{
		log:      &queryLog{},
		claimErr: &pq.Error{Code: "23505"},
	}
	db := sql.OpenDB(&fakeConnector{conn: conn})
	defer db.Close()

	repo := NewRepository(db)
	ctx := dbmetrics.WithTx(context.Background(), &fakeTx{db: db})

	_, err := repo.Create(ctx, confirmedDraft())
	require.ErrorIs(t, err, ErrSlotTaken)

	assert.False(t, conn.log.has("DELETE FROM bookings"))
}
