package check_conflict

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error

	gotExclude *int64
}

func (f *fakeBookingRepo) FindSlotConflict(ctx context.Context, ground string, date time.Time, slots []string, excludeBookingID *int64) (*domain.SlotConflict, error) {
	f.gotExclude = excludeBookingID
	if f.err != nil {
		return nil, f.err
	}
	for _, slot := range slots {
		for _, b := range f.bookings {
			if excludeBookingID != nil && b.ID == *excludeBookingID {
				continue
			}
			if domain.SlotSetContains(b.Slots, slot) {
				return &domain.SlotConflict{Slot: slot, Sport: b.Sport, BookingID: b.ID}, nil
			}
		}
	}
	return nil, nil
}

type fakeFrozenRepo struct {
	freeze *domain.SlotFreeze
	err    error
}

func (f *fakeFrozenRepo) FindActive(ctx context.Context, ground string, date time.Time, slots []string) (*domain.SlotFreeze, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.freeze, nil
}

// readOnlyTxManager сквозной read-only менеджер со счетчиком вызовов
type readOnlyTxManager struct {
	calls int
}

func (m *readOnlyTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func validRequest() *Request {
	return &Request{
		Ground: domain.GroundCompetitive,
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Slots:  []string{"06:00-07:00"},
	}
}

func TestExecute_Free(t *testing.T) {
	txManager := &readOnlyTxManager{}
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFrozenRepo{}, txManager, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.IsFree())
	assert.Nil(t, resp.Conflict)
	assert.Nil(t, resp.Freeze)

	// Обе проверки идут одной read-only транзакцией
	assert.Equal(t, 1, txManager.calls)
}

func TestExecute_ConflictAcrossSports(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 7, Sport: "football", Slots: "06:00-07:00, 07:00-08:00"},
		},
	}
	uc := NewUseCase(bookingRepo, &fakeFrozenRepo{}, &readOnlyTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.IsFree())
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, "06:00-07:00", resp.Conflict.Slot)
	assert.Equal(t, "football", resp.Conflict.Sport)
	assert.Equal(t, int64(7), resp.Conflict.BookingID)
}

func TestExecute_ExcludeBookingID(t *testing.T) {
	// Сценарий переноса: собственное бронирование не считается конфликтом
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 7, Sport: "cricket", Slots: "06:00-07:00"},
		},
	}
	uc := NewUseCase(bookingRepo, &fakeFrozenRepo{}, &readOnlyTxManager{}, nopLogger{})

	req := validRequest()
	req.ExcludeBookingID = ptr.Ptr(int64(7))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.IsFree())
	require.NotNil(t, bookingRepo.gotExclude)
	assert.Equal(t, int64(7), *bookingRepo.gotExclude)
}

func TestExecute_Frozen(t *testing.T) {
	frozenRepo := &fakeFrozenRepo{
		freeze: &domain.SlotFreeze{Slot: "06:00-07:00", Sport: "badminton"},
	}
	uc := NewUseCase(&fakeBookingRepo{}, frozenRepo, &readOnlyTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.IsFree())
	require.NotNil(t, resp.Freeze)
	assert.Equal(t, "06:00-07:00", resp.Freeze.Slot)
	assert.Equal(t, "badminton", resp.Freeze.Sport)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFrozenRepo{}, &readOnlyTxManager{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"unknown ground", func(req *Request) { req.Ground = "arena" }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"no slots", func(req *Request) { req.Slots = nil }},
		{"malformed slot", func(req *Request) { req.Slots = []string{"06:00"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
