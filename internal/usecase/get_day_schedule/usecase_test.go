package get_day_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetReportable(ctx context.Context, ground string, date time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakeFrozenRepo struct {
	frozen []*domain.FrozenSlot
	err    error
}

func (f *fakeFrozenRepo) ListActive(ctx context.Context, ground string, date time.Time) ([]*domain.FrozenSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.frozen, nil
}

// readOnlyTxManager сквозной read-only менеджер со счетчиком вызовов
type readOnlyTxManager struct {
	calls int
}

func (m *readOnlyTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func TestListBookedSlots_FlattensCompositeSets(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Sport: "cricket", Slots: "06:00-07:00, 07:00-08:00"},
			{ID: 2, Sport: "football", Slots: "09:00-10:00"},
		},
	}
	txManager := &readOnlyTxManager{}
	uc := NewUseCase(bookingRepo, &fakeFrozenRepo{}, txManager, nopLogger{})

	booked, err := uc.ListBookedSlots(context.Background(), domain.GroundCompetitive, testDate)
	require.NoError(t, err)

	assert.Equal(t, []domain.BookedSlot{
		{Slot: "06:00-07:00", Sport: "cricket", BookingID: 1},
		{Slot: "07:00-08:00", Sport: "cricket", BookingID: 1},
		{Slot: "09:00-10:00", Sport: "football", BookingID: 2},
	}, booked)
	assert.Equal(t, 1, txManager.calls)
}

func TestListBookedSlots_MalformedSetTolerated(t *testing.T) {
	// Повреждённая составная строка даёт ноль слотов для своей записи,
	// остальные бронирования разбираются как обычно
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Sport: "cricket", Slots: ", ,"},
			{ID: 2, Sport: "football", Slots: "09:00-10:00"},
		},
	}
	uc := NewUseCase(bookingRepo, &fakeFrozenRepo{}, &readOnlyTxManager{}, nopLogger{})

	booked, err := uc.ListBookedSlots(context.Background(), domain.GroundPractice, testDate)
	require.NoError(t, err)

	assert.Equal(t, []domain.BookedSlot{
		{Slot: "09:00-10:00", Sport: "football", BookingID: 2},
	}, booked)
}

func TestListBookedSlots_EmptyDay(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFrozenRepo{}, &readOnlyTxManager{}, nopLogger{})

	booked, err := uc.ListBookedSlots(context.Background(), domain.GroundCompetitive, testDate)
	require.NoError(t, err)
	assert.Empty(t, booked)
	assert.NotNil(t, booked)
}

func TestListBookedSlots_UnknownGround(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFrozenRepo{}, &readOnlyTxManager{}, nopLogger{})

	_, err := uc.ListBookedSlots(context.Background(), "stadium", testDate)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListFrozenSlots(t *testing.T) {
	frozenRepo := &fakeFrozenRepo{
		frozen: []*domain.FrozenSlot{
			{ID: 1, Slot: "06:00-07:00", Sport: "cricket", Active: true},
			{ID: 2, Slot: "10:00-11:00", Sport: "football", Active: true},
		},
	}
	txManager := &readOnlyTxManager{}
	uc := NewUseCase(&fakeBookingRepo{}, frozenRepo, txManager, nopLogger{})

	frozen, err := uc.ListFrozenSlots(context.Background(), domain.GroundCompetitive, testDate)
	require.NoError(t, err)

	assert.Equal(t, []domain.FrozenSlotEntry{
		{Slot: "06:00-07:00", Sport: "cricket"},
		{Slot: "10:00-11:00", Sport: "football"},
	}, frozen)
	assert.Equal(t, 1, txManager.calls)
}

func TestListFrozenSlots_UnknownGround(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeFrozenRepo{}, &readOnlyTxManager{}, nopLogger{})

	_, err := uc.ListFrozenSlots(context.Background(), "", testDate)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
