package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	booking *domain.Booking
	list    []*domain.Booking
	getErr  error

	cancelledID      *int64
	cancelReason     string
	updatedStatus    *domain.BookingStatus
	releasedBookings []int64
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByGroundWithFilter(ctx context.Context, filter domain.GroundBookingsFilter) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	f.cancelledID = &id
	f.cancelReason = reason
	return nil
}

func (f *fakeBookingRepo) ReleaseSlots(ctx context.Context, bookingID int64) error {
	f.releasedBookings = append(f.releasedBookings, bookingID)
	return nil
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          42,
		Ground:      domain.GroundCompetitive,
		BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Sport:       "cricket",
		Slots:       "06:00-07:00, 07:00-08:00",
		Status:      domain.StatusConfirmed,
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, []string{"06:00-07:00", "07:00-08:00"}, resp.Slots)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReleasesSlots(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{CancellationReason: "rain"})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelledID)
	assert.Equal(t, int64(42), *repo.cancelledID)
	assert.Equal(t, "rain", repo.cancelReason)

	// Отмена освобождает строки-держатели слотов
	assert.Equal(t, []int64{42}, repo.releasedBookings)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{booking: b}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, repo.releasedBookings)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		CancellationReason: strings.Repeat("x", domain.MaxReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_Complete(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)

	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.updatedStatus)

	// Завершённое бронирование больше не удерживает слоты
	assert.Equal(t, []int64{42}, repo.releasedBookings)
}

func TestUpdateStatus_CompletedCannotBeCompletedAgain(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCompleted
	repo := &fakeBookingRepo{booking: b}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrCannotComplete)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "paused"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_ConfirmedTransitionIsRejected(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	// "confirmed" валидный статус, но переход в него запрещён
	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetGroundBookings(t *testing.T) {
	repo := &fakeBookingRepo{list: []*domain.Booking{confirmedBooking()}}
	svc := NewService(repo, passthroughTxManager{}, nopLogger{})

	resp, err := svc.GetGroundBookings(context.Background(), &models.GetGroundBookingsRequest{
		Ground: domain.GroundCompetitive,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestGetGroundBookings_UnknownGround(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, passthroughTxManager{}, nopLogger{})

	_, err := svc.GetGroundBookings(context.Background(), &models.GetGroundBookingsRequest{Ground: "arena"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
