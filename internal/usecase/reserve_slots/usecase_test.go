package reserve_slots

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroundBookingService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

// passthroughTxManager деградированный режим: функция выполняется напрямую
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeStore потокобезопасное in-memory хранилище: детектор конфликтов ищет
// слот в составных строках сохранённых бронирований, вставка имитирует
// уникальный индекс по (ground, booking_date, slot)
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
	claims   map[string]struct{}

	freeze    *domain.SlotFreeze
	createErr error
	findErr   error
	frozenErr error

	createCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{claims: map[string]struct{}{}}
}

func (s *fakeStore) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}

	for _, slot := range domain.SplitSlotSet(booking.Slots) {
		key := booking.Ground + "|" + booking.BookingDate.Format(domain.DateFormat) + "|" + slot
		if _, taken := s.claims[key]; taken {
			return nil, bookingRepo.ErrSlotTaken
		}
	}
	for _, slot := range domain.SplitSlotSet(booking.Slots) {
		key := booking.Ground + "|" + booking.BookingDate.Format(domain.DateFormat) + "|" + slot
		s.claims[key] = struct{}{}
	}

	s.nextID++
	created := *booking
	created.ID = s.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.bookings = append(s.bookings, &created)
	return &created, nil
}

func (s *fakeStore) FindSlotConflict(ctx context.Context, ground string, date time.Time, slots []string, excludeBookingID *int64) (*domain.SlotConflict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}

	for _, slot := range slots {
		for _, b := range s.bookings {
			if b.Ground != ground || !b.BookingDate.Equal(date) || !b.BlocksSlots() {
				continue
			}
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

func (s *fakeStore) FindActive(ctx context.Context, ground string, date time.Time, slots []string) (*domain.SlotFreeze, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozenErr != nil {
		return nil, s.frozenErr
	}
	if s.freeze != nil {
		for _, slot := range slots {
			if slot == s.freeze.Slot {
				return s.freeze, nil
			}
		}
	}
	return nil, nil
}

func newTestUseCase(store *fakeStore, tx TransactionManager) *UseCase {
	uc := NewUseCase(store, store, tx, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		Ground: domain.GroundCompetitive,
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Sport:  "cricket",
		Slots:  []string{"06:00-07:00", "07:00-08:00"},
	}
}

func TestExecute_Success(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, passthroughTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.GroundCompetitive, resp.Ground)
	assert.Equal(t, "cricket", resp.Sport)
	assert.Equal(t, "06:00-07:00,07:00-08:00", resp.Slots)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.JSONEq(t, "{}", string(resp.Payload))
}

func TestExecute_PayloadPassedThrough(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, passthroughTxManager{})

	req := validRequest()
	req.Payload = json.RawMessage(`{"customer":"club-17","price":1200}`)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"customer":"club-17","price":1200}`, string(resp.Payload))
}

func TestExecute_CrossSportConflict(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, passthroughTxManager{})

	// Футбол занимает слот на том же поле
	first := validRequest()
	first.Sport = "football"
	first.Slots = []string{"07:00-08:00"}
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Крикет претендует на пересекающийся набор - поле общее,
	// вид спорта значения не имеет
	second := validRequest()
	second.Sport = "cricket"
	_, err = uc.Execute(context.Background(), second)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "07:00-08:00", conflictErr.Slot)
	assert.Equal(t, "football", conflictErr.Sport)
	assert.Equal(t, int64(1), conflictErr.BookingID)
}

func TestExecute_BoundarySafeConflictCheck(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, passthroughTxManager{})

	// "16:00-07:00" содержит "06:00-07:00" как подстроку,
	// но это другой слот - конфликта нет
	first := validRequest()
	first.Slots = []string{"16:00-07:00"}
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validRequest()
	second.Sport = "badminton"
	second.Slots = []string{"06:00-07:00"}
	_, err = uc.Execute(context.Background(), second)
	assert.NoError(t, err)
}

func TestExecute_FrozenSlot(t *testing.T) {
	store := newFakeStore()
	store.freeze = &domain.SlotFreeze{Slot: "06:00-07:00", Sport: "football"}
	uc := newTestUseCase(store, passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrSlotFrozen)

	var frozenErr *FrozenError
	require.ErrorAs(t, err, &frozenErr)
	assert.Equal(t, "06:00-07:00", frozenErr.Slot)
	assert.Equal(t, "football", frozenErr.Sport)

	// Отказ проверки означает отсутствие записи
	assert.Empty(t, store.bookings)
}

func TestExecute_NoCreateOnConflict(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, passthroughTxManager{})

	first := validRequest()
	first.Slots = []string{"07:00-08:00"}
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)
	store.createCalls = 0

	// Многослотовый запрос: конфликтует один слот из двух,
	// не должно быть ни вставки, ни частичного резервирования
	second := validRequest()
	_, err = uc.Execute(context.Background(), second)
	require.ErrorIs(t, err, ErrSlotConflict)

	assert.Equal(t, 0, store.createCalls)
	assert.Len(t, store.bookings, 1)
}

func TestExecute_UniqueViolationMapsToJustTaken(t *testing.T) {
	store := newFakeStore()
	store.createErr = bookingRepo.ErrSlotTaken
	uc := newTestUseCase(store, passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotJustTaken)
}

func TestExecute_SerializationFailureMapsToJustTaken(t *testing.T) {
	store := newFakeStore()
	failingTx := txManagerFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
		return txmanager.ErrSerializationFailure
	})
	uc := newTestUseCase(store, failingTx)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotJustTaken)
}

type txManagerFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f txManagerFunc) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

func TestExecute_Validation(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, passthroughTxManager{})

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "unknown ground",
			mutate:  func(req *Request) { req.Ground = "stadium" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty sport",
			mutate:  func(req *Request) { req.Sport = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no slots",
			mutate:  func(req *Request) { req.Slots = nil },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed slot",
			mutate:  func(req *Request) { req.Slots = []string{"6:00-7:00"} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate slot",
			mutate:  func(req *Request) { req.Slots = []string{"06:00-07:00", "06:00-07:00"} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "past date",
			mutate:  func(req *Request) { req.Date = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) },
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.bookings)
		})
	}
}

// Пятьдесят конкурентных запросов на один и тот же слот: резервирование
// должно состояться ровно один раз, остальные получают конфликт либо
// ErrSlotJustTaken. Режим деградированный - защищает только имитация
// уникального индекса в хранилище.
func TestExecute_ContentionExactlyOnce(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, passthroughTxManager{})

	const workers = 50
	sports := []string{"cricket", "football", "badminton"}

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.Sport = sports[i%len(sports)]
			req.Slots = []string{"09:00-10:00"}
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	success := 0
	for _, err := range errs {
		if err == nil {
			success++
			continue
		}
		assert.True(t,
			errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrSlotJustTaken),
			"unexpected error: %v", err)
	}

	assert.Equal(t, 1, success, "exactly one request must win the slot")
	assert.Len(t, store.bookings, 1)
}
