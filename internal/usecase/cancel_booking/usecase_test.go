package cancel_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCore/internal/allocator"
	"github.com/m04kA/SMC-BookingCore/internal/cancellation"
	"github.com/m04kA/SMC-BookingCore/internal/domain"
	bookingStorage "github.com/m04kA/SMC-BookingCore/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingCore/internal/lifecycle"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubTimeProvider struct {
	now time.Time
}

func (p stubTimeProvider) Now() time.Time { return p.now }

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc    *UseCase
	alloc *allocator.Allocator
	repo  *bookingStorage.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	alloc := allocator.New(nopLogger{})
	repo := bookingStorage.NewRepository()
	fees := cancellation.NewChain(
		cancellation.NewNoFeeBeforeWindow(24),
		cancellation.NewPercentageAfterWindow(24, 50),
	)
	machine := lifecycle.NewMachine(fees, lifecycle.PaymentDeferred, nil, nopLogger{})

	uc := NewUseCase(repo, alloc, machine, nil, nopLogger{})
	uc.timeProvider = stubTimeProvider{now: t0}

	return &fixture{uc: uc, alloc: alloc, repo: repo}
}

// seedConfirmed регистрирует слот, резервирует место и сохраняет
// подтвержденное бронирование поверх этого резерва.
func (f *fixture) seedConfirmed(t *testing.T, customerID int64, slotStart time.Time) *domain.Booking {
	t.Helper()

	tr, err := domain.NewTimeRange(slotStart, slotStart.Add(time.Hour))
	require.NoError(t, err)
	slot := &domain.ScheduleSlot{
		ID:       uuid.New(),
		Capacity: 1,
		Time:     tr,
	}
	require.NoError(t, f.alloc.RegisterSlot(slot))

	token, err := f.alloc.Reserve(slot.ID, 1)
	require.NoError(t, err)

	b := &domain.Booking{
		ID:            uuid.New(),
		CustomerID:    customerID,
		SlotID:        slot.ID,
		State:         domain.StateConfirmed,
		ReservationID: token.ID,
		SlotStartsAt:  slot.Time.Start,
		SlotEndsAt:    slot.Time.End,
		Price:         domain.NewMoney(100000, "RUB"),
		CreatedAt:     t0.Add(-time.Hour),
		UpdatedAt:     t0.Add(-time.Hour),
	}
	_, err = f.repo.Create(context.Background(), b)
	require.NoError(t, err)
	return b
}

func TestExecute_OutsideWindow_NoFee(t *testing.T) {
	f := newFixture(t)
	b := f.seedConfirmed(t, 7, t0.Add(48*time.Hour))

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  b.ID,
		CustomerID: 7,
		Reason:     "plans changed",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StateCanceled), resp.State)
	assert.Equal(t, int64(0), resp.FeeMinorUnits)
	assert.Equal(t, t0, resp.CancelledAt)

	// Место возвращено в слот
	slot, err := f.alloc.Slot(b.SlotID)
	require.NoError(t, err)
	assert.Equal(t, 1, slot.AvailableSpots())

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCanceled, stored.State)
	require.NotNil(t, stored.CancellationReason)
	assert.Equal(t, "plans changed", *stored.CancellationReason)
}

func TestExecute_InsideWindow_PenaltyFee(t *testing.T) {
	f := newFixture(t)
	b := f.seedConfirmed(t, 7, t0.Add(12*time.Hour))

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  b.ID,
		CustomerID: 7,
	})
	require.NoError(t, err)

	// 50% от 100000
	assert.Equal(t, int64(50000), resp.FeeMinorUnits)
	assert.Equal(t, "RUB", resp.Currency)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CancellationFee)
	assert.Equal(t, int64(50000), stored.CancellationFee.Amount)
}

func TestExecute_DoubleCancel(t *testing.T) {
	f := newFixture(t)
	b := f.seedConfirmed(t, 7, t0.Add(48*time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, CustomerID: 7})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: b.ID, CustomerID: 7})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture(t)
	b := f.seedConfirmed(t, 7, t0.Add(48*time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, CustomerID: 8})
	require.ErrorIs(t, err, ErrAccessDenied)

	// Бронирование не тронуто
	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateConfirmed, stored.State)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: uuid.New(), CustomerID: 7})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ValidationError(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: uuid.Nil, CustomerID: 7})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NowFromRequest(t *testing.T) {
	f := newFixture(t)
	// По часам фикстуры бронирование внутри окна штрафа
	b := f.seedConfirmed(t, 7, t0.Add(12*time.Hour))

	// Но вызывающая сторона передает свой момент отмены, за 36 часов
	// до начала слота — вне окна, штрафа нет
	callerNow := t0.Add(-24 * time.Hour)
	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  b.ID,
		CustomerID: 7,
		Now:        callerNow,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.FeeMinorUnits)
	assert.Equal(t, callerNow, resp.CancelledAt)
}

func TestExecute_ConcurrentCancel_SingleWinner(t *testing.T) {
	f := newFixture(t)
	b := f.seedConfirmed(t, 7, t0.Add(48*time.Hour))

	const attempts = 4
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), &Request{
				BookingID:  b.ID,
				CustomerID: 7,
			})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrCannotCancel)
	}
	assert.Equal(t, 1, succeeded)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCanceled, stored.State)

	// Место возвращено в слот ровно один раз
	slot, err := f.alloc.Slot(b.SlotID)
	require.NoError(t, err)
	assert.Equal(t, 1, slot.AvailableSpots())
}

func TestExecute_FreedSpotCanBeReservedAgain(t *testing.T) {
	f := newFixture(t)
	b := f.seedConfirmed(t, 7, t0.Add(48*time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, CustomerID: 7})
	require.NoError(t, err)

	// После отмены слот снова можно резервировать
	_, err = f.alloc.Reserve(b.SlotID, 1)
	require.NoError(t, err)
}
