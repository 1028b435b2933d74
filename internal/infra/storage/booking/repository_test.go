package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
	"github.com/m04kA/SMC-BookingCore/pkg/ptr"
)

func newBooking(customerID int64, slotID uuid.UUID, createdAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:            uuid.New(),
		CustomerID:    customerID,
		SlotID:        slotID,
		State:         domain.StateDraft,
		ReservationID: uuid.New(),
		SlotStartsAt:  createdAt.Add(48 * time.Hour),
		SlotEndsAt:    createdAt.Add(49 * time.Hour),
		Price:         domain.NewMoney(100000, "RUB"),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	b := newBooking(1, uuid.New(), time.Now().UTC())

	created, err := repo.Create(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, b.ID, created.ID)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.CustomerID, got.CustomerID)
	assert.Equal(t, b.Price, got.Price)
}

func TestCreate_Duplicate(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	b := newBooking(1, uuid.New(), time.Now().UTC())

	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	_, err = repo.Create(ctx, b)
	require.ErrorIs(t, err, ErrBookingExists)
}

func TestCreate_MissingID(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Create(context.Background(), &domain.Booking{})
	require.ErrorIs(t, err, ErrInvalidBooking)

	_, err = repo.Create(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidBooking)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCreate_StoresCopy(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	b := newBooking(1, uuid.New(), time.Now().UTC())

	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	// Мутация исходника не должна влиять на хранилище
	b.State = domain.StateCanceled
	b.CancellationReason = ptr.Ptr("changed outside")

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateDraft, got.State)
	assert.Nil(t, got.CancellationReason)
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	b := newBooking(1, uuid.New(), time.Now().UTC())

	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	first.State = domain.StateCompleted

	second, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateDraft, second.State)
}

func TestGetByCustomerID_FiltersAndSorts(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	older := newBooking(7, uuid.New(), base)
	newer := newBooking(7, uuid.New(), base.Add(time.Hour))
	newer.State = domain.StateConfirmed
	other := newBooking(8, uuid.New(), base)

	for _, b := range []*domain.Booking{newer, other, older} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}

	all, err := repo.GetByCustomerID(ctx, 7, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, older.ID, all[0].ID)
	assert.Equal(t, newer.ID, all[1].ID)

	confirmed, err := repo.GetByCustomerID(ctx, 7, ptr.Ptr(domain.StateConfirmed))
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, newer.ID, confirmed[0].ID)
}

func TestGetBySlotID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	slotID := uuid.New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	inSlot := newBooking(1, slotID, base)
	elsewhere := newBooking(2, uuid.New(), base)

	for _, b := range []*domain.Booking{inSlot, elsewhere} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}

	got, err := repo.GetBySlotID(ctx, slotID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inSlot.ID, got[0].ID)
}

func TestUpdate(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	b := newBooking(1, uuid.New(), time.Now().UTC())

	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	b.State = domain.StateConfirmed
	updated, err := repo.Update(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, domain.StateConfirmed, updated.State)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateConfirmed, got.State)
}

func TestUpdateIfState(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	b := newBooking(1, uuid.New(), time.Now().UTC())

	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	b.State = domain.StateCanceled
	updated, err := repo.UpdateIfState(ctx, b, domain.StateDraft)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCanceled, updated.State)
}

func TestUpdateIfState_Conflict(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	b := newBooking(1, uuid.New(), time.Now().UTC())

	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	// Первая условная запись побеждает
	first := b.Clone()
	first.State = domain.StateCanceled
	_, err = repo.UpdateIfState(ctx, first, domain.StateDraft)
	require.NoError(t, err)

	// Вторая, стартовавшая от того же состояния, отвергается
	second := b.Clone()
	second.State = domain.StateCanceled
	_, err = repo.UpdateIfState(ctx, second, domain.StateDraft)
	require.ErrorIs(t, err, ErrStateConflict)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCanceled, got.State)
}

func TestUpdateIfState_NotFound(t *testing.T) {
	repo := NewRepository()

	b := newBooking(1, uuid.New(), time.Now().UTC())
	_, err := repo.UpdateIfState(context.Background(), b, domain.StateDraft)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Update(context.Background(), newBooking(1, uuid.New(), time.Now().UTC()))
	require.ErrorIs(t, err, ErrBookingNotFound)
}
