package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// Repository хранит бронирования в памяти.
// Персистентность — зона ответственности внешнего оркестратора; репозиторий
// повторяет контракт дискового хранилища и отдает только копии записей,
// чтобы мутации на стороне вызывающего не просачивались в хранилище.
type Repository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*domain.Booking
}

// NewRepository создает пустой репозиторий бронирований
func NewRepository() *Repository {
	return &Repository{
		bookings: make(map[uuid.UUID]*domain.Booking),
	}
}

// Create сохраняет новое бронирование
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil || booking.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidBooking)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; ok {
		return nil, fmt.Errorf("%w: id=%s", ErrBookingExists, booking.ID)
	}
	r.bookings[booking.ID] = booking.Clone()

	return booking.Clone(), nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrBookingNotFound, id)
	}
	return booking.Clone(), nil
}

// GetByCustomerID возвращает бронирования пользователя,
// опционально фильтруя по состоянию
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, state *domain.BookingState) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Booking
	for _, booking := range r.bookings {
		if booking.CustomerID != customerID {
			continue
		}
		if state != nil && booking.State != *state {
			continue
		}
		result = append(result, booking.Clone())
	}

	sortByCreatedAt(result)
	return result, nil
}

// GetBySlotID возвращает бронирования слота
func (r *Repository) GetBySlotID(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Booking
	for _, booking := range r.bookings {
		if booking.SlotID != slotID {
			continue
		}
		result = append(result, booking.Clone())
	}

	sortByCreatedAt(result)
	return result, nil
}

// Update перезаписывает существующее бронирование
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil || booking.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidBooking)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrBookingNotFound, booking.ID)
	}
	r.bookings[booking.ID] = booking.Clone()

	return booking.Clone(), nil
}

// UpdateIfState перезаписывает бронирование, только если сохраненное
// состояние все еще равно expected. Точка сериализации конкурирующих
// переходов: из двух вызовов, стартовавших от одного состояния, запись
// удается ровно одному, второй получает ErrStateConflict.
func (r *Repository) UpdateIfState(ctx context.Context, booking *domain.Booking, expected domain.BookingState) (*domain.Booking, error) {
	if booking == nil || booking.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidBooking)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.bookings[booking.ID]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrBookingNotFound, booking.ID)
	}
	if current.State != expected {
		return nil, fmt.Errorf("%w: id=%s, state=%s, expected=%s",
			ErrStateConflict, booking.ID, current.State, expected)
	}
	r.bookings[booking.ID] = booking.Clone()

	return booking.Clone(), nil
}

func sortByCreatedAt(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID.String() < bookings[j].ID.String()
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}
