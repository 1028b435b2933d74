package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	allocatorPkg "github.com/m04kA/SMC-BookingCore/internal/allocator"
	"github.com/m04kA/SMC-BookingCore/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingCore/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingCore/internal/lifecycle"
)

// UseCase сценарий отмены бронирования.
// Поток: загрузка -> проверка владельца -> переход canceled со штрафом ->
// сохранение -> возврат места в слот.
type UseCase struct {
	bookingRepo  BookingRepository
	allocator    SlotAllocator
	machine      StateMachine
	metrics      Metrics
	timeProvider TimeProvider
	validate     *validator.Validate
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo BookingRepository,
	slotAllocator SlotAllocator,
	machine StateMachine,
	metricsCollector Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  repo,
		allocator:    slotAllocator,
		machine:      machine,
		metrics:      metricsCollector,
		timeProvider: &RealTimeProvider{},
		validate:     validator.New(),
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%s by customer=%d", req.BookingID, req.CustomerID)

	// 2. Момент отмены задает вызывающая сторона, иначе системные часы
	now := req.Now.UTC()
	if req.Now.IsZero() {
		now = uc.timeProvider.Now()
	}

	// 3. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: repository error for booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 4. Пользователь может отменить только свое бронирование
	if booking.CustomerID != req.CustomerID {
		uc.logger.Warn("CancelBooking: access denied for customer=%d to booking id=%s",
			req.CustomerID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 5. Переводим бронирование в canceled; штраф считает активная стратегия
	from := booking.State
	if err := uc.machine.Cancel(booking, req.Reason, now); err != nil {
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			uc.logger.Warn("CancelBooking: booking id=%s cannot be cancelled, state=%s",
				req.BookingID, booking.State)
			return nil, fmt.Errorf("%w: %v", ErrCannotCancel, err)
		}
		uc.logger.Error("CancelBooking: transition failed for booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: transition failed: %v", ErrInternal, err)
	}

	// 6. Сохраняем отмененное бронирование. Запись условная по исходному
	// состоянию: конкурирующая отмена той же брони, прошедшая первой, меняет
	// сохраненное состояние, и проигравший вызов отсекается здесь, не дойдя
	// до возврата места в слот
	updated, err := uc.bookingRepo.UpdateIfState(ctx, booking, from)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStateConflict) {
			uc.logger.Warn("CancelBooking: booking id=%s lost concurrent transition", req.BookingID)
			return nil, fmt.Errorf("%w: concurrent transition: %v", ErrCannotCancel, err)
		}
		uc.logger.Error("CancelBooking: failed to store booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to store booking: %v", ErrInternal, err)
	}

	// 7. Возвращаем место в слот
	if updated.ReservationID != uuid.Nil {
		if err := uc.allocator.Release(updated.ReservationID); err != nil {
			if errors.Is(err, allocatorPkg.ErrAlreadyReleased) || errors.Is(err, allocatorPkg.ErrTokenNotFound) {
				uc.logger.Warn("CancelBooking: reservation %s already released for booking id=%s",
					updated.ReservationID, updated.ID)
			} else {
				uc.logger.Error("CancelBooking: failed to release reservation %s: %v",
					updated.ReservationID, err)
				return nil, fmt.Errorf("%w: failed to release reservation: %v", ErrInternal, err)
			}
		}
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCancelled()
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%s, fee=%s",
		updated.ID, feeOf(updated))

	return toResponse(updated), nil
}

func feeOf(b *domain.Booking) domain.Money {
	if b.CancellationFee != nil {
		return *b.CancellationFee
	}
	return b.Price.Zero()
}

func toResponse(b *domain.Booking) *Response {
	fee := feeOf(b)

	resp := &Response{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		SlotID:        b.SlotID,
		State:         string(b.State),
		FeeMinorUnits: fee.Amount,
		Currency:      fee.Currency,
	}
	if b.CancelledAt != nil {
		resp.CancelledAt = *b.CancelledAt
	}
	return resp
}
