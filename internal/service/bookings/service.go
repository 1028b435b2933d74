package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	allocatorPkg "github.com/m04kA/SMC-BookingCore/internal/allocator"
	"github.com/m04kA/SMC-BookingCore/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingCore/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingCore/internal/service/bookings/models"
)

// Service сервис чтения бронирований и слотов
type Service struct {
	bookingRepo BookingRepository
	slots       SlotProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slots SlotProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slots:       slots,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь может видеть только свое бронирование.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, customerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for customer=%d", id, customerID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to booking id=%s", customerID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований пользователя
// Опционально фильтрует по состоянию
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, state=%v", req.CustomerID, req.State)

	var domainState *domain.BookingState
	if req.State != nil {
		state, err := models.ToDomainBookingState(*req.State)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid state=%s for customer=%d", *req.State, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		domainState = &state
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainState)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSlotBookings получает бронирования слота.
// Операционный запрос оркестратора: проверка принадлежности не выполняется.
func (s *Service) GetSlotBookings(ctx context.Context, slotID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("GetSlotBookings: fetching bookings for slot=%s", slotID)

	if _, err := s.slots.Slot(slotID); err != nil {
		if errors.Is(err, allocatorPkg.ErrSlotNotFound) {
			s.logger.Warn("GetSlotBookings: slot id=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetSlotBookings: allocator error for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: GetSlotBookings - allocator error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetBySlotID(ctx, slotID)
	if err != nil {
		s.logger.Error("GetSlotBookings: repository error for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: GetSlotBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSlotBookings: successfully fetched %d bookings for slot=%s", len(bookings), slotID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSlots возвращает все зарегистрированные слоты с занятостью
func (s *Service) GetSlots(ctx context.Context) ([]models.SlotResponse, error) {
	slots := s.slots.Snapshot()

	result := make([]models.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		if resp := models.FromDomainSlot(slot); resp != nil {
			result = append(result, *resp)
		}
	}

	s.logger.Info("GetSlots: fetched %d slots", len(result))
	return result, nil
}
