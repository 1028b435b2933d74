package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	allocatorPkg "github.com/m04kA/SMC-BookingCore/internal/allocator"
	"github.com/m04kA/SMC-BookingCore/internal/config"
	"github.com/m04kA/SMC-BookingCore/internal/domain"
	"github.com/m04kA/SMC-BookingCore/internal/lifecycle"
	"github.com/m04kA/SMC-BookingCore/internal/pricing"
	metricsPkg "github.com/m04kA/SMC-BookingCore/pkg/metrics"
)

// UseCase сценарий создания бронирования.
// Поток: резерв места в слоте -> расчет цены -> draft -> confirm -> сохранение.
// Любая ошибка после успешного резерва освобождает захваченное место —
// компенсация вместо транзакции БД.
type UseCase struct {
	allocator    SlotAllocator
	calculator   PriceCalculator
	machine      StateMachine
	bookingRepo  BookingRepository
	cfg          *config.Config
	catalog      map[string]domain.AddOn
	metrics      Metrics
	timeProvider TimeProvider
	validate     *validator.Validate
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotAllocator SlotAllocator,
	calculator PriceCalculator,
	machine StateMachine,
	bookingRepo BookingRepository,
	cfg *config.Config,
	metricsCollector Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		allocator:    slotAllocator,
		calculator:   calculator,
		machine:      machine,
		bookingRepo:  bookingRepo,
		cfg:          cfg,
		catalog:      cfg.AddOnCatalog(),
		metrics:      metricsCollector,
		timeProvider: &RealTimeProvider{},
		validate:     validator.New(),
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: customer=%d, slot=%s, addons=%d, member=%t",
		req.CustomerID, req.SlotID, len(req.AddOnIDs), req.Member)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем слот
	slot, err := uc.allocator.Slot(req.SlotID)
	if err != nil {
		if errors.Is(err, allocatorPkg.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%s not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// 4. Начавшийся слот бронировать нельзя
	if slot.Time.Started(now) {
		uc.logger.Warn("CreateBooking: slot id=%s already started at %s", req.SlotID, slot.Time.Start)
		return nil, ErrSlotAlreadyStarted
	}

	// 5. Разрешаем допуслуги по каталогу
	addOns, err := uc.resolveAddOns(req.AddOnIDs)
	if err != nil {
		uc.logger.Warn("CreateBooking: add-on resolution failed: %v", err)
		return nil, err
	}

	// 6. Резервируем место в слоте
	token, err := uc.allocator.Reserve(req.SlotID, 1)
	if err != nil {
		if errors.Is(err, allocatorPkg.ErrCapacityExceeded) {
			if uc.metrics != nil {
				uc.metrics.IncReservation(metricsPkg.ReservationDenied)
			}
			uc.logger.Warn("CreateBooking: slot id=%s is full", req.SlotID)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		uc.logger.Error("CreateBooking: reserve failed for slot id=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: reserve failed: %v", ErrInternal, err)
	}
	if uc.metrics != nil {
		uc.metrics.IncReservation(metricsPkg.ReservationGranted)
	}

	// С этого места любая ошибка обязана вернуть место в слот
	committed := false
	defer func() {
		if committed {
			return
		}
		if releaseErr := uc.allocator.Release(token.ID); releaseErr != nil {
			uc.logger.Error("CreateBooking: failed to release token=%s: %v", token.ID, releaseErr)
		}
	}()

	// 7. Считаем цену: порядок стратегий фиксирован вызывающей стороной,
	// допуслуги прибавляются последним шагом фиксированной суммой
	pctx := &domain.PricingContext{
		PeakHour: uc.cfg.IsPeakHour(slot.Time.Start.UTC().Hour()),
		Member:   req.Member,
		AddOns:   addOns,
	}
	base := domain.NewMoney(uc.cfg.Pricing.BaseRateMinorUnits, uc.cfg.Service.Currency)
	strategies := []pricing.Strategy{
		pricing.Surge(uc.cfg.Pricing.SurgeMultiplier),
		pricing.MemberDiscount(uc.cfg.Pricing.MemberDiscountPercent),
		pricing.Tax(uc.cfg.Pricing.TaxPercent),
		pricing.AddOns(),
	}

	price, err := uc.calculator.Total(base, pctx, strategies)
	if err != nil {
		uc.logger.Error("CreateBooking: price calculation failed: %v", err)
		return nil, fmt.Errorf("%w: price calculation failed: %v", ErrInternal, err)
	}

	// 8. Создаем бронирование в состоянии draft
	booking := &domain.Booking{
		ID:            uuid.New(),
		CustomerID:    req.CustomerID,
		SlotID:        req.SlotID,
		State:         domain.StateDraft,
		ReservationID: token.ID,
		SlotStartsAt:  slot.Time.Start,
		SlotEndsAt:    slot.Time.End,
		Price:         price,
		AddOns:        addOns,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 9. Подтверждаем бронирование
	if err := uc.machine.Confirm(booking, req.PaymentAuthorized, now); err != nil {
		if errors.Is(err, lifecycle.ErrPreconditionFailed) {
			uc.logger.Warn("CreateBooking: confirm rejected for customer=%d: %v", req.CustomerID, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentRequired, err)
		}
		uc.logger.Error("CreateBooking: confirm failed: %v", err)
		return nil, fmt.Errorf("%w: confirm failed: %v", ErrInternal, err)
	}

	// 10. Сохраняем бронирование
	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to store booking: %v", err)
		return nil, fmt.Errorf("%w: failed to store booking: %v", ErrInternal, err)
	}
	committed = true

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated()
		uc.metrics.ObserveBookingPrice(created.Price.Amount)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, price=%s", created.ID, created.Price)

	return toResponse(created), nil
}

// resolveAddOns разрешает идентификаторы допуслуг по каталогу конфигурации
func (uc *UseCase) resolveAddOns(ids []string) ([]domain.AddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	addOns := make([]domain.AddOn, 0, len(ids))
	for _, id := range ids {
		addOn, ok := uc.catalog[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%q", ErrAddOnNotFound, id)
		}
		addOns = append(addOns, addOn)
	}
	return addOns, nil
}

func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		SlotID:          b.SlotID,
		State:           string(b.State),
		SlotStartsAt:    b.SlotStartsAt,
		SlotEndsAt:      b.SlotEndsAt,
		PriceMinorUnits: b.Price.Amount,
		Currency:        b.Price.Currency,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	for _, addOn := range b.AddOns {
		resp.AddOnIDs = append(resp.AddOnIDs, addOn.ID)
	}
	return resp
}
