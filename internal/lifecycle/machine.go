package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// Action операция перевода бронирования между состояниями
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionCheckIn  Action = "check_in"
	ActionComplete Action = "complete"
	ActionNoShow   Action = "no_show"
)

// PaymentMode политика оплаты при подтверждении бронирования
type PaymentMode string

const (
	// PaymentDeferred оплата отложена: подтверждение не требует авторизации платежа
	PaymentDeferred PaymentMode = "deferred"
	// PaymentUpfront оплата вперед: подтверждение требует авторизованного платежа
	PaymentUpfront PaymentMode = "upfront"
)

// transitions таблица разрешенных переходов.
// Все переходы, которых нет в таблице, запрещены.
// check_in оставляет бронирование в confirmed и лишь отмечает явку.
var transitions = map[domain.BookingState]map[Action]domain.BookingState{
	domain.StateDraft: {
		ActionConfirm: domain.StateConfirmed,
		ActionCancel:  domain.StateCanceled,
	},
	domain.StateConfirmed: {
		ActionCancel:   domain.StateCanceled,
		ActionCheckIn:  domain.StateConfirmed,
		ActionComplete: domain.StateCompleted,
		ActionNoShow:   domain.StateNoShow,
	},
}

// Machine конечный автомат жизненного цикла бронирования.
// Переходы одного бронирования сериализуются пер-букинговым мьютексом;
// бронирования независимы и обрабатываются параллельно.
// Переход атомарен: все производные поля вычисляются до первого
// присваивания, при ошибке бронирование не меняется.
type Machine struct {
	feeStrategy FeeStrategy
	paymentMode PaymentMode
	metrics     Metrics
	logger      Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewMachine создает конечный автомат.
// feeStrategy — активная стратегия штрафа на момент отмены.
func NewMachine(feeStrategy FeeStrategy, paymentMode PaymentMode, metricsCollector Metrics, logger Logger) *Machine {
	return &Machine{
		feeStrategy: feeStrategy,
		paymentMode: paymentMode,
		metrics:     metricsCollector,
		logger:      logger,
		locks:       make(map[uuid.UUID]*sync.Mutex),
	}
}

// Confirm переводит бронирование draft -> confirmed.
// Предусловия: цена рассчитана; платеж авторизован либо отложен политикой.
func (m *Machine) Confirm(booking *domain.Booking, paymentAuthorized bool, now time.Time) error {
	lock := m.bookingLock(booking.ID)
	lock.Lock()
	defer m.unlockBooking(booking, lock)

	from := booking.State
	to, err := m.target(from, ActionConfirm)
	if err != nil {
		return err
	}

	if booking.Price.Currency == "" {
		return fmt.Errorf("%w: price not computed", ErrPreconditionFailed)
	}
	if m.paymentMode == PaymentUpfront && !paymentAuthorized {
		return fmt.Errorf("%w: payment not authorized", ErrPreconditionFailed)
	}

	booking.State = to
	booking.UpdatedAt = now

	m.recordTransition(booking.ID, from, ActionConfirm, to)
	return nil
}

// Cancel переводит бронирование draft|confirmed -> canceled.
// Из confirmed штраф считается активной стратегией; из draft штраф нулевой.
func (m *Machine) Cancel(booking *domain.Booking, reason string, now time.Time) error {
	lock := m.bookingLock(booking.ID)
	lock.Lock()
	defer m.unlockBooking(booking, lock)

	from := booking.State
	to, err := m.target(from, ActionCancel)
	if err != nil {
		return err
	}

	fee := booking.Price.Zero()
	if from == domain.StateConfirmed {
		computed, err := m.feeStrategy.Fee(booking, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFeeComputation, err)
		}
		fee = computed
	}

	cancelledAt := now
	booking.State = to
	booking.CancellationFee = &fee
	if reason != "" {
		booking.CancellationReason = &reason
	}
	booking.CancelledAt = &cancelledAt
	booking.UpdatedAt = now

	m.recordTransition(booking.ID, from, ActionCancel, to)
	return nil
}

// CheckIn отмечает явку по бронированию; состояние остается confirmed.
// Предусловие: слот уже начался.
func (m *Machine) CheckIn(booking *domain.Booking, now time.Time) error {
	lock := m.bookingLock(booking.ID)
	lock.Lock()
	defer m.unlockBooking(booking, lock)

	from := booking.State
	to, err := m.target(from, ActionCheckIn)
	if err != nil {
		return err
	}

	if now.Before(booking.SlotStartsAt) {
		return fmt.Errorf("%w: slot has not started", ErrPreconditionFailed)
	}

	checkedInAt := now
	booking.State = to
	booking.CheckedInAt = &checkedInAt
	booking.UpdatedAt = now

	m.recordTransition(booking.ID, from, ActionCheckIn, to)
	return nil
}

// Complete переводит бронирование confirmed -> completed.
// Предусловие: слот уже закончился.
func (m *Machine) Complete(booking *domain.Booking, now time.Time) error {
	lock := m.bookingLock(booking.ID)
	lock.Lock()
	defer m.unlockBooking(booking, lock)

	from := booking.State
	to, err := m.target(from, ActionComplete)
	if err != nil {
		return err
	}

	if now.Before(booking.SlotEndsAt) {
		return fmt.Errorf("%w: slot has not ended", ErrPreconditionFailed)
	}

	booking.State = to
	booking.UpdatedAt = now

	m.recordTransition(booking.ID, from, ActionComplete, to)
	return nil
}

// NoShow переводит бронирование confirmed -> no_show.
// Предусловия: слот уже закончился и явка не отмечалась.
func (m *Machine) NoShow(booking *domain.Booking, now time.Time) error {
	lock := m.bookingLock(booking.ID)
	lock.Lock()
	defer m.unlockBooking(booking, lock)

	from := booking.State
	to, err := m.target(from, ActionNoShow)
	if err != nil {
		return err
	}

	if now.Before(booking.SlotEndsAt) {
		return fmt.Errorf("%w: slot has not ended", ErrPreconditionFailed)
	}
	if booking.IsCheckedIn() {
		return fmt.Errorf("%w: booking was checked in", ErrPreconditionFailed)
	}

	booking.State = to
	booking.UpdatedAt = now

	m.recordTransition(booking.ID, from, ActionNoShow, to)
	return nil
}

// target возвращает целевое состояние перехода по таблице
func (m *Machine) target(from domain.BookingState, action Action) (domain.BookingState, error) {
	actions, ok := transitions[from]
	if !ok {
		return "", fmt.Errorf("%w: %s is a terminal state, action=%s", ErrInvalidTransition, from, action)
	}
	to, ok := actions[action]
	if !ok {
		return "", fmt.Errorf("%w: state=%s, action=%s", ErrInvalidTransition, from, action)
	}
	return to, nil
}

// bookingLock возвращает мьютекс бронирования, создавая его при первом обращении
func (m *Machine) bookingLock(id uuid.UUID) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	return lock
}

// unlockBooking снимает блокировку и выбрасывает ее из реестра, когда
// бронирование достигло терминального состояния: из терминальных состояний
// переходов нет, мьютекс больше некому сериализовать, а реестр не растет
// бесконечно на долгоживущем ядре. Опоздавший вызов со старым указателем
// мьютекса безопасен: переход из терминального состояния отвергается таблицей
// без мутаций.
func (m *Machine) unlockBooking(booking *domain.Booking, lock *sync.Mutex) {
	if booking.IsTerminal() {
		m.mu.Lock()
		delete(m.locks, booking.ID)
		m.mu.Unlock()
	}
	lock.Unlock()
}

func (m *Machine) recordTransition(id uuid.UUID, from domain.BookingState, action Action, to domain.BookingState) {
	if m.metrics != nil {
		m.metrics.IncTransition(string(from), string(action))
	}
	m.logger.Info("Transition: booking id=%s %s -[%s]-> %s", id, from, action, to)
}
