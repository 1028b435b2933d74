package allocator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// ReservationToken подтверждает захват мест в слоте.
// Токен предъявляется при освобождении мест.
type ReservationToken struct {
	ID     uuid.UUID
	SlotID uuid.UUID
	Count  int
}

// slotEntry хранит слот вместе с его мьютексом.
// Все изменения счетчика Reserved выполняются под mu.
type slotEntry struct {
	mu   sync.Mutex
	slot *domain.ScheduleSlot
}

// tokenState запись о выданном токене.
// Освобожденные токены остаются в реестре намеренно: повторный Release
// обязан отличаться от Release несуществующего токена (ErrAlreadyReleased
// против ErrTokenNotFound), поэтому факт освобождения надо помнить.
// Сборка реестра — вместе со снятием слота с учета внешним оркестратором.
type tokenState struct {
	token    ReservationToken
	released bool
}

// Allocator выдает и освобождает места в слотах расписания.
// Гарантия: для слота вместимости C одновременно успешны не более C
// резервирований; проверка и инкремент выполняются атомарно под
// пер-слотовым мьютексом.
type Allocator struct {
	mu    sync.RWMutex
	slots map[uuid.UUID]*slotEntry

	tokensMu sync.Mutex
	tokens   map[uuid.UUID]*tokenState

	logger Logger
}

// New создает пустой аллокатор
func New(logger Logger) *Allocator {
	return &Allocator{
		slots:  make(map[uuid.UUID]*slotEntry),
		tokens: make(map[uuid.UUID]*tokenState),
		logger: logger,
	}
}

// RegisterSlot регистрирует слот в аллокаторе.
// Аллокатор работает с собственной копией: внешние мутации слота
// на учет мест не влияют.
func (a *Allocator) RegisterSlot(slot *domain.ScheduleSlot) error {
	if slot == nil {
		return fmt.Errorf("%w: nil slot", ErrSlotNotFound)
	}
	if slot.Capacity < domain.MinSlotCapacity || slot.Capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity=%d", ErrInvalidCapacity, slot.Capacity)
	}
	if slot.Reserved < 0 || slot.Reserved > slot.Capacity {
		return fmt.Errorf("%w: reserved=%d capacity=%d", ErrInvalidCapacity, slot.Reserved, slot.Capacity)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.slots[slot.ID]; ok {
		return fmt.Errorf("%w: slot id=%s", ErrSlotAlreadyRegistered, slot.ID)
	}
	a.slots[slot.ID] = &slotEntry{slot: slot.Clone()}

	a.logger.Info("RegisterSlot: slot id=%s capacity=%d window=%s..%s",
		slot.ID, slot.Capacity, slot.Time.Start, slot.Time.End)
	return nil
}

// Slot возвращает копию зарегистрированного слота
func (a *Allocator) Slot(id uuid.UUID) (*domain.ScheduleSlot, error) {
	entry, err := a.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.slot.Clone(), nil
}

// Snapshot возвращает копии всех зарегистрированных слотов,
// отсортированные по времени начала
func (a *Allocator) Snapshot() []*domain.ScheduleSlot {
	a.mu.RLock()
	entries := make([]*slotEntry, 0, len(a.slots))
	for _, entry := range a.slots {
		entries = append(entries, entry)
	}
	a.mu.RUnlock()

	slots := make([]*domain.ScheduleSlot, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		slots = append(slots, entry.slot.Clone())
		entry.mu.Unlock()
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time.Start.Before(slots[j].Time.Start)
	})
	return slots
}

// Reserve атомарно захватывает count мест в слоте.
// При нехватке мест возвращает ErrCapacityExceeded без побочных эффектов.
func (a *Allocator) Reserve(slotID uuid.UUID, count int) (ReservationToken, error) {
	if count <= 0 {
		return ReservationToken{}, fmt.Errorf("%w: count=%d", ErrInvalidCount, count)
	}

	entry, err := a.entry(slotID)
	if err != nil {
		return ReservationToken{}, err
	}

	entry.mu.Lock()
	if entry.slot.Reserved+count > entry.slot.Capacity {
		reserved, capacity := entry.slot.Reserved, entry.slot.Capacity
		entry.mu.Unlock()
		a.logger.Warn("Reserve: denied for slot id=%s, requested=%d, taken %d/%d",
			slotID, count, reserved, capacity)
		return ReservationToken{}, fmt.Errorf("%w: slot id=%s, requested=%d, available=%d",
			ErrCapacityExceeded, slotID, count, capacity-reserved)
	}
	entry.slot.Reserved += count
	reserved, capacity := entry.slot.Reserved, entry.slot.Capacity
	entry.mu.Unlock()

	token := ReservationToken{ID: uuid.New(), SlotID: slotID, Count: count}

	a.tokensMu.Lock()
	a.tokens[token.ID] = &tokenState{token: token}
	a.tokensMu.Unlock()

	a.logger.Info("Reserve: granted token=%s for slot id=%s, taken %d/%d",
		token.ID, slotID, reserved, capacity)
	return token, nil
}

// Release освобождает места, захваченные токеном.
// Повторное освобождение того же токена возвращает ErrAlreadyReleased:
// молчаливый no-op скрывал бы двойной возврат мест на стороне вызывающего.
func (a *Allocator) Release(tokenID uuid.UUID) error {
	a.tokensMu.Lock()
	state, ok := a.tokens[tokenID]
	if !ok {
		a.tokensMu.Unlock()
		return fmt.Errorf("%w: token=%s", ErrTokenNotFound, tokenID)
	}
	if state.released {
		a.tokensMu.Unlock()
		return fmt.Errorf("%w: token=%s", ErrAlreadyReleased, tokenID)
	}
	state.released = true
	token := state.token
	a.tokensMu.Unlock()

	entry, err := a.entry(token.SlotID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	entry.slot.Reserved -= token.Count
	if entry.slot.Reserved < 0 {
		entry.slot.Reserved = 0
	}
	reserved, capacity := entry.slot.Reserved, entry.slot.Capacity
	entry.mu.Unlock()

	a.logger.Info("Release: token=%s released for slot id=%s, taken %d/%d",
		tokenID, token.SlotID, reserved, capacity)
	return nil
}

func (a *Allocator) entry(slotID uuid.UUID) (*slotEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.slots[slotID]
	if !ok {
		return nil, fmt.Errorf("%w: slot id=%s", ErrSlotNotFound, slotID)
	}
	return entry, nil
}
