package metrics

import "github.com/prometheus/client_golang/prometheus"

// Результаты резервирования для лейбла result
const (
	ReservationGranted = "granted"
	ReservationDenied  = "denied"
)

// Metrics Prometheus-коллекторы ядра бронирования
type Metrics struct {
	reservations      *prometheus.CounterVec
	bookingsCreated   prometheus.Counter
	bookingsCancelled prometheus.Counter
	transitions       *prometheus.CounterVec
	bookingPrice      prometheus.Histogram
}

// New создает коллекторы и регистрирует их в дефолтном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWith(prometheus.DefaultRegisterer, serviceName)
}

// NewWith создает коллекторы и регистрирует их в переданном реестре
func NewWith(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_core_reservations_total",
			Help:        "Slot reservation attempts by result (granted/denied).",
			ConstLabels: constLabels,
		}, []string{"result"}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_core_bookings_created_total",
			Help:        "Bookings successfully created and confirmed.",
			ConstLabels: constLabels,
		}),
		bookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_core_bookings_cancelled_total",
			Help:        "Bookings cancelled.",
			ConstLabels: constLabels,
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_core_state_transitions_total",
			Help:        "Booking state machine transitions by source state and action.",
			ConstLabels: constLabels,
		}, []string{"from", "action"}),
		bookingPrice: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "booking_core_booking_price_minor_units",
			Help:        "Final booking price in currency minor units.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(100, 4, 10),
		}),
	}

	reg.MustRegister(
		m.reservations,
		m.bookingsCreated,
		m.bookingsCancelled,
		m.transitions,
		m.bookingPrice,
	)

	return m
}

// IncReservation учитывает попытку резервирования слота
func (m *Metrics) IncReservation(result string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(result).Inc()
}

// IncBookingCreated учитывает созданное бронирование
func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// IncBookingCancelled учитывает отмененное бронирование
func (m *Metrics) IncBookingCancelled() {
	if m == nil {
		return
	}
	m.bookingsCancelled.Inc()
}

// IncTransition учитывает переход конечного автомата
func (m *Metrics) IncTransition(from, action string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, action).Inc()
}

// ObserveBookingPrice учитывает итоговую цену бронирования
func (m *Metrics) ObserveBookingPrice(minorUnits int64) {
	if m == nil {
		return
	}
	m.bookingPrice.Observe(float64(minorUnits))
}
