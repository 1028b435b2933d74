package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация ядра бронирования.
// Передается явной структурой при конструировании компонентов.
type Config struct {
	Service      ServiceConfig      `toml:"service"`
	Pricing      PricingConfig      `toml:"pricing"`
	Cancellation CancellationConfig `toml:"cancellation"`
	Payments     PaymentsConfig     `toml:"payments"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
}

// ServiceConfig базовые параметры сервиса
type ServiceConfig struct {
	Name     string `toml:"name"`
	Currency string `toml:"currency"`
}

// PricingConfig параметры ценообразования
type PricingConfig struct {
	BaseRateMinorUnits    int64         `toml:"base_rate_minor_units"`
	SurgeMultiplier       float64       `toml:"surge_multiplier"`
	MemberDiscountPercent float64       `toml:"member_discount_percent"`
	TaxPercent            float64       `toml:"tax_percent"`
	PeakHours             []int         `toml:"peak_hours"`
	AddOns                []AddOnConfig `toml:"addons"`
}

// AddOnConfig описание допуслуги в каталоге
type AddOnConfig struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	PriceMinorUnits int64  `toml:"price_minor_units"`
}

// CancellationConfig параметры политики отмены
type CancellationConfig struct {
	WindowHours    int     `toml:"window_hours"`
	PenaltyPercent float64 `toml:"penalty_percent"`
}

// PaymentsConfig политика оплаты при подтверждении: deferred или upfront
type PaymentsConfig struct {
	Mode string `toml:"mode"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
}

// Default возвращает конфигурацию с дефолтными значениями
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:     "booking-core",
			Currency: "RUB",
		},
		Pricing: PricingConfig{
			BaseRateMinorUnits:    100000, // 1000.00
			SurgeMultiplier:       1.25,
			MemberDiscountPercent: 10,
			TaxPercent:            0,
			PeakHours:             []int{17, 18, 19, 20},
		},
		Cancellation: CancellationConfig{
			WindowHours:    24,
			PenaltyPercent: 50,
		},
		Payments: PaymentsConfig{
			Mode: "deferred",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			ServiceName: "booking-core",
		},
	}
}

// Load читает конфигурацию из TOML-файла поверх дефолтов
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if len(c.Service.Currency) != domain.CurrencyCodeLength {
		return fmt.Errorf("%w: currency must be a %d-letter code, got %q",
			ErrInvalidConfig, domain.CurrencyCodeLength, c.Service.Currency)
	}
	if c.Pricing.BaseRateMinorUnits <= 0 {
		return fmt.Errorf("%w: base_rate_minor_units must be positive", ErrInvalidConfig)
	}
	if c.Pricing.SurgeMultiplier < 1 {
		return fmt.Errorf("%w: surge_multiplier must be >= 1", ErrInvalidConfig)
	}
	if c.Pricing.MemberDiscountPercent < 0 || c.Pricing.MemberDiscountPercent > 100 {
		return fmt.Errorf("%w: member_discount_percent must be within [0, 100]", ErrInvalidConfig)
	}
	if c.Pricing.TaxPercent < 0 {
		return fmt.Errorf("%w: tax_percent must be non-negative", ErrInvalidConfig)
	}
	for _, hour := range c.Pricing.PeakHours {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("%w: peak hour %d out of range [0, 23]", ErrInvalidConfig, hour)
		}
	}
	seen := make(map[string]struct{}, len(c.Pricing.AddOns))
	for _, addOn := range c.Pricing.AddOns {
		if addOn.ID == "" {
			return fmt.Errorf("%w: add-on id must not be empty", ErrInvalidConfig)
		}
		if _, ok := seen[addOn.ID]; ok {
			return fmt.Errorf("%w: duplicate add-on id %q", ErrInvalidConfig, addOn.ID)
		}
		seen[addOn.ID] = struct{}{}
		if addOn.PriceMinorUnits < 0 {
			return fmt.Errorf("%w: add-on %q price must be non-negative", ErrInvalidConfig, addOn.ID)
		}
	}
	if c.Cancellation.WindowHours < 0 {
		return fmt.Errorf("%w: window_hours must be non-negative", ErrInvalidConfig)
	}
	if c.Cancellation.PenaltyPercent < 0 || c.Cancellation.PenaltyPercent > 100 {
		return fmt.Errorf("%w: penalty_percent must be within [0, 100]", ErrInvalidConfig)
	}
	if c.Payments.Mode != "deferred" && c.Payments.Mode != "upfront" {
		return fmt.Errorf("%w: payments mode must be deferred or upfront, got %q", ErrInvalidConfig, c.Payments.Mode)
	}
	return nil
}

// AddOnCatalog возвращает каталог допуслуг в валюте сервиса
func (c *Config) AddOnCatalog() map[string]domain.AddOn {
	catalog := make(map[string]domain.AddOn, len(c.Pricing.AddOns))
	for _, addOn := range c.Pricing.AddOns {
		catalog[addOn.ID] = domain.AddOn{
			ID:    addOn.ID,
			Name:  addOn.Name,
			Price: domain.NewMoney(addOn.PriceMinorUnits, c.Service.Currency),
		}
	}
	return catalog
}

// IsPeakHour проверяет, попадает ли час (UTC) в пиковые
func (c *Config) IsPeakHour(hour int) bool {
	for _, peak := range c.Pricing.PeakHours {
		if hour == peak {
			return true
		}
	}
	return false
}
