package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[service]
name = "test-core"
currency = "USD"

[pricing]
base_rate_minor_units = 5000
surge_multiplier = 1.5
peak_hours = [9, 10]

[[pricing.addons]]
id = "wax"
name = "Wax polish"
price_minor_units = 2000

[cancellation]
window_hours = 12
penalty_percent = 25.0

[payments]
mode = "upfront"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-core", cfg.Service.Name)
	assert.Equal(t, "USD", cfg.Service.Currency)
	assert.Equal(t, int64(5000), cfg.Pricing.BaseRateMinorUnits)
	assert.Equal(t, 1.5, cfg.Pricing.SurgeMultiplier)
	assert.Equal(t, 12, cfg.Cancellation.WindowHours)
	assert.Equal(t, "upfront", cfg.Payments.Mode)

	// Defaults survive for untouched sections
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, 10.0, cfg.Pricing.MemberDiscountPercent)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad currency", func(c *Config) { c.Service.Currency = "RUBLE" }},
		{"zero base rate", func(c *Config) { c.Pricing.BaseRateMinorUnits = 0 }},
		{"surge below one", func(c *Config) { c.Pricing.SurgeMultiplier = 0.5 }},
		{"discount above 100", func(c *Config) { c.Pricing.MemberDiscountPercent = 150 }},
		{"negative tax", func(c *Config) { c.Pricing.TaxPercent = -1 }},
		{"peak hour out of range", func(c *Config) { c.Pricing.PeakHours = []int{24} }},
		{"empty addon id", func(c *Config) {
			c.Pricing.AddOns = []AddOnConfig{{ID: "", PriceMinorUnits: 100}}
		}},
		{"duplicate addon id", func(c *Config) {
			c.Pricing.AddOns = []AddOnConfig{
				{ID: "wax", PriceMinorUnits: 100},
				{ID: "wax", PriceMinorUnits: 200},
			}
		}},
		{"negative window", func(c *Config) { c.Cancellation.WindowHours = -1 }},
		{"penalty above 100", func(c *Config) { c.Cancellation.PenaltyPercent = 101 }},
		{"unknown payment mode", func(c *Config) { c.Payments.Mode = "later" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestAddOnCatalog(t *testing.T) {
	cfg := Default()
	cfg.Pricing.AddOns = []AddOnConfig{
		{ID: "wax", Name: "Wax polish", PriceMinorUnits: 2000},
	}

	catalog := cfg.AddOnCatalog()
	require.Len(t, catalog, 1)
	assert.Equal(t, "Wax polish", catalog["wax"].Name)
	assert.Equal(t, int64(2000), catalog["wax"].Price.Amount)
	assert.Equal(t, cfg.Service.Currency, catalog["wax"].Price.Currency)
}

func TestIsPeakHour(t *testing.T) {
	cfg := Default()
	cfg.Pricing.PeakHours = []int{17, 18}

	assert.True(t, cfg.IsPeakHour(17))
	assert.False(t, cfg.IsPeakHour(12))
}
