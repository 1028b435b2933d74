package domain

import "fmt"

// AddOn is an optional extra purchased together with a booking.
type AddOn struct {
	ID    string
	Name  string
	Price Money
}

// PricingContext is an ephemeral bag of decision inputs consumed once by the
// price calculator; it is never persisted.
type PricingContext struct {
	PeakHour bool
	Member   bool
	AddOns   []AddOn
}

// AddOnTotal sums the add-on prices in the given currency.
// Fails when any add-on carries a different currency.
func (c *PricingContext) AddOnTotal(currency string) (Money, error) {
	total := NewMoney(0, currency)
	for _, addOn := range c.AddOns {
		sum, err := total.Add(addOn.Price)
		if err != nil {
			return Money{}, fmt.Errorf("add-on %q: %w", addOn.ID, err)
		}
		total = sum
	}
	return total, nil
}
