package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/buyrent/internal/model"
)

// MaxYears bounds the horizon and the mortgage term so month counts and
// trajectory slices stay small.
const MaxYears = 100

// ErrInvalidParameter is matched by every validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports one rejected parameter, named by its config key.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidParameter.
func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// Validate checks p before any simulation runs. All failures are reported
// together, joined with errors.Join.
func Validate(p model.Parameters) error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &ParamError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	values := []struct {
		field string
		v     float64
	}{
		{"house_price", p.HousePrice},
		{"down_payment", p.DownPayment},
		{"mortgage_interest_rate_annual", p.MortgageInterestRateAnnual},
		{"etf_monthly_yield", p.ETFMonthlyYield},
		{"house_price_monthly_yield", p.HousePriceMonthlyYield},
		{"house_maintenance_percent_annual", p.HouseMaintenancePercentAnnual},
		{"monthly_rent", p.MonthlyRent},
		{"rent_increase_annual", p.RentIncreaseAnnual},
	}
	for _, fv := range values {
		if math.IsNaN(fv.v) || math.IsInf(fv.v, 0) {
			fail(fv.field, "must be a finite number")
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if p.HousePrice <= 0 {
		fail("house_price", "must be positive, got %g", p.HousePrice)
	}
	if p.DownPayment < 0 {
		fail("down_payment", "must not be negative, got %g", p.DownPayment)
	}
	if p.DownPayment > p.HousePrice {
		fail("down_payment", "%g exceeds house price %g", p.DownPayment, p.HousePrice)
	}
	if p.MonthlyRent < 0 {
		fail("monthly_rent", "must not be negative, got %g", p.MonthlyRent)
	}

	rates := []struct {
		field string
		v     float64
	}{
		{"mortgage_interest_rate_annual", p.MortgageInterestRateAnnual},
		{"etf_monthly_yield", p.ETFMonthlyYield},
		{"house_price_monthly_yield", p.HousePriceMonthlyYield},
		{"house_maintenance_percent_annual", p.HouseMaintenancePercentAnnual},
		{"rent_increase_annual", p.RentIncreaseAnnual},
	}
	for _, r := range rates {
		if r.v < 0 {
			fail(r.field, "rate must not be negative, got %g", r.v)
		}
	}

	if p.MortgageTermYears < 0 {
		fail("mortgage_term_years", "must not be negative, got %d", p.MortgageTermYears)
	} else if p.MortgageTermYears > MaxYears {
		fail("mortgage_term_years", "must be at most %d years, got %d", MaxYears, p.MortgageTermYears)
	} else if p.MortgageTermYears == 0 && p.Principal() > 0 {
		fail("mortgage_term_years", "must be positive when %g is borrowed", p.Principal())
	}
	if p.SimulationYears <= 0 {
		fail("simulation_years", "horizon must be positive, got %d", p.SimulationYears)
	} else if p.SimulationYears > MaxYears {
		fail("simulation_years", "horizon must be at most %d years, got %d", MaxYears, p.SimulationYears)
	}

	return errors.Join(errs...)
}
