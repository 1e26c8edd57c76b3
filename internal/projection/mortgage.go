package projection

import (
	"math"

	"github.com/theirongolddev/buyrent/internal/model"
)

// MonthlyPayment returns the fixed annuity payment that repays principal
// over termMonths at annualRate/12 per month:
//
//	M = P * r(1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to straight-line P/n.
func MonthlyPayment(principal, annualRate float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	r := annualRate / 12
	n := float64(termMonths)
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// MonthlyRateFromAnnual converts an annual yield to the equivalent
// compounding monthly yield: (1+a)^(1/12) - 1.
func MonthlyRateFromAnnual(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12) - 1
}

// AnnualRateFromMonthly is the inverse of MonthlyRateFromAnnual.
func AnnualRateFromMonthly(monthly float64) float64 {
	return math.Pow(1+monthly, 12) - 1
}

// RentAt returns the rent due in month m (1-based). Rent steps up by
// RentIncreaseAnnual at the start of every simulated year.
func RentAt(p model.Parameters, month int) float64 {
	if month < 1 {
		month = 1
	}
	years := (month - 1) / 12
	if years == 0 || p.RentIncreaseAnnual == 0 {
		return p.MonthlyRent
	}
	return p.MonthlyRent * math.Pow(1+p.RentIncreaseAnnual, float64(years))
}
