package projection

import (
	"fmt"
	"math"
	"sort"

	"github.com/theirongolddev/buyrent/internal/model"
)

// SweepPoint is the outcome of one re-projection with a varied parameter.
type SweepPoint struct {
	Value   float64       `json:"value"`
	Summary model.Summary `json:"summary"`
}

// sweepSetter stores v into one field and returns the value actually used.
type sweepSetter func(p *model.Parameters, v float64) float64

func floatField(field func(*model.Parameters) *float64) sweepSetter {
	return func(p *model.Parameters, v float64) float64 {
		*field(p) = v
		return v
	}
}

// yearsField rounds to whole years. Values past the valid range are pinned
// just outside it so Validate rejects them without int overflow.
func yearsField(field func(*model.Parameters) *int) sweepSetter {
	return func(p *model.Parameters, v float64) float64 {
		n := math.Round(v)
		switch {
		case math.IsNaN(n) || n < -1:
			n = -1
		case n > MaxYears+1:
			n = MaxYears + 1
		}
		*field(p) = int(n)
		return n
	}
}

var sweepSetters = map[string]sweepSetter{
	"house_price":                      floatField(func(p *model.Parameters) *float64 { return &p.HousePrice }),
	"down_payment":                     floatField(func(p *model.Parameters) *float64 { return &p.DownPayment }),
	"mortgage_interest_rate_annual":    floatField(func(p *model.Parameters) *float64 { return &p.MortgageInterestRateAnnual }),
	"mortgage_term_years":              yearsField(func(p *model.Parameters) *int { return &p.MortgageTermYears }),
	"etf_monthly_yield":                floatField(func(p *model.Parameters) *float64 { return &p.ETFMonthlyYield }),
	"house_price_monthly_yield":        floatField(func(p *model.Parameters) *float64 { return &p.HousePriceMonthlyYield }),
	"house_maintenance_percent_annual": floatField(func(p *model.Parameters) *float64 { return &p.HouseMaintenancePercentAnnual }),
	"monthly_rent":                     floatField(func(p *model.Parameters) *float64 { return &p.MonthlyRent }),
	"rent_increase_annual":             floatField(func(p *model.Parameters) *float64 { return &p.RentIncreaseAnnual }),
	"simulation_years":                 yearsField(func(p *model.Parameters) *int { return &p.SimulationYears }),
}

// SweepFields lists the parameter keys Sweep accepts, sorted.
func SweepFields() []string {
	fields := make([]string, 0, len(sweepSetters))
	for f := range sweepSetters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Sweep re-projects base once per value with field replaced. Whole-year
// fields are rounded and each point reports the value projected. The first
// invalid combination aborts the sweep.
func Sweep(base model.Parameters, field string, values []float64) ([]SweepPoint, error) {
	set, ok := sweepSetters[field]
	if !ok {
		return nil, &ParamError{Field: field, Reason: "not a sweepable parameter"}
	}

	points := make([]SweepPoint, 0, len(values))
	for _, v := range values {
		p := base
		used := set(&p, v)
		res, err := Project(p)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", field, v, err)
		}
		points = append(points, SweepPoint{Value: used, Summary: res.Summary})
	}
	return points, nil
}

// Steps returns count evenly spaced values from lo to hi inclusive.
func Steps(lo, hi float64, count int) []float64 {
	if count <= 1 {
		return []float64{lo}
	}
	out := make([]float64, count)
	step := (hi - lo) / float64(count-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[count-1] = hi
	return out
}
