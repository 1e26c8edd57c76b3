package config

import (
	"sort"
	"strings"

	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
)

// DefaultPresets maps preset names to complete parameter sets.
var DefaultPresets = map[string]model.Parameters{
	// CHF 1M house, 20% down, 3% over 20 years, rent CHF 2,500.
	"swiss-example": {
		HousePrice:                    1_000_000,
		DownPayment:                   200_000,
		MortgageInterestRateAnnual:    0.03,
		MortgageTermYears:             20,
		ETFMonthlyYield:               0.007,
		HousePriceMonthlyYield:        0.002,
		HouseMaintenancePercentAnnual: 0.01,
		MonthlyRent:                   2_500,
		SimulationYears:               20,
	},
	// Long-run averages: MSCI World 10.78% (2009-2025), Swiss house prices
	// 3.73% (2017-2025), rents +1.4% (2005-2025).
	"winterthur": {
		HousePrice:                    1_000_000,
		DownPayment:                   200_000,
		MortgageInterestRateAnnual:    0.015,
		MortgageTermYears:             15,
		ETFMonthlyYield:               projection.MonthlyRateFromAnnual(0.1078),
		HousePriceMonthlyYield:        projection.MonthlyRateFromAnnual(0.0373),
		HouseMaintenancePercentAnnual: 0.01,
		MonthlyRent:                   2_500,
		RentIncreaseAnnual:            0.014,
		SimulationYears:               30,
	},
	"cautious": {
		HousePrice:                    750_000,
		DownPayment:                   150_000,
		MortgageInterestRateAnnual:    0.045,
		MortgageTermYears:             25,
		ETFMonthlyYield:               projection.MonthlyRateFromAnnual(0.05),
		HousePriceMonthlyYield:        projection.MonthlyRateFromAnnual(0.01),
		HouseMaintenancePercentAnnual: 0.015,
		MonthlyRent:                   2_200,
		RentIncreaseAnnual:            0.02,
		SimulationYears:               25,
	},
}

// NormalizePresetName lowercases and hyphenates a preset name so that
// "Swiss Example" and "swiss_example" resolve alike.
func NormalizePresetName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// LookupPreset returns the named preset.
func LookupPreset(name string) (model.Parameters, bool) {
	p, ok := DefaultPresets[NormalizePresetName(name)]
	return p, ok
}

// PresetNames returns every preset name, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(DefaultPresets))
	for name := range DefaultPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
