// Package model holds the plain data records shared by the projection
// engine, the renderers and the store.
package model

// Parameters holds every input of a buy-vs-rent projection.
// Rates are fractions: 0.03 means 3%.
type Parameters struct {
	HousePrice                    float64 `json:"house_price" toml:"house_price"`
	DownPayment                   float64 `json:"down_payment" toml:"down_payment"`
	MortgageInterestRateAnnual    float64 `json:"mortgage_interest_rate_annual" toml:"mortgage_interest_rate_annual"`
	MortgageTermYears             int     `json:"mortgage_term_years" toml:"mortgage_term_years"`
	ETFMonthlyYield               float64 `json:"etf_monthly_yield" toml:"etf_monthly_yield"`
	HousePriceMonthlyYield        float64 `json:"house_price_monthly_yield" toml:"house_price_monthly_yield"`
	HouseMaintenancePercentAnnual float64 `json:"house_maintenance_percent_annual" toml:"house_maintenance_percent_annual"`
	MonthlyRent                   float64 `json:"monthly_rent" toml:"monthly_rent"`
	RentIncreaseAnnual            float64 `json:"rent_increase_annual" toml:"rent_increase_annual"`
	SimulationYears               int     `json:"simulation_years" toml:"simulation_years"`
}

// Months returns the simulated horizon in months.
func (p Parameters) Months() int {
	return p.SimulationYears * 12
}

// TermMonths returns the mortgage term in months.
func (p Parameters) TermMonths() int {
	return p.MortgageTermYears * 12
}

// Principal returns the borrowed amount.
func (p Parameters) Principal() float64 {
	return p.HousePrice - p.DownPayment
}
