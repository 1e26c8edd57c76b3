package model

// Winner names the scenario with the higher terminal wealth.
type Winner string

const (
	WinnerBuy  Winner = "buy"
	WinnerRent Winner = "rent"
	WinnerTie  Winner = "tie"
)

// Label returns the display form used in tables and reports.
func (w Winner) Label() string {
	switch w {
	case WinnerBuy:
		return "Buying"
	case WinnerRent:
		return "Renting"
	default:
		return "Tie"
	}
}

// MonthlySnapshot is the state of one scenario at the end of a month.
// House fields are zero on the rent side.
type MonthlySnapshot struct {
	Month              int     `json:"month"`
	HouseValue         float64 `json:"house_value"`
	MortgageBalance    float64 `json:"mortgage_balance"`
	Portfolio          float64 `json:"portfolio"`
	Outlay             float64 `json:"outlay"`
	Contribution       float64 `json:"contribution"`
	CumulativeBuyCost  float64 `json:"cumulative_buy_cost"`
	CumulativeRentCost float64 `json:"cumulative_rent_cost"`
	Wealth             float64 `json:"wealth"`
}

// Equity returns house value minus the remaining mortgage balance.
func (s MonthlySnapshot) Equity() float64 {
	return s.HouseValue - s.MortgageBalance
}

// Summary holds the terminal figures of a projection.
type Summary struct {
	Months             int     `json:"months"`
	MonthlyPayment     float64 `json:"monthly_payment"`
	InitialBuyOutlay   float64 `json:"initial_buy_outlay"`
	FinalHouseValue    float64 `json:"final_house_value"`
	FinalBalance       float64 `json:"final_balance"`
	FinalEquity        float64 `json:"final_equity"`
	FinalBuyPortfolio  float64 `json:"final_buy_portfolio"`
	FinalBuyWealth     float64 `json:"final_buy_wealth"`
	FinalRentPortfolio float64 `json:"final_rent_portfolio"`
	WealthDifference   float64 `json:"wealth_difference"`
	TotalBuyCost       float64 `json:"total_buy_cost"`
	TotalRentCost      float64 `json:"total_rent_cost"`
	TotalBuyInvested   float64 `json:"total_buy_invested"`
	TotalRentInvested  float64 `json:"total_rent_invested"`
	BreakevenMonth     int     `json:"breakeven_month"`
	Winner             Winner  `json:"winner"`
}

// Result is the full output of one projection run.
type Result struct {
	Params  Parameters        `json:"params"`
	Buy     []MonthlySnapshot `json:"buy"`
	Rent    []MonthlySnapshot `json:"rent"`
	Summary Summary           `json:"summary"`
}

// YearRow is the end-of-year roll-up of both scenarios.
type YearRow struct {
	Year            int     `json:"year"`
	HouseValue      float64 `json:"house_value"`
	MortgageBalance float64 `json:"mortgage_balance"`
	Equity          float64 `json:"equity"`
	BuyPortfolio    float64 `json:"buy_portfolio"`
	BuyWealth       float64 `json:"buy_wealth"`
	RentPortfolio   float64 `json:"rent_portfolio"`
	BuyCost         float64 `json:"buy_cost"`
	RentCost        float64 `json:"rent_cost"`
	BuyInvested     float64 `json:"buy_invested"`
	RentInvested    float64 `json:"rent_invested"`
}
