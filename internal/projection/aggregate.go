package projection

import "github.com/theirongolddev/buyrent/internal/model"

// Breakeven returns the first month from which buying stays at least as
// wealthy as renting through the end of the horizon, or 0 if it never does.
func Breakeven(r model.Result) int {
	return breakeven(r.Buy, r.Rent)
}

func breakeven(buy, rent []model.MonthlySnapshot) int {
	month := 0
	for i := len(buy) - 1; i >= 0; i-- {
		if buy[i].Wealth < rent[i].Wealth {
			break
		}
		month = buy[i].Month
	}
	return month
}

// Yearly rolls the monthly trajectories up into one row per simulated year.
// A trailing partial year is not produced since horizons are whole years.
func Yearly(r model.Result) []model.YearRow {
	years := len(r.Buy) / 12
	rows := make([]model.YearRow, 0, years)

	var prevBuyCost, prevRentCost float64
	for y := 1; y <= years; y++ {
		end := y*12 - 1
		buy := r.Buy[end]
		rent := r.Rent[end]

		row := model.YearRow{
			Year:            y,
			HouseValue:      buy.HouseValue,
			MortgageBalance: buy.MortgageBalance,
			Equity:          buy.Equity(),
			BuyPortfolio:    buy.Portfolio,
			BuyWealth:       buy.Wealth,
			RentPortfolio:   rent.Portfolio,
			BuyCost:         buy.CumulativeBuyCost - prevBuyCost,
			RentCost:        buy.CumulativeRentCost - prevRentCost,
		}
		for i := end - 11; i <= end; i++ {
			row.BuyInvested += r.Buy[i].Contribution
			row.RentInvested += r.Rent[i].Contribution
		}

		prevBuyCost = buy.CumulativeBuyCost
		prevRentCost = buy.CumulativeRentCost
		rows = append(rows, row)
	}
	return rows
}

// Series extracts one float per month with fn, for charts.
func Series(snaps []model.MonthlySnapshot, fn func(model.MonthlySnapshot) float64) []float64 {
	out := make([]float64, len(snaps))
	for i, s := range snaps {
		out[i] = fn(s)
	}
	return out
}

// Sample reduces values to at most n points by picking evenly spaced
// entries, always keeping the first and last.
func Sample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	if n == 1 {
		return []float64{values[len(values)-1]}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}
