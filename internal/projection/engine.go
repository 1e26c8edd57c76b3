// Package projection simulates the buy and rent scenarios month by month
// and derives the comparison figures from the two trajectories.
package projection

import (
	"math"

	"github.com/theirongolddev/buyrent/internal/model"
)

// tieTolerance is half a cent: terminal wealths closer than this tie.
const tieTolerance = 0.005

// Project runs both scenarios over p.Months() months.
//
// Each month the cheaper side invests the difference in outlays: the renter
// when buying costs more, the buyer when renting costs more. Contributions
// are added before the portfolio compounds. Nothing is ever withdrawn.
func Project(p model.Parameters) (model.Result, error) {
	if err := Validate(p); err != nil {
		return model.Result{}, err
	}

	n := p.Months()
	term := p.TermMonths()
	monthlyRate := p.MortgageInterestRateAnnual / 12
	payment := MonthlyPayment(p.Principal(), p.MortgageInterestRateAnnual, term)
	etfGrowth := 1 + p.ETFMonthlyYield

	res := model.Result{
		Params: p,
		Buy:    make([]model.MonthlySnapshot, 0, n),
		Rent:   make([]model.MonthlySnapshot, 0, n),
	}

	balance := p.Principal()
	house := p.HousePrice
	buyPortfolio := 0.0
	rentPortfolio := p.DownPayment // the renter keeps the down payment invested

	var buyCost, rentCost float64

	for month := 1; month <= n; month++ {
		// Maintenance is charged on the value held during the month.
		maintenance := house * p.HouseMaintenancePercentAnnual / 12

		mortgage := 0.0
		if month <= term && balance > 0 {
			interest := balance * monthlyRate
			balance = math.Max(0, balance-(payment-interest))
			if month == term {
				balance = 0
			}
			mortgage = payment
		}

		house *= 1 + p.HousePriceMonthlyYield

		buyOutlay := mortgage + maintenance
		rentOutlay := RentAt(p, month)
		buyCost += buyOutlay
		rentCost += rentOutlay

		buyIn, rentIn := splitSurplus(buyOutlay - rentOutlay)
		buyPortfolio = (buyPortfolio + buyIn) * etfGrowth
		rentPortfolio = (rentPortfolio + rentIn) * etfGrowth

		res.Buy = append(res.Buy, model.MonthlySnapshot{
			Month:              month,
			HouseValue:         house,
			MortgageBalance:    balance,
			Portfolio:          buyPortfolio,
			Outlay:             buyOutlay,
			Contribution:       buyIn,
			CumulativeBuyCost:  buyCost,
			CumulativeRentCost: rentCost,
			Wealth:             house - balance + buyPortfolio,
		})
		res.Rent = append(res.Rent, model.MonthlySnapshot{
			Month:              month,
			Portfolio:          rentPortfolio,
			Outlay:             rentOutlay,
			Contribution:       rentIn,
			CumulativeBuyCost:  buyCost,
			CumulativeRentCost: rentCost,
			Wealth:             rentPortfolio,
		})
	}

	res.Summary = summarize(p, payment, res.Buy, res.Rent)
	return res, nil
}

// splitSurplus assigns a month's surplus (buy outlay minus rent outlay) to
// the side that spent less. Exactly one of the returned values is non-zero
// unless the outlays are equal.
func splitSurplus(surplus float64) (buyIn, rentIn float64) {
	switch {
	case surplus > 0:
		return 0, surplus
	case surplus < 0:
		return -surplus, 0
	default:
		return 0, 0
	}
}

func summarize(p model.Parameters, payment float64, buy, rent []model.MonthlySnapshot) model.Summary {
	s := model.Summary{
		Months:            len(buy),
		MonthlyPayment:    payment,
		TotalRentInvested: p.DownPayment,
	}
	if len(buy) == 0 {
		return s
	}

	first := buy[0]
	last := buy[len(buy)-1]
	lastRent := rent[len(rent)-1]

	s.InitialBuyOutlay = first.Outlay
	s.FinalHouseValue = last.HouseValue
	s.FinalBalance = last.MortgageBalance
	s.FinalEquity = last.Equity()
	s.FinalBuyPortfolio = last.Portfolio
	s.FinalBuyWealth = last.Wealth
	s.FinalRentPortfolio = lastRent.Portfolio
	s.WealthDifference = s.FinalBuyWealth - s.FinalRentPortfolio
	s.TotalBuyCost = last.CumulativeBuyCost
	s.TotalRentCost = last.CumulativeRentCost

	for i := range buy {
		s.TotalBuyInvested += buy[i].Contribution
		s.TotalRentInvested += rent[i].Contribution
	}

	switch {
	case math.Abs(s.WealthDifference) < tieTolerance:
		s.Winner = model.WinnerTie
	case s.WealthDifference > 0:
		s.Winner = model.WinnerBuy
	default:
		s.Winner = model.WinnerRent
	}

	s.BreakevenMonth = breakeven(buy, rent)
	return s
}
