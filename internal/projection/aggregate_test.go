package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/buyrent/internal/model"
)

func wealthSeries(buy, rent []float64) model.Result {
	var r model.Result
	for i := range buy {
		r.Buy = append(r.Buy, model.MonthlySnapshot{Month: i + 1, Wealth: buy[i]})
		r.Rent = append(r.Rent, model.MonthlySnapshot{Month: i + 1, Wealth: rent[i]})
	}
	return r
}

func TestBreakeven(t *testing.T) {
	tests := []struct {
		name string
		buy  []float64
		rent []float64
		want int
	}{
		{"never", []float64{1, 2, 3}, []float64{2, 3, 4}, 0},
		{"always", []float64{5, 6, 7}, []float64{1, 2, 3}, 1},
		{"crosses once", []float64{1, 2, 5, 6}, []float64{3, 3, 4, 4}, 3},
		{"crosses back and forth", []float64{5, 1, 5, 5}, []float64{1, 2, 1, 1}, 3},
		{"ends below", []float64{5, 5, 1}, []float64{1, 1, 2}, 0},
		{"equal counts", []float64{1, 2, 2}, []float64{2, 2, 2}, 2},
		{"empty", nil, nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Breakeven(wealthSeries(tc.buy, tc.rent)); got != tc.want {
				t.Fatalf("Breakeven = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestYearly(t *testing.T) {
	p := referenceParams()
	p.RentIncreaseAnnual = 0.015
	res := mustProject(t, p)
	rows := Yearly(res)

	if len(rows) != p.SimulationYears {
		t.Fatalf("got %d rows, want %d", len(rows), p.SimulationYears)
	}

	var buyCost, rentCost, rentInvested float64
	for i, row := range rows {
		if row.Year != i+1 {
			t.Fatalf("row %d has Year %d", i, row.Year)
		}
		buyCost += row.BuyCost
		rentCost += row.RentCost
		rentInvested += row.RentInvested
	}
	s := res.Summary
	if math.Abs(buyCost-s.TotalBuyCost) > 1e-6 {
		t.Fatalf("yearly buy cost sums to %.2f, want %.2f", buyCost, s.TotalBuyCost)
	}
	if math.Abs(rentCost-s.TotalRentCost) > 1e-6 {
		t.Fatalf("yearly rent cost sums to %.2f, want %.2f", rentCost, s.TotalRentCost)
	}
	if math.Abs(rentInvested+p.DownPayment-s.TotalRentInvested) > 1e-6 {
		t.Fatalf("yearly rent invested sums to %.2f, want %.2f", rentInvested+p.DownPayment, s.TotalRentInvested)
	}

	last := rows[len(rows)-1]
	if last.BuyWealth != s.FinalBuyWealth || last.RentPortfolio != s.FinalRentPortfolio {
		t.Fatalf("last row %+v does not match summary %+v", last, s)
	}
	// Year 2 rent is the escalated rent for all twelve months.
	if want := 12 * 2_500 * 1.015; math.Abs(rows[1].RentCost-want) > 1e-6 {
		t.Fatalf("year 2 rent cost = %.4f, want %.4f", rows[1].RentCost, want)
	}
}

func TestSample(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got := Sample(values, 3)
	want := []float64{0, 5, 10}
	if len(got) != len(want) {
		t.Fatalf("Sample len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := Sample(values, 50); len(got) != len(values) {
		t.Fatalf("Sample grew or shrank a short series: %d", len(got))
	}
	if got := Sample(values, 1); len(got) != 1 || got[0] != 10 {
		t.Fatalf("Sample(1) = %v, want [10]", got)
	}
}

func TestSweep(t *testing.T) {
	base := referenceParams()
	rents := Steps(1_500, 4_500, 4)
	points, err := Sweep(base, "monthly_rent", rents)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}
	if points[0].Value != 1_500 || points[3].Value != 4_500 {
		t.Fatalf("sweep values = %v .. %v", points[0].Value, points[3].Value)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Summary.FinalRentPortfolio > points[i-1].Summary.FinalRentPortfolio {
			t.Fatalf("higher rent grew the rent portfolio at %v", points[i].Value)
		}
	}
}

func TestSweep_WholeYearsAreRounded(t *testing.T) {
	base := referenceParams()
	points, err := Sweep(base, "mortgage_term_years", Steps(10, 30, 4))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	want := []float64{10, 17, 23, 30}
	for i, pt := range points {
		if pt.Value != want[i] {
			t.Fatalf("point %d value = %v, want %v", i, pt.Value, want[i])
		}
		p := base
		p.MortgageTermYears = int(want[i])
		if got := pt.Summary.MonthlyPayment; got != MonthlyPayment(p.Principal(), p.MortgageInterestRateAnnual, p.TermMonths()) {
			t.Fatalf("point %d payment = %.2f, not the %v-year payment", i, got, want[i])
		}
	}
}

func TestSweep_Errors(t *testing.T) {
	base := referenceParams()

	if _, err := Sweep(base, "colour", []float64{1}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("unknown field error = %v, want ErrInvalidParameter", err)
	}
	if _, err := Sweep(base, "down_payment", []float64{100_000, 2_000_000}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("invalid point error = %v, want ErrInvalidParameter", err)
	}
	if _, err := Sweep(base, "simulation_years", []float64{1e30}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("huge horizon error = %v, want ErrInvalidParameter", err)
	}
}

func TestRateConversionRoundTrip(t *testing.T) {
	for _, annual := range []float64{0, 0.0373, 0.1078} {
		m := MonthlyRateFromAnnual(annual)
		if back := AnnualRateFromMonthly(m); math.Abs(back-annual) > 1e-12 {
			t.Fatalf("round trip of %v gave %v", annual, back)
		}
	}
}
