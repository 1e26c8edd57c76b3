package projection

import "testing"

func BenchmarkProject(b *testing.B) {
	p := referenceParams()
	p.SimulationYears = 40

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Project(p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkYearly(b *testing.B) {
	res, err := Project(referenceParams())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Yearly(res)
	}
}

func BenchmarkSweep(b *testing.B) {
	p := referenceParams()
	values := Steps(0.005, 0.06, 12)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Sweep(p, "mortgage_interest_rate_annual", values); err != nil {
			b.Fatal(err)
		}
	}
}
