package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{1234.567, "USD", "$1,234.57"},
		{0, "USD", "$0.00"},
		{4436.78, "usd", "$4,436.78"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.code); got != tt.want {
			t.Fatalf("FormatMoney(%v, %q) = %q, want %q", tt.amount, tt.code, got, tt.want)
		}
	}
}

func TestFormatMoneyWhole(t *testing.T) {
	if got := FormatMoneyWhole(1234.567, "USD"); got != "$1,235" {
		t.Fatalf("FormatMoneyWhole = %q, want $1,235", got)
	}
	if got := FormatMoneyWhole(-2500, "USD"); got != "-$2,500" {
		t.Fatalf("FormatMoneyWhole(-2500) = %q", got)
	}
}

func TestFormatMoneyCompact(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{1_234_567, "USD", "$1.2M"},
		{-2_500, "USD", "-$2.5K"},
		{800, "USD", "$800"},
	}
	for _, tt := range tests {
		if got := FormatMoneyCompact(tt.amount, tt.code); got != tt.want {
			t.Errorf("FormatMoneyCompact(%v, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
		}
	}
	if got, whole := FormatMoneyCompact(5_000, "CHF"), FormatMoneyWhole(5_000, "CHF"); !sameSymbolSide(got, whole) {
		t.Errorf("CHF compact %q places the symbol unlike %q", got, whole)
	}
}

func sameSymbolSide(a, b string) bool {
	digitFirst := func(s string) bool { return s != "" && s[0] >= '0' && s[0] <= '9' }
	return digitFirst(a) == digitFirst(b)
}

func TestToMinorUnknownCurrencyFallsBack(t *testing.T) {
	if got := ToMinor(12.345, "XXQ"); got != 1235 {
		t.Fatalf("ToMinor = %d, want 1235", got)
	}
	if got := RoundCents(4436.780783, ""); got != 4436.78 {
		t.Fatalf("RoundCents = %v, want 4436.78", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1500, "USD"); got != "+$1,500" {
		t.Fatalf("FormatDelta(1500) = %q", got)
	}
	if got := FormatDelta(-1500, "USD"); got != "-$1,500" {
		t.Fatalf("FormatDelta(-1500) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		1234567:   "1,234,567",
		-1234567:  "-1,234,567",
		100000000: "100,000,000",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := map[float64]string{
		12:            "12",
		1234:          "1.2K",
		1_234_567:     "1.2M",
		2_500_000_000: "2.5B",
		-45_000:       "-45.0K",
	}
	for in, want := range tests {
		if got := FormatCompact(in); got != want {
			t.Fatalf("FormatCompact(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.0125); got != "1.25%" {
		t.Fatalf("FormatPercent = %q", got)
	}
}

func TestFormatMonths(t *testing.T) {
	tests := map[int]string{
		0:  "never",
		-3: "never",
		5:  "5m",
		24: "2y",
		27: "2y 3m",
	}
	for in, want := range tests {
		if got := FormatMonths(in); got != want {
			t.Fatalf("FormatMonths(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestKnownCurrency(t *testing.T) {
	if !KnownCurrency("chf") || !KnownCurrency(" EUR ") {
		t.Fatal("CHF and EUR should be known")
	}
	if KnownCurrency("XXQ") {
		t.Fatal("XXQ should be unknown")
	}
}
