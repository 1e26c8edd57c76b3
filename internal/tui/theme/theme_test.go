package theme

import "testing"

func TestEveryThemeColorsBothSides(t *testing.T) {
	for _, th := range All {
		if th.Buy == "" || th.Rent == "" || th.Loss == "" {
			t.Errorf("%s: missing series color", th.Name)
		}
		if th.Buy == th.Rent {
			t.Errorf("%s: buy and rent share color %s", th.Name, th.Buy)
		}
	}
}

func TestLead(t *testing.T) {
	th := ByName("tokyo-night")
	if th.Lead(10) != th.Buy || th.Lead(-10) != th.Rent || th.Lead(0) != th.TextMuted {
		t.Fatal("Lead picks the wrong side")
	}
}

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("nope"); got.Name != FlexokiDark.Name {
		t.Fatalf("ByName(nope) = %s, want %s", got.Name, FlexokiDark.Name)
	}
	if Valid("nope") || !Valid("terminal") {
		t.Fatal("Valid disagrees with All")
	}
}
