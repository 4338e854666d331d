package refdata

import (
	"testing"

	"FXLens/internal/domain/models"
)

func TestCurrencyCodesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Currencies {
		if seen[c.Code] {
			t.Fatalf("duplicate code %s", c.Code)
		}
		seen[c.Code] = true
	}
}

func TestPeggedCurrenciesHaveNoSeries(t *testing.T) {
	for _, c := range Currencies {
		if c.Group == models.GroupGCC {
			if c.Series != "" {
				t.Errorf("%s: pegged currency has series %q", c.Code, c.Series)
			}
			if c.Spot <= 0 {
				t.Errorf("%s: pegged currency missing fixed spot", c.Code)
			}
		} else if c.Series == "" {
			t.Errorf("%s: floating currency missing series", c.Code)
		}
	}
}

func TestEveryCurrencyHasHistRatios(t *testing.T) {
	for _, c := range Currencies {
		if _, ok := HistRatiosFor(c.Code); !ok {
			t.Errorf("%s: no historical ratios", c.Code)
		}
	}
}

func TestFloatingCurrenciesHaveFallbacks(t *testing.T) {
	for _, c := range Currencies {
		if c.Pegged() {
			continue
		}
		if _, ok := SpotFallback(c.Code); !ok {
			t.Errorf("%s: no spot fallback", c.Code)
		}
		if _, ok := VolFallback(c.Code); !ok {
			t.Errorf("%s: no vol fallback", c.Code)
		}
	}
}

func TestFloatingCodesExcludesPegged(t *testing.T) {
	for _, code := range FloatingCodes() {
		def, ok := ByCode(code)
		if !ok {
			t.Fatalf("unknown code %s", code)
		}
		if def.Pegged() {
			t.Errorf("%s: pegged code in floating list", code)
		}
	}
}
