package domain

import (
	"errors"
	"testing"
)

func TestResolveCountry_Aliases(t *testing.T) {
	// разные написания одной страны должны сходиться к одному коду
	inputs := []string{"US", "us", "usa", "united_states", "United States"}
	for _, in := range inputs {
		code, err := ResolveCountry(in)
		if err != nil {
			t.Fatalf("ResolveCountry(%q) error = %v", in, err)
		}
		if code != "US" {
			t.Errorf("ResolveCountry(%q) = %q, want US", in, code)
		}
	}

	code, err := ResolveCountry("united_kingdom")
	if err != nil || code != "GB" {
		t.Errorf("ResolveCountry(united_kingdom) = %q, %v, want GB", code, err)
	}
}

func TestResolveCountry_Unsupported(t *testing.T) {
	for _, in := range []string{"ZZ", "atlantis", ""} {
		if _, err := ResolveCountry(in); !errors.Is(err, ErrUnsupportedCountry) {
			t.Errorf("ResolveCountry(%q) error = %v, want ErrUnsupportedCountry", in, err)
		}
	}
}

func TestDailyTrendName(t *testing.T) {
	if got := DailyTrendName("US"); got != "united_states" {
		t.Errorf("DailyTrendName(US) = %q", got)
	}
	if got := DailyTrendName("JP"); got != "japan" {
		t.Errorf("DailyTrendName(JP) = %q", got)
	}
}

func TestSupportedCountries_Sorted(t *testing.T) {
	codes := SupportedCountries()
	if len(codes) == 0 {
		t.Fatal("SupportedCountries() returned no codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("SupportedCountries() not sorted: %v", codes)
		}
	}
}
