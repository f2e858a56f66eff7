package houses

import (
	"testing"

	"keywatch/models"
)

func TestResolveHouseID(t *testing.T) {
	cases := []struct {
		raw  string
		want models.HouseID
		ok   bool
	}{
		{"+DESK FUKUOKA", DeskFukuoka, true},
		{"+CHEF FUKUOKA", ChefFukuoka, true},
		{"+ATELIER FUKUOKA", AtelierFukuoka, true},
		{"BASE S KITAKARUIZAWA", BaseSKitaKaruizawa, true},
		{"BASE S KITA-KARUIZAWA", BaseSKitaKaruizawa, true},
		{"AOSHIMA", AoshimaExclusive, true},
		{"MASTERPIECE", AoshimaExclusive, true},
		{"+chef  fukuoka", ChefFukuoka, true},    // case and double space
		{"  +Desk\tFukuoka ", DeskFukuoka, true}, // mixed whitespace
		{"", "", false},
		{"SETOUCHI", "", false},
		{"EARTH ISHIGAKI", "", false},
	}
	for _, tc := range cases {
		got, ok := ResolveHouseID(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ResolveHouseID(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveHouseID_RuleOrder(t *testing.T) {
	// DESK wins over the AOSHIMA fallback when both could match.
	got, ok := ResolveHouseID("DESK AOSHIMA")
	if !ok || got != DeskFukuoka {
		t.Fatalf("got (%q, %v), want DESK first", got, ok)
	}
}

func TestTable_CopiesAreIndependent(t *testing.T) {
	a := Table()
	h := a[ChefFukuoka]
	h.BaselinePerNightJpy = 1
	a[ChefFukuoka] = h

	b := Table()
	if b[ChefFukuoka].BaselinePerNightJpy != 180000 {
		t.Fatal("Table must return a fresh copy")
	}
}

func TestDefaultPricingConfig_Clone(t *testing.T) {
	cfg := DefaultPricingConfig()
	clone := cfg.Clone()
	clone.EthJpy = 1
	clone.DowFactor["Fri"] = 99
	clone.MonthFactor[AreaFukuoka]["10"] = 99
	clone.LeadtimeFactor[0].Factor = 99

	if cfg.EthJpy != 660000 {
		t.Fatal("clone mutated the source EthJpy")
	}
	if cfg.DowFactor["Fri"] != 1.15 {
		t.Fatal("clone shares the dow map")
	}
	if cfg.MonthFactor[AreaFukuoka]["10"] != 1.1 {
		t.Fatal("clone shares the month map")
	}
	if cfg.LeadtimeFactor[0].Factor != 0.8 {
		t.Fatal("clone shares the leadtime slice")
	}
}
