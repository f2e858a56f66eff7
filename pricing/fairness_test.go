package pricing

import (
	"math"
	"testing"
	"time"

	"keywatch/houses"
	"keywatch/models"
)

func testHouse(baseline int) models.HouseInfo {
	return models.HouseInfo{
		ID:                  "+CHEF_FUKUOKA",
		DisplayName:         "+CHEF FUKUOKA",
		Area:                "FUKUOKA",
		BaselinePerNightJpy: baseline,
	}
}

// neutralConfig has every factor at 1.0 (via the documented defaults
// for absent table entries).
func neutralConfig() *models.PricingConfig {
	return &models.PricingConfig{EthJpy: 660000}
}

func jstDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, JST)
}

func TestComputeFairPerNightJpy_AllFactorsOneEqualsBaseline(t *testing.T) {
	house := testHouse(180000)
	now := jstDate(2025, 9, 1)
	got := ComputeFairPerNightJpy(house, jstDate(2025, 10, 10), 1, now, neutralConfig())
	if got != 180000 {
		t.Fatalf("fair = %d, want baseline 180000", got)
	}
}

func TestComputeFairPerNightJpy_Deterministic(t *testing.T) {
	house := testHouse(180000)
	cfg := houses.DefaultPricingConfig()
	now := jstDate(2025, 9, 1)
	a := ComputeFairPerNightJpy(house, jstDate(2025, 10, 10), 2, now, cfg)
	b := ComputeFairPerNightJpy(house, jstDate(2025, 10, 10), 2, now, cfg)
	if a != b {
		t.Fatalf("not deterministic: %d vs %d", a, b)
	}
}

func TestComputeFairPerNightJpy_KnownScenario(t *testing.T) {
	// 2025-10-10 is a Friday; FUKUOKA October factor 1.1, Friday 1.15,
	// one night 1.0, 39 days of lead time 1.0.
	house := testHouse(180000)
	cfg := houses.DefaultPricingConfig()
	now := jstDate(2025, 9, 1)
	got := ComputeFairPerNightJpy(house, jstDate(2025, 10, 10), 1, now, cfg)
	want := int(math.Round(180000 * 1.1 * 1.15))
	if got != want {
		t.Fatalf("fair = %d, want %d", got, want)
	}
	if want != 227700 {
		t.Fatalf("pinned value drifted: %d", want)
	}
}

func TestComputeFairPerNightJpy_DowAverage(t *testing.T) {
	house := testHouse(100000)
	cfg := neutralConfig()
	cfg.DowFactor = map[string]float64{
		"Mon": 0.9, "Tue": 0.9, "Wed": 0.95, "Thu": 1.0,
		"Fri": 1.15, "Sat": 1.25, "Sun": 1.05,
	}
	now := jstDate(2025, 9, 1)
	// Friday + Saturday: (1.15 + 1.25) / 2 = 1.2
	got := ComputeFairPerNightJpy(house, jstDate(2025, 10, 10), 2, now, cfg)
	if got != 120000 {
		t.Fatalf("fair = %d, want 120000", got)
	}
}

func TestLeadFactor_Thresholds(t *testing.T) {
	cfg := houses.DefaultPricingConfig()
	house := testHouse(100000)
	now := jstDate(2025, 9, 1)

	cases := []struct {
		checkin time.Time
		want    int
	}{
		{jstDate(2025, 9, 1), 80000},   // 0 days < 7 → 0.8
		{jstDate(2025, 9, 7), 80000},   // 6 days < 7 → 0.8
		{jstDate(2025, 9, 8), 90000},   // 7 days < 14 → 0.9
		{jstDate(2025, 9, 20), 95000},  // 19 days < 30 → 0.95
		{jstDate(2026, 8, 1), 100000},  // within a year → 1.0
		{jstDate(2027, 9, 1), 100000},  // beyond the table → last factor
	}
	base := neutralConfig()
	base.LeadtimeFactor = cfg.LeadtimeFactor
	for _, tc := range cases {
		got := ComputeFairPerNightJpy(house, tc.checkin, 1, now, base)
		if got != tc.want {
			t.Fatalf("checkin %s: fair = %d, want %d", tc.checkin.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestComputeFairBreakdown_MatchesFair(t *testing.T) {
	house := testHouse(180000)
	cfg := houses.DefaultPricingConfig()
	now := jstDate(2025, 9, 1)
	checkin := jstDate(2025, 10, 10)

	fair := ComputeFairPerNightJpy(house, checkin, 2, now, cfg)
	b := ComputeFairBreakdown(house, checkin, 2, now, cfg)
	if b.FairPerNightJpy != fair {
		t.Fatalf("breakdown fair %d != fair %d", b.FairPerNightJpy, fair)
	}
	if len(b.DowFactors) != 2 {
		t.Fatalf("expected 2 dow lines, got %d", len(b.DowFactors))
	}
	if b.DowFactors[0].DateISO != "2025-10-10" || b.DowFactors[0].Dow != "Fri" || b.DowFactors[0].DowJP != "金" {
		t.Fatalf("unexpected first dow line %+v", b.DowFactors[0])
	}
	if b.DowFactors[1].Dow != "Sat" || b.DowFactors[1].DowJP != "土" {
		t.Fatalf("unexpected second dow line %+v", b.DowFactors[1])
	}
	if b.Month.Month != 10 || b.Month.Factor != 1.1 {
		t.Fatalf("unexpected month term %+v", b.Month)
	}
	if b.Leadtime.DaysUntil != 39 {
		t.Fatalf("daysUntil = %d, want 39", b.Leadtime.DaysUntil)
	}
}

func TestComputeActualPerNightJpy(t *testing.T) {
	cfg := neutralConfig()
	if got := ComputeActualPerNightJpy(1.0, 1, cfg); got != 660000 {
		t.Fatalf("actual = %d, want 660000", got)
	}
	if got := ComputeActualPerNightJpy(1.0, 3, cfg); got != 220000 {
		t.Fatalf("actual = %d, want 220000", got)
	}
	if got := ComputeActualPerNightJpy(1.0, 0, cfg); got != 0 {
		t.Fatalf("zero nights must yield 0, got %d", got)
	}
}

func TestComputeDiscountPct(t *testing.T) {
	if got := ComputeDiscountPct(50000, 100000); got == nil || *got != 50 {
		t.Fatalf("discount = %v, want 50", got)
	}
	if got := ComputeDiscountPct(130000, 100000); got == nil || *got != -30 {
		t.Fatalf("discount = %v, want -30", got)
	}
	if got := ComputeDiscountPct(0, 100000); got != nil {
		t.Fatalf("zero actual must be nil, got %d", *got)
	}
	if got := ComputeDiscountPct(100000, 0); got != nil {
		t.Fatalf("zero fair must be nil, got %d", *got)
	}
}

func TestLabelByDiscount_Boundaries(t *testing.T) {
	cases := []struct {
		pct  int
		want models.Label
	}{
		{30, models.LabelBargain},
		{29, models.LabelSlightBargain},
		{15, models.LabelSlightBargain},
		{14, models.LabelFair},
		{-5, models.LabelFair},
		{-6, models.LabelSlightRipoff},
		{-30, models.LabelSlightRipoff},
		{-31, models.LabelRipoff},
	}
	for _, tc := range cases {
		pct := tc.pct
		if got := LabelByDiscount(&pct); got != tc.want {
			t.Fatalf("label(%d) = %q, want %q", tc.pct, got, tc.want)
		}
	}
	if got := LabelByDiscount(nil); got != "" {
		t.Fatalf("label(nil) = %q, want empty", got)
	}
}

func TestComputeMaxBidEth(t *testing.T) {
	cfg := neutralConfig()
	got := ComputeMaxBidEth(100000, 2, 0.25, cfg)
	if got == nil {
		t.Fatal("expected a bid")
	}
	// 100000 × 2 × 0.75 / 660000, rounded to 6 decimals
	if math.Abs(*got-0.227273) > 1e-9 {
		t.Fatalf("maxBid = %v, want 0.227273", *got)
	}
	if ComputeMaxBidEth(0, 2, 0.25, cfg) != nil {
		t.Fatal("zero fair must yield nil")
	}
	if ComputeMaxBidEth(100000, 0, 0.25, cfg) != nil {
		t.Fatal("zero nights must yield nil")
	}
	if ComputeMaxBidEth(100000, -1, 0.25, cfg) != nil {
		t.Fatal("negative nights must yield nil")
	}
}
