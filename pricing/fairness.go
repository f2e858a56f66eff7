package pricing

import (
	"math"
	"sort"
	"strconv"
	"time"

	"keywatch/models"
)

// ComputeFairPerNightJpy derives the model nightly JPY rate for a stay:
//
//	fair = round(baseline × S_month × D_dow_avg × L_nights × T_lead)
//
// S_month is the area's seasonal factor for the check-in month,
// D_dow_avg the mean day-of-week factor over the stay's JST nights,
// L_nights the length-of-stay factor and T_lead the booking lead-time
// factor relative to now. Deterministic for a fixed (house, checkin,
// nights, now, cfg).
func ComputeFairPerNightJpy(house models.HouseInfo, checkin time.Time, nights int, now time.Time, cfg *models.PricingConfig) int {
	fair := float64(house.BaselinePerNightJpy) *
		monthFactor(house.Area, checkin, cfg) *
		dowAvg(checkin, nights, cfg) *
		longStayFactor(nights, cfg) *
		leadFactor(daysUntil(checkin, now), cfg)
	return int(math.Round(fair))
}

// FairBreakdown exposes every intermediate term of the fair-price
// computation for audit display. Numerically identical to
// ComputeFairPerNightJpy.
type FairBreakdown struct {
	BaselinePerNightJpy int             `json:"baselinePerNightJpy"`
	Month               MonthTerm       `json:"month"`
	DowFactors          []DowFactorLine `json:"dowFactors"`
	DowAvg              float64         `json:"dowAvg"`
	LongStay            LongStayTerm    `json:"longStay"`
	Leadtime            LeadtimeTerm    `json:"leadtime"`
	FairPerNightJpy     int             `json:"fairPerNightJpy"`
}

type MonthTerm struct {
	Month  int         `json:"month"`
	Area   models.Area `json:"area"`
	Factor float64     `json:"factor"`
}

type DowFactorLine struct {
	DateISO string  `json:"dateIso"`
	Dow     string  `json:"dow"`
	DowJP   string  `json:"dowJp"`
	Factor  float64 `json:"factor"`
}

type LongStayTerm struct {
	Nights int     `json:"nights"`
	Factor float64 `json:"factor"`
}

type LeadtimeTerm struct {
	DaysUntil int     `json:"daysUntil"`
	Factor    float64 `json:"factor"`
}

// ComputeFairBreakdown runs the same computation as
// ComputeFairPerNightJpy and returns all intermediate terms.
func ComputeFairBreakdown(house models.HouseInfo, checkin time.Time, nights int, now time.Time, cfg *models.PricingConfig) FairBreakdown {
	lines := make([]DowFactorLine, 0, nights)
	for i := 0; i < nights; i++ {
		d := addDays(checkin, i)
		idx := jstDow(d)
		lines = append(lines, DowFactorLine{
			DateISO: dateIsoJst(d),
			Dow:     dowNames[idx],
			DowJP:   dowNamesJP[idx],
			Factor:  dowFactorAt(d, cfg),
		})
	}

	sMonth := monthFactor(house.Area, checkin, cfg)
	dDow := dowAvg(checkin, nights, cfg)
	lNights := longStayFactor(nights, cfg)
	du := daysUntil(checkin, now)
	tLead := leadFactor(du, cfg)

	fair := int(math.Round(float64(house.BaselinePerNightJpy) * sMonth * dDow * lNights * tLead))
	return FairBreakdown{
		BaselinePerNightJpy: house.BaselinePerNightJpy,
		Month:               MonthTerm{Month: int(checkin.In(JST).Month()), Area: house.Area, Factor: sMonth},
		DowFactors:          lines,
		DowAvg:              dDow,
		LongStay:            LongStayTerm{Nights: nights, Factor: lNights},
		Leadtime:            LeadtimeTerm{DaysUntil: du, Factor: tLead},
		FairPerNightJpy:     fair,
	}
}

// ComputeActualPerNightJpy converts the asking price to a nightly JPY
// rate. Zero nights is a degenerate input and yields 0, not an error.
func ComputeActualPerNightJpy(priceEth float64, nights int, cfg *models.PricingConfig) int {
	if nights == 0 {
		return 0
	}
	return int(math.Round(priceEth * cfg.EthJpy / float64(nights)))
}

// ComputeDiscountPct returns how far the actual nightly rate undercuts
// the fair one, in rounded percent. A zero actual or fair means "cannot
// compute" and yields nil rather than a fake ±100%.
func ComputeDiscountPct(actualPerNightJpy, fairPerNightJpy int) *int {
	if actualPerNightJpy == 0 || fairPerNightJpy == 0 {
		return nil
	}
	pct := (1 - float64(actualPerNightJpy)/float64(fairPerNightJpy)) * 100
	rounded := int(math.Round(pct))
	return &rounded
}

// LabelByDiscount buckets a discount percentage into a qualitative
// verdict. Buckets are inclusive on their lower bound, checked top-down.
func LabelByDiscount(pct *int) models.Label {
	if pct == nil {
		return ""
	}
	switch {
	case *pct >= 30:
		return models.LabelBargain
	case *pct >= 15:
		return models.LabelSlightBargain
	case *pct >= -5:
		return models.LabelFair
	case *pct >= -30:
		return models.LabelSlightRipoff
	default:
		return models.LabelRipoff
	}
}

// ComputeMaxBidEth suggests the highest bid, in ETH rounded to 6
// decimals, that still achieves the target discount off the fair total.
func ComputeMaxBidEth(fairPerNightJpy, nights int, targetDiscountRate float64, cfg *models.PricingConfig) *float64 {
	if fairPerNightJpy == 0 || nights <= 0 {
		return nil
	}
	maxJpy := float64(fairPerNightJpy*nights) * (1 - targetDiscountRate)
	maxEth := math.Round(maxJpy/cfg.EthJpy*1e6) / 1e6
	return &maxEth
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func monthFactor(area models.Area, checkin time.Time, cfg *models.PricingConfig) float64 {
	months, ok := cfg.MonthFactor[area]
	if !ok {
		return 1.0
	}
	f, ok := months[strconv.Itoa(int(checkin.In(JST).Month()))]
	if !ok {
		return 1.0
	}
	return f
}

func dowFactorAt(d time.Time, cfg *models.PricingConfig) float64 {
	f, ok := cfg.DowFactor[dowNames[jstDow(d)]]
	if !ok {
		return 1.0
	}
	return f
}

// dowAvg averages the day-of-week factors over the nights of the stay.
// A zero-night stay has no nights to average and contributes 0.
func dowAvg(checkin time.Time, nights int, cfg *models.PricingConfig) float64 {
	if nights <= 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < nights; i++ {
		sum += dowFactorAt(addDays(checkin, i), cfg)
	}
	return sum / float64(nights)
}

func longStayFactor(nights int, cfg *models.PricingConfig) float64 {
	f, ok := cfg.LongStayFactor[strconv.Itoa(clampInt(nights, 1, 30))]
	if !ok {
		return 1.0
	}
	return f
}

func daysUntil(checkin, now time.Time) int {
	days := int(math.Ceil(checkin.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// leadFactor picks the first ascending threshold with daysUntil strictly
// below it, falling back to the last entry's factor.
func leadFactor(daysUntil int, cfg *models.PricingConfig) float64 {
	if len(cfg.LeadtimeFactor) == 0 {
		return 1.0
	}
	steps := append([]models.LeadtimeStep(nil), cfg.LeadtimeFactor...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].DaysLT < steps[j].DaysLT })
	for _, s := range steps {
		if daysUntil < s.DaysLT {
			return s.Factor
		}
	}
	return steps[len(steps)-1].Factor
}
