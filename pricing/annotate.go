package pricing

import (
	"sort"
	"time"

	"keywatch/houses"
	"keywatch/models"
)

// missingDiscount sorts rows without a computable discount to the end.
const missingDiscount = -999

const defaultTargetDiscountRate = 0.25

// AnnotateOptions tunes the annotation pass. Zero values fall back to
// the seed config, seed house table, a 0.25 target discount and the
// current time.
type AnnotateOptions struct {
	Config             *models.PricingConfig
	Houses             map[models.HouseID]models.HouseInfo // per-house overrides
	TargetDiscountRate float64
	Now                time.Time
}

// AnnotateListingsWithFairness resolves each row's house and computes
// the fairness metrics. Rows whose house or check-in date cannot be
// resolved pass through with the pricing fields unset; the actual
// nightly rate is still derived from the asking price alone.
func AnnotateListingsWithFairness(rows []models.JoinedRow, opts AnnotateOptions) []models.AnnotatedListing {
	cfg := opts.Config
	if cfg == nil {
		cfg = houses.DefaultPricingConfig()
	}
	table := houses.Table()
	for id, h := range opts.Houses {
		table[id] = h
	}
	targetDiscount := opts.TargetDiscountRate
	if targetDiscount == 0 {
		targetDiscount = defaultTargetDiscountRate
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := make([]models.AnnotatedListing, 0, len(rows))
	for _, row := range rows {
		a := models.AnnotatedListing{JoinedRow: row}

		var houseInfo *models.HouseInfo
		if id, ok := houses.ResolveHouseID(row.House); ok {
			a.HouseID = id
			if h, found := table[id]; found {
				houseInfo = &h
				a.Area = h.Area
				a.Capacity = &h.Capacity
				a.BaselinePerNightJpy = intPtr(h.BaselinePerNightJpy)
				a.OfficialURL = h.OfficialURL
				a.OfficialThumbURL = h.OfficialThumbURL
			}
		}

		nights := 1
		if row.Nights != nil {
			nights = *row.Nights
		}

		if checkin, ok := ParseCheckinDateJst(row.CheckinJst); ok && houseInfo != nil {
			fair := ComputeFairPerNightJpy(*houseInfo, checkin, nights, now, cfg)
			a.FairPerNightJpy = intPtr(fair)
			a.MaxBidEth25Off = ComputeMaxBidEth(fair, nights, targetDiscount, cfg)
		}
		if row.PriceEth != 0 {
			a.ActualPerNightJpy = intPtr(ComputeActualPerNightJpy(row.PriceEth, nights, cfg))
		}
		if a.ActualPerNightJpy != nil && a.FairPerNightJpy != nil {
			a.DiscountPct = ComputeDiscountPct(*a.ActualPerNightJpy, *a.FairPerNightJpy)
		}
		a.Label = LabelByDiscount(a.DiscountPct)

		out = append(out, a)
	}
	return out
}

func intPtr(n int) *int { return &n }

// Groups is an insertion-ordered grouping of annotated rows.
type Groups struct {
	Keys  []string
	ByKey map[string][]models.AnnotatedListing
}

func (g *Groups) add(key string, row models.AnnotatedListing) {
	if _, seen := g.ByKey[key]; !seen {
		g.Keys = append(g.Keys, key)
	}
	g.ByKey[key] = append(g.ByKey[key], row)
}

// GroupByHouse groups rows by resolved house id, falling back to the
// raw house text and then "UNKNOWN".
func GroupByHouse(rows []models.AnnotatedListing) *Groups {
	g := &Groups{ByKey: make(map[string][]models.AnnotatedListing)}
	for _, r := range rows {
		key := string(r.HouseID)
		if key == "" {
			key = r.House
		}
		if key == "" {
			key = "UNKNOWN"
		}
		g.add(key, r)
	}
	return g
}

// GroupByToken groups rows by "{contract}:{tokenId}".
func GroupByToken(rows []models.AnnotatedListing) *Groups {
	g := &Groups{ByKey: make(map[string][]models.AnnotatedListing)}
	for _, r := range rows {
		g.add(r.TokenKey(), r)
	}
	return g
}

func discountOrMin(pct *int) int {
	if pct == nil {
		return missingDiscount
	}
	return *pct
}

// PickMostUndervalued returns the row with the highest discount,
// treating a missing discount as the worst possible one. Ties keep the
// earliest row. The caller guarantees at least one element.
func PickMostUndervalued(rows []models.AnnotatedListing) models.AnnotatedListing {
	best := rows[0]
	for _, r := range rows[1:] {
		if discountOrMin(r.DiscountPct) > discountOrMin(best.DiscountPct) {
			best = r
		}
	}
	return best
}

// SelectBestPerToken collapses simultaneous listings of the same token
// into the single most undervalued one, tagged with the group size.
// Output order is first-seen token order, not discount order.
func SelectBestPerToken(rows []models.AnnotatedListing) []models.AnnotatedWithCount {
	groups := GroupByToken(rows)
	picked := make([]models.AnnotatedWithCount, 0, len(groups.Keys))
	for _, key := range groups.Keys {
		arr := groups.ByKey[key]
		picked = append(picked, models.AnnotatedWithCount{
			AnnotatedListing: PickMostUndervalued(arr),
			ListingsCount:    len(arr),
		})
	}
	return picked
}

// SortByDiscountDesc returns a copy sorted by discount, best first;
// rows without a discount go last. The sort is stable.
func SortByDiscountDesc[T any](arr []T, discount func(T) *int) []T {
	out := append([]T(nil), arr...)
	sort.SliceStable(out, func(i, j int) bool {
		return discountOrMin(discount(out[i])) > discountOrMin(discount(out[j]))
	})
	return out
}

// SortByPriceAsc returns a copy sorted by asking price, cheapest first.
func SortByPriceAsc[T any](arr []T, price func(T) float64) []T {
	out := append([]T(nil), arr...)
	sort.SliceStable(out, func(i, j int) bool {
		return price(out[i]) < price(out[j])
	})
	return out
}
