package models

// HouseID is the canonical identifier of a physical house, e.g.
// "+CHEF_FUKUOKA" or "BASE_S_KITA_KARUIZAWA".
type HouseID string

// Area groups houses by location for seasonal pricing, e.g. "FUKUOKA".
type Area string

// Capacity holds guest counts; unpublished values stay nil.
type Capacity struct {
	Standard     *int `json:"standard" yaml:"standard"`
	Max          *int `json:"max" yaml:"max"`
	CoSleepingMax *int `json:"coSleepingMax" yaml:"co_sleeping_max"`
}

// HouseInfo is seed reference data for one house. Read-only except for
// the explicit thumbnail hydration step.
type HouseInfo struct {
	ID                  HouseID  `json:"id" yaml:"id"`
	DisplayName         string   `json:"displayName" yaml:"display_name"`
	Area                Area     `json:"area" yaml:"area"`
	Capacity            Capacity `json:"capacity" yaml:"capacity"`
	BaselinePerNightJpy int      `json:"baselinePerNightJpy" yaml:"baseline_per_night_jpy"`
	BaselineReason      string   `json:"baselineReason,omitempty" yaml:"baseline_reason"`
	OfficialURL         string   `json:"officialUrl" yaml:"official_url"`
	OfficialThumbURL    string   `json:"officialThumbUrl,omitempty" yaml:"official_thumb_url"`
}

// LeadtimeStep is one threshold of the booking lead-time factor table.
// Steps are matched in ascending days_lt order with a strict "days
// until check-in < days_lt" test.
type LeadtimeStep struct {
	DaysLT int     `json:"days_lt" yaml:"days_lt"`
	Factor float64 `json:"factor" yaml:"factor"`
}

// PricingConfig holds the multiplicative factor tables of the fair-price
// model plus the ETH/JPY conversion rate. Treated as immutable per call;
// use Clone before overriding the FX rate.
type PricingConfig struct {
	EthJpy         float64                    `json:"ethJpy" yaml:"eth_jpy"`
	MonthFactor    map[Area]map[string]float64 `json:"monthFactor" yaml:"month_factor"`     // month "1".."12"
	DowFactor      map[string]float64          `json:"dowFactor" yaml:"dow_factor"`         // "Mon".."Sun"
	LongStayFactor map[string]float64          `json:"longStayFactor" yaml:"long_stay_factor"` // nights "1".."30"
	LeadtimeFactor []LeadtimeStep              `json:"leadtimeFactor" yaml:"leadtime_factor"`
}

// Clone returns a deep copy safe to mutate (e.g. for a per-request FX
// override) without touching the shared config.
func (c *PricingConfig) Clone() *PricingConfig {
	out := &PricingConfig{
		EthJpy:         c.EthJpy,
		MonthFactor:    make(map[Area]map[string]float64, len(c.MonthFactor)),
		DowFactor:      make(map[string]float64, len(c.DowFactor)),
		LongStayFactor: make(map[string]float64, len(c.LongStayFactor)),
		LeadtimeFactor: append([]LeadtimeStep(nil), c.LeadtimeFactor...),
	}
	for area, months := range c.MonthFactor {
		m := make(map[string]float64, len(months))
		for k, v := range months {
			m[k] = v
		}
		out.MonthFactor[area] = m
	}
	for k, v := range c.DowFactor {
		out.DowFactor[k] = v
	}
	for k, v := range c.LongStayFactor {
		out.LongStayFactor[k] = v
	}
	return out
}
