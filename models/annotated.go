package models

// Label is the qualitative verdict on a listing's asking price.
type Label string

const (
	LabelBargain       Label = "割安"
	LabelSlightBargain Label = "やや割安"
	LabelFair          Label = "妥当"
	LabelSlightRipoff  Label = "やや割高"
	LabelRipoff        Label = "割高"
)

// AnnotatedListing is a JoinedRow enriched with house resolution and
// fairness metrics. The derived pricing fields are all nil together
// when the house could not be resolved or the check-in date could not
// be parsed; the row still flows through the pipeline.
type AnnotatedListing struct {
	JoinedRow

	HouseID             HouseID   `json:"houseId,omitempty"`
	Area                Area      `json:"area,omitempty"`
	Capacity            *Capacity `json:"capacity,omitempty"`
	BaselinePerNightJpy *int      `json:"baselinePerNightJpy,omitempty"`
	FairPerNightJpy     *int      `json:"fairPerNightJpy,omitempty"`
	ActualPerNightJpy   *int      `json:"actualPerNightJpy,omitempty"`
	DiscountPct         *int      `json:"discountPct,omitempty"` // positive = undervalued
	Label               Label     `json:"label,omitempty"`
	MaxBidEth25Off      *float64  `json:"maxBidEth25off,omitempty"`
	OfficialURL         string    `json:"officialUrl,omitempty"`
	OfficialThumbURL    string    `json:"officialThumbUrl,omitempty"`
}

// AnnotatedWithCount is the best listing of a token group plus the
// number of simultaneous listings it was selected from.
type AnnotatedWithCount struct {
	AnnotatedListing
	ListingsCount int `json:"listingsCount"`
}
