package models

// JoinedRow is one listing joined with its token's trait metadata,
// normalized for the pricing pipeline. Immutable once created.
//
// House, Place, Nights and CheckinJst stay unset when the traits could
// not be recovered; that is a degraded row, not an error.
type JoinedRow struct {
	OrderHash    string `json:"orderHash"`
	Chain        string `json:"chain"`
	Contract     string `json:"contract"`
	TokenID      string `json:"tokenId"`
	PriceEth     float64 `json:"priceEth"`     // buyer-paid total
	SellerNetEth float64 `json:"sellerNetEth"` // consideration paid back to offerer
	FeesEth      float64 `json:"feesEth"`
	StartTimeIso string `json:"startTimeIso"`
	EndTimeIso   string `json:"endTimeIso"`
	House        string `json:"house,omitempty"`
	Place        string `json:"place,omitempty"`
	Nights       *int   `json:"nights,omitempty"`
	CheckinJst   string `json:"checkinJst,omitempty"` // JST calendar date, YYYY-MM-DD
	AssetURL     string `json:"openseaAssetUrl"`
}

// TokenKey returns the "{contract}:{tokenId}" grouping key.
func (r *JoinedRow) TokenKey() string {
	return r.Contract + ":" + r.TokenID
}
