package models

import (
	"encoding/json"
	"fmt"
)

// PriceCurrent is the asking price of a listing in minor units.
type PriceCurrent struct {
	Currency string `json:"currency"`
	Decimals int    `json:"decimals"`
	Value    string `json:"value"` // wei as decimal string
}

type ListingPrice struct {
	Current PriceCurrent `json:"current"`
}

// OfferItem identifies the asset being sold. Active listings carry
// exactly one offer item (the ERC-721 token).
type OfferItem struct {
	ItemType             int    `json:"itemType"`
	Token                string `json:"token"` // contract address
	IdentifierOrCriteria string `json:"identifierOrCriteria"`
	StartAmount          string `json:"startAmount"`
	EndAmount            string `json:"endAmount"`
}

// ConsiderationItem is one payout leg of the order: the offerer's net
// proceeds or a fee recipient's cut.
type ConsiderationItem struct {
	ItemType             int    `json:"itemType"`
	Token                string `json:"token"`
	IdentifierOrCriteria string `json:"identifierOrCriteria"`
	StartAmount          string `json:"startAmount"`
	EndAmount            string `json:"endAmount"`
	Recipient            string `json:"recipient"`
}

type ProtocolParameters struct {
	Offerer                         string              `json:"offerer"`
	Offer                           []OfferItem         `json:"offer"`
	Consideration                   []ConsiderationItem `json:"consideration"`
	StartTime                       string              `json:"startTime"` // unix seconds as string
	EndTime                         string              `json:"endTime"`
	OrderType                       int                 `json:"orderType"`
	Zone                            string              `json:"zone"`
	ZoneHash                        string              `json:"zoneHash"`
	Salt                            string              `json:"salt"`
	ConduitKey                      string              `json:"conduitKey"`
	TotalOriginalConsiderationItems int                 `json:"totalOriginalConsiderationItems"`
	Counter                         json.Number         `json:"counter"`
}

type ProtocolData struct {
	Parameters ProtocolParameters `json:"parameters"`
	Signature  *string            `json:"signature"`
}

// Listing is an immutable marketplace order snapshot.
type Listing struct {
	OrderHash       string       `json:"order_hash"`
	Chain           string       `json:"chain"`
	ProtocolAddress string       `json:"protocol_address"`
	Price           ListingPrice `json:"price"`
	ProtocolData    ProtocolData `json:"protocol_data"`
	Type            string       `json:"type"`
}

// TokenKey returns the "{contract}:{tokenId}" identity of the asset on
// offer, used for de-duplication and metadata joins.
func (l *Listing) TokenKey() string {
	o := l.ProtocolData.Parameters.Offer[0]
	return fmt.Sprintf("%s:%s", o.Token, o.IdentifierOrCriteria)
}

type ListingsResponse struct {
	Listings []Listing `json:"listings"`
	Next     string    `json:"next"`
}

// TraitValue tolerates the API returning either a string or a number.
type TraitValue string

func (v *TraitValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TraitValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("trait value is neither string nor number: %s", data)
	}
	*v = TraitValue(n.String())
	return nil
}

func (v TraitValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

// NftTrait is one metadata attribute. Trait types are not unique and may
// carry numeric prefixes such as "3 HOUSE".
type NftTrait struct {
	TraitType string     `json:"trait_type"`
	Value     TraitValue `json:"value"`
}

type NftDetails struct {
	Name   string     `json:"name"`
	Traits []NftTrait `json:"traits"`
}

// NftAPIResponse is the per-token metadata lookup payload.
type NftAPIResponse struct {
	Nft *NftDetails `json:"nft"`
}
