package opensea

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"keywatch/models"
)

var weiPerEth = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// weiToEth converts a wei decimal string to ETH. The wei value is split
// by exact integer division first so the fractional part stays accurate
// to well past six decimal digits.
func weiToEth(wei *big.Int) float64 {
	quo, rem := new(big.Int).QuoRem(wei, weiPerEth, new(big.Int))
	whole, _ := new(big.Float).SetInt(quo).Float64()
	return whole + float64(rem.Int64())/1e18
}

func parseWei(s string) *big.Int {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return big.NewInt(0)
	}
	return n
}

func sumWei(items []models.ConsiderationItem) *big.Int {
	sum := big.NewInt(0)
	for _, it := range items {
		sum.Add(sum, parseWei(it.StartAmount))
	}
	return sum
}

func unixToIso(secStr string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(secStr), 10, 64)
	if err != nil {
		return ""
	}
	return time.Unix(n, 0).UTC().Format("2006-01-02T15:04:05.000Z")
}

func buildAssetURL(chain, contract, tokenID string) string {
	return "https://opensea.io/assets/" + chain + "/" + contract + "/" + tokenID
}

// extractTrait finds the first trait whose type contains keyIncludes,
// case-insensitively. Trait types carry numeric prefixes like "3 HOUSE",
// so this is a substring match, never an exact one.
func extractTrait(traits []models.NftTrait, keyIncludes string) (string, bool) {
	needle := strings.ToLower(keyIncludes)
	for _, t := range traits {
		if strings.Contains(strings.ToLower(t.TraitType), needle) {
			return string(t.Value), true
		}
	}
	return "", false
}

var digitsRe = regexp.MustCompile(`\d+`)

// parseNights pulls the first integer out of values like "2 Nights".
func parseNights(val string) *int {
	m := digitsRe.FindString(val)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

// nameDateRe matches "OCT.27, 2025" / "October 27, 2025" style
// substrings in token display names.
var nameDateRe = regexp.MustCompile(`\b([A-Za-z]{3,})\.?\s*(\d{1,2}),\s*(\d{4})\b`)

var monthByName = map[string]string{
	"JANUARY": "01", "FEBRUARY": "02", "MARCH": "03", "APRIL": "04",
	"MAY": "05", "JUNE": "06", "JULY": "07", "AUGUST": "08",
	"SEPTEMBER": "09", "OCTOBER": "10", "NOVEMBER": "11", "DECEMBER": "12",
	"JAN": "01", "FEB": "02", "MAR": "03", "APR": "04",
	"JUN": "06", "JUL": "07", "AUG": "08", "SEP": "09",
	"OCT": "10", "NOV": "11", "DEC": "12",
}

// checkinFromName recovers a YYYY-MM-DD check-in date from the token's
// display name, or "" when the name carries no recognizable date.
func checkinFromName(name string) string {
	m := nameDateRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	key := strings.ToUpper(m[1])
	mon, ok := monthByName[key]
	if !ok && len(key) >= 3 {
		mon, ok = monthByName[key[:3]]
	}
	if !ok {
		return ""
	}
	day := m[2]
	if len(day) == 1 {
		day = "0" + day
	}
	return m[3] + "-" + mon + "-" + day
}

// JoinListingWithTraits builds a normalized row from a listing and its
// token metadata. A nil meta still yields a priced row; only the trait
// fields stay unset.
func JoinListingWithTraits(listing models.Listing, meta *models.NftAPIResponse) models.JoinedRow {
	p := listing.ProtocolData.Parameters
	offer := p.Offer[0]

	// Split the consideration into the offerer's proceeds and fees.
	offerer := strings.ToLower(p.Offerer)
	var toSeller, toOthers []models.ConsiderationItem
	for _, c := range p.Consideration {
		if strings.ToLower(c.Recipient) == offerer {
			toSeller = append(toSeller, c)
		} else {
			toOthers = append(toOthers, c)
		}
	}

	row := models.JoinedRow{
		OrderHash:    listing.OrderHash,
		Chain:        listing.Chain,
		Contract:     offer.Token,
		TokenID:      offer.IdentifierOrCriteria,
		PriceEth:     weiToEth(parseWei(listing.Price.Current.Value)),
		SellerNetEth: weiToEth(sumWei(toSeller)),
		FeesEth:      weiToEth(sumWei(toOthers)),
		StartTimeIso: unixToIso(p.StartTime),
		EndTimeIso:   unixToIso(p.EndTime),
		AssetURL:     buildAssetURL(listing.Chain, offer.Token, offer.IdentifierOrCriteria),
	}

	var traits []models.NftTrait
	var name string
	if meta != nil && meta.Nft != nil {
		traits = meta.Nft.Traits
		name = meta.Nft.Name
	}

	house, _ := extractTrait(traits, "house")
	place, _ := extractTrait(traits, "place")
	if nightsStr, ok := extractTrait(traits, "number of nights"); ok {
		row.Nights = parseNights(nightsStr)
	}

	// Prefer the exact "MON. D, YYYY" date embedded in the display name;
	// fall back to the raw check-in trait value verbatim.
	checkin := checkinFromName(name)
	if checkin == "" {
		checkin, _ = extractTrait(traits, "check-in date")
	}
	row.CheckinJst = checkin

	// "+CHEF" plus place "FUKUOKA" becomes "+CHEF FUKUOKA".
	if house != "" && place != "" && !strings.Contains(strings.ToUpper(house), strings.ToUpper(place)) {
		house = house + " " + place
	}
	row.House = house
	row.Place = place

	return row
}
