package houses

import (
	"regexp"
	"strings"

	"keywatch/models"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeLabel collapses whitespace, uppercases and replaces spaces
// with underscores, so "+Chef  Fukuoka" becomes "+CHEF_FUKUOKA".
func normalizeLabel(raw string) string {
	key := whitespaceRe.ReplaceAllString(raw, " ")
	key = strings.ToUpper(strings.TrimSpace(key))
	return strings.ReplaceAll(key, " ", "_")
}

// resolveRule pairs a predicate over the normalized label with the house
// it resolves to. Rules are evaluated in order; the first match wins.
type resolveRule struct {
	match func(key string) bool
	id    models.HouseID
}

var resolveRules = []resolveRule{
	{func(k string) bool { return strings.Contains(k, "DESK") }, DeskFukuoka},
	{func(k string) bool { return strings.Contains(k, "CHEF") }, ChefFukuoka},
	{func(k string) bool { return strings.Contains(k, "ATELIER") }, AtelierFukuoka},
	{func(k string) bool {
		return strings.Contains(k, "BASE") && strings.Contains(k, "S") && strings.Contains(k, "KITA")
	}, BaseSKitaKaruizawa},
	{func(k string) bool {
		return strings.Contains(k, "AOSHIMA") || strings.Contains(k, "MASTERPIECE")
	}, AoshimaExclusive},
}

// ResolveHouseID maps a free-text house label to a canonical house id.
// Only the fixed enumerated set of houses is resolvable; anything else
// returns false and the caller leaves the fairness fields unset.
func ResolveHouseID(raw string) (models.HouseID, bool) {
	if raw == "" {
		return "", false
	}
	key := normalizeLabel(raw)
	for _, rule := range resolveRules {
		if rule.match(key) {
			return rule.id, true
		}
	}
	return "", false
}
