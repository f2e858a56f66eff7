// Package houses carries the seed reference data for THE KEY's physical
// houses and resolves free-text house labels to canonical ids.
package houses

import "keywatch/models"

const (
	DeskFukuoka        models.HouseID = "+DESK_FUKUOKA"
	ChefFukuoka        models.HouseID = "+CHEF_FUKUOKA"
	AtelierFukuoka     models.HouseID = "+ATELIER_FUKUOKA"
	BaseSKitaKaruizawa models.HouseID = "BASE_S_KITA_KARUIZAWA"
	AoshimaExclusive   models.HouseID = "AOSHIMA_EXCLUSIVE"
)

const (
	AreaFukuoka        models.Area = "FUKUOKA"
	AreaKitaKaruizawa  models.Area = "KITA_KARUIZAWA"
	AreaAoshima        models.Area = "AOSHIMA"
)

func intPtr(n int) *int { return &n }

// Table returns a fresh copy of the house seed table. Baselines follow
// the official "¥xxx~/1 night" weekday prices; they are floating-rate
// guide values, not quotes.
func Table() map[models.HouseID]models.HouseInfo {
	return map[models.HouseID]models.HouseInfo{
		DeskFukuoka: {
			ID:                  DeskFukuoka,
			DisplayName:         "+DESK FUKUOKA",
			Area:                AreaFukuoka,
			Capacity:            models.Capacity{Standard: intPtr(4), Max: intPtr(8), CoSleepingMax: intPtr(2)},
			BaselinePerNightJpy: 180000,
			OfficialURL:         "https://notahotel.com/shop/fukuoka/desk",
		},
		ChefFukuoka: {
			ID:                  ChefFukuoka,
			DisplayName:         "+CHEF FUKUOKA",
			Area:                AreaFukuoka,
			Capacity:            models.Capacity{Standard: intPtr(4), Max: intPtr(8), CoSleepingMax: intPtr(2)},
			BaselinePerNightJpy: 180000,
			OfficialURL:         "https://notahotel.com/shop/fukuoka/chef",
		},
		AtelierFukuoka: {
			ID:                  AtelierFukuoka,
			DisplayName:         "+ATELIER FUKUOKA",
			Area:                AreaFukuoka,
			Capacity:            models.Capacity{Standard: intPtr(4), Max: intPtr(8), CoSleepingMax: intPtr(2)},
			BaselinePerNightJpy: 180000,
			OfficialURL:         "https://notahotel.com/shop/fukuoka/atelier",
		},
		BaseSKitaKaruizawa: {
			ID:                  BaseSKitaKaruizawa,
			DisplayName:         "BASE S 北軽井沢",
			Area:                AreaKitaKaruizawa,
			Capacity:            models.Capacity{Standard: intPtr(2), Max: intPtr(2), CoSleepingMax: intPtr(2)},
			BaselinePerNightJpy: 120000,
			OfficialURL:         "https://notahotel.com/shop/kitakaruizawa/base-s",
		},
		AoshimaExclusive: {
			ID:                  AoshimaExclusive,
			DisplayName:         "AOSHIMA MASTERPIECE",
			Area:                AreaAoshima,
			Capacity:            models.Capacity{Standard: intPtr(4), Max: intPtr(8), CoSleepingMax: intPtr(2)},
			BaselinePerNightJpy: 450000,
			OfficialURL:         "https://notahotel.com/shop/aoshima/masterpiece",
		},
	}
}

// DefaultPricingConfig returns a fresh copy of the default factor
// tables. The ethJpy value is a static fallback; live runs override it
// with the fx package's rate.
func DefaultPricingConfig() *models.PricingConfig {
	return &models.PricingConfig{
		EthJpy: 660000,
		MonthFactor: map[models.Area]map[string]float64{
			AreaFukuoka: {
				"1": 0.9, "2": 0.9, "3": 1.0, "4": 1.05, "5": 1.1, "6": 1.0,
				"7": 1.05, "8": 1.05, "9": 1.05, "10": 1.1, "11": 1.0, "12": 0.95,
			},
			AreaKitaKaruizawa: {
				"1": 1.0, "2": 1.0, "3": 0.95, "4": 1.0, "5": 1.05, "6": 1.0,
				"7": 1.3, "8": 1.3, "9": 1.1, "10": 1.2, "11": 0.95, "12": 0.95,
			},
			AreaAoshima: {
				"1": 1.0, "2": 1.0, "3": 1.0, "4": 1.05, "5": 1.1, "6": 1.1,
				"7": 1.2, "8": 1.2, "9": 1.1, "10": 1.1, "11": 1.0, "12": 1.0,
			},
		},
		DowFactor: map[string]float64{
			"Mon": 0.9, "Tue": 0.9, "Wed": 0.95, "Thu": 1.0,
			"Fri": 1.15, "Sat": 1.25, "Sun": 1.05,
		},
		LongStayFactor: map[string]float64{"1": 1.0, "2": 0.95, "3": 0.9},
		LeadtimeFactor: []models.LeadtimeStep{
			{DaysLT: 7, Factor: 0.8},
			{DaysLT: 14, Factor: 0.9},
			{DaysLT: 30, Factor: 0.95},
			{DaysLT: 365, Factor: 1.0},
		},
	}
}
