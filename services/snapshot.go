// Package services orchestrates the fetch → annotate → select pipeline
// into consumable snapshots.
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"keywatch/houses"
	"keywatch/models"
	"keywatch/opensea"
	"keywatch/pricing"
)

// SnapshotService builds fairness-annotated views of the collection's
// active listings. All state is read-only configuration; every build is
// an independent call tree.
type SnapshotService struct {
	market *opensea.Client
	rates  RateSource

	slug               string
	mode               opensea.Mode
	contract           string // optional filter for item lookups
	limit              int
	targetDiscountRate float64

	pricingBase    *models.PricingConfig
	houseOverrides map[models.HouseID]models.HouseInfo
}

// RateSource supplies the JPY-per-ETH conversion rate.
type RateSource interface {
	GetEthJpy(ctx context.Context) float64
}

// Options configures a SnapshotService. Zero values fall back to the
// seed pricing config, mode "all", limit 24 and a 0.25 target discount.
type Options struct {
	Slug               string
	Mode               opensea.Mode
	Contract           string
	Limit              int
	TargetDiscountRate float64
	Pricing            *models.PricingConfig
	Houses             map[models.HouseID]models.HouseInfo
}

func NewSnapshotService(market *opensea.Client, rates RateSource, opts Options) *SnapshotService {
	if opts.Mode == "" {
		opts.Mode = opensea.ModeAll
	}
	if opts.Limit <= 0 {
		opts.Limit = 24
	}
	if opts.Pricing == nil {
		opts.Pricing = houses.DefaultPricingConfig()
	}
	return &SnapshotService{
		market:             market,
		rates:              rates,
		slug:               opts.Slug,
		mode:               opts.Mode,
		contract:           strings.ToLower(opts.Contract),
		limit:              opts.Limit,
		targetDiscountRate: opts.TargetDiscountRate,
		pricingBase:        opts.Pricing,
		houseOverrides:     opts.Houses,
	}
}

// Snapshot is one complete pass over the collection: every active
// listing annotated, collapsed to the best listing per token, sorted by
// discount and capped at the configured limit.
type Snapshot struct {
	RunID         uuid.UUID                   `json:"runId"`
	FetchedAt     time.Time                   `json:"fetchedAt"`
	Slug          string                      `json:"slug"`
	Mode          string                      `json:"mode"`
	EthJpy        float64                     `json:"ethJpy"`
	TotalListings int                         `json:"totalListings"`
	Items         []models.AnnotatedWithCount `json:"items"`
}

func (s *SnapshotService) BuildSnapshot(ctx context.Context) (*Snapshot, error) {
	runID := uuid.New()
	started := time.Now()
	log.Printf("snapshot %s: fetching %s listings for %s", runID, s.mode, s.slug)

	rows, err := s.market.FetchListingsJoined(ctx, s.slug, s.mode)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}

	cfg := s.pricingWithLiveRate(ctx)
	annotated := s.annotate(rows, cfg)
	picked := pricing.SelectBestPerToken(annotated)
	sorted := pricing.SortByDiscountDesc(picked, func(r models.AnnotatedWithCount) *int { return r.DiscountPct })
	if len(sorted) > s.limit {
		sorted = sorted[:s.limit]
	}

	log.Printf("snapshot %s: %d listings, %d tokens, took %s",
		runID, len(rows), len(picked), time.Since(started).Round(time.Millisecond))

	return &Snapshot{
		RunID:         runID,
		FetchedAt:     started,
		Slug:          s.slug,
		Mode:          string(s.mode),
		EthJpy:        cfg.EthJpy,
		TotalListings: len(rows),
		Items:         sorted,
	}, nil
}

// ItemDetail is everything shown for one token: the best current
// listing, the remaining listings sorted by discount, the fair-price
// breakdown and the raw traits.
type ItemDetail struct {
	TokenID       string                     `json:"tokenId"`
	Best          *models.AnnotatedWithCount `json:"best,omitempty"`
	OtherListings []models.AnnotatedListing  `json:"otherListings"`
	Breakdown     *pricing.FairBreakdown     `json:"breakdown,omitempty"`
	Traits        []models.NftTrait          `json:"traits"`
}

func (s *SnapshotService) BuildItemDetail(ctx context.Context, tokenID string) (*ItemDetail, error) {
	rows, err := s.market.FetchListingsJoined(ctx, s.slug, opensea.ModeAll)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}

	var inToken []models.JoinedRow
	for _, r := range rows {
		if r.TokenID != tokenID {
			continue
		}
		if s.contract != "" && strings.ToLower(r.Contract) != s.contract {
			continue
		}
		inToken = append(inToken, r)
	}

	detail := &ItemDetail{TokenID: tokenID, OtherListings: []models.AnnotatedListing{}}

	annotated := s.annotate(inToken, s.pricingWithLiveRate(ctx))
	if len(annotated) > 0 {
		best := pricing.SelectBestPerToken(annotated)[0]
		detail.Best = &best
		others := pricing.SortByDiscountDesc(annotated, func(r models.AnnotatedListing) *int { return r.DiscountPct })
		detail.OtherListings = others[1:]
		detail.Breakdown = s.breakdownFor(&best.AnnotatedListing)
	}

	if contract := s.contractFor(detail.Best); contract != "" {
		meta, err := s.market.FetchNFTMeta(ctx, contract, tokenID)
		if err != nil {
			log.Printf("item %s: traits lookup failed: %v", tokenID, err)
		} else if meta.Nft != nil {
			detail.Traits = meta.Nft.Traits
		}
	}
	return detail, nil
}

func (s *SnapshotService) annotate(rows []models.JoinedRow, cfg *models.PricingConfig) []models.AnnotatedListing {
	return pricing.AnnotateListingsWithFairness(rows, pricing.AnnotateOptions{
		Config:             cfg,
		Houses:             s.houseOverrides,
		TargetDiscountRate: s.targetDiscountRate,
	})
}

// pricingWithLiveRate clones the base config with the current FX rate
// so the shared config never mutates mid-flight.
func (s *SnapshotService) pricingWithLiveRate(ctx context.Context) *models.PricingConfig {
	cfg := s.pricingBase.Clone()
	if s.rates != nil {
		cfg.EthJpy = s.rates.GetEthJpy(ctx)
	}
	return cfg
}

// breakdownFor recomputes the audit breakdown for a listing's stay.
// A missing nights trait is shown as a one-night stay.
func (s *SnapshotService) breakdownFor(a *models.AnnotatedListing) *pricing.FairBreakdown {
	if a.HouseID == "" {
		return nil
	}
	table := houses.Table()
	for id, h := range s.houseOverrides {
		table[id] = h
	}
	house, ok := table[a.HouseID]
	if !ok {
		// Seed keys may omit the leading '+' of the label-derived id.
		house, ok = table[models.HouseID(strings.TrimPrefix(string(a.HouseID), "+"))]
	}
	if !ok {
		return nil
	}
	checkin, parsed := pricing.ParseCheckinDateJst(a.CheckinJst)
	if !parsed {
		return nil
	}
	nights := 1
	if a.Nights != nil {
		nights = *a.Nights
	}
	b := pricing.ComputeFairBreakdown(house, checkin, nights, time.Now(), s.pricingBase)
	return &b
}

func (s *SnapshotService) contractFor(best *models.AnnotatedWithCount) string {
	if s.contract != "" {
		return s.contract
	}
	if best != nil {
		return best.Contract
	}
	return ""
}
