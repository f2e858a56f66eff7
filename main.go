package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"keywatch/config"
	"keywatch/fx"
	"keywatch/houses"
	"keywatch/logging"
	"keywatch/opensea"
	"keywatch/scheduler"
	"keywatch/services"
)

var (
	once    = flag.Bool("once", false, "Build one snapshot, print NDJSON to stdout and exit")
	slug    = flag.String("slug", "", "Collection slug (overrides COLLECTION_SLUG)")
	mode    = flag.String("mode", "", "Listings mode: best or all (overrides LISTINGS_MODE)")
	limit   = flag.Int("limit", 0, "Max items in a snapshot (overrides SNAPSHOT_LIMIT)")
	token   = flag.String("token", "", "Print detail for one token id and exit")
	hydrate = flag.Bool("hydrate", false, "Fetch missing house thumbnails from official pages")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg)

	logFile, err := logging.Setup(cfg.LogPath)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	if cfg.OpenseaAPIKey == "" {
		log.Fatal("OPENSEA_API_KEY is not set")
	}

	listingsMode, err := opensea.ParseMode(cfg.Mode)
	if err != nil {
		log.Fatalf("Bad mode: %v", err)
	}

	overrides, err := cfg.LoadPricingOverrides()
	if err != nil {
		log.Fatalf("Failed to load pricing overrides: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	houseTable := houses.Table()
	for id, h := range overrides.HouseOverrides() {
		houseTable[id] = h
	}
	if *hydrate {
		log.Println("Hydrating house thumbnails...")
		houseTable = houses.HydrateThumbnails(ctx, nil, houseTable)
	}

	pricingBase := overrides.Pricing
	if pricingBase == nil {
		pricingBase = houses.DefaultPricingConfig()
	}

	market := opensea.NewClient(cfg.OpenseaAPIKey)
	market.SetRateLimit(cfg.RateLimitPerSec)
	rates := fx.NewClient(pricingBase.EthJpy)

	svc := services.NewSnapshotService(market, rates, services.Options{
		Slug:               cfg.CollectionSlug,
		Mode:               listingsMode,
		Contract:           cfg.Contract,
		Limit:              cfg.Limit,
		TargetDiscountRate: cfg.TargetDiscountRate,
		Pricing:            pricingBase,
		Houses:             houseTable,
	})

	enc := json.NewEncoder(os.Stdout)

	if *token != "" {
		detail, err := svc.BuildItemDetail(ctx, *token)
		if err != nil {
			log.Fatalf("Item detail failed: %v", err)
		}
		if err := enc.Encode(detail); err != nil {
			log.Fatalf("Encode failed: %v", err)
		}
		return
	}

	emit := func(ctx context.Context) error {
		snap, err := svc.BuildSnapshot(ctx)
		if err != nil {
			return err
		}
		for _, item := range snap.Items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		log.Printf("Snapshot %s: emitted %d of %d listings", snap.RunID, len(snap.Items), snap.TotalListings)
		return nil
	}

	if *once {
		if err := emit(ctx); err != nil {
			log.Fatalf("Snapshot failed: %v", err)
		}
		return
	}

	// Daemon mode: one snapshot up front, then on schedule.
	if err := emit(ctx); err != nil {
		log.Printf("Initial snapshot failed: %v", err)
	}

	sched := scheduler.New(&cfg.Scheduler, runnerFunc(emit))
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	log.Println("Daemon running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	sched.Stop()
}

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func applyFlags(cfg *config.Config) {
	if *slug != "" {
		cfg.CollectionSlug = *slug
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *limit > 0 {
		cfg.Limit = *limit
	}
}
