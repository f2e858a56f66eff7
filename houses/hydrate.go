package houses

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"keywatch/models"
)

const hydrateUserAgent = "Mozilla/5.0 (compatible; keywatch/1.0)"

// ResolveOGImage fetches an official house page and extracts its OG
// image URL, falling back to the twitter:image meta tag.
func ResolveOGImage(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", hydrateUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", pageURL, err)
	}

	if og, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && og != "" {
		return og, nil
	}
	if tw, ok := doc.Find(`meta[name="twitter:image"]`).Attr("content"); ok && tw != "" {
		return tw, nil
	}
	return "", nil
}

// HydrateThumbnails fills OfficialThumbURL for entries that are missing
// one, fetching each official page at most once. Per-house failures are
// logged and skipped; entries that already have a thumbnail are never
// touched.
func HydrateThumbnails(ctx context.Context, client *http.Client, table map[models.HouseID]models.HouseInfo) map[models.HouseID]models.HouseInfo {
	for id, house := range table {
		if house.OfficialThumbURL != "" || house.OfficialURL == "" {
			continue
		}
		og, err := ResolveOGImage(ctx, client, house.OfficialURL)
		if err != nil {
			log.Printf("houses: thumbnail lookup failed for %s: %v", id, err)
			continue
		}
		if og != "" {
			house.OfficialThumbURL = og
			table[id] = house
		}
	}
	return table
}
