// Package opensea fetches marketplace listings and per-token metadata
// and joins them into normalized rows for the pricing pipeline.
package opensea

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"keywatch/httputil"
	"keywatch/models"
)

const DefaultBaseURL = "https://api.opensea.io/api/v2"

const (
	pageLimit       = 200
	metaConcurrency = 5
)

// Mode selects which listings the marketplace returns: the curated best
// listing per token, or every active listing.
type Mode string

const (
	ModeBest Mode = "best"
	ModeAll  Mode = "all"
)

// ParseMode validates a mode string from flags or config.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBest, ModeAll:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want best or all)", s)
	}
}

type Client struct {
	httpc   *httputil.Client
	apiKey  string
	baseURL string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpc:   httputil.NewClient(),
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}
}

// SetBaseURL points the client at a different API origin (tests).
func (c *Client) SetBaseURL(base string) { c.baseURL = base }

// SetRateLimit throttles all API calls to the given requests per second.
func (c *Client) SetRateLimit(requestsPerSecond float64) {
	c.httpc.SetRateLimit(requestsPerSecond)
}

func (c *Client) headers() map[string]string {
	return map[string]string{"X-API-KEY": c.apiKey}
}

func (c *Client) listingsURL(slug string, mode Mode, next string) string {
	u := fmt.Sprintf("%s/listings/collection/%s/%s", c.baseURL, url.PathEscape(slug), mode)
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageLimit))
	if next != "" {
		q.Set("next", next)
	}
	return u + "?" + q.Encode()
}

// FetchAllListings pages through the listings endpoint, following the
// next cursor until the response omits one.
func (c *Client) FetchAllListings(ctx context.Context, slug string, mode Mode) ([]models.Listing, error) {
	var all []models.Listing
	next := ""
	for page := 1; ; page++ {
		var resp models.ListingsResponse
		if err := c.httpc.GetJSON(ctx, c.listingsURL(slug, mode, next), c.headers(), &resp); err != nil {
			return nil, fmt.Errorf("listings page %d: %w", page, err)
		}
		all = append(all, resp.Listings...)
		log.Printf("opensea: page %d: %d listings (total %d)", page, len(resp.Listings), len(all))
		if resp.Next == "" {
			return all, nil
		}
		next = resp.Next
	}
}

// FetchNFTMeta looks up one token's metadata.
func (c *Client) FetchNFTMeta(ctx context.Context, contract, tokenID string) (*models.NftAPIResponse, error) {
	u := fmt.Sprintf("%s/chain/ethereum/contract/%s/nfts/%s", c.baseURL, contract, tokenID)
	var resp models.NftAPIResponse
	if err := c.httpc.GetJSON(ctx, u, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("nft meta %s/%s: %w", contract, tokenID, err)
	}
	return &resp, nil
}

// FetchListingsJoined fetches all listings for the collection, fetches
// metadata once per unique token, and joins every listing against its
// token's metadata in original listing order.
//
// De-duplication is last-wins on the token key, so a token listed twice
// has its metadata fetched for the later listing and reused for both
// rows; metadata is token-identified, so the rows are equivalent.
// A single token's metadata failure degrades that token's rows to
// trait-less ones instead of failing the batch.
func (c *Client) FetchListingsJoined(ctx context.Context, slug string, mode Mode) ([]models.JoinedRow, error) {
	listings, err := c.FetchAllListings(ctx, slug, mode)
	if err != nil {
		return nil, err
	}

	// Unique tokens, first-seen position, last-seen listing.
	var uniq []models.Listing
	slot := make(map[string]int)
	for _, l := range listings {
		if len(l.ProtocolData.Parameters.Offer) == 0 {
			log.Printf("opensea: listing %s has no offer item, skipping", l.OrderHash)
			continue
		}
		key := l.TokenKey()
		if i, seen := slot[key]; seen {
			uniq[i] = l
		} else {
			slot[key] = len(uniq)
			uniq = append(uniq, l)
		}
	}

	metas, err := httputil.MapWithConcurrency(ctx, uniq, metaConcurrency,
		func(ctx context.Context, _ int, l models.Listing) (*models.NftAPIResponse, error) {
			o := l.ProtocolData.Parameters.Offer[0]
			meta, err := c.FetchNFTMeta(ctx, o.Token, o.IdentifierOrCriteria)
			if err != nil {
				log.Printf("opensea: meta fetch failed for %s:%s: %v", o.Token, o.IdentifierOrCriteria, err)
				return nil, nil
			}
			return meta, nil
		})
	if err != nil {
		return nil, err
	}

	metaByToken := make(map[string]*models.NftAPIResponse, len(uniq))
	for i, l := range uniq {
		metaByToken[l.TokenKey()] = metas[i]
	}

	joined := make([]models.JoinedRow, 0, len(listings))
	for _, l := range listings {
		if len(l.ProtocolData.Parameters.Offer) == 0 {
			continue
		}
		joined = append(joined, JoinListingWithTraits(l, metaByToken[l.TokenKey()]))
	}
	return joined, nil
}
