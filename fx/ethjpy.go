// Package fx fetches the JPY-per-ETH conversion rate with a fallback
// chain: Coinbase, then CoinGecko, then a static seed value. Provider
// failures are never fatal.
package fx

import (
	"context"
	"log"
	"strconv"

	"keywatch/httputil"
)

const (
	coinbaseURL  = "https://api.coinbase.com/v2/exchange-rates?currency=ETH"
	coingeckoURL = "https://api.coingecko.com/api/v3/simple/price?ids=ethereum&vs_currencies=jpy"
)

type Client struct {
	httpc    *httputil.Client
	fallback float64

	coinbaseURL  string
	coingeckoURL string
}

// NewClient builds an FX client that answers fallback when every
// provider fails. Providers get a single attempt each; the retry loop
// belongs to the listings fetch, not here.
func NewClient(fallback float64) *Client {
	httpc := httputil.NewClient()
	httpc.SetRetry(0, 0)
	return &Client{
		httpc:        httpc,
		fallback:     fallback,
		coinbaseURL:  coinbaseURL,
		coingeckoURL: coingeckoURL,
	}
}

// SetEndpoints overrides the provider URLs (tests).
func (c *Client) SetEndpoints(coinbase, coingecko string) {
	c.coinbaseURL = coinbase
	c.coingeckoURL = coingecko
}

// GetEthJpy returns the current JPY-per-ETH rate, or the fallback.
func (c *Client) GetEthJpy(ctx context.Context) float64 {
	if rate, ok := c.fromCoinbase(ctx); ok {
		return rate
	}
	if rate, ok := c.fromCoingecko(ctx); ok {
		return rate
	}
	log.Printf("fx: all providers failed, using fallback rate %.0f", c.fallback)
	return c.fallback
}

func (c *Client) fromCoinbase(ctx context.Context) (float64, bool) {
	var resp struct {
		Data struct {
			Rates map[string]string `json:"rates"`
		} `json:"data"`
	}
	if err := c.httpc.GetJSON(ctx, c.coinbaseURL, nil, &resp); err != nil {
		log.Printf("fx: coinbase: %v", err)
		return 0, false
	}
	rate, err := strconv.ParseFloat(resp.Data.Rates["JPY"], 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

func (c *Client) fromCoingecko(ctx context.Context) (float64, bool) {
	var resp struct {
		Ethereum struct {
			Jpy float64 `json:"jpy"`
		} `json:"ethereum"`
	}
	if err := c.httpc.GetJSON(ctx, c.coingeckoURL, nil, &resp); err != nil {
		log.Printf("fx: coingecko: %v", err)
		return 0, false
	}
	if resp.Ethereum.Jpy <= 0 {
		return 0, false
	}
	return resp.Ethereum.Jpy, true
}
