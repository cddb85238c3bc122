// Package coingecko provides market data fetching and caching for the
// CoinGecko API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/paradigma/diagnostico/internal/clientdata"
	"github.com/paradigma/diagnostico/internal/domain"
)

// Coin is an autocomplete entry for the portfolio builder.
type Coin struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	MarketCap float64 `json:"marketCap"`
	Image     string  `json:"image"`
	ID        string  `json:"id"`
}

// Client for the CoinGecko v3 API. Free-tier friendly: rate limited, with a
// persistent cache in front of every endpoint.
type Client struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	limiter   *rate.Limiter
	log       zerolog.Logger
	cacheRepo *clientdata.Repository

	mu      sync.RWMutex
	idCache map[string]string
}

// NewClient creates a new CoinGecko client.
// apiKey is optional (demo tier header); cacheRepo is optional - if nil,
// caching is disabled.
func NewClient(apiKey string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	ids := make(map[string]string, len(seedCoinIDs))
	for symbol, id := range seedCoinIDs {
		ids[symbol] = id
	}

	return &Client{
		baseURL:   "https://api.coingecko.com/api/v3",
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 5),
		log:       log.With().Str("client", "coingecko").Logger(),
		cacheRepo: cacheRepo,
		idCache:   ids,
	}
}

type searchResponse struct {
	Coins []struct {
		ID            string `json:"id"`
		Symbol        string `json:"symbol"`
		Name          string `json:"name"`
		Large         string `json:"large"`
		Thumb         string `json:"thumb"`
		MarketCapRank int    `json:"market_cap_rank"`
	} `json:"coins"`
}

type marketEntry struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             float64  `json:"current_price"`
	MarketCap                float64  `json:"market_cap"`
	FullyDilutedValuation    *float64 `json:"fully_diluted_valuation"`
	TotalVolume              float64  `json:"total_volume"`
	CirculatingSupply        float64  `json:"circulating_supply"`
	TotalSupply              *float64 `json:"total_supply"`
	PriceChangePercentage24h float64  `json:"price_change_percentage_24h"`
}

// SearchCoins queries the coin catalog for the autocomplete. Results are
// cached per query; a failing API falls back to stale cache.
func (c *Client) SearchCoins(ctx context.Context, query string, limit int) ([]Coin, error) {
	if limit <= 0 {
		limit = 50
	}
	cacheKey := strings.ToLower(strings.TrimSpace(query))

	if coins, ok := c.freshFromCache("coingecko_search", cacheKey); ok {
		return capCoins(coins, limit), nil
	}

	var resp searchResponse
	err := c.getJSON(ctx, "/search?query="+url.QueryEscape(query), &resp)
	if err != nil {
		if coins, ok := c.staleFromCache("coingecko_search", cacheKey); ok {
			c.log.Warn().Err(err).Str("query", query).Msg("API failed, using stale cached search results")
			return capCoins(coins, limit), nil
		}
		return nil, err
	}

	coins := make([]Coin, 0, len(resp.Coins))
	for _, rc := range resp.Coins {
		image := rc.Large
		if image == "" {
			image = rc.Thumb
		}
		coins = append(coins, Coin{
			Symbol: strings.ToUpper(rc.Symbol),
			Name:   rc.Name,
			Image:  image,
			ID:     rc.ID,
		})
	}

	c.storeInCache("coingecko_search", cacheKey, coins, clientdata.TTLSearch)
	return capCoins(coins, limit), nil
}

// GetTopCoins returns the top coins by market cap, for seeding the
// autocomplete before the user types.
func (c *Client) GetTopCoins(ctx context.Context, limit int) ([]Coin, error) {
	if limit <= 0 || limit > 250 {
		limit = 200
	}
	cacheKey := fmt.Sprintf("top:%d", limit)

	if coins, ok := c.freshFromCache("coingecko_top", cacheKey); ok {
		return coins, nil
	}

	var markets []marketEntry
	path := fmt.Sprintf("/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1", limit)
	if err := c.getJSON(ctx, path, &markets); err != nil {
		if coins, ok := c.staleFromCache("coingecko_top", cacheKey); ok {
			c.log.Warn().Err(err).Msg("API failed, using stale cached top coins")
			return coins, nil
		}
		return nil, err
	}

	coins := make([]Coin, 0, len(markets))
	for _, m := range markets {
		coins = append(coins, Coin{
			Symbol:    strings.ToUpper(m.Symbol),
			Name:      m.Name,
			MarketCap: m.MarketCap,
			Image:     m.Image,
			ID:        m.ID,
		})
	}

	c.storeInCache("coingecko_top", cacheKey, coins, clientdata.TTLTopCoins)

	c.log.Info().Int("count", len(coins)).Msg("Fetched top coins")
	return coins, nil
}

// GetTokenData fetches market data for the given symbols. Symbols that
// cannot be resolved to a CoinGecko id are silently skipped; a failing API
// call falls back to stale per-symbol cache entries.
func (c *Client) GetTokenData(ctx context.Context, symbols []string) ([]domain.TokenData, error) {
	result := make([]domain.TokenData, 0, len(symbols))
	missing := make([]string, 0, len(symbols))

	for _, symbol := range symbols {
		key := strings.ToUpper(symbol)
		if raw := c.rawFromCache("coingecko_markets", key, true); raw != nil {
			var td domain.TokenData
			if err := json.Unmarshal(raw, &td); err == nil {
				result = append(result, td)
				continue
			}
		}
		missing = append(missing, key)
	}

	if len(missing) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(missing))
	idToSymbol := make(map[string]string, len(missing))
	for _, symbol := range missing {
		id, err := c.resolveCoinID(ctx, symbol)
		if err != nil || id == "" {
			c.log.Debug().Str("symbol", symbol).Msg("Could not resolve coin id, skipping")
			continue
		}
		ids = append(ids, id)
		idToSymbol[id] = symbol
	}

	if len(ids) == 0 {
		return result, nil
	}

	var markets []marketEntry
	path := fmt.Sprintf("/coins/markets?vs_currency=usd&ids=%s&order=market_cap_desc&per_page=250&page=1",
		url.QueryEscape(strings.Join(ids, ",")))
	if err := c.getJSON(ctx, path, &markets); err != nil {
		// Per-symbol stale fallback: stale data > no data.
		stale := 0
		for _, symbol := range missing {
			if raw := c.rawFromCache("coingecko_markets", symbol, false); raw != nil {
				var td domain.TokenData
				if jsonErr := json.Unmarshal(raw, &td); jsonErr == nil {
					result = append(result, td)
					stale++
				}
			}
		}
		if stale > 0 {
			c.log.Warn().Err(err).Int("stale", stale).Msg("API failed, using stale cached token data")
			return result, nil
		}
		return result, err
	}

	for _, m := range markets {
		td := domain.TokenData{
			Symbol:            strings.ToUpper(m.Symbol),
			Name:              m.Name,
			Price:             m.CurrentPrice,
			MarketCap:         m.MarketCap,
			FullyDilutedValue: m.FullyDilutedValuation,
			TotalSupply:       m.TotalSupply,
			CirculatingSupply: m.CirculatingSupply,
			Volume24h:         m.TotalVolume,
			PriceChange24h:    m.PriceChangePercentage24h,
			Image:             m.Image,
		}
		result = append(result, td)
		c.storeInCache("coingecko_markets", td.Symbol, td, clientdata.TTLMarkets)
	}

	return result, nil
}

// resolveCoinID maps a ticker symbol to a CoinGecko id: seeded in-memory map
// first, then the persistent cache, then a catalog search for an exact symbol
// match.
func (c *Client) resolveCoinID(ctx context.Context, symbol string) (string, error) {
	upper := strings.ToUpper(symbol)

	c.mu.RLock()
	id, ok := c.idCache[upper]
	c.mu.RUnlock()
	if ok {
		return id, nil
	}

	if c.cacheRepo != nil {
		if raw, err := c.cacheRepo.GetIfFresh("coingecko_ids", upper); err == nil && raw != nil {
			var cached string
			if err := json.Unmarshal(raw, &cached); err == nil && cached != "" {
				c.rememberID(upper, cached)
				return cached, nil
			}
		}
	}

	var resp searchResponse
	if err := c.getJSON(ctx, "/search?query="+url.QueryEscape(symbol), &resp); err != nil {
		return "", err
	}

	for _, coin := range resp.Coins {
		if strings.EqualFold(coin.Symbol, symbol) {
			c.rememberID(upper, coin.ID)
			c.storeInCache("coingecko_ids", upper, coin.ID, clientdata.TTLCoinIDs)
			return coin.ID, nil
		}
	}
	return "", nil
}

func (c *Client) rememberID(symbol, id string) {
	c.mu.Lock()
	c.idCache[symbol] = id
	c.mu.Unlock()
}

// getJSON performs a rate-limited GET against the API and decodes the JSON
// response into v.
func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) freshFromCache(table, key string) ([]Coin, bool) {
	raw := c.rawFromCache(table, key, true)
	if raw == nil {
		return nil, false
	}
	var coins []Coin
	if err := json.Unmarshal(raw, &coins); err != nil {
		return nil, false
	}
	return coins, true
}

func (c *Client) staleFromCache(table, key string) ([]Coin, bool) {
	raw := c.rawFromCache(table, key, false)
	if raw == nil {
		return nil, false
	}
	var coins []Coin
	if err := json.Unmarshal(raw, &coins); err != nil {
		return nil, false
	}
	return coins, true
}

// rawFromCache reads a cache entry; freshOnly skips expired rows.
func (c *Client) rawFromCache(table, key string, freshOnly bool) json.RawMessage {
	if c.cacheRepo == nil {
		return nil
	}
	var (
		raw json.RawMessage
		err error
	)
	if freshOnly {
		raw, err = c.cacheRepo.GetIfFresh(table, key)
	} else {
		raw, err = c.cacheRepo.Get(table, key)
	}
	if err != nil {
		return nil
	}
	return raw
}

func (c *Client) storeInCache(table, key string, data interface{}, ttl time.Duration) {
	if c.cacheRepo == nil {
		return
	}
	if err := c.cacheRepo.Store(table, key, data, ttl); err != nil {
		c.log.Warn().Err(err).Str("table", table).Str("key", key).Msg("Failed to cache response")
	}
}

func capCoins(coins []Coin, limit int) []Coin {
	if len(coins) > limit {
		return coins[:limit]
	}
	return coins
}
