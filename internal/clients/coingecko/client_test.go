package coingecko

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradigma/diagnostico/internal/clientdata"
	"github.com/paradigma/diagnostico/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler, withCache bool) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var repo *clientdata.Repository
	if withCache {
		db, err := sql.Open("sqlite3", ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		require.NoError(t, clientdata.InitSchema(db))
		repo = clientdata.NewRepository(db)
	}

	client := NewClient("", repo, zerolog.Nop())
	client.baseURL = server.URL
	return client
}

func TestGetTokenData(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/coins/markets"))
		assert.Contains(t, r.URL.Query().Get("ids"), "bitcoin")
		w.Write([]byte(`[{
			"id": "bitcoin", "symbol": "btc", "name": "Bitcoin",
			"image": "https://img/btc.png", "current_price": 60000.5,
			"market_cap": 1200000000000, "fully_diluted_valuation": 1260000000000,
			"total_volume": 35000000000, "circulating_supply": 19600000,
			"total_supply": 21000000, "price_change_percentage_24h": 2.4
		}]`))
	})
	client := newTestClient(t, handler, false)

	data, err := client.GetTokenData(context.Background(), []string{"BTC"})

	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "BTC", data[0].Symbol)
	assert.Equal(t, "Bitcoin", data[0].Name)
	assert.InDelta(t, 60000.5, data[0].Price, 0.001)
	assert.InDelta(t, 2.4, data[0].PriceChange24h, 0.001)
	require.NotNil(t, data[0].TotalSupply)
	assert.InDelta(t, 21000000, *data[0].TotalSupply, 0.001)
}

func TestGetTokenDataResolvesUnknownSymbolViaSearch(t *testing.T) {
	var searchCalled bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search":
			searchCalled = true
			assert.Equal(t, "WEIRDCOIN", r.URL.Query().Get("query"))
			w.Write([]byte(`{"coins": [{"id": "weird-coin", "symbol": "weirdcoin", "name": "Weird"}]}`))
		case strings.HasPrefix(r.URL.Path, "/coins/markets"):
			assert.Equal(t, "weird-coin", r.URL.Query().Get("ids"))
			w.Write([]byte(`[{"id": "weird-coin", "symbol": "weirdcoin", "name": "Weird", "current_price": 1.5}]`))
		default:
			http.NotFound(w, r)
		}
	})
	client := newTestClient(t, handler, false)

	data, err := client.GetTokenData(context.Background(), []string{"WEIRDCOIN"})

	require.NoError(t, err)
	assert.True(t, searchCalled)
	require.Len(t, data, 1)
	assert.Equal(t, "WEIRDCOIN", data[0].Symbol)
}

func TestGetTokenDataSkipsUnresolvableSymbols(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			w.Write([]byte(`{"coins": []}`))
			return
		}
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	client := newTestClient(t, handler, false)

	data, err := client.GetTokenData(context.Background(), []string{"NOSUCHCOIN"})

	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestGetTokenDataServesFreshCache(t *testing.T) {
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"id": "bitcoin", "symbol": "btc", "name": "Bitcoin", "current_price": 60000}]`))
	})
	client := newTestClient(t, handler, true)

	_, err := client.GetTokenData(context.Background(), []string{"BTC"})
	require.NoError(t, err)
	_, err = client.GetTokenData(context.Background(), []string{"BTC"})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestGetTokenDataStaleFallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	client := newTestClient(t, handler, true)

	stale := domain.TokenData{Symbol: "BTC", Name: "Bitcoin", Price: 58000}
	require.NoError(t, client.cacheRepo.Store("coingecko_markets", "BTC", stale, -time.Minute))

	data, err := client.GetTokenData(context.Background(), []string{"BTC"})

	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.InDelta(t, 58000.0, data[0].Price, 0.001)
}

func TestSearchCoins(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		w.Write([]byte(`{"coins": [
			{"id": "dogecoin", "symbol": "doge", "name": "Dogecoin", "large": "https://img/doge.png"},
			{"id": "dogelon", "symbol": "elon", "name": "Dogelon Mars", "thumb": "https://img/elon-thumb.png"}
		]}`))
	})
	client := newTestClient(t, handler, false)

	coins, err := client.SearchCoins(context.Background(), "doge", 10)

	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "DOGE", coins[0].Symbol)
	assert.Equal(t, "https://img/doge.png", coins[0].Image)
	assert.Equal(t, "https://img/elon-thumb.png", coins[1].Image)
}

func TestSearchCoinsRespectsLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coins": [
			{"id": "a", "symbol": "a", "name": "A"},
			{"id": "b", "symbol": "b", "name": "B"},
			{"id": "c", "symbol": "c", "name": "C"}
		]}`))
	})
	client := newTestClient(t, handler, false)

	coins, err := client.SearchCoins(context.Background(), "x", 2)

	require.NoError(t, err)
	assert.Len(t, coins, 2)
}

func TestGetTopCoins(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		w.Write([]byte(`[{"id": "bitcoin", "symbol": "btc", "name": "Bitcoin", "market_cap": 1200000000000, "image": "https://img/btc.png"}]`))
	})
	client := newTestClient(t, handler, false)

	coins, err := client.GetTopCoins(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, "BTC", coins[0].Symbol)
	assert.InDelta(t, 1.2e12, coins[0].MarketCap, 1)
}

func TestGetTopCoinsStaleFallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	client := newTestClient(t, handler, true)

	stale := []Coin{{Symbol: "BTC", Name: "Bitcoin", ID: "bitcoin"}}
	require.NoError(t, client.cacheRepo.Store("coingecko_top", "top:200", stale, -time.Minute))

	coins, err := client.GetTopCoins(context.Background(), 200)

	require.NoError(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, "BTC", coins[0].Symbol)
}

func TestGetTopCoinsErrorWithoutCache(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	client := newTestClient(t, handler, false)

	_, err := client.GetTopCoins(context.Background(), 200)

	assert.Error(t, err)
}
