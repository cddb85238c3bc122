package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/paradigma/diagnostico/internal/clients/coingecko"
)

// CoinSearcher is the slice of the CoinGecko client the coin endpoints need.
type CoinSearcher interface {
	SearchCoins(ctx context.Context, query string, limit int) ([]coingecko.Coin, error)
	GetTopCoins(ctx context.Context, limit int) ([]coingecko.Coin, error)
}

// preselectedSymbols are the coins the questionnaire always offers up front.
// The top-coins endpoint filters them out so suggestions add new options.
var preselectedSymbols = map[string]bool{
	"BTC":  true,
	"ETH":  true,
	"SOL":  true,
	"USDC": true,
	"USDT": true,
}

// CoinHandlers serves coin autocomplete requests
type CoinHandlers struct {
	client CoinSearcher
	log    zerolog.Logger
}

// NewCoinHandlers creates a new coin handlers instance
func NewCoinHandlers(client CoinSearcher, log zerolog.Logger) *CoinHandlers {
	return &CoinHandlers{
		client: client,
		log:    log.With().Str("handler", "coins").Logger(),
	}
}

// HandleSearch searches coins by name or symbol
func (h *CoinHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, h.log, http.StatusBadRequest, "Query parameter is required")
		return
	}

	results, err := h.client.SearchCoins(r.Context(), query, queryLimit(r, 50))
	if err != nil {
		h.log.Error().Err(err).Str("query", query).Msg("Coin search failed")
		writeError(w, h.log, http.StatusInternalServerError, "Failed to search coins")
		return
	}

	writeJSON(w, h.log, http.StatusOK, results)
}

// HandleTop returns the top coins by market cap, minus the symbols the
// client already pre-selects.
func (h *CoinHandlers) HandleTop(w http.ResponseWriter, r *http.Request) {
	results, err := h.client.GetTopCoins(r.Context(), queryLimit(r, 200))
	if err != nil {
		h.log.Error().Err(err).Msg("Top coins lookup failed")
		writeError(w, h.log, http.StatusInternalServerError, "Failed to search coins")
		return
	}

	filtered := make([]coingecko.Coin, 0, len(results))
	for _, coin := range results {
		if preselectedSymbols[strings.ToUpper(coin.Symbol)] {
			continue
		}
		filtered = append(filtered, coin)
	}

	writeJSON(w, h.log, http.StatusOK, filtered)
}

// queryLimit parses the limit query parameter, falling back to def.
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}
