package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradigma/diagnostico/internal/clients/coingecko"
	"github.com/paradigma/diagnostico/internal/diagnostic"
	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/narrative"
)

type stubCoins struct {
	searchResults []coingecko.Coin
	topResults    []coingecko.Coin
	err           error
	lastQuery     string
	lastLimit     int
}

func (s *stubCoins) SearchCoins(_ context.Context, query string, limit int) ([]coingecko.Coin, error) {
	s.lastQuery = query
	s.lastLimit = limit
	return s.searchResults, s.err
}

func (s *stubCoins) GetTopCoins(_ context.Context, limit int) ([]coingecko.Coin, error) {
	s.lastLimit = limit
	return s.topResults, s.err
}

func newTestServer(t *testing.T, coins CoinSearcher) *Server {
	t.Helper()

	log := zerolog.Nop()
	scorer := narrative.NewScorer(nil, log)
	service := diagnostic.NewService(scorer, nil, log)

	if coins == nil {
		coins = &stubCoins{}
	}

	return New(Config{
		Log:         log,
		Port:        0,
		DevMode:     true,
		Diagnostics: service,
		Coins:       coins,
	})
}

func postDiagnostic(t *testing.T, srv *Server, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/diagnostic", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func validRequest() map[string]interface{} {
	return map[string]interface{}{
		"allocation": []map[string]interface{}{
			{"token": "BTC", "percentage": 60},
			{"token": "ETH", "percentage": 40},
		},
		"profile": map[string]interface{}{
			"horizon":       "long",
			"riskTolerance": "medium",
			"objective":     []string{"multiply"},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "diagnostico", body["service"])
}

func TestDiagnosticEndpointReturnsFullDiagnostic(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postDiagnostic(t, srv, validRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.PortfolioDiagnostic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 85, result.AdherenceScore)
	assert.Equal(t, domain.AdherenceHigh, result.AdherenceLevel)
	assert.NotEmpty(t, result.Flags)
	assert.NotNil(t, result.AIAnalysis)
	assert.NotEmpty(t, result.Gamification.SpiritAnimal.Name)
	assert.Len(t, result.Gamification.Badges, 9)
}

func TestDiagnosticEndpointRejectsEmptyAllocation(t *testing.T) {
	srv := newTestServer(t, nil)

	body := validRequest()
	body["allocation"] = []map[string]interface{}{}

	rec := postDiagnostic(t, srv, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid allocation data")
}

func TestDiagnosticEndpointRejectsBadSum(t *testing.T) {
	srv := newTestServer(t, nil)

	body := validRequest()
	body["allocation"] = []map[string]interface{}{
		{"token": "BTC", "percentage": 60},
		{"token": "ETH", "percentage": 30},
	}

	rec := postDiagnostic(t, srv, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Allocation percentages must sum to 100%", resp["error"])
	assert.InDelta(t, 90.0, resp["currentTotal"], 0.001)
}

func TestDiagnosticEndpointAllowsSumWithinTolerance(t *testing.T) {
	srv := newTestServer(t, nil)

	body := validRequest()
	body["allocation"] = []map[string]interface{}{
		{"token": "BTC", "percentage": 60.2},
		{"token": "ETH", "percentage": 40.1},
	}

	rec := postDiagnostic(t, srv, body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDiagnosticEndpointRejectsMissingProfileFields(t *testing.T) {
	tests := []struct {
		name    string
		profile map[string]interface{}
		want    string
	}{
		{
			name:    "missing horizon",
			profile: map[string]interface{}{"riskTolerance": "medium", "objective": []string{"multiply"}},
			want:    "Missing required profile field: horizon",
		},
		{
			name:    "missing risk tolerance",
			profile: map[string]interface{}{"horizon": "long", "objective": []string{"multiply"}},
			want:    "Missing required profile field: riskTolerance",
		},
		{
			name:    "missing objective",
			profile: map[string]interface{}{"horizon": "long", "riskTolerance": "medium"},
			want:    "Missing required profile field: objective",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)

			body := validRequest()
			body["profile"] = tt.profile

			rec := postDiagnostic(t, srv, body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestDiagnosticEndpointRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/diagnostic", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestCoinSearchEndpoint(t *testing.T) {
	coins := &stubCoins{
		searchResults: []coingecko.Coin{
			{Symbol: "LINK", Name: "Chainlink", MarketCap: 1e10},
		},
	}
	srv := newTestServer(t, coins)

	req := httptest.NewRequest(http.MethodGet, "/api/coins/search?q=chain&limit=10", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chain", coins.lastQuery)
	assert.Equal(t, 10, coins.lastLimit)

	var results []coingecko.Coin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "LINK", results[0].Symbol)
}

func TestCoinSearchEndpointRequiresQuery(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/coins/search", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Query parameter is required")
}

func TestTopCoinsEndpointFiltersPreselected(t *testing.T) {
	coins := &stubCoins{
		topResults: []coingecko.Coin{
			{Symbol: "BTC", Name: "Bitcoin"},
			{Symbol: "ETH", Name: "Ethereum"},
			{Symbol: "LINK", Name: "Chainlink"},
			{Symbol: "USDT", Name: "Tether"},
			{Symbol: "AVAX", Name: "Avalanche"},
		},
	}
	srv := newTestServer(t, coins)

	req := httptest.NewRequest(http.MethodGet, "/api/coins/top", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, coins.lastLimit)

	var results []coingecko.Coin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "LINK", results[0].Symbol)
	assert.Equal(t, "AVAX", results[1].Symbol)
}

func TestCoinEndpointsReportClientErrors(t *testing.T) {
	coins := &stubCoins{err: errors.New("rate limited")}
	srv := newTestServer(t, coins)

	req := httptest.NewRequest(http.MethodGet, "/api/coins/search?q=btc", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/coins/top", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSystemStatusEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status SystemStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "operational", status.Status)
	assert.GreaterOrEqual(t, status.UptimeSeconds, 0.0)
	assert.Greater(t, status.Goroutines, 0)
}
