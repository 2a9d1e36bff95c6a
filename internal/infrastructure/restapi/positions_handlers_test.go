package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"positions_tracker/internal/config"
	"positions_tracker/internal/domain/entity"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const testAddress = "0x1234567890AbcdEF1234567890aBcdef12345678"

// stubPositionsStore is a canned-response port.PositionsStore. Fields are set
// per test; every captured call parameter is per-instance state.
type stubPositionsStore struct {
	fetchResult *entity.TransformedPositionsResult
	fetchErr    error
	balance     string
	lastError   *entity.PositionsError

	fetchedParams entity.FetchParams
	fetchedForce  bool
}

func (s *stubPositionsStore) Fetch(_ context.Context, params entity.FetchParams, force bool) (*entity.TransformedPositionsResult, error) {
	s.fetchedParams = params
	s.fetchedForce = force
	return s.fetchResult, s.fetchErr
}

func (s *stubPositionsStore) Positions(string, string) (*entity.TransformedPositionsResult, bool) {
	return s.fetchResult, s.fetchResult != nil
}

func (s *stubPositionsStore) GetBalance(string, string) string {
	return s.balance
}

func (s *stubPositionsStore) LastError(string, string) *entity.PositionsError {
	return s.lastError
}

func sampleResult() *entity.TransformedPositionsResult {
	total := decimal.RequireFromString("8000")
	return &entity.TransformedPositionsResult{
		Positions: []entity.TransformedPosition{{
			CanonicalProtocolName: "aave",
			Deposits: []entity.AmountItem{{
				Symbol: "ETH",
				Amount: decimal.RequireFromString("5"),
				Value:  decimal.RequireFromString("10000"),
			}},
			Totals: entity.PositionTotals{Total: total},
		}},
		Totals: entity.PositionTotals{Total: total},
	}
}

func setupTestRouter(store *stubPositionsStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Positions.DefaultCurrency = "USD"
	handler := NewPositionsHandler(store, cfg)
	return SetupRouter(handler, zap.NewNop())
}

func performRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetPositionsHandlerSuccess(t *testing.T) {
	store := &stubPositionsStore{fetchResult: sampleResult()}
	router := setupTestRouter(store)

	w := performRequest(router, "/api/v1/positions?address="+testAddress)

	require.Equal(t, http.StatusOK, w.Code)

	var resp APIPositionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Positions, 1)
	assert.Equal(t, "aave", resp.Data.Positions[0].CanonicalProtocolName)
	assert.Equal(t, "8000", resp.Data.Totals.Total.String())
	assert.False(t, resp.Stale)
	assert.Nil(t, resp.ServiceError)

	// Default currency applies when the query omits one.
	assert.Equal(t, "USD", store.fetchedParams.Currency)
	assert.Equal(t, testAddress, store.fetchedParams.Address)
	assert.False(t, store.fetchedForce)
}

func TestGetPositionsHandlerForceAndCurrencyQuery(t *testing.T) {
	store := &stubPositionsStore{fetchResult: sampleResult()}
	router := setupTestRouter(store)

	w := performRequest(router, "/api/v1/positions?address="+testAddress+"&currency=EUR&force=true")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "EUR", store.fetchedParams.Currency)
	assert.True(t, store.fetchedForce)
}

func TestGetPositionsHandlerInvalidAddress(t *testing.T) {
	store := &stubPositionsStore{}
	router := setupTestRouter(store)

	w := performRequest(router, "/api/v1/positions?address=not-an-address")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or missing wallet address")
}

func TestGetPositionsHandlerStaleSnapshot(t *testing.T) {
	store := &stubPositionsStore{
		fetchResult: sampleResult(),
		fetchErr:    errors.New("backend unavailable"),
		lastError: &entity.PositionsError{
			WalletAddress: testAddress,
			Currency:      "USD",
			Message:       "backend unavailable",
			OccurredAt:    time.Now(),
		},
	}
	router := setupTestRouter(store)

	w := performRequest(router, "/api/v1/positions?address="+testAddress)

	require.Equal(t, http.StatusOK, w.Code)

	var resp APIPositionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Stale)
	require.NotNil(t, resp.ServiceError)
	assert.Equal(t, "backend unavailable", resp.ServiceError.Message)
	require.Len(t, resp.Data.Positions, 1)
}

func TestGetPositionsHandlerFetchFailedNoSnapshot(t *testing.T) {
	store := &stubPositionsStore{fetchErr: errors.New("backend unavailable")}
	router := setupTestRouter(store)

	w := performRequest(router, "/api/v1/positions?address="+testAddress)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "failed to retrieve positions")
}

func TestGetBalanceHandler(t *testing.T) {
	store := &stubPositionsStore{balance: "10100"}
	router := setupTestRouter(store)

	w := performRequest(router, "/api/v1/balance?address="+testAddress+"&currency=EUR")

	require.Equal(t, http.StatusOK, w.Code)

	var resp APIBalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testAddress, resp.Address)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, "10100", resp.Balance)
}

func TestGetBalanceHandlerInvalidAddress(t *testing.T) {
	store := &stubPositionsStore{balance: "10100"}
	router := setupTestRouter(store)

	w := performRequest(router, "/api/v1/balance?address=0xzz")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	store := &stubPositionsStore{}
	router := setupTestRouter(store)

	w := performRequest(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
