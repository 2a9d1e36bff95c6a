package restapi

import (
	"net/http"

	"positions_tracker/internal/app/port"
	"positions_tracker/internal/config"
	"positions_tracker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// APIPositionsResponse defines the response structure for the positions
// endpoint.
type APIPositionsResponse struct {
	Data struct {
		Positions []entity.TransformedPosition `json:"positions"`
		Totals    entity.PositionTotals        `json:"totals"`
	} `json:"data"`
	Stale         bool                   `json:"stale,omitempty"`
	ServiceError  *entity.PositionsError `json:"service_error,omitempty"`
	StatusMessage string                 `json:"status_message"`
}

// APIBalanceResponse defines the response structure for the balance endpoint.
type APIBalanceResponse struct {
	Address  string `json:"address"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

// PositionsHandler handles HTTP requests related to wallet positions.
type PositionsHandler struct {
	store port.PositionsStore
	cfg   *config.Config
}

// NewPositionsHandler creates a new instance of PositionsHandler.
func NewPositionsHandler(store port.PositionsStore, cfg *config.Config) *PositionsHandler {
	return &PositionsHandler{
		store: store,
		cfg:   cfg,
	}
}

// GetPositionsHandler handles the request for a wallet's transformed
// positions. A failed refresh still answers with the stale snapshot when one
// exists.
func (h *PositionsHandler) GetPositionsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	address := c.Query("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing wallet address"})
		return
	}
	currency := c.DefaultQuery("currency", h.cfg.Positions.DefaultCurrency)
	force := c.Query("force") == "true"

	params := entity.FetchParams{Address: address, Currency: currency}
	data, err := h.store.Fetch(ctx, params, force)

	if err != nil && data == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to retrieve positions: " + err.Error()})
		return
	}

	response := APIPositionsResponse{}
	response.Data.Positions = data.Positions
	response.Data.Totals = data.Totals

	if err != nil {
		response.Stale = true
		response.ServiceError = h.store.LastError(address, currency)
		response.StatusMessage = "Positions retrieved from cache. The latest refresh failed."
	} else {
		response.StatusMessage = "Positions retrieved successfully."
	}

	c.JSON(http.StatusOK, response)
}

// GetBalanceHandler handles the request for a wallet's spendable balance.
// This is a derived query over the cached snapshot, never a network call.
func (h *PositionsHandler) GetBalanceHandler(c *gin.Context) {
	address := c.Query("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing wallet address"})
		return
	}
	currency := c.DefaultQuery("currency", h.cfg.Positions.DefaultCurrency)

	c.JSON(http.StatusOK, APIBalanceResponse{
		Address:  address,
		Currency: currency,
		Balance:  h.store.GetBalance(address, currency),
	})
}
