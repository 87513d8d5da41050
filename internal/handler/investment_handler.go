package handler

import (
	"net/http"
	"strconv"

	"github.com/Olocraft/propady/internal/chain"
	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/internal/store"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/Olocraft/propady/pkg/logger"
	"github.com/Olocraft/propady/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RecordInvestment handles persisting a completed property investment. The
// payment dialog treats this as best effort: the response is a bare success
// flag and storage failures are only logged, never surfaced as HTTP errors.
func RecordInvestment(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)
	prometheus.RecordInvestmentOperation("record")

	var req struct {
		PropertyID string  `json:"property_id"`
		Amount     float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid investment request", zap.Error(err))
		return c.JSON(http.StatusOK, echo.Map{"success": false})
	}

	if req.PropertyID == "" || req.Amount <= 0 {
		log.Warn("Incomplete investment data",
			zap.String("property_id", req.PropertyID),
			zap.Float64("amount", req.Amount))
		return c.JSON(http.StatusOK, echo.Map{"success": false})
	}

	investment, err := store.NewInvestmentStore(database.GetDB()).Record(req.PropertyID, userID, req.Amount)
	if err != nil {
		log.Error("Failed to record investment",
			zap.String("property_id", req.PropertyID),
			zap.Uint("investor_id", userID),
			zap.Error(err))
		return c.JSON(http.StatusOK, echo.Map{"success": false})
	}

	log.Info("Investment recorded",
		zap.String("investment_id", investment.ID),
		zap.String("property_id", investment.PropertyID),
		zap.Float64("amount", investment.Amount),
		zap.Int("tokens", investment.Tokens))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ListMyInvestments returns the caller's investment history with the
// associated properties attached. A query failure degrades to an empty list.
func ListMyInvestments(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)
	prometheus.RecordInvestmentOperation("list")

	investments, err := store.NewInvestmentStore(database.GetDB()).ListByInvestor(userID)
	if err != nil {
		log.Error("Failed to list investments", zap.Uint("investor_id", userID), zap.Error(err))
		return c.JSON(http.StatusOK, []model.Investment{})
	}

	return c.JSON(http.StatusOK, investments)
}

// VerifyTransaction checks a payment transaction through the chain verifier
func VerifyTransaction(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInvestmentOperation("verify")

	var req struct {
		TxHash string  `json:"tx_hash"`
		Amount float64 `json:"amount"`
		Symbol string  `json:"symbol"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid verification request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.TxHash == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tx_hash is required"})
	}

	verified, err := verifier.VerifyTransaction(c.Request().Context(), req.TxHash, req.Amount, req.Symbol)
	if err != nil {
		log.Error("Transaction verification failed", zap.String("tx_hash", req.TxHash), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}

	log.Info("Transaction verified",
		zap.String("tx_hash", req.TxHash),
		zap.Bool("verified", verified))
	return c.JSON(http.StatusOK, echo.Map{
		"verified":       verified,
		"transaction_id": chain.NewTransactionID(),
	})
}

// GetPaymentQuote converts a USD amount into the selected cryptocurrency
func GetPaymentQuote(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInvestmentOperation("quote")

	amountParam := c.QueryParam("amount")
	symbol := c.QueryParam("symbol")
	if amountParam == "" || symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount and symbol are required"})
	}

	amount, err := strconv.ParseFloat(amountParam, 64)
	if err != nil || amount <= 0 {
		log.Warn("Invalid quote amount", zap.String("value", amountParam))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive number"})
	}

	quote, err := chain.QuotePayment(amount, symbol)
	if err != nil {
		log.Warn("Unsupported quote symbol", zap.String("symbol", symbol))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported cryptocurrency symbol"})
	}

	return c.JSON(http.StatusOK, quote)
}
