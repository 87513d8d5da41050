package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Olocraft/propady/internal/chain"
	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/internal/store"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInvestment(t *testing.T) {
	setupTest(t)
	property := createTestProperty(t, 1, "Lekki Duplex", 130000)

	c, rec := newJSONContext(t, http.MethodPost, "/api/investments", map[string]interface{}{
		"property_id": property.ID,
		"amount":      55,
	})
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, RecordInvestment(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	investments, err := store.NewInvestmentStore(database.GetDB()).ListByInvestor(7)
	require.NoError(t, err)
	require.Len(t, investments, 1)
	assert.Equal(t, 55.0, investments[0].Amount)
	assert.Equal(t, 5, investments[0].Tokens)
}

func TestRecordInvestmentInvalidInput(t *testing.T) {
	setupTest(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing property", map[string]interface{}{"amount": 55}},
		{"zero amount", map[string]interface{}{"property_id": "p", "amount": 0}},
		{"negative amount", map[string]interface{}{"property_id": "p", "amount": -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/investments", tt.body)
			asAuthenticated(c, 7, "ada@example.com")

			// The payment dialog reads a success flag, never an error status
			require.NoError(t, RecordInvestment(c))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, false, decodeBody(t, rec)["success"])
		})
	}
}

func TestListMyInvestments(t *testing.T) {
	setupTest(t)
	property := createTestProperty(t, 1, "Lekki Duplex", 130000)

	investmentStore := store.NewInvestmentStore(database.GetDB())
	_, err := investmentStore.Record(property.ID, 7, 100)
	require.NoError(t, err)
	_, err = investmentStore.Record(property.ID, 8, 40)
	require.NoError(t, err)

	c, rec := newJSONContext(t, http.MethodGet, "/api/investments", nil)
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, ListMyInvestments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var investments []model.Investment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &investments))
	require.Len(t, investments, 1)
	require.NotNil(t, investments[0].Property)
	assert.Equal(t, "Lekki Duplex", investments[0].Property.Title)
}

func TestListMyInvestmentsDegradesToEmptyList(t *testing.T) {
	setupTest(t)
	require.NoError(t, database.GetDB().Migrator().DropTable(&model.Investment{}))

	c, rec := newJSONContext(t, http.MethodGet, "/api/investments", nil)
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, ListMyInvestments(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestVerifyTransaction(t *testing.T) {
	setupTest(t)

	c, rec := newJSONContext(t, http.MethodPost, "/api/investments/verify", map[string]interface{}{
		"tx_hash": "0xabc123",
		"amount":  100,
		"symbol":  "ethereum",
	})
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, VerifyTransaction(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["verified"])
	assert.Len(t, body["transaction_id"], 32)
}

func TestVerifyTransactionRequiresHash(t *testing.T) {
	setupTest(t)

	c, rec := newJSONContext(t, http.MethodPost, "/api/investments/verify", map[string]interface{}{
		"amount": 100, "symbol": "ethereum",
	})
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, VerifyTransaction(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPaymentQuote(t *testing.T) {
	setupTest(t)

	c, rec := newJSONContext(t, http.MethodGet, "/api/payments/quote?amount=7000&symbol=ethereum", nil)
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, GetPaymentQuote(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var quote chain.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, "2.0000", quote.CryptoAmount)
	assert.Equal(t, chain.WalletAddress, quote.WalletAddress)
}

func TestGetPaymentQuoteInvalidInput(t *testing.T) {
	setupTest(t)

	tests := []struct {
		name   string
		target string
	}{
		{"missing amount", "/api/payments/quote?symbol=ethereum"},
		{"missing symbol", "/api/payments/quote?amount=100"},
		{"non-numeric amount", "/api/payments/quote?amount=lots&symbol=ethereum"},
		{"negative amount", "/api/payments/quote?amount=-5&symbol=ethereum"},
		{"unsupported symbol", "/api/payments/quote?amount=100&symbol=dogecoin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodGet, tt.target, nil)
			asAuthenticated(c, 7, "ada@example.com")
			require.NoError(t, GetPaymentQuote(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
