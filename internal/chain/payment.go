// Package chain simulates the crypto payment rail. Conversion rates are
// hardcoded, transaction ids are random, and verification always succeeds.
// Nothing here talks to a real network; it exists so the payment flows can be
// exercised end to end before a settlement integration lands.
package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WalletAddress is the fixed receiving address shown in the payment dialog.
// In production this would be generated per transaction.
const WalletAddress = "0x3Dc6aA12dEc4136d5f48C3Ec582Cf77793deCf85"

// ErrUnsupportedSymbol is returned for symbols outside the mock rate table
var ErrUnsupportedSymbol = errors.New("unsupported cryptocurrency symbol")

// usdRates maps a chain id to its mock USD price per coin
var usdRates = map[string]struct {
	rate     float64
	decimals int
}{
	"ethereum": {rate: 3500, decimals: 4},
	"sui":      {rate: 1.2, decimals: 2},
	"klaytn":   {rate: 0.15, decimals: 2},
}

// Quote is a mock USD-to-crypto conversion for a payment
type Quote struct {
	Symbol        string  `json:"symbol"`
	AmountUSD     float64 `json:"amount_usd"`
	CryptoAmount  string  `json:"crypto_amount"`
	WalletAddress string  `json:"wallet_address"`
}

// QuotePayment converts a USD amount into the selected cryptocurrency using
// the fixed mock rates.
func QuotePayment(amountUSD float64, symbol string) (Quote, error) {
	entry, ok := usdRates[strings.ToLower(symbol)]
	if !ok {
		return Quote{}, ErrUnsupportedSymbol
	}

	return Quote{
		Symbol:        strings.ToLower(symbol),
		AmountUSD:     amountUSD,
		CryptoAmount:  fmt.Sprintf("%.*f", entry.decimals, amountUSD/entry.rate),
		WalletAddress: WalletAddress,
	}, nil
}

// NewTransactionID produces a fake transaction id for the payment dialog
func NewTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Verifier confirms blockchain transactions. This implementation is a mock:
// it resolves success after a fixed delay regardless of input.
type Verifier struct {
	Delay time.Duration
}

// NewVerifier creates a mock verifier with the given simulated latency
func NewVerifier(delay time.Duration) *Verifier {
	return &Verifier{Delay: delay}
}

// VerifyTransaction pretends to check a transaction on chain. It always
// reports success once the simulated latency has elapsed, or returns the
// context error if the caller gives up first.
func (v *Verifier) VerifyTransaction(ctx context.Context, txHash string, amount float64, symbol string) (bool, error) {
	timer := time.NewTimer(v.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
		return true, nil
	}
}
