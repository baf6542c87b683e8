package kujira

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"klob/pkg/gateway"
	"klob/pkg/order"
)

// generateClientOrderID derives a deterministic client id from the order's
// attributes, so retrying the same logical order in a batch yields the same
// identity.
func generateClientOrderID(o *order.Order) string {
	h := sha256.New()
	h.Write([]byte(o.TradingPair))
	h.Write([]byte(o.Side))
	h.Write([]byte(o.Type))
	h.Write([]byte(o.Price.String()))
	h.Write([]byte(o.Amount.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// marketNameToTradingPair converts the venue's market name ("KUJI/USK") to
// the engine's trading-pair form ("KUJI-USK").
func marketNameToTradingPair(name string) string {
	return strings.ReplaceAll(name, "/", "-")
}

// tradingPairTokens splits "KUJI-USK" into its base and quote symbols.
func tradingPairTokens(tradingPair string) (base string, quote string) {
	parts := strings.SplitN(tradingPair, "-", 2)
	base = parts[0]
	if len(parts) == 2 {
		quote = parts[1]
	}
	return base, quote
}

// isOrderNotFoundError reports whether a cancel rejection means the order is
// already gone. A structured code from the gateway would be preferable; until
// one exists the venue's message text is the contract.
func isOrderNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return strings.Contains(apiErr.Message, orderNotFoundMessage)
	}
	return strings.Contains(err.Error(), orderNotFoundMessage)
}
