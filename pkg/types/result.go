package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderResult is the immutable outcome of one order inside a batch
// creation. All members of a batch share the same transaction hash.
type PlaceOrderResult struct {
	UpdateTimestamp time.Time
	ClientOrderID   string
	ExchangeOrderID string
	TradingPair     string
	CreationTxHash  string
	Err             error
}

// CancelOrderResult is the immutable outcome of one order inside a batch
// cancellation. An order excluded from the batch (exchange id never resolved)
// still gets a result carrying the shared transaction hash.
type CancelOrderResult struct {
	ClientOrderID      string
	TradingPair        string
	CancellationTxHash string
	Err                error
}

type OrderBookLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

type OrderBookSnapshot struct {
	TradingPair string
	Bids        []OrderBookLevel
	Asks        []OrderBookLevel
	Timestamp   time.Time
}

type Balance struct {
	Total     decimal.Decimal
	Available decimal.Decimal
}
