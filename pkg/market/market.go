package market

import "github.com/shopspring/decimal"

// Token describes one side of a trading pair as reported by the gateway.
type Token struct {
	ID       string
	Name     string
	Symbol   string
	Decimals int
}

// FeeSchedule holds the raw fee rates of a market. ServiceProvider is the
// share of the fee kept by the service provider; effective maker/taker rates
// are derived in the exchange converter, not here.
type FeeSchedule struct {
	Maker           decimal.Decimal
	Taker           decimal.Decimal
	ServiceProvider decimal.Decimal
}

// Market is an immutable snapshot of one trading pair's metadata. It is
// replaced wholesale on every registry refresh and must never be mutated by
// readers.
type Market struct {
	ID          string
	Name        string
	TradingPair string

	BaseToken  Token
	QuoteToken Token

	MinOrderSize            decimal.Decimal
	MinPriceIncrement       decimal.Decimal
	MinBaseAmountIncrement  decimal.Decimal
	MinQuoteAmountIncrement decimal.Decimal

	Fees FeeSchedule
}

// TradingRule carries the increments enforced before submitting an order.
// Derived 1:1 from a Market snapshot.
type TradingRule struct {
	TradingPair             string
	MinOrderSize            decimal.Decimal
	MinPriceIncrement       decimal.Decimal
	MinBaseAmountIncrement  decimal.Decimal
	MinQuoteAmountIncrement decimal.Decimal
}

// FeeRates are the effective maker/taker rates after applying the fee scaler
// (1 - service provider share). Flat fees are always empty on this venue.
type FeeRates struct {
	Maker         decimal.Decimal
	Taker         decimal.Decimal
	MakerFlatFees []decimal.Decimal
	TakerFlatFees []decimal.Decimal
}
