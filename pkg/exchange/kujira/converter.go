package kujira

import (
	"fmt"

	"github.com/shopspring/decimal"

	"klob/pkg/gateway"
	"klob/pkg/market"
	"klob/pkg/types"
)

func parseMarketRecord(rec gateway.MarketRecord) (*market.Market, error) {
	minOrderSize, err := decimal.NewFromString(rec.MinimumOrderSize)
	if err != nil {
		return nil, &InvalidMarketDataError{Market: rec.Name, Field: "minimumOrderSize", Value: rec.MinimumOrderSize}
	}
	minPriceIncrement, err := decimal.NewFromString(rec.MinimumPriceIncrement)
	if err != nil {
		return nil, &InvalidMarketDataError{Market: rec.Name, Field: "minimumPriceIncrement", Value: rec.MinimumPriceIncrement}
	}
	minBaseIncrement, err := decimal.NewFromString(rec.MinimumBaseAmountIncrement)
	if err != nil {
		return nil, &InvalidMarketDataError{Market: rec.Name, Field: "minimumBaseAmountIncrement", Value: rec.MinimumBaseAmountIncrement}
	}
	minQuoteIncrement, err := decimal.NewFromString(rec.MinimumQuoteAmountIncrement)
	if err != nil {
		return nil, &InvalidMarketDataError{Market: rec.Name, Field: "minimumQuoteAmountIncrement", Value: rec.MinimumQuoteAmountIncrement}
	}
	makerFee, err := decimal.NewFromString(rec.Fees.Maker)
	if err != nil {
		return nil, &InvalidMarketDataError{Market: rec.Name, Field: "fees.maker", Value: rec.Fees.Maker}
	}
	takerFee, err := decimal.NewFromString(rec.Fees.Taker)
	if err != nil {
		return nil, &InvalidMarketDataError{Market: rec.Name, Field: "fees.taker", Value: rec.Fees.Taker}
	}
	serviceProvider, err := decimal.NewFromString(rec.Fees.ServiceProvider)
	if err != nil {
		return nil, &InvalidMarketDataError{Market: rec.Name, Field: "fees.serviceProvider", Value: rec.Fees.ServiceProvider}
	}

	return &market.Market{
		ID:          rec.ID,
		Name:        rec.Name,
		TradingPair: marketNameToTradingPair(rec.Name),
		BaseToken: market.Token{
			ID:       rec.BaseToken.ID,
			Name:     rec.BaseToken.Name,
			Symbol:   rec.BaseToken.Symbol,
			Decimals: rec.BaseToken.Decimals,
		},
		QuoteToken: market.Token{
			ID:       rec.QuoteToken.ID,
			Name:     rec.QuoteToken.Name,
			Symbol:   rec.QuoteToken.Symbol,
			Decimals: rec.QuoteToken.Decimals,
		},
		MinOrderSize:            minOrderSize,
		MinPriceIncrement:       minPriceIncrement,
		MinBaseAmountIncrement:  minBaseIncrement,
		MinQuoteAmountIncrement: minQuoteIncrement,
		Fees: market.FeeSchedule{
			Maker:           makerFee,
			Taker:           takerFee,
			ServiceProvider: serviceProvider,
		},
	}, nil
}

// ToTradingRule maps a market snapshot to the increments enforced before
// submission.
func ToTradingRule(m *market.Market) *market.TradingRule {
	return &market.TradingRule{
		TradingPair:             m.TradingPair,
		MinOrderSize:            m.MinOrderSize,
		MinPriceIncrement:       m.MinPriceIncrement,
		MinBaseAmountIncrement:  m.MinBaseAmountIncrement,
		MinQuoteAmountIncrement: m.MinQuoteAmountIncrement,
	}
}

// ToFeeRates scales the raw maker/taker fees by (1 - service provider share).
// This venue has no flat fees.
func ToFeeRates(m *market.Market) *market.FeeRates {
	feeScaler := decimal.NewFromInt(1).Sub(m.Fees.ServiceProvider)
	return &market.FeeRates{
		Maker:         m.Fees.Maker.Mul(feeScaler),
		Taker:         m.Fees.Taker.Mul(feeScaler),
		MakerFlatFees: []decimal.Decimal{},
		TakerFlatFees: []decimal.Decimal{},
	}
}

func convertOrderSide(side types.OrderSide) (string, error) {
	switch side {
	case types.OrderSideBuy:
		return "BUY", nil
	case types.OrderSideSell:
		return "SELL", nil
	default:
		return "", fmt.Errorf("unknown order side: %s", side)
	}
}

func convertOrderType(orderType types.OrderType) (string, error) {
	switch orderType {
	case types.OrderLimit:
		return "LIMIT", nil
	default:
		return "", fmt.Errorf("unsupported order type: %s", orderType)
	}
}

// translateVenueStatus maps the venue's status vocabulary to the internal
// order state. Unknown strings fail fast rather than defaulting, so a venue
// contract change surfaces immediately.
func translateVenueStatus(status string) (types.OrderState, error) {
	switch status {
	case venueStatusOpen:
		return types.OrderStateOpen, nil
	case venueStatusCancelled:
		return types.OrderStateCanceled, nil
	case venueStatusPartiallyFilled:
		return types.OrderStatePartiallyFilled, nil
	case venueStatusFilled:
		return types.OrderStateFilled, nil
	case venueStatusCreationPending:
		return types.OrderStatePendingCreate, nil
	case venueStatusCancellationPending:
		return types.OrderStatePendingCancel, nil
	default:
		return "", &TranslationError{Status: status}
	}
}
