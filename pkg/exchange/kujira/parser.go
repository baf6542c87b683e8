package kujira

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"klob/pkg/gateway"
	"klob/pkg/types"
)

func parseTickerPrice(res *gateway.TickerResponse, tradingPair string) (decimal.Decimal, error) {
	ticker, ok := res.Markets[tradingPair]
	if !ok {
		return decimal.Zero, fmt.Errorf("no ticker for trading pair '%s'", tradingPair)
	}
	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid ticker price %q for '%s': %w", ticker.Price, tradingPair, err)
	}
	return price, nil
}

func parseOrderBookSnapshot(res *gateway.OrderbookResponse, tradingPair string) (*types.OrderBookSnapshot, error) {
	bids, err := parseOrderBookLevels(res.Bids)
	if err != nil {
		return nil, fmt.Errorf("invalid bid level: %w", err)
	}
	asks, err := parseOrderBookLevels(res.Asks)
	if err != nil {
		return nil, fmt.Errorf("invalid ask level: %w", err)
	}
	return &types.OrderBookSnapshot{
		TradingPair: tradingPair,
		Bids:        bids,
		Asks:        asks,
		Timestamp:   time.Now(),
	}, nil
}

func parseOrderBookLevels(levels []gateway.OrderbookLevel) ([]types.OrderBookLevel, error) {
	parsed := make([]types.OrderBookLevel, 0, len(levels))
	for _, level := range levels {
		price, err := decimal.NewFromString(level.Price)
		if err != nil {
			return nil, fmt.Errorf("price %q: %w", level.Price, err)
		}
		quantity, err := decimal.NewFromString(level.Quantity)
		if err != nil {
			return nil, fmt.Errorf("quantity %q: %w", level.Quantity, err)
		}
		parsed = append(parsed, types.OrderBookLevel{Price: price, Quantity: quantity})
	}
	return parsed, nil
}

func parseBalances(res *gateway.BalancesResponse) (map[string]types.Balance, error) {
	balances := make(map[string]types.Balance, len(res.Balances))
	for token, amount := range res.Balances {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid balance %q for token '%s': %w", amount, token, err)
		}
		balances[token] = types.Balance{Total: value, Available: value}
	}
	return balances, nil
}
