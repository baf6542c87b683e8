package kujira

import (
	"testing"

	"github.com/shopspring/decimal"

	"klob/pkg/gateway"
)

func TestParseTickerPrice(t *testing.T) {
	res := &gateway.TickerResponse{Markets: map[string]gateway.TickerRecord{
		"KUJI-USK": {Price: "0.974"},
	}}

	price, err := parseTickerPrice(res, "KUJI-USK")
	if err != nil {
		t.Fatalf("parseTickerPrice failed: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("0.974")) {
		t.Errorf("price = %v, want 0.974", price)
	}
}

func TestParseTickerPrice_MissingPair(t *testing.T) {
	res := &gateway.TickerResponse{Markets: map[string]gateway.TickerRecord{}}
	if _, err := parseTickerPrice(res, "KUJI-USK"); err == nil {
		t.Error("missing pair must fail")
	}
}

func TestParseTickerPrice_InvalidPrice(t *testing.T) {
	res := &gateway.TickerResponse{Markets: map[string]gateway.TickerRecord{
		"KUJI-USK": {Price: "n/a"},
	}}
	if _, err := parseTickerPrice(res, "KUJI-USK"); err == nil {
		t.Error("unparsable price must fail")
	}
}

func TestParseOrderBookSnapshot(t *testing.T) {
	res := &gateway.OrderbookResponse{
		Bids: []gateway.OrderbookLevel{
			{Price: "9", Quantity: "1"},
			{Price: "8", Quantity: "2"},
		},
		Asks: []gateway.OrderbookLevel{
			{Price: "11", Quantity: "3"},
		},
	}

	snapshot, err := parseOrderBookSnapshot(res, "KUJI-USK")
	if err != nil {
		t.Fatalf("parseOrderBookSnapshot failed: %v", err)
	}
	if snapshot.TradingPair != "KUJI-USK" {
		t.Errorf("trading pair = %v, want KUJI-USK", snapshot.TradingPair)
	}
	if len(snapshot.Bids) != 2 || len(snapshot.Asks) != 1 {
		t.Fatalf("levels = %d bids / %d asks, want 2 / 1", len(snapshot.Bids), len(snapshot.Asks))
	}
	if !snapshot.Bids[0].Price.Equal(decimal.NewFromInt(9)) || !snapshot.Bids[0].Quantity.Equal(decimal.NewFromInt(1)) {
		t.Errorf("best bid = %v @ %v, want 1 @ 9", snapshot.Bids[0].Quantity, snapshot.Bids[0].Price)
	}
	if !snapshot.Asks[0].Price.Equal(decimal.NewFromInt(11)) {
		t.Errorf("best ask price = %v, want 11", snapshot.Asks[0].Price)
	}
	if snapshot.Timestamp.IsZero() {
		t.Error("snapshot must be timestamped")
	}
}

func TestParseOrderBookSnapshot_InvalidLevel(t *testing.T) {
	res := &gateway.OrderbookResponse{
		Bids: []gateway.OrderbookLevel{{Price: "nine", Quantity: "1"}},
	}
	if _, err := parseOrderBookSnapshot(res, "KUJI-USK"); err == nil {
		t.Error("unparsable level must fail")
	}
}

func TestParseBalances(t *testing.T) {
	res := &gateway.BalancesResponse{Balances: map[string]string{
		"KUJI": "1500.5",
		"USK":  "0",
	}}

	balances, err := parseBalances(res)
	if err != nil {
		t.Fatalf("parseBalances failed: %v", err)
	}
	kuji := balances["KUJI"]
	if !kuji.Total.Equal(decimal.RequireFromString("1500.5")) {
		t.Errorf("KUJI total = %v, want 1500.5", kuji.Total)
	}
	// the venue has no hold concept, so available mirrors total
	if !kuji.Available.Equal(kuji.Total) {
		t.Errorf("available = %v, total = %v, want equal", kuji.Available, kuji.Total)
	}
	if !balances["USK"].Total.Equal(decimal.Zero) {
		t.Errorf("USK total = %v, want 0", balances["USK"].Total)
	}
}

func TestParseBalances_InvalidAmount(t *testing.T) {
	res := &gateway.BalancesResponse{Balances: map[string]string{"KUJI": "lots"}}
	if _, err := parseBalances(res); err == nil {
		t.Error("unparsable amount must fail")
	}
}

func TestMarketNameToTradingPair(t *testing.T) {
	if got := marketNameToTradingPair("KUJI/USK"); got != "KUJI-USK" {
		t.Errorf("got %v, want KUJI-USK", got)
	}
}

func TestTradingPairTokens(t *testing.T) {
	base, quote := tradingPairTokens("KUJI-USK")
	if base != "KUJI" || quote != "USK" {
		t.Errorf("got %v / %v, want KUJI / USK", base, quote)
	}
}

func TestIsOrderNotFoundError(t *testing.T) {
	notFound := &gateway.APIError{StatusCode: 500, Message: "No orders with the specified information exist in orderbook"}
	if !isOrderNotFoundError(notFound) {
		t.Error("venue not-found message must be recognized")
	}
	other := &gateway.APIError{StatusCode: 500, Message: "insufficient gas"}
	if isOrderNotFoundError(other) {
		t.Error("unrelated venue error must not be recognized")
	}
	if isOrderNotFoundError(nil) {
		t.Error("nil error must not be recognized")
	}
}
