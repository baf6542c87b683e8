package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderUpdate is emitted whenever the coordinator learns a new lifecycle
// state for an order, either from a status poll or from a cancel confirmation.
type OrderUpdate struct {
	TradingPair     string
	UpdateTimestamp time.Time
	NewState        OrderState
	ClientOrderID   string
	ExchangeOrderID string

	CreationTxHash     string
	CancellationTxHash string
}

// TradeUpdate describes one fill of an order. The venue only reports
// order-level status, so fills are synthesized all-or-nothing from a FILLED
// order snapshot and are not persisted.
type TradeUpdate struct {
	TradeID         string
	ClientOrderID   string
	ExchangeOrderID string
	TradingPair     string
	FillTimestamp   time.Time
	FillPrice       decimal.Decimal
	FillBaseAmount  decimal.Decimal
	FillQuoteAmount decimal.Decimal
	FeeAmount       decimal.Decimal
	FeeToken        string
}

type BalanceUpdate struct {
	Token     string
	Total     decimal.Decimal
	Available decimal.Decimal
	Timestamp time.Time
}

// EventSink receives update objects fire-and-forget; the coordinator never
// waits on delivery. Nil callbacks are skipped.
type EventSink struct {
	OnOrderUpdate   func(OrderUpdate)
	OnTradeUpdate   func(TradeUpdate)
	OnBalanceUpdate func(BalanceUpdate)
}

func (s *EventSink) EmitOrderUpdate(u OrderUpdate) {
	if s != nil && s.OnOrderUpdate != nil {
		s.OnOrderUpdate(u)
	}
}

func (s *EventSink) EmitTradeUpdate(u TradeUpdate) {
	if s != nil && s.OnTradeUpdate != nil {
		s.OnTradeUpdate(u)
	}
}

func (s *EventSink) EmitBalanceUpdate(u BalanceUpdate) {
	if s != nil && s.OnBalanceUpdate != nil {
		s.OnBalanceUpdate(u)
	}
}
