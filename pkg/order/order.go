package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"klob/pkg/types"
)

// Order is an in-flight order owned by the trading engine's tracker. The
// exchange layer reads and mutates the exchange order id, lifecycle state and
// transaction hashes; everything else is set once at creation.
type Order struct {
	ClientOrderID string
	TradingPair   string
	Side          types.OrderSide
	Type          types.OrderType
	Price         decimal.Decimal
	Amount        decimal.Decimal

	CreationTimestamp time.Time

	mu                 sync.Mutex
	exchangeOrderID    string
	exchangeOrderIDSet chan struct{}
	state              types.OrderState

	CreationTxHash     string
	CancellationTxHash string
}

func New(clientOrderID string, tradingPair string, side types.OrderSide, orderType types.OrderType, price decimal.Decimal, amount decimal.Decimal) *Order {
	return &Order{
		ClientOrderID:      clientOrderID,
		TradingPair:        tradingPair,
		Side:               side,
		Type:               orderType,
		Price:              price,
		Amount:             amount,
		CreationTimestamp:  time.Now(),
		exchangeOrderIDSet: make(chan struct{}),
		state:              types.OrderStatePendingCreate,
	}
}

func (o *Order) State() types.OrderState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Order) SetState(state types.OrderState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = state
}

// ExchangeOrderID returns the venue-assigned id, or "" while unassigned.
func (o *Order) ExchangeOrderID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.exchangeOrderID
}

func (o *Order) SetExchangeOrderID(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.exchangeOrderID == "" && id != "" {
		o.exchangeOrderID = id
		close(o.exchangeOrderIDSet)
	}
}

// AwaitExchangeOrderID blocks until the venue-assigned id is known, the
// timeout elapses, or ctx is done.
func (o *Order) AwaitExchangeOrderID(ctx context.Context, timeout time.Duration) (string, error) {
	o.mu.Lock()
	if o.exchangeOrderID != "" {
		id := o.exchangeOrderID
		o.mu.Unlock()
		return id, nil
	}
	set := o.exchangeOrderIDSet
	o.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-set:
		return o.ExchangeOrderID(), nil
	case <-timer.C:
		return "", fmt.Errorf("timed out waiting for exchange order id of order '%s'", o.ClientOrderID)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Tracker is the trading engine's order store. The exchange layer consumes it
// to look up known orders; it never owns their storage.
type Tracker interface {
	ActiveOrders() map[string]*Order
	FetchTrackedOrder(clientOrderID string) *Order
}
