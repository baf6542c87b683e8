package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"klob/pkg/types"
)

func newBuyOrder(clientOrderID string) *Order {
	return New(
		clientOrderID,
		"KUJI-USK",
		types.OrderSideBuy,
		types.OrderLimit,
		decimal.RequireFromString("0.974"),
		decimal.RequireFromString("100"),
	)
}

func TestNew_StartsPendingCreate(t *testing.T) {
	o := newBuyOrder("hbot-1")
	if o.State() != types.OrderStatePendingCreate {
		t.Errorf("state = %v, want pending create", o.State())
	}
	if o.ExchangeOrderID() != "" {
		t.Errorf("exchange order id must start empty, got %v", o.ExchangeOrderID())
	}
}

func TestSetExchangeOrderID_FirstWriteWins(t *testing.T) {
	o := newBuyOrder("hbot-1")
	o.SetExchangeOrderID("1234")
	o.SetExchangeOrderID("5678")
	if o.ExchangeOrderID() != "1234" {
		t.Errorf("exchange order id = %v, want the first assignment", o.ExchangeOrderID())
	}
}

func TestSetExchangeOrderID_IgnoresEmpty(t *testing.T) {
	o := newBuyOrder("hbot-1")
	o.SetExchangeOrderID("")
	o.SetExchangeOrderID("1234")
	if o.ExchangeOrderID() != "1234" {
		t.Errorf("exchange order id = %v, want 1234", o.ExchangeOrderID())
	}
}

func TestAwaitExchangeOrderID_AlreadySet(t *testing.T) {
	o := newBuyOrder("hbot-1")
	o.SetExchangeOrderID("1234")

	id, err := o.AwaitExchangeOrderID(context.Background(), time.Millisecond)
	if err != nil || id != "1234" {
		t.Errorf("got (%v, %v), want (1234, nil)", id, err)
	}
}

func TestAwaitExchangeOrderID_SetWhileWaiting(t *testing.T) {
	o := newBuyOrder("hbot-1")

	go func() {
		time.Sleep(10 * time.Millisecond)
		o.SetExchangeOrderID("1234")
	}()

	id, err := o.AwaitExchangeOrderID(context.Background(), time.Second)
	if err != nil || id != "1234" {
		t.Errorf("got (%v, %v), want (1234, nil)", id, err)
	}
}

func TestAwaitExchangeOrderID_Timeout(t *testing.T) {
	o := newBuyOrder("hbot-1")

	if _, err := o.AwaitExchangeOrderID(context.Background(), 10*time.Millisecond); err == nil {
		t.Error("unassigned id must time out")
	}
}

func TestAwaitExchangeOrderID_ContextCancellation(t *testing.T) {
	o := newBuyOrder("hbot-1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.AwaitExchangeOrderID(ctx, time.Second); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestMemoryTracker(t *testing.T) {
	tracker := NewMemoryTracker()

	a := newBuyOrder("hbot-1")
	b := newBuyOrder("hbot-2")
	tracker.Track(a)
	tracker.Track(b)

	if got := tracker.FetchTrackedOrder("hbot-1"); got != a {
		t.Errorf("fetched %v, want the tracked order", got)
	}
	if got := tracker.FetchTrackedOrder("ghost"); got != nil {
		t.Errorf("unknown id must fetch nil, got %v", got)
	}

	active := tracker.ActiveOrders()
	if len(active) != 2 {
		t.Fatalf("active = %d, want 2", len(active))
	}

	// the returned map is a copy; mutating it must not affect the tracker
	delete(active, "hbot-1")
	if tracker.FetchTrackedOrder("hbot-1") == nil {
		t.Error("deleting from the copy must not untrack the order")
	}

	tracker.Untrack("hbot-2")
	if tracker.FetchTrackedOrder("hbot-2") != nil {
		t.Error("untracked order must be gone")
	}
}
