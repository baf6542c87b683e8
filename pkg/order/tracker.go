package order

import "sync"

// MemoryTracker is an in-process Tracker for the standalone binary and for
// tests. A trading engine embedding this module will usually supply its own.
type MemoryTracker struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{orders: make(map[string]*Order)}
}

func (t *MemoryTracker) Track(o *Order) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.orders[o.ClientOrderID] = o
}

func (t *MemoryTracker) Untrack(clientOrderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.orders, clientOrderID)
}

func (t *MemoryTracker) ActiveOrders() map[string]*Order {
	t.mu.RLock()
	defer t.mu.RUnlock()
	active := make(map[string]*Order, len(t.orders))
	for id, o := range t.orders {
		active[id] = o
	}
	return active
}

func (t *MemoryTracker) FetchTrackedOrder(clientOrderID string) *Order {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.orders[clientOrderID]
}
