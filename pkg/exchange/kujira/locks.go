package kujira

import "sync"

// operationLocks serializes submissions within one operation category against
// the shared account. Categories are independent: a single cancel and a batch
// place may run concurrently. The settle locks are reserved for the funds
// settlement operations and are held by nothing else.
type operationLocks struct {
	placeOrder      sync.Mutex
	placeOrders     sync.Mutex
	cancelOrder     sync.Mutex
	cancelOrders    sync.Mutex
	cancelAllOrders sync.Mutex

	settleMarketFunds     sync.Mutex
	settleMarketsFunds    sync.Mutex
	settleAllMarketsFunds sync.Mutex
}
