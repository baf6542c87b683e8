package kujira

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"klob/pkg/gateway"
	"klob/pkg/order"
	"klob/pkg/types"
)

// PlaceOrder submits a single create transaction. Concurrent single
// placements are serialized under the place-order lock to keep venue-side
// ordering unambiguous for the shared account. Success requires a non-empty
// transaction hash even when the call itself did not fail.
func (e *Exchange) PlaceOrder(ctx context.Context, o *order.Order) (string, string, error) {
	log.Debug("place_order: start")

	if err := e.registry.ensurePopulated(ctx); err != nil {
		return "", "", err
	}

	side, err := convertOrderSide(o.Side)
	if err != nil {
		return "", "", err
	}
	orderType, err := convertOrderType(o.Type)
	if err != nil {
		return "", "", err
	}

	e.locks.placeOrder.Lock()
	defer e.locks.placeOrder.Unlock()

	req := gateway.PlaceOrderRequest{
		Chain:         e.chain,
		Network:       e.network,
		Connector:     e.connector,
		Address:       e.address,
		TradingPair:   o.TradingPair,
		Side:          side,
		OrderType:     orderType,
		Price:         o.Price.String(),
		Size:          o.Amount.String(),
		ClientOrderID: o.ClientOrderID,
	}

	res, err := e.gw.ClobPlaceOrder(ctx, req)
	if err != nil {
		log.Debugf("placement of order '%s' failed: %v", o.ClientOrderID, err)
		return "", "", err
	}

	if res.TxHash == "" {
		return "", "", &SubmissionError{Operation: "placement", ClientOrderID: o.ClientOrderID, TxHash: res.TxHash}
	}

	o.SetExchangeOrderID(res.ID)
	o.CreationTxHash = res.TxHash

	log.Debugf("order '%s' / '%s' successfully placed, tx hash '%s'", o.ClientOrderID, res.ID, res.TxHash)
	log.Debug("place_order: end")
	return res.ID, res.TxHash, nil
}

// BatchOrderCreate submits one create-only batch transaction. Orders without
// a client id get a deterministic one derived from their attributes. The
// venue is assumed to return ids in submission order; every result shares the
// batch's single transaction hash, and the batch fails atomically on an empty
// hash.
func (e *Exchange) BatchOrderCreate(ctx context.Context, orders []*order.Order) ([]types.PlaceOrderResult, error) {
	log.Debug("batch_order_create: start")

	if err := e.registry.ensurePopulated(ctx); err != nil {
		return nil, err
	}

	ordersToCreate := make([]gateway.OrderToCreate, 0, len(orders))
	clientIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.ClientOrderID == "" {
			o.ClientOrderID = generateClientOrderID(o)
		}
		clientIDs = append(clientIDs, o.ClientOrderID)

		side, err := convertOrderSide(o.Side)
		if err != nil {
			return nil, err
		}
		orderType, err := convertOrderType(o.Type)
		if err != nil {
			return nil, err
		}
		ordersToCreate = append(ordersToCreate, gateway.OrderToCreate{
			TradingPair:   o.TradingPair,
			Side:          side,
			OrderType:     orderType,
			Price:         o.Price.String(),
			Size:          o.Amount.String(),
			ClientOrderID: o.ClientOrderID,
		})
	}

	e.locks.placeOrders.Lock()
	defer e.locks.placeOrders.Unlock()

	req := gateway.BatchOrderModifyRequest{
		Chain:          e.chain,
		Network:        e.network,
		Connector:      e.connector,
		Address:        e.address,
		OrdersToCreate: ordersToCreate,
		OrdersToCancel: []string{},
	}

	res, err := e.gw.ClobBatchOrderModify(ctx, req)
	if err != nil {
		log.Debugf("placement of orders %v failed: %v", clientIDs, err)
		return nil, err
	}

	if res.TxHash == "" {
		return nil, &SubmissionError{Operation: "batch placement", ClientOrderID: strings.Join(clientIDs, ","), TxHash: res.TxHash}
	}

	now := time.Now()
	results := make([]types.PlaceOrderResult, 0, len(orders))
	for i, o := range orders {
		var exchangeOrderID string
		if i < len(res.IDs) {
			exchangeOrderID = res.IDs[i]
			o.SetExchangeOrderID(exchangeOrderID)
		}
		o.CreationTxHash = res.TxHash

		results = append(results, types.PlaceOrderResult{
			UpdateTimestamp: now,
			ClientOrderID:   o.ClientOrderID,
			ExchangeOrderID: exchangeOrderID,
			TradingPair:     o.TradingPair,
			CreationTxHash:  res.TxHash,
		})
	}

	log.Debugf("orders %v successfully placed, tx hash '%s'", clientIDs, res.TxHash)
	log.Debug("batch_order_create: end")
	return results, nil
}

// CancelOrder cancels a resting order. Cancelling an order the tracker
// already knows as canceled (or does not know at all) is a no-op success with
// no network call. A venue "order not found" rejection is converted into
// success with the placeholder hash: on this venue a no-longer-resting order
// is exactly what a cancellation wants. Either success path forces the order
// to CANCELED.
func (e *Exchange) CancelOrder(ctx context.Context, o *order.Order) (string, error) {
	active := e.tracker.FetchTrackedOrder(o.ClientOrderID)
	if active == nil || active.State() == types.OrderStateCanceled {
		return "", nil
	}

	log.Debug("cancel_order: start")

	if err := e.registry.ensurePopulated(ctx); err != nil {
		return "", err
	}

	exchangeOrderID, err := o.AwaitExchangeOrderID(ctx, e.eoidTimeout)
	if err != nil {
		return "", err
	}

	e.locks.cancelOrder.Lock()
	defer e.locks.cancelOrder.Unlock()

	req := gateway.CancelOrderRequest{
		Chain:           e.chain,
		Network:         e.network,
		Connector:       e.connector,
		Address:         e.address,
		TradingPair:     o.TradingPair,
		ExchangeOrderID: exchangeOrderID,
	}

	var txHash string
	res, err := e.gw.ClobCancelOrder(ctx, req)
	switch {
	case err == nil && res.TxHash == "":
		return "", &SubmissionError{Operation: "cancellation", ClientOrderID: o.ClientOrderID, TxHash: res.TxHash}
	case err == nil:
		txHash = res.TxHash
		log.Debugf("order '%s' / '%s' successfully cancelled, tx hash '%s'", o.ClientOrderID, exchangeOrderID, txHash)
	case isOrderNotFoundError(err):
		txHash = PlaceholderCancelTxHash
		log.Debugf("order '%s' / '%s' already cancelled", o.ClientOrderID, exchangeOrderID)
	default:
		log.Debugf("cancellation of order '%s' / '%s' failed: %v", o.ClientOrderID, exchangeOrderID, err)
		return "", err
	}

	o.CancellationTxHash = txHash
	o.SetState(types.OrderStateCanceled)

	log.Debug("cancel_order: end")
	return txHash, nil
}

// BatchOrderCancel resolves exchange ids concurrently, bounded per order by
// the configured timeout; an order whose id never arrives is excluded from
// the batch instead of failing it. Every requested order gets a result
// carrying the batch's transaction hash, included in the submission or not.
func (e *Exchange) BatchOrderCancel(ctx context.Context, orders []*order.Order) ([]types.CancelOrderResult, error) {
	log.Debug("batch_order_cancel: start")

	if err := e.registry.ensurePopulated(ctx); err != nil {
		return nil, err
	}

	clientIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		clientIDs = append(clientIDs, o.ClientOrderID)
	}

	exchangeOrderIDs := make([]string, len(orders))
	var wg sync.WaitGroup
	for i, o := range orders {
		tracked := e.tracker.FetchTrackedOrder(o.ClientOrderID)
		if tracked == nil {
			tracked = o
		}
		wg.Add(1)
		go func(i int, tracked *order.Order) {
			defer wg.Done()
			id, err := tracked.AwaitExchangeOrderID(ctx, e.eoidTimeout)
			if err != nil {
				log.Debugf("excluding order '%s' from batch cancel: %v", tracked.ClientOrderID, err)
				return
			}
			exchangeOrderIDs[i] = id
		}(i, tracked)
	}
	wg.Wait()

	idsToCancel := make([]string, 0, len(orders))
	for _, id := range exchangeOrderIDs {
		if id != "" {
			idsToCancel = append(idsToCancel, id)
		}
	}

	e.locks.cancelOrders.Lock()
	defer e.locks.cancelOrders.Unlock()

	req := gateway.BatchOrderModifyRequest{
		Chain:          e.chain,
		Network:        e.network,
		Connector:      e.connector,
		Address:        e.address,
		OrdersToCreate: []gateway.OrderToCreate{},
		OrdersToCancel: idsToCancel,
	}

	res, err := e.gw.ClobBatchOrderModify(ctx, req)
	if err != nil {
		log.Debugf("cancellation of orders %v failed: %v", clientIDs, err)
		return nil, err
	}

	if res.TxHash == "" && len(idsToCancel) > 0 {
		return nil, &SubmissionError{Operation: "batch cancellation", ClientOrderID: strings.Join(clientIDs, ","), TxHash: res.TxHash}
	}

	results := make([]types.CancelOrderResult, 0, len(orders))
	for _, o := range orders {
		results = append(results, types.CancelOrderResult{
			ClientOrderID:      o.ClientOrderID,
			TradingPair:        o.TradingPair,
			CancellationTxHash: res.TxHash,
		})
	}

	log.Debugf("orders %v / %v successfully cancelled, tx hash '%s'", clientIDs, idsToCancel, res.TxHash)
	log.Debug("batch_order_cancel: end")
	return results, nil
}

// CancelAllOrders polls the venue for the account's open orders and, when
// there are any, submits one cancel-only batch for all of them. An empty
// open-order list is a trivial success with no transaction.
func (e *Exchange) CancelAllOrders(ctx context.Context) error {
	log.Debug("cancel_all_orders: start")

	if err := e.registry.ensurePopulated(ctx); err != nil {
		return err
	}

	e.locks.cancelAllOrders.Lock()
	defer e.locks.cancelAllOrders.Unlock()

	statusRes, err := e.gw.GetClobOrderStatusUpdates(ctx, gateway.OrderStatusRequest{
		Chain:       e.chain,
		Network:     e.network,
		Connector:   e.connector,
		Address:     e.address,
		TradingPair: e.tradingPair,
	})
	if err != nil {
		log.Debug("cancellation of all orders failed")
		return err
	}

	orderIDs := make([]string, 0, len(statusRes.Orders))
	for _, rec := range statusRes.Orders {
		orderIDs = append(orderIDs, rec.ID)
	}
	if len(orderIDs) == 0 {
		log.Debug("cancel_all_orders: end, nothing to cancel")
		return nil
	}

	res, err := e.gw.ClobBatchOrderModify(ctx, gateway.BatchOrderModifyRequest{
		Chain:          e.chain,
		Network:        e.network,
		Connector:      e.connector,
		Address:        e.address,
		OrdersToCreate: []gateway.OrderToCreate{},
		OrdersToCancel: orderIDs,
	})
	if err != nil {
		log.Debug("cancellation of all orders failed")
		return err
	}

	if res.TxHash == "" {
		return fmt.Errorf("cancellation of orders %v failed: invalid transaction hash %q", orderIDs, res.TxHash)
	}

	log.Debugf("orders %v successfully cancelled, tx hash '%s'", orderIDs, res.TxHash)
	log.Debug("cancel_all_orders: end")
	return nil
}
