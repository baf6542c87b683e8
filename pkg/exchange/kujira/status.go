package kujira

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"klob/pkg/gateway"
	"klob/pkg/order"
	"klob/pkg/types"
)

// GetOrderStatusUpdate reconciles one order against the venue. Untracked or
// already-canceled orders never cause a network call: their snapshot is built
// from local state. When the venue has no record for a tracked order the
// update falls back to the order's current state instead of erroring; an
// unknown status string, however, fails fast.
func (e *Exchange) GetOrderStatusUpdate(ctx context.Context, o *order.Order) (types.OrderUpdate, error) {
	active, tracked := e.tracker.ActiveOrders()[o.ClientOrderID]

	if tracked && active.State() != types.OrderStateCanceled {
		log.Debug("get_order_status_update: start")

		exchangeOrderID, err := o.AwaitExchangeOrderID(ctx, e.eoidTimeout)
		if err != nil {
			return types.OrderUpdate{}, err
		}

		res, err := e.gw.GetClobOrderStatusUpdates(ctx, gateway.OrderStatusRequest{
			Chain:           e.chain,
			Network:         e.network,
			Connector:       e.connector,
			Address:         e.address,
			TradingPair:     o.TradingPair,
			ExchangeOrderID: exchangeOrderID,
		})
		if err != nil {
			return types.OrderUpdate{}, err
		}

		newState := o.State()
		if len(res.Orders) > 0 {
			newState, err = translateVenueStatus(res.Orders[0].State)
			if err != nil {
				return types.OrderUpdate{}, err
			}
		}

		update := types.OrderUpdate{
			TradingPair:        o.TradingPair,
			UpdateTimestamp:    time.Now(),
			NewState:           newState,
			ClientOrderID:      o.ClientOrderID,
			ExchangeOrderID:    exchangeOrderID,
			CreationTxHash:     o.CreationTxHash,
			CancellationTxHash: o.CancellationTxHash,
		}
		e.sink.EmitOrderUpdate(update)

		log.Debug("get_order_status_update: end")
		return update, nil
	}

	return types.OrderUpdate{
		TradingPair:        o.TradingPair,
		UpdateTimestamp:    time.Now(),
		NewState:           o.State(),
		ClientOrderID:      o.ClientOrderID,
		ExchangeOrderID:    o.ExchangeOrderID(),
		CreationTxHash:     o.CreationTxHash,
		CancellationTxHash: o.CancellationTxHash,
	}, nil
}

// GetAllOrderFills polls the venue and synthesizes exactly one full fill when
// the order's mapped status is FILLED. The venue only exposes order-level
// status, so partial fills are invisible here: fill visibility is
// all-or-nothing. The fee is the fill's quote amount at the cached market's
// effective taker rate, denominated in the quote token.
func (e *Exchange) GetAllOrderFills(ctx context.Context, o *order.Order) ([]types.TradeUpdate, error) {
	if o.ExchangeOrderID() == "" {
		return nil, nil
	}
	active, tracked := e.tracker.ActiveOrders()[o.ClientOrderID]
	if !tracked || active.State() == types.OrderStateCanceled {
		return nil, nil
	}

	log.Debug("get_all_order_fills: start")

	res, err := e.gw.GetClobOrderStatusUpdates(ctx, gateway.OrderStatusRequest{
		Chain:           e.chain,
		Network:         e.network,
		Connector:       e.connector,
		Address:         e.address,
		TradingPair:     o.TradingPair,
		ExchangeOrderID: o.ExchangeOrderID(),
	})
	if err != nil {
		return nil, err
	}

	if len(res.Orders) == 0 {
		log.Debug("get_all_order_fills: end, no venue record")
		return nil, nil
	}

	state, err := translateVenueStatus(res.Orders[0].State)
	if err != nil {
		return nil, err
	}
	if state != types.OrderStateFilled {
		log.Debug("get_all_order_fills: end, not filled")
		return nil, nil
	}

	m, err := e.registry.Get(o.TradingPair)
	if err != nil {
		return nil, err
	}
	takerRate := ToFeeRates(m).Taker

	quoteAmount := o.Price.Mul(o.Amount)
	fill := types.TradeUpdate{
		TradeID:         uuid.NewString(),
		ClientOrderID:   o.ClientOrderID,
		ExchangeOrderID: o.ExchangeOrderID(),
		TradingPair:     o.TradingPair,
		FillTimestamp:   time.Now(),
		FillPrice:       o.Price,
		FillBaseAmount:  o.Amount,
		FillQuoteAmount: quoteAmount,
		FeeAmount:       quoteAmount.Mul(takerRate),
		FeeToken:        m.QuoteToken.Symbol,
	}
	e.sink.EmitTradeUpdate(fill)

	log.Debug("get_all_order_fills: end")
	return []types.TradeUpdate{fill}, nil
}
