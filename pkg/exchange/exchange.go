package exchange

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"klob/config"
	"klob/pkg/exchange/kujira"
	"klob/pkg/gateway"
	"klob/pkg/market"
	"klob/pkg/order"
	"klob/pkg/types"
)

// Exchange is the order-management surface the trading engine talks to. All
// matching and settlement happen on the venue's chain; implementations only
// coordinate submissions and reconcile state by polling.
type Exchange interface {
	Name() string

	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	PlaceOrder(ctx context.Context, o *order.Order) (exchangeOrderID string, creationTxHash string, err error)
	BatchOrderCreate(ctx context.Context, orders []*order.Order) ([]types.PlaceOrderResult, error)
	CancelOrder(ctx context.Context, o *order.Order) (cancellationTxHash string, err error)
	BatchOrderCancel(ctx context.Context, orders []*order.Order) ([]types.CancelOrderResult, error)
	CancelAllOrders(ctx context.Context) error

	GetOrderStatusUpdate(ctx context.Context, o *order.Order) (types.OrderUpdate, error)
	GetAllOrderFills(ctx context.Context, o *order.Order) ([]types.TradeUpdate, error)

	GetLastTradedPrice(ctx context.Context, tradingPair string) (decimal.Decimal, error)
	GetOrderBookSnapshot(ctx context.Context, tradingPair string) (*types.OrderBookSnapshot, error)
	GetAccountBalances(ctx context.Context) (map[string]types.Balance, error)

	GetTradingRule(tradingPair string) (*market.TradingRule, error)
	GetFeeRates(tradingPair string) (*market.FeeRates, error)
	SupportedOrderTypes() []types.OrderType

	CheckNetworkStatus(ctx context.Context) (types.NetworkStatus, error)
}

// NewExchange creates an exchange instance based on the configured connector.
func NewExchange(exchgConfig *config.ExchangeConfig, gw gateway.Client, tracker order.Tracker, sink *types.EventSink) (Exchange, error) {
	switch exchgConfig.Connector {
	case kujira.Connector:
		return kujira.New(exchgConfig, gw, tracker, sink)
	default:
		return nil, errors.New("unsupported connector")
	}
}
