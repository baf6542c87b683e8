package kujira

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"klob/config"
	"klob/pkg/gateway"
	"klob/pkg/order"
	"klob/pkg/types"
)

// mockGateway is a scripted gateway.Client. Each call records its request and
// returns the preloaded response or error.
type mockGateway struct {
	marketsRes   *gateway.MarketsResponse
	marketsErr   error
	marketsCalls int

	placeRes     *gateway.PlaceOrderResponse
	placeErr     error
	placeCalls   int
	lastPlaceReq gateway.PlaceOrderRequest

	batchRes     *gateway.BatchOrderModifyResponse
	batchErr     error
	batchCalls   int
	lastBatchReq gateway.BatchOrderModifyRequest

	cancelRes     *gateway.CancelOrderResponse
	cancelErr     error
	cancelCalls   int
	lastCancelReq gateway.CancelOrderRequest

	statusRes     *gateway.OrderStatusResponse
	statusErr     error
	statusCalls   int
	lastStatusReq gateway.OrderStatusRequest

	tickerRes *gateway.TickerResponse
	tickerErr error

	bookRes *gateway.OrderbookResponse
	bookErr error

	balancesRes     *gateway.BalancesResponse
	balancesErr     error
	lastBalancesReq gateway.BalancesRequest

	pingErr error
}

func (m *mockGateway) GetClobMarkets(ctx context.Context, req gateway.MarketsRequest) (*gateway.MarketsResponse, error) {
	m.marketsCalls++
	if m.marketsErr != nil {
		return nil, m.marketsErr
	}
	return m.marketsRes, nil
}

func (m *mockGateway) ClobPlaceOrder(ctx context.Context, req gateway.PlaceOrderRequest) (*gateway.PlaceOrderResponse, error) {
	m.placeCalls++
	m.lastPlaceReq = req
	if m.placeErr != nil {
		return nil, m.placeErr
	}
	return m.placeRes, nil
}

func (m *mockGateway) ClobBatchOrderModify(ctx context.Context, req gateway.BatchOrderModifyRequest) (*gateway.BatchOrderModifyResponse, error) {
	m.batchCalls++
	m.lastBatchReq = req
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	return m.batchRes, nil
}

func (m *mockGateway) ClobCancelOrder(ctx context.Context, req gateway.CancelOrderRequest) (*gateway.CancelOrderResponse, error) {
	m.cancelCalls++
	m.lastCancelReq = req
	if m.cancelErr != nil {
		return nil, m.cancelErr
	}
	return m.cancelRes, nil
}

func (m *mockGateway) GetClobOrderStatusUpdates(ctx context.Context, req gateway.OrderStatusRequest) (*gateway.OrderStatusResponse, error) {
	m.statusCalls++
	m.lastStatusReq = req
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.statusRes, nil
}

func (m *mockGateway) GetClobTicker(ctx context.Context, req gateway.TickerRequest) (*gateway.TickerResponse, error) {
	if m.tickerErr != nil {
		return nil, m.tickerErr
	}
	return m.tickerRes, nil
}

func (m *mockGateway) GetClobOrderbookSnapshot(ctx context.Context, req gateway.OrderbookRequest) (*gateway.OrderbookResponse, error) {
	if m.bookErr != nil {
		return nil, m.bookErr
	}
	return m.bookRes, nil
}

func (m *mockGateway) GetBalances(ctx context.Context, req gateway.BalancesRequest) (*gateway.BalancesResponse, error) {
	m.lastBalancesReq = req
	if m.balancesErr != nil {
		return nil, m.balancesErr
	}
	return m.balancesRes, nil
}

func (m *mockGateway) Ping(ctx context.Context) error {
	return m.pingErr
}

func kujiUskMarketRecord() gateway.MarketRecord {
	return gateway.MarketRecord{
		ID:   "kujira1suhgf5svhu4usrurvxzlgn54ksxmn8gljarjtxqnapv8kjnp4nrsqq4jjh",
		Name: "KUJI/USK",
		BaseToken: gateway.TokenRecord{
			ID: "ukuji", Name: "Kuji", Symbol: "KUJI", Decimals: 6,
		},
		QuoteToken: gateway.TokenRecord{
			ID: "factory/kujira1qk00h5atutpsv900x202pxx42npjr9thg58dnqpa72f2p7m2luase444a7/uusk", Name: "USK", Symbol: "USK", Decimals: 6,
		},
		MinimumOrderSize:            "0.001",
		MinimumPriceIncrement:       "0.001",
		MinimumBaseAmountIncrement:  "0.001",
		MinimumQuoteAmountIncrement: "0.001",
		Fees: gateway.FeeRecord{
			Maker: "0.075", Taker: "0.15", ServiceProvider: "0",
		},
	}
}

func kujiUskMarketsResponse() *gateway.MarketsResponse {
	rec := kujiUskMarketRecord()
	return &gateway.MarketsResponse{Markets: map[string]gateway.MarketRecord{rec.ID: rec}}
}

func newTestExchange(gw gateway.Client, tracker order.Tracker, sink *types.EventSink) *Exchange {
	cfg := &config.ExchangeConfig{
		Connector:                 Connector,
		Chain:                     "kujira",
		Network:                   "mainnet",
		WalletAddress:             "kujira1yg8e7jyvmsmh9vzdnkyprrzgx6lq0xhlgw3zks",
		TradingPairs:              []string{"KUJI-USK"},
		ExchangeOrderIDTimeoutSec: 1,
	}
	ex, err := New(cfg, gw, tracker, sink)
	if err != nil {
		panic(err)
	}
	return ex
}

func newTestOrder(clientOrderID string) *order.Order {
	return order.New(
		clientOrderID,
		"KUJI-USK",
		types.OrderSideBuy,
		types.OrderLimit,
		decimal.RequireFromString("0.974"),
		decimal.RequireFromString("100"),
	)
}

func populateMarkets(ex *Exchange, gw *mockGateway) {
	gw.marketsRes = kujiUskMarketsResponse()
	if err := ex.registry.Refresh(context.Background()); err != nil {
		panic(err)
	}
}

// shortTimeout shrinks the exchange-order-id wait so exclusion paths run
// quickly in tests.
func shortTimeout(ex *Exchange) {
	ex.eoidTimeout = 50 * time.Millisecond
}
