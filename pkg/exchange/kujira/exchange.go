package kujira

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"klob/config"
	"klob/pkg/gateway"
	"klob/pkg/market"
	"klob/pkg/order"
	"klob/pkg/types"
)

// Exchange coordinates the order lifecycle against the Kujira CLOB through
// the gateway. Matching and settlement happen on chain; this side only
// submits signed-and-broadcast instructions and reconciles state by polling.
type Exchange struct {
	chain       string
	network     string
	connector   string
	address     string
	tradingPair string

	gw      gateway.Client
	tracker order.Tracker
	sink    *types.EventSink

	registry *marketRegistry
	locks    operationLocks

	refreshInterval time.Duration
	eoidTimeout     time.Duration

	mu         sync.Mutex
	loopCancel context.CancelFunc
	loopDone   chan struct{}
}

func New(cfg *config.ExchangeConfig, gw gateway.Client, tracker order.Tracker, sink *types.EventSink) (*Exchange, error) {
	if cfg.WalletAddress == "" {
		return nil, errors.New("wallet address is required")
	}
	var tradingPair string
	if len(cfg.TradingPairs) > 0 {
		tradingPair = cfg.TradingPairs[0]
	}

	return &Exchange{
		chain:           cfg.Chain,
		network:         cfg.Network,
		connector:       Connector,
		address:         cfg.WalletAddress,
		tradingPair:     tradingPair,
		gw:              gw,
		tracker:         tracker,
		sink:            sink,
		registry:        newMarketRegistry(gw, cfg.Chain, cfg.Network, Connector, tradingPair),
		refreshInterval: cfg.MarketsUpdateInterval(),
		eoidTimeout:     cfg.ExchangeOrderIDTimeout(),
	}, nil
}

func (e *Exchange) Name() string {
	return Connector
}

func (e *Exchange) SupportedOrderTypes() []types.OrderType {
	return []types.OrderType{types.OrderLimit}
}

// Start populates the market cache synchronously (failure is fatal: the
// system must not come up with unknown markets), clears any resting orders
// left from a previous run, and launches the refresh loop exactly once.
func (e *Exchange) Start(ctx context.Context) error {
	log.Debug("start: start")

	if err := e.registry.Refresh(ctx); err != nil {
		return fmt.Errorf("fail initial markets refresh: %w", err)
	}

	if err := e.CancelAllOrders(ctx); err != nil {
		return fmt.Errorf("fail to cancel resting orders on start: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loopCancel == nil {
		loopCtx, cancel := context.WithCancel(context.Background())
		e.loopCancel = cancel
		done := make(chan struct{})
		e.loopDone = done
		go e.refreshLoop(loopCtx, done)
	}

	log.Debug("start: end")
	return nil
}

// Stop cancels the refresh loop and makes a best-effort attempt to clear
// resting orders.
func (e *Exchange) Stop(ctx context.Context) error {
	log.Debug("stop: start")

	e.mu.Lock()
	if e.loopCancel != nil {
		e.loopCancel()
		e.loopCancel = nil
	}
	done := e.loopDone
	e.loopDone = nil
	e.mu.Unlock()

	if done != nil {
		<-done
	}

	if err := e.CancelAllOrders(ctx); err != nil {
		log.Warnf("fail to cancel resting orders on stop: %v", err)
	}

	log.Debug("stop: end")
	return nil
}

// refreshLoop keeps the market cache fresh for the coordinator's lifetime.
// A failed iteration is logged and retried next interval; it never kills the
// loop.
func (e *Exchange) refreshLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(e.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.registry.Refresh(ctx); err != nil {
				log.Errorf("markets refresh loop: %v", err)
			}
		}
	}
}

// CheckNetworkStatus probes the gateway. Non-cancellation errors are absorbed
// into NOT_CONNECTED; this is the only place in the connector where an error
// becomes a status value instead of propagating.
func (e *Exchange) CheckNetworkStatus(ctx context.Context) (types.NetworkStatus, error) {
	if err := e.gw.Ping(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return types.NetworkNotConnected, err
		}
		log.Errorf("network status check failed: %v", err)
		return types.NetworkNotConnected, nil
	}
	return types.NetworkConnected, nil
}

// IsMarketsPopulated reports whether the market cache holds at least one
// market.
func (e *Exchange) IsMarketsPopulated() bool {
	return e.registry.IsPopulated()
}

func (e *Exchange) GetTradingRule(tradingPair string) (*market.TradingRule, error) {
	m, err := e.registry.Get(tradingPair)
	if err != nil {
		return nil, err
	}
	return ToTradingRule(m), nil
}

func (e *Exchange) GetFeeRates(tradingPair string) (*market.FeeRates, error) {
	m, err := e.registry.Get(tradingPair)
	if err != nil {
		return nil, err
	}
	return ToFeeRates(m), nil
}

func (e *Exchange) GetLastTradedPrice(ctx context.Context, tradingPair string) (decimal.Decimal, error) {
	log.Debug("get_last_traded_price: start")

	if err := e.registry.ensurePopulated(ctx); err != nil {
		return decimal.Zero, err
	}

	res, err := e.gw.GetClobTicker(ctx, gateway.TickerRequest{
		Chain:       e.chain,
		Network:     e.network,
		Connector:   e.connector,
		TradingPair: tradingPair,
	})
	if err != nil {
		return decimal.Zero, err
	}

	price, err := parseTickerPrice(res, tradingPair)
	if err != nil {
		return decimal.Zero, err
	}

	log.Debug("get_last_traded_price: end")
	return price, nil
}

func (e *Exchange) GetOrderBookSnapshot(ctx context.Context, tradingPair string) (*types.OrderBookSnapshot, error) {
	log.Debug("get_order_book_snapshot: start")

	if err := e.registry.ensurePopulated(ctx); err != nil {
		return nil, err
	}

	res, err := e.gw.GetClobOrderbookSnapshot(ctx, gateway.OrderbookRequest{
		Chain:       e.chain,
		Network:     e.network,
		Connector:   e.connector,
		TradingPair: tradingPair,
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := parseOrderBookSnapshot(res, tradingPair)
	if err != nil {
		return nil, err
	}

	log.Debug("get_order_book_snapshot: end")
	return snapshot, nil
}

// GetAccountBalances queries the wallet's balances for the configured pair's
// tokens plus the native token. The venue reports a single amount per token;
// total and available are the same figure.
func (e *Exchange) GetAccountBalances(ctx context.Context) (map[string]types.Balance, error) {
	log.Debug("get_account_balances: start")

	if err := e.registry.ensurePopulated(ctx); err != nil {
		return nil, err
	}

	tokenSymbols := []string{}
	if e.tradingPair != "" {
		base, quote := tradingPairTokens(e.tradingPair)
		tokenSymbols = append(tokenSymbols, base, quote, NativeToken.Symbol)
	}

	res, err := e.gw.GetBalances(ctx, gateway.BalancesRequest{
		Chain:        e.chain,
		Network:      e.network,
		Connector:    e.connector,
		Address:      e.address,
		TokenSymbols: tokenSymbols,
	})
	if err != nil {
		return nil, err
	}

	balances, err := parseBalances(res)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for token, balance := range balances {
		e.sink.EmitBalanceUpdate(types.BalanceUpdate{
			Token:     token,
			Total:     balance.Total,
			Available: balance.Available,
			Timestamp: now,
		})
	}

	log.Debug("get_account_balances: end")
	return balances, nil
}
