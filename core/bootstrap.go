package core

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"klob/config"
	"klob/pkg/exchange"
	"klob/pkg/gateway"
	"klob/pkg/order"
	"klob/pkg/types"
)

var Exchanges map[string]exchange.Exchange
var Tracker *order.MemoryTracker

func init() {
	Exchanges = make(map[string]exchange.Exchange)
	Tracker = order.NewMemoryTracker()
}

// Bootstrap builds and starts one exchange coordinator per configured entry.
// A start failure is fatal: the process must not come up with unknown
// markets.
func Bootstrap(ctx context.Context, config config.Config) error {
	log.Info("🦾 Bootstrapping...")

	for exchgId, exchgConfig := range config.ExchangeConfigs {
		gw := gateway.NewHTTPClient(exchgConfig.GatewayURL)
		ex, err := exchange.NewExchange(exchgConfig, gw, Tracker, newLogSink())
		if err != nil {
			return fmt.Errorf("fail to create exchange '%v': %w", exchgId, err)
		}
		if err := ex.Start(ctx); err != nil {
			return fmt.Errorf("fail to start exchange '%v': %w", exchgId, err)
		}
		Exchanges[exchgId] = ex
		log.Infof("exchange '%v' registered", exchgId)
	}
	return nil
}

// Shutdown stops every exchange, best effort.
func Shutdown(ctx context.Context) {
	for exchgId, ex := range Exchanges {
		if err := ex.Stop(ctx); err != nil {
			log.Errorf("fail to stop exchange '%v': %v", exchgId, err)
		}
	}
}

// newLogSink forwards emitted updates to the log; delivery is
// fire-and-forget.
func newLogSink() *types.EventSink {
	return &types.EventSink{
		OnOrderUpdate: func(u types.OrderUpdate) {
			log.Infof("order update: '%v' / '%v' -> %v", u.ClientOrderID, u.ExchangeOrderID, u.NewState)
		},
		OnTradeUpdate: func(u types.TradeUpdate) {
			log.Infof("trade update: order '%v' filled %v @ %v", u.ClientOrderID, u.FillBaseAmount, u.FillPrice)
		},
		OnBalanceUpdate: func(u types.BalanceUpdate) {
			log.Debugf("balance update: %v = %v", u.Token, u.Total)
		},
	}
}
