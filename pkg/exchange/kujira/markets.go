package kujira

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"klob/pkg/gateway"
	"klob/pkg/market"
)

// marketRegistry caches market metadata keyed by trading pair. Every order
// operation requires a populated cache; Refresh replaces the whole mapping
// atomically so readers observe either the old or the new snapshot set.
type marketRegistry struct {
	gw          gateway.Client
	chain       string
	network     string
	connector   string
	tradingPair string // optional scope; empty fetches all markets

	mu     sync.RWMutex
	byPair map[string]*market.Market
}

func newMarketRegistry(gw gateway.Client, chain, network, connector, tradingPair string) *marketRegistry {
	return &marketRegistry{
		gw:          gw,
		chain:       chain,
		network:     network,
		connector:   connector,
		tradingPair: tradingPair,
	}
}

// Refresh fetches the market list and replaces the cached mapping. A parse
// failure of any record fails the whole refresh and leaves the previous
// mapping in place.
func (r *marketRegistry) Refresh(ctx context.Context) error {
	log.Debug("markets refresh: start")

	req := gateway.MarketsRequest{
		Chain:     r.chain,
		Network:   r.network,
		Connector: r.connector,
	}
	if r.tradingPair != "" {
		req.TradingPair = r.tradingPair
	}

	res, err := r.gw.GetClobMarkets(ctx, req)
	if err != nil {
		return fmt.Errorf("fail to fetch markets: %w", err)
	}

	byPair := make(map[string]*market.Market, len(res.Markets))
	for _, rec := range res.Markets {
		m, err := parseMarketRecord(rec)
		if err != nil {
			return err
		}
		byPair[m.TradingPair] = m
	}

	r.mu.Lock()
	r.byPair = byPair
	r.mu.Unlock()

	log.Debugf("markets refresh: end, %d markets cached", len(byPair))
	return nil
}

func (r *marketRegistry) IsPopulated() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byPair) > 0
}

func (r *marketRegistry) Get(tradingPair string) (*market.Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.byPair[tradingPair]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("trading pair '%s': %w", tradingPair, ErrMarketNotFound)
}

// ensurePopulated performs a blocking refresh when the cache is empty. It is
// the gate in front of every order, pricing and balance operation.
func (r *marketRegistry) ensurePopulated(ctx context.Context) error {
	if r.IsPopulated() {
		return nil
	}
	return r.Refresh(ctx)
}
