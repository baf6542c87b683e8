package gateway

import "fmt"

// Wire records mirror the gateway's JSON payloads. Decimal-valued fields stay
// strings on the wire and are parsed at the exchange boundary; unknown fields
// are ignored by encoding/json.

type TokenRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

type FeeRecord struct {
	Maker           string `json:"maker"`
	Taker           string `json:"taker"`
	ServiceProvider string `json:"serviceProvider"`
}

type MarketRecord struct {
	ID                          string      `json:"id"`
	Name                        string      `json:"name"`
	BaseToken                   TokenRecord `json:"baseToken"`
	QuoteToken                  TokenRecord `json:"quoteToken"`
	MinimumOrderSize            string      `json:"minimumOrderSize"`
	MinimumPriceIncrement       string      `json:"minimumPriceIncrement"`
	MinimumBaseAmountIncrement  string      `json:"minimumBaseAmountIncrement"`
	MinimumQuoteAmountIncrement string      `json:"minimumQuoteAmountIncrement"`
	Fees                        FeeRecord   `json:"fees"`
}

type MarketsRequest struct {
	Chain       string `json:"chain"`
	Network     string `json:"network"`
	Connector   string `json:"connector"`
	TradingPair string `json:"tradingPair,omitempty"`
}

type MarketsResponse struct {
	Markets map[string]MarketRecord `json:"markets"`
}

type PlaceOrderRequest struct {
	Chain         string `json:"chain"`
	Network       string `json:"network"`
	Connector     string `json:"connector"`
	Address       string `json:"address"`
	TradingPair   string `json:"tradingPair"`
	Side          string `json:"side"`
	OrderType     string `json:"orderType"`
	Price         string `json:"price"`
	Size          string `json:"size"`
	ClientOrderID string `json:"clientOrderId"`
}

type PlaceOrderResponse struct {
	ID     string `json:"id"`
	TxHash string `json:"txHash"`
}

type OrderToCreate struct {
	TradingPair   string `json:"tradingPair"`
	Side          string `json:"side"`
	OrderType     string `json:"orderType"`
	Price         string `json:"price"`
	Size          string `json:"size"`
	ClientOrderID string `json:"clientOrderId"`
}

type BatchOrderModifyRequest struct {
	Chain          string          `json:"chain"`
	Network        string          `json:"network"`
	Connector      string          `json:"connector"`
	Address        string          `json:"address"`
	OrdersToCreate []OrderToCreate `json:"ordersToCreate"`
	OrdersToCancel []string        `json:"ordersToCancel"`
}

type BatchOrderModifyResponse struct {
	IDs    []string `json:"ids"`
	TxHash string   `json:"txHash"`
}

type CancelOrderRequest struct {
	Chain           string `json:"chain"`
	Network         string `json:"network"`
	Connector       string `json:"connector"`
	Address         string `json:"address"`
	TradingPair     string `json:"tradingPair"`
	ExchangeOrderID string `json:"exchangeOrderId"`
}

type CancelOrderResponse struct {
	TxHash string `json:"txHash"`
}

type OrderStatusRequest struct {
	Chain           string `json:"chain"`
	Network         string `json:"network"`
	Connector       string `json:"connector"`
	Address         string `json:"address"`
	TradingPair     string `json:"tradingPair,omitempty"`
	ExchangeOrderID string `json:"exchangeOrderId,omitempty"`
}

type OrderRecord struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

type OrderStatusResponse struct {
	Orders []OrderRecord `json:"orders"`
}

type TickerRequest struct {
	Chain       string `json:"chain"`
	Network     string `json:"network"`
	Connector   string `json:"connector"`
	TradingPair string `json:"tradingPair"`
}

type TickerRecord struct {
	Price string `json:"price"`
}

type TickerResponse struct {
	Markets map[string]TickerRecord `json:"markets"`
}

type OrderbookRequest struct {
	Chain       string `json:"chain"`
	Network     string `json:"network"`
	Connector   string `json:"connector"`
	TradingPair string `json:"tradingPair"`
}

type OrderbookLevel struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

type OrderbookResponse struct {
	Bids []OrderbookLevel `json:"bids"`
	Asks []OrderbookLevel `json:"asks"`
}

type BalancesRequest struct {
	Chain        string   `json:"chain"`
	Network      string   `json:"network"`
	Connector    string   `json:"connector"`
	Address      string   `json:"address"`
	TokenSymbols []string `json:"tokenSymbols"`
}

type BalancesResponse struct {
	Balances map[string]string `json:"balances"`
}

// APIError is a non-2xx gateway reply. The venue reports rejections as plain
// text messages, so Message is the compatibility surface for callers that
// classify errors by content.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway error (status %d): %s", e.StatusCode, e.Message)
}
