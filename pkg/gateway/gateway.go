package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"

	"klob/pkg/http"
)

// Client is the transport boundary to the gateway process. The gateway owns
// signing and broadcasting; from this side every mutating call is a logical
// RPC whose only structural success signal is a non-empty transaction hash.
type Client interface {
	GetClobMarkets(ctx context.Context, req MarketsRequest) (*MarketsResponse, error)
	ClobPlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error)
	ClobBatchOrderModify(ctx context.Context, req BatchOrderModifyRequest) (*BatchOrderModifyResponse, error)
	ClobCancelOrder(ctx context.Context, req CancelOrderRequest) (*CancelOrderResponse, error)
	GetClobOrderStatusUpdates(ctx context.Context, req OrderStatusRequest) (*OrderStatusResponse, error)
	GetClobTicker(ctx context.Context, req TickerRequest) (*TickerResponse, error)
	GetClobOrderbookSnapshot(ctx context.Context, req OrderbookRequest) (*OrderbookResponse, error)
	GetBalances(ctx context.Context, req BalancesRequest) (*BalancesResponse, error)
	Ping(ctx context.Context) error
}

// HTTPClient talks JSON to a locally running gateway instance.
type HTTPClient struct {
	baseURL string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{baseURL: baseURL}
}

func (c *HTTPClient) GetClobMarkets(ctx context.Context, req MarketsRequest) (*MarketsResponse, error) {
	params := url.Values{}
	params.Set("chain", req.Chain)
	params.Set("network", req.Network)
	params.Set("connector", req.Connector)
	if req.TradingPair != "" {
		params.Set("tradingPair", req.TradingPair)
	}
	var res MarketsResponse
	if err := c.get(ctx, "/clob/markets", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ClobPlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	var res PlaceOrderResponse
	if err := c.post(ctx, "/clob/orders", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ClobBatchOrderModify(ctx context.Context, req BatchOrderModifyRequest) (*BatchOrderModifyResponse, error) {
	var res BatchOrderModifyResponse
	if err := c.post(ctx, "/clob/batchOrders", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ClobCancelOrder(ctx context.Context, req CancelOrderRequest) (*CancelOrderResponse, error) {
	var res CancelOrderResponse
	if err := c.delete(ctx, "/clob/orders", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetClobOrderStatusUpdates(ctx context.Context, req OrderStatusRequest) (*OrderStatusResponse, error) {
	params := url.Values{}
	params.Set("chain", req.Chain)
	params.Set("network", req.Network)
	params.Set("connector", req.Connector)
	params.Set("address", req.Address)
	if req.TradingPair != "" {
		params.Set("tradingPair", req.TradingPair)
	}
	if req.ExchangeOrderID != "" {
		params.Set("exchangeOrderId", req.ExchangeOrderID)
	}
	var res OrderStatusResponse
	if err := c.get(ctx, "/clob/orders", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetClobTicker(ctx context.Context, req TickerRequest) (*TickerResponse, error) {
	params := url.Values{}
	params.Set("chain", req.Chain)
	params.Set("network", req.Network)
	params.Set("connector", req.Connector)
	params.Set("tradingPair", req.TradingPair)
	var res TickerResponse
	if err := c.get(ctx, "/clob/tickers", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetClobOrderbookSnapshot(ctx context.Context, req OrderbookRequest) (*OrderbookResponse, error) {
	params := url.Values{}
	params.Set("chain", req.Chain)
	params.Set("network", req.Network)
	params.Set("connector", req.Connector)
	params.Set("tradingPair", req.TradingPair)
	var res OrderbookResponse
	if err := c.get(ctx, "/clob/orderBook", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetBalances(ctx context.Context, req BalancesRequest) (*BalancesResponse, error) {
	var res BalancesResponse
	if err := c.post(ctx, "/chain/balances", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	status, _, err := http.GetRequest(ctx, c.baseURL+"/")
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &APIError{StatusCode: status, Message: "gateway ping failed"}
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}
	status, body, err := http.GetRequest(ctx, fullURL)
	if err != nil {
		return err
	}
	return c.decode(path, status, body, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, in any, out any) error {
	reqBody, err := json.Marshal(in)
	if err != nil {
		return err
	}
	status, body, err := http.PostRequest(ctx, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	return c.decode(path, status, body, out)
}

func (c *HTTPClient) delete(ctx context.Context, path string, in any, out any) error {
	reqBody, err := json.Marshal(in)
	if err != nil {
		return err
	}
	status, body, err := http.DeleteRequest(ctx, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	return c.decode(path, status, body, out)
}

func (c *HTTPClient) decode(path string, status int, body []byte, out any) error {
	if status < 200 || status >= 300 {
		apiErr := &APIError{StatusCode: status}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(body)
		}
		log.Debugf("gateway %s returned status %d: %s", path, status, apiErr.Message)
		return apiErr
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("fail to decode gateway %s response: %w", path, err)
	}
	return nil
}
