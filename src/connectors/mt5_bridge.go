// REST CLIENT FOR AN MT5 TERMINAL BRIDGE
// RESTY ONLY, NO RETRY: every call is a single attempt
package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"

	"signalexecutor/src/model"
)

const defaultBridgeBaseURL = "http://127.0.0.1:8228"

var errNotFound = errors.New("not found")

// -----------------------------
// API RESPONSE WRAPPER
// -----------------------------
type bridgeStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// -----------------------------
// CLIENT
// -----------------------------
type MT5BridgeClient struct {
	baseURL string
	http    *resty.Client
}

func NewMT5BridgeClient(baseURL, token string, timeout time.Duration) *MT5BridgeClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBridgeBaseURL
		logger.Warnf("No bridge URL provided, using default: %s", baseURL)
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if token != "" {
		httpClient.SetAuthToken(token)
	}

	return &MT5BridgeClient{baseURL: baseURL, http: httpClient}
}

// doRequest executes one call and decodes a 200 body into out. A 404 is
// returned as errNotFound so callers can tell "no data" from a failure.
func (c *MT5BridgeClient) doRequest(ctx context.Context, method, path, symbol string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if symbol != "" {
		req = req.SetPathParam("symbol", symbol)
	}
	if body != nil {
		req = req.SetBody(body).SetHeader("Content-Type", "application/json")
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}

	raw := resp.Body()
	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return errNotFound
	default:
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), string(raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *MT5BridgeClient) doStatus(ctx context.Context, path, symbol string, body interface{}) error {
	var st bridgeStatus
	if err := c.doRequest(ctx, http.MethodPost, path, symbol, body, &st); err != nil {
		return err
	}
	if !st.OK {
		if st.Error != "" {
			return errors.New(st.Error)
		}
		return fmt.Errorf("%s returned ok=false", path)
	}
	return nil
}

// -----------------------------
// SESSION
// -----------------------------
func (c *MT5BridgeClient) Initialize(ctx context.Context) error {
	return c.doStatus(ctx, "/initialize", "", nil)
}

func (c *MT5BridgeClient) Shutdown(ctx context.Context) error {
	return c.doStatus(ctx, "/shutdown", "", nil)
}

// -----------------------------
// SYMBOLS
// -----------------------------
func (c *MT5BridgeClient) SelectSymbol(ctx context.Context, symbol string) error {
	err := c.doStatus(ctx, "/symbols/{symbol}/select", symbol, map[string]bool{"enable": true})
	if errors.Is(err, errNotFound) {
		return fmt.Errorf("symbol %s not found", symbol)
	}
	return err
}

func (c *MT5BridgeClient) SymbolInfo(ctx context.Context, symbol string) (*model.SymbolInfo, error) {
	var info model.SymbolInfo
	err := c.doRequest(ctx, http.MethodGet, "/symbols/{symbol}/info", symbol, nil, &info)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *MT5BridgeClient) SymbolTick(ctx context.Context, symbol string) (*model.Tick, error) {
	var tick model.Tick
	err := c.doRequest(ctx, http.MethodGet, "/symbols/{symbol}/tick", symbol, nil, &tick)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// a symbol that never ticked comes back zeroed
	if tick.Bid.IsZero() && tick.Ask.IsZero() {
		return nil, nil
	}
	return &tick, nil
}

// -----------------------------
// TRADING
// -----------------------------
func (c *MT5BridgeClient) OrderSend(ctx context.Context, req model.OrderRequest) (*model.OrderSendResult, error) {
	var res model.OrderSendResult
	if err := c.doRequest(ctx, http.MethodPost, "/orders", "", req, &res); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("order endpoint not found on bridge %s", c.baseURL)
		}
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"retcode": res.Retcode,
		"order":   res.Order,
		"comment": res.Comment,
	}).Debug("bridge order_send reply")

	return &res, nil
}
