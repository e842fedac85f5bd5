package webtrading

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"webtrade_go/internal/domain"
	"webtrade_go/internal/infra"
)

// Web-trading API paths
const (
	PathLogin       = "/api/v1/auth/login"
	PathVerifyOTP   = "/api/v1/auth/otp"
	PathPlaceOrder  = "/api/v1/orders"
	PathCancelOrder = "/api/v1/orders/cancel"

	codeSuccess = "0"
)

// APIError is a business error returned inside a 200 response
type APIError struct {
	Op   string
	Code string
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: api error code=%s msg=%s", e.Op, e.Code, e.Msg)
}

// Client is the web-trading REST API client (Boundary Layer)
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a new web-trading API client.
func NewClient(cfg *infra.Config) *Client {
	timeout := 10 * time.Second
	if cfg.API.TimeoutSec > 0 {
		timeout = time.Duration(cfg.API.TimeoutSec) * time.Second
	}

	return &Client{
		baseURL: cfg.API.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		logger: slog.Default().With("module", "webtrading_client"),
	}
}

type apiResponse struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token        string `json:"token"`
	OtpRequired  bool   `json:"otpRequired"`
	OtpChallenge string `json:"otpChallenge"`
}

// Login opens a session. The returned session may still require an OTP answer.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	var data loginData
	if err := c.call(ctx, "login", PathLogin, loginRequest{Username: username, Password: password}, false, &data); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.token = data.Token
	c.mu.Unlock()

	c.logger.Info("Logged in", "user", username, "otp_required", data.OtpRequired)
	return &domain.Session{
		Token:     data.Token,
		Username:  username,
		OtpNeeded: data.OtpRequired,
		Challenge: data.OtpChallenge,
	}, nil
}

type otpRequest struct {
	Coordinates []string `json:"coordinates"`
	Answers     []string `json:"answers"`
}

// VerifyOTP submits matrix answers; answers[i] belongs to coordinates[i].
func (c *Client) VerifyOTP(ctx context.Context, coordinates, answers []string) error {
	if len(coordinates) != len(answers) {
		return fmt.Errorf("otp: %d coordinates but %d answers", len(coordinates), len(answers))
	}
	return c.call(ctx, "verify_otp", PathVerifyOTP, otpRequest{Coordinates: coordinates, Answers: answers}, true, nil)
}

// placeOrderRequest - Internal Struct for JSON Marshaling
type placeOrderRequest struct {
	AccountNo    string `json:"acntNo"`
	SubAccountNo string `json:"subAcntNo"`
	Symbol       string `json:"symbol"`
	Quantity     string `json:"ordrQty"`
	Price        string `json:"ordrUntprc"`
	OrderType    string `json:"ordrTrdTp"`
	Side         string `json:"buySelTp"`
	OddLot       string `json:"oddOrdrYn"`
	RequestID    string `json:"uuid"`
	Signature    string `json:"sign"`
}

type placeOrderData struct {
	OrderNo string `json:"orderNo"`
}

// PlaceOrder sends a signed order and returns the server order number.
func (c *Client) PlaceOrder(ctx context.Context, req *domain.SignedOrder) (string, error) {
	o := req.Order
	body := placeOrderRequest{
		AccountNo:    o.AccountNo,
		SubAccountNo: o.SubAccountNo,
		Symbol:       o.Symbol,
		Quantity:     strconv.FormatInt(o.Quantity, 10),
		Price:        o.PriceString(),
		OrderType:    o.Type,
		Side:         o.Side,
		OddLot:       o.OddLotFlag(),
		RequestID:    req.RequestID,
		Signature:    req.Signature,
	}

	var data placeOrderData
	if err := c.call(ctx, "place_order", PathPlaceOrder, body, true, &data); err != nil {
		return "", err
	}

	c.logger.Info("Order Placed Successfully", "uuid", req.RequestID, "symbol", o.Symbol, "order_no", data.OrderNo)
	return data.OrderNo, nil
}

// CancelOrder sends a cancel request.
func (c *Client) CancelOrder(ctx context.Context, accountNo, orderNo string) error {
	reqBody := map[string]string{
		"acntNo":  accountNo,
		"orderNo": orderNo,
	}
	return c.call(ctx, "cancel_order", PathCancelOrder, reqBody, true, nil)
}

// call posts body, checks the business code and decodes data into out (if non-nil)
func (c *Client) call(ctx context.Context, op, path string, body interface{}, auth bool, out interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodPost, path, body, auth)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewNetworkError(op, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return domain.NewNetworkError(op, fmt.Errorf("status=%d body=%s", resp.StatusCode, string(bodyBytes)))
	}
	if resp.StatusCode != http.StatusOK {
		return domain.NewFatalNetworkError(op, fmt.Errorf("status=%d body=%s", resp.StatusCode, string(bodyBytes)))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return fmt.Errorf("%s: failed to parse response: %w", op, err)
	}
	if apiResp.Code != codeSuccess {
		return &APIError{Op: op, Code: apiResp.Code, Msg: apiResp.Msg}
	}

	if out != nil && len(apiResp.Data) > 0 {
		if err := json.Unmarshal(apiResp.Data, out); err != nil {
			return fmt.Errorf("%s: failed to parse data: %w", op, err)
		}
	}
	return nil
}

// doRequest handles auth headers and serialization
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, auth bool) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", infra.DefaultUserAgent)

	if auth {
		c.mu.RLock()
		token := c.token
		c.mu.RUnlock()
		if token == "" {
			return nil, domain.ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError(path, err)
	}
	return resp, nil
}
