package domain

import (
	"context"
)

// TradingGateway defines the web-trading API surface used by the order flow
type TradingGateway interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	VerifyOTP(ctx context.Context, coordinates, answers []string) error
	PlaceOrder(ctx context.Context, req *SignedOrder) (string, error)
	CancelOrder(ctx context.Context, accountNo, orderNo string) error
}

// SubmissionRepository defines how order submissions are journaled
type SubmissionRepository interface {
	SaveSubmission(sub *OrderSubmission) error
	GetSubmission(requestID string) (*OrderSubmission, error)
	ListSubmissions(symbol string) ([]OrderSubmission, error)
	MarkCanceled(requestID string) error
	RecordOtpAttempt(attempt *OtpAttempt) error
}

// Session is an authenticated web-trading session
type Session struct {
	Token     string
	Username  string
	OtpNeeded bool   // Server wants a matrix answer before trading
	Challenge string // Raw challenge label text, e.g. "[A3] [C5] [G7]"
}

// SignedOrder is an order with its request ID and signature attached
type SignedOrder struct {
	Order     StockOrder
	RequestID string
	Signature string
}
