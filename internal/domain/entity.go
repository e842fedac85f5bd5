package domain

import (
	"time"
)

// OrderSubmission is the journal record of one signed order request
type OrderSubmission struct {
	RequestID    string    `gorm:"primaryKey" json:"request_id"`
	AccountNo    string    `json:"account_no"`
	SubAccountNo string    `json:"sub_account_no"`
	Symbol       string    `json:"symbol" gorm:"index"`
	Side         string    `json:"side"`
	OrderType    string    `json:"order_type"`
	Price        string    `json:"price"` // Wire string, exactly as signed
	Quantity     int64     `json:"quantity"`
	OddLot       bool      `json:"odd_lot"`
	Signature    string    `json:"signature"`
	OrderNo      string    `json:"order_no"` // Server-assigned, empty until accepted
	Status       string    `json:"status" gorm:"index"`
	ErrorMsg     string    `json:"error_msg"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OtpAttempt records a matrix challenge answered during login
type OtpAttempt struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `json:"username" gorm:"index"`
	Coordinates string    `json:"coordinates"` // Space separated, e.g. "A3 C5 G7"
	Accepted    bool      `json:"accepted"`
	ErrorMsg    string    `json:"error_msg"`
	CreatedAt   time.Time `json:"created_at"`
}
