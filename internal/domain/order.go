package domain

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockOrder represents an equity order on the web-trading platform.
// Codes are the platform's wire codes, not human labels.
type StockOrder struct {
	AccountNo    string
	SubAccountNo string
	Symbol       string
	Side         string          // SideBuy, SideSell
	Type         string          // OrderTypeLimit, OrderTypeMarket, ...
	Price        decimal.Decimal // Unit price in VND. Zero for market-style orders.
	Quantity     int64           // Shares
	OddLot       bool            // Lots below the board lot size
}

const (
	SideBuy  = "1"
	SideSell = "2"

	OrderTypeLimit  = "01"
	OrderTypeMarket = "02"
	OrderTypeATO    = "03"
	OrderTypeATC    = "04"

	// BoardLot is the standard lot size; smaller quantities must be odd-lot orders.
	BoardLot = 100
)

const (
	OrderStatusSubmitted = "SUBMITTED"
	OrderStatusRejected  = "REJECTED"
	OrderStatusCanceled  = "CANCELED"
)

// NewRequestID returns a fresh per-request identifier.
func NewRequestID() string {
	return uuid.NewString()
}

// IsPriced reports whether the order type carries a limit price.
func (o *StockOrder) IsPriced() bool {
	return o.Type == OrderTypeLimit
}

// Validate performs semantic checks. Signing never depends on these.
func (o *StockOrder) Validate() error {
	if o.AccountNo == "" || o.Symbol == "" {
		return fmt.Errorf("%w: account and symbol are required", ErrInvalidOrder)
	}
	if o.Side != SideBuy && o.Side != SideSell {
		return fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, o.Side)
	}
	switch o.Type {
	case OrderTypeLimit, OrderTypeMarket, OrderTypeATO, OrderTypeATC:
	default:
		return fmt.Errorf("%w: unknown order type %q", ErrInvalidOrder, o.Type)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}
	if o.OddLot != (o.Quantity%BoardLot != 0) {
		return fmt.Errorf("%w: quantity %d does not match odd-lot flag", ErrInvalidOrder, o.Quantity)
	}
	if o.IsPriced() && !o.Price.IsPositive() {
		return fmt.Errorf("%w: limit order needs a positive price", ErrInvalidOrder)
	}
	return nil
}

// PriceString formats the price the way the platform expects it on the wire.
func (o *StockOrder) PriceString() string {
	if !o.IsPriced() {
		return "0"
	}
	return o.Price.String()
}

// OddLotFlag returns the Y/N wire flag.
func (o *StockOrder) OddLotFlag() string {
	if o.OddLot {
		return "Y"
	}
	return "N"
}

// SignatureValues returns the order's signed fields keyed by wire name.
func (o *StockOrder) SignatureValues(requestID string) map[string]string {
	return map[string]string{
		"acntNo":     o.AccountNo,
		"subAcntNo":  o.SubAccountNo,
		"symbol":     o.Symbol,
		"ordrQty":    strconv.FormatInt(o.Quantity, 10),
		"ordrUntprc": o.PriceString(),
		"ordrTrdTp":  o.Type,
		"buySelTp":   o.Side,
		"oddOrdrYn":  o.OddLotFlag(),
		"uuid":       requestID,
	}
}
