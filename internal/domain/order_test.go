package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validOrder() StockOrder {
	return StockOrder{
		AccountNo:    "001",
		SubAccountNo: "01",
		Symbol:       "VPB",
		Side:         SideBuy,
		Type:         OrderTypeLimit,
		Price:        decimal.NewFromInt(16800),
		Quantity:     100,
	}
}

func TestStockOrder_Validate(t *testing.T) {
	t.Run("valid limit order", func(t *testing.T) {
		o := validOrder()
		if err := o.Validate(); err != nil {
			t.Errorf("Expected valid order, got %v", err)
		}
	})

	t.Run("valid odd lot", func(t *testing.T) {
		o := validOrder()
		o.Quantity = 37
		o.OddLot = true
		if err := o.Validate(); err != nil {
			t.Errorf("Expected valid odd-lot order, got %v", err)
		}
	})

	t.Run("market order without price", func(t *testing.T) {
		o := validOrder()
		o.Type = OrderTypeMarket
		o.Price = decimal.Zero
		if err := o.Validate(); err != nil {
			t.Errorf("Expected valid market order, got %v", err)
		}
	})

	invalid := map[string]func(o *StockOrder){
		"missing account":   func(o *StockOrder) { o.AccountNo = "" },
		"unknown side":      func(o *StockOrder) { o.Side = "B" },
		"unknown type":      func(o *StockOrder) { o.Type = "LO" },
		"zero quantity":     func(o *StockOrder) { o.Quantity = 0 },
		"odd lot mismatch":  func(o *StockOrder) { o.Quantity = 150 },
		"flag without lot":  func(o *StockOrder) { o.OddLot = true },
		"limit zero price":  func(o *StockOrder) { o.Price = decimal.Zero },
		"limit minus price": func(o *StockOrder) { o.Price = decimal.NewFromInt(-1) },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			o := validOrder()
			mutate(&o)
			if err := o.Validate(); !errors.Is(err, ErrInvalidOrder) {
				t.Errorf("Expected ErrInvalidOrder, got %v", err)
			}
		})
	}
}

func TestStockOrder_SignatureValues(t *testing.T) {
	o := validOrder()
	values := o.SignatureValues("abc-123")

	want := map[string]string{
		"acntNo":     "001",
		"subAcntNo":  "01",
		"symbol":     "VPB",
		"ordrQty":    "100",
		"ordrUntprc": "16800",
		"ordrTrdTp":  "01",
		"buySelTp":   "1",
		"oddOrdrYn":  "N",
		"uuid":       "abc-123",
	}
	if len(values) != len(want) {
		t.Fatalf("Expected %d fields, got %d", len(want), len(values))
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("%s = %q, want %q", k, values[k], v)
		}
	}
}

func TestStockOrder_PriceString(t *testing.T) {
	o := validOrder()
	o.Price = decimal.RequireFromString("16800.50")
	if got := o.PriceString(); got != "16800.5" {
		t.Errorf("Expected 16800.5, got %s", got)
	}

	o.Type = OrderTypeATO
	if got := o.PriceString(); got != "0" {
		t.Errorf("Expected 0 for ATO, got %s", got)
	}
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	if a == b {
		t.Error("Expected unique request IDs")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("Expected UUID, got %q: %v", a, err)
	}
}
