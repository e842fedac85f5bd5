package signer

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"webtrade_go/internal/domain"
)

// Wire names of the signed order fields, in signing order.
const (
	FieldAccountNo    = "acntNo"
	FieldSubAccountNo = "subAcntNo"
	FieldSymbol       = "symbol"
	FieldQuantity     = "ordrQty"
	FieldPrice        = "ordrUntprc"
	FieldOrderType    = "ordrTrdTp"
	FieldSide         = "buySelTp"
	FieldOddLot       = "oddOrdrYn"
	FieldRequestID    = "uuid"
)

// FieldOrder is the concatenation order the server verifies against.
// Changing it yields signatures that look valid but never match.
var FieldOrder = []string{
	FieldAccountNo,
	FieldSubAccountNo,
	FieldSymbol,
	FieldQuantity,
	FieldPrice,
	FieldOrderType,
	FieldSide,
	FieldOddLot,
	FieldRequestID,
}

// SignatureInput holds the order fields covered by the signature.
// Values are opaque strings and are never validated here.
type SignatureInput struct {
	AccountNo    string
	SubAccountNo string
	Symbol       string
	Quantity     string
	Price        string
	OrderType    string
	Side         string
	OddLot       string
	RequestID    string
}

// InputFromValues builds a SignatureInput from wire-named values.
// Empty values are accepted; absent keys are not.
func InputFromValues(values map[string]string) (SignatureInput, error) {
	for _, name := range FieldOrder {
		if _, ok := values[name]; !ok {
			return SignatureInput{}, &domain.MissingFieldError{Field: name}
		}
	}
	return SignatureInput{
		AccountNo:    values[FieldAccountNo],
		SubAccountNo: values[FieldSubAccountNo],
		Symbol:       values[FieldSymbol],
		Quantity:     values[FieldQuantity],
		Price:        values[FieldPrice],
		OrderType:    values[FieldOrderType],
		Side:         values[FieldSide],
		OddLot:       values[FieldOddLot],
		RequestID:    values[FieldRequestID],
	}, nil
}

// Blob returns the unseparated sign string: fields in FieldOrder, then key.
func Blob(in SignatureInput, key string) string {
	var b strings.Builder
	for _, s := range []string{
		in.AccountNo,
		in.SubAccountNo,
		in.Symbol,
		in.Quantity,
		in.Price,
		in.OrderType,
		in.Side,
		in.OddLot,
		in.RequestID,
		key,
	} {
		b.WriteString(s)
	}
	return b.String()
}

// GenerateSignature returns base64(SHA-256(Blob(in, key))) with padding.
func GenerateSignature(in SignatureInput, key string) string {
	return computeSha256Base64(Blob(in, key))
}

// Signer binds the shared private key to signature generation.
type Signer struct {
	key string
}

// NewSigner creates a Signer. A nil key means the secret was never configured.
func NewSigner(key *string) (*Signer, error) {
	if key == nil {
		return nil, &domain.MissingFieldError{Field: "key"}
	}
	return &Signer{key: *key}, nil
}

// Sign generates the signature for in.
func (s *Signer) Sign(in SignatureInput) string {
	return GenerateSignature(in, s.key)
}

// SignValues validates presence of every wire field, then signs.
func (s *Signer) SignValues(values map[string]string) (string, error) {
	in, err := InputFromValues(values)
	if err != nil {
		return "", err
	}
	return s.Sign(in), nil
}

func computeSha256Base64(message string) string {
	sum := sha256.Sum256([]byte(message))
	return base64.StdEncoding.EncodeToString(sum[:])
}
