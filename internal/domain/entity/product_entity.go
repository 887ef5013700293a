package entity

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a client-held projection of a product owned by the product-service.
type Product struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Price     `json:"price"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// NewProduct is the create payload. Price is forwarded exactly as entered.
type NewProduct struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Price accepts a JSON number or numeric string. Anything else (null, "",
// "abc", objects) leaves it invalid instead of failing the whole list.
type Price struct {
	decimal.NullDecimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{decimal.NullDecimal{Decimal: d, Valid: true}}
}

func (p *Price) UnmarshalJSON(b []byte) error {
	*p = Price{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	*p = NewPrice(d)
	return nil
}

// String renders two decimals, or "-" when the service sent no usable price.
func (p Price) String() string {
	if !p.Valid {
		return "-"
	}
	return p.Decimal.StringFixed(2)
}
