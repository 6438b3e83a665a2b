package model

import "github.com/shopspring/decimal"

// Product is a marketplace listing. Remote products come from the price board
// and are rebuilt on every reload; user products are persisted in the store.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	NameNepali    string          `json:"name_nepali,omitempty"`
	PricePerKg    decimal.Decimal `json:"price_per_kg"`
	Market        string          `json:"market,omitempty"`
	Category      string          `json:"category,omitempty"`
	Quantity      decimal.Decimal `json:"quantity,omitzero"`
	Date          string          `json:"date,omitempty"`
	Description   string          `json:"description,omitempty"`
	Seller        string          `json:"seller,omitempty"`
	IsUserProduct bool            `json:"isUserProduct,omitempty"`
}

// Origin reports where the product came from.
func (p Product) Origin() Origin {
	if p.IsUserProduct {
		return OriginUser
	}
	return OriginRemote
}

// HasPrice reports whether a usable price is set. A zero price is treated as
// absent, the same as a missing one.
func (p Product) HasPrice() bool {
	return !p.PricePerKg.IsZero()
}

// Origin distinguishes remote listings from user-authored ones.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginUser   Origin = "user"
)
