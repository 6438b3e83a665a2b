package model

import "github.com/shopspring/decimal"

// PriceRecord is a single row of the remote price board.
// price_per_kg arrives either as a JSON string ("45.00") or a number.
type PriceRecord struct {
	ID             int64           `json:"id"`
	Crop           int64           `json:"crop,omitempty"`
	CropName       string          `json:"crop_name"`
	CropNameNepali string          `json:"crop_name_nepali,omitempty"`
	Market         int64           `json:"market,omitempty"`
	MarketName     string          `json:"market_name,omitempty"`
	PricePerKg     decimal.Decimal `json:"price_per_kg"`
	Date           string          `json:"date,omitempty"`
	Source         string          `json:"source,omitempty"`
}

// Product maps the record onto the listing shape. Missing fields stay empty.
func (r PriceRecord) Product() Product {
	return Product{
		ID:         r.ID,
		Name:       r.CropName,
		NameNepali: r.CropNameNepali,
		PricePerKg: r.PricePerKg,
		Market:     r.MarketName,
		Date:       r.Date,
	}
}
