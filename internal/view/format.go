package view

import (
	"time"

	"krisik-bazar/internal/model"
)

const (
	currencySymbol = "₹"
	notAvailable   = "N/A"
	invalidDate    = "Invalid Date"
	dateLayout     = "Jan 2, 2006"
)

var dateInputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO-8601 date for display.
func FormatDate(s string) string {
	if s == "" {
		return notAvailable
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return invalidDate
}

// FormatPrice renders the price per kg with two decimals. A zero price is
// shown as unavailable.
func FormatPrice(p model.Product) string {
	if !p.HasPrice() {
		return currencySymbol + notAvailable
	}
	return currencySymbol + p.PricePerKg.StringFixed(2)
}

// ProductView is the display form of a product.
type ProductView struct {
	ID            int64
	Name          string
	NameNepali    string
	Price         string
	Market        string
	Date          string
	Description   string
	Category      string
	Quantity      string
	Seller        string
	IsUserProduct bool
}

// NewProductView formats p for display. Optional fields stay empty when the
// product has no value for them.
func NewProductView(p model.Product) ProductView {
	v := ProductView{
		ID:            p.ID,
		Name:          p.Name,
		NameNepali:    p.NameNepali,
		Price:         FormatPrice(p),
		Market:        p.Market,
		Description:   p.Description,
		Category:      categoryLabel(p.Category),
		Seller:        p.Seller,
		IsUserProduct: p.IsUserProduct,
	}
	if p.Date != "" {
		v.Date = FormatDate(p.Date)
	}
	if !p.Quantity.IsZero() {
		v.Quantity = p.Quantity.String() + " kg"
	}
	return v
}

func categoryLabel(value string) string {
	for _, c := range model.Categories {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
