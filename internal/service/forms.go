package service

import (
	"strings"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/validation"

	"github.com/shopspring/decimal"
)

// ProductForm is the add-product form as submitted.
type ProductForm struct {
	Name        string `form:"name" validate:"required"`
	NameNepali  string `form:"name_nepali"`
	Category    string `form:"category" validate:"required"`
	PricePerKg  string `form:"price_per_kg" validate:"required"`
	Quantity    string `form:"quantity" validate:"required"`
	Market      string `form:"market"`
	Description string `form:"description" validate:"required"`
}

func (f ProductForm) trimmed() ProductForm {
	f.Name = strings.TrimSpace(f.Name)
	f.NameNepali = strings.TrimSpace(f.NameNepali)
	f.Category = strings.TrimSpace(f.Category)
	f.PricePerKg = strings.TrimSpace(f.PricePerKg)
	f.Quantity = strings.TrimSpace(f.Quantity)
	f.Market = strings.TrimSpace(f.Market)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

// parse validates the form and returns the product fields it carries. A number
// that does not parse or is zero counts as missing.
func (f ProductForm) parse(v *validation.Validator) (model.Product, error) {
	f = f.trimmed()
	if errs := v.All(f); errs != nil {
		return model.Product{}, model.ErrMissingRequiredFields
	}

	quantity, qErr := decimal.NewFromString(f.Quantity)
	price, pErr := decimal.NewFromString(f.PricePerKg)
	if qErr != nil || pErr != nil || quantity.IsZero() || price.IsZero() {
		return model.Product{}, model.ErrMissingRequiredFields
	}
	if quantity.IsNegative() {
		return model.Product{}, model.ErrInvalidQuantity
	}
	if price.IsNegative() {
		return model.Product{}, model.ErrInvalidPrice
	}
	if !model.IsCategory(f.Category) {
		return model.Product{}, model.ErrInvalidCategory
	}

	return model.Product{
		Name:        f.Name,
		NameNepali:  f.NameNepali,
		Category:    f.Category,
		PricePerKg:  price,
		Quantity:    quantity,
		Market:      f.Market,
		Description: f.Description,
	}, nil
}

// ContactForm is the contact form as submitted.
type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,simpleemail"`
	Message string `form:"message" validate:"required"`
}

func (f ContactForm) check(v *validation.Validator) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)

	errs := v.All(f)
	switch {
	case errs == nil:
		return nil
	case validation.HasTag(errs, "required"):
		return model.ErrMissingFields
	default:
		return model.ErrInvalidEmail
	}
}
