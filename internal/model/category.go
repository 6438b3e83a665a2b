package model

// Category is one entry of the fixed category filter.
type Category struct {
	Value string
	Label string
}

// Categories is the enumerated filter list, in display order.
var Categories = []Category{
	{Value: "vegetables", Label: "Vegetables"},
	{Value: "fruits", Label: "Fruits"},
	{Value: "grains", Label: "Grains"},
	{Value: "dairy", Label: "Dairy Products"},
	{Value: "spices", Label: "Spices"},
	{Value: "equipment", Label: "Equipment"},
	{Value: "fertilizers", Label: "Fertilizers"},
	{Value: "other", Label: "Other"},
}

// IsCategory reports whether value is one of the enumerated categories.
func IsCategory(value string) bool {
	for _, c := range Categories {
		if c.Value == value {
			return true
		}
	}
	return false
}
