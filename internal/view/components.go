package view

import (
	"strconv"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/notify"
)

const emptyGridMessage = "No products found"

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

// field renders a labelled value, or nothing when value is empty.
func field(class, label, value string) *Node {
	if value == "" {
		return nil
	}
	return El("div", Class("field", class),
		El("span", Class("label"), Text(label)),
		El("span", Class("value"), Text(value)),
	)
}

// ProductCard renders one grid entry. The delete action is only offered to a
// logged-in user.
func ProductCard(v ProductView, authenticated bool) *Node {
	var nepali *Node
	if v.NameNepali != "" {
		nepali = El("span", Class("nepali-name"), Text(v.NameNepali))
	}

	return El("div", Class("product-card"), Attr("data-id", strconv.FormatInt(v.ID, 10)),
		El("div", Class("product-header"),
			El("h3", Text(v.Name)),
			nepali,
		),
		El("div", Class("product-details"),
			El("div", Class("field", "price"),
				El("span", Class("label"), Text("Price per kg:")),
				El("span", Class("price-tag"), Text(v.Price)),
			),
			field("market", "Market:", v.Market),
			field("date", "Date:", v.Date),
		),
		El("div", Class("product-actions"),
			El("a", Class("btn", "btn-primary"), Attr("href", productPath(v.ID)), Text("View Details")),
			If(authenticated, El("a", Class("btn", "btn-danger"), Attr("href", productPath(v.ID)+"/delete"), Text("Delete"))),
		),
	)
}

// ProductGrid renders products in order, or the empty-state message.
func ProductGrid(products []model.Product, authenticated bool) *Node {
	grid := El("div", ID("products-grid"), Class("products-grid"))
	if len(products) == 0 {
		grid.Children = append(grid.Children, El("div", Class("no-products"), Text(emptyGridMessage)))
		return grid
	}

	for _, p := range products {
		grid.Children = append(grid.Children, ProductCard(NewProductView(p), authenticated))
	}
	return grid
}

// ProductModal renders the detail dialog. Edit is offered only to a logged-in
// user.
func ProductModal(p model.Product, authenticated bool) *Node {
	v := NewProductView(p)

	return El("div", ID("product-modal"), Class("modal"),
		El("div", Class("modal-content"),
			El("h2", ID("modal-title"), Text(v.Name)),
			El("div", Class("modal-body"),
				field("name", "Product Name", v.Name),
				field("nepali-name", "Nepali Name", v.NameNepali),
				El("div", Class("field", "price"),
					El("span", Class("label"), Text("Price per kg")),
					El("span", Class("value"), Text(v.Price)),
				),
				field("market", "Market", v.Market),
				field("category", "Category", v.Category),
				field("quantity", "Quantity", v.Quantity),
				field("seller", "Seller", v.Seller),
				field("date", "Date", v.Date),
				field("description", "Description", v.Description),
			),
			El("div", Class("modal-actions"),
				El("a", Class("btn", "btn-secondary"), Attr("href", "/products"), Text("Close")),
				If(authenticated, El("form", Attr("method", "post"), Attr("action", productPath(v.ID)+"/edit"),
					El("button", Class("btn", "btn-primary"), Attr("type", "submit"), Text("Edit")),
				)),
			),
		),
	)
}

// DeleteConfirm asks before a product is deleted. Submitting posts
// confirmed=true.
func DeleteConfirm(p model.Product) *Node {
	return El("div", ID("delete-confirm"), Class("modal"),
		El("div", Class("modal-content"),
			El("h2", Text(p.Name)),
			El("p", Text(model.ErrConfirmRequired.Message)),
			El("form", Attr("method", "post"), Attr("action", productPath(p.ID)+"/delete"),
				El("input", Attr("type", "hidden"), Attr("name", "confirmed"), Attr("value", "true")),
				El("a", Class("btn", "btn-secondary"), Attr("href", "/products"), Text("Cancel")),
				El("button", Class("btn", "btn-danger"), Attr("type", "submit"), Text("Delete")),
			),
		),
	)
}

// Toast renders the notification slot. A hidden toast keeps its element so the
// layout does not shift.
func Toast(t notify.Toast) *Node {
	classes := []string{"toast"}
	switch t.Variant {
	case notify.Error:
		classes = append(classes, "toast-error")
	case notify.Success:
		classes = append(classes, "toast-success")
	}

	switch t.State {
	case notify.Visible:
		classes = append(classes, "show")
	case notify.Fading:
		classes = append(classes, "fade")
	}

	n := El("div", ID("toast"), Class(classes...), Attr("data-state", t.State.String()), Attr("role", "status"))
	if t.State == notify.Hidden {
		n.Attrs = append(n.Attrs, Attribute{Key: "hidden", Val: ""})
		return n
	}

	n.Children = append(n.Children, El("span", ID("toast-message"), Text(t.Message)))
	return n
}
