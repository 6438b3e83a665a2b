package view

import (
	"krisik-bazar/internal/model"
	"krisik-bazar/internal/notify"
	"krisik-bazar/internal/page"
)

const siteName = "Krisik Bazar"

// PageData is everything the layout needs for one response.
type PageData struct {
	Active        page.Name
	Session       model.Session
	Authenticated bool
	Products      []model.Product
	Query         string
	Category      string
	Modal         *model.Product
	ConfirmDelete *model.Product
	Toast         notify.Toast
	CanAddProduct bool
}

var navLinks = []struct {
	page  page.Name
	label string
}{
	{page.Home, "Home"},
	{page.Products, "Products"},
	{page.AddProduct, "Add Product"},
	{page.Contact, "Contact"},
}

// Page renders the full document. Every page section is present; only the
// active one is shown.
func Page(d PageData) *Node {
	return El("html", Attr("lang", "en"),
		El("head",
			El("meta", Attr("charset", "utf-8")),
			El("meta", Attr("name", "viewport"), Attr("content", "width=device-width, initial-scale=1")),
			El("title", Text(siteName)),
		),
		El("body",
			header(d),
			El("main",
				section(d, page.Home, homePage()),
				section(d, page.Products, productsPage(d)),
				section(d, page.Login, loginPage()),
				section(d, page.Register, registerPage()),
				section(d, page.AddProduct, addProductPage(d.CanAddProduct)),
				section(d, page.Contact, contactPage()),
			),
			modal(d),
			Toast(d.Toast),
			El("footer", El("p", Text("© "+siteName))),
		),
	)
}

func header(d PageData) *Node {
	nav := El("nav", ID("nav"))
	for _, l := range navLinks {
		active := l.page == d.Active
		classes := []string{"nav-link"}
		if active {
			classes = append(classes, "active")
		}
		nav.Children = append(nav.Children, El("a",
			Class(classes...),
			Attr("href", "/"+string(l.page)),
			If(active, Attr("aria-current", "page")),
			Text(l.label),
		))
	}

	return El("header",
		El("a", Class("brand"), Attr("href", "/"), Text(siteName)),
		nav,
		authArea(d),
	)
}

func authArea(d PageData) *Node {
	if !d.Authenticated {
		return El("div", ID("auth-buttons"),
			El("a", Class("btn", "btn-secondary"), Attr("href", "/login"), Text("Login")),
			El("a", Class("btn", "btn-primary"), Attr("href", "/register"), Text("Register")),
		)
	}

	return El("div", ID("user-menu"),
		El("span", ID("user-avatar"), Class("avatar"), Text(d.Session.Initials())),
		El("span", ID("user-name"), Text(d.Session.DisplayName())),
		El("form", Attr("method", "post"), Attr("action", "/logout"),
			El("button", Class("btn", "btn-secondary"), Attr("type", "submit"), Text("Logout")),
		),
	)
}

func section(d PageData, name page.Name, content *Node) *Node {
	if name == d.Active {
		return El("section", ID(string(name)+"-page"), Class("page", "active"), content)
	}
	return El("section", ID(string(name)+"-page"), Class("page"), Attr("hidden", ""), content)
}

func modal(d PageData) *Node {
	switch {
	case d.ConfirmDelete != nil:
		return DeleteConfirm(*d.ConfirmDelete)
	case d.Modal != nil:
		return ProductModal(*d.Modal, d.Authenticated)
	default:
		return nil
	}
}

func homePage() *Node {
	return El("div", Class("hero"),
		El("h1", Text("Welcome to "+siteName)),
		El("p", Text("Fresh market prices from across Nepal, and a place to sell your own produce.")),
		El("a", Class("btn", "btn-primary"), Attr("href", "/products"), Text("Browse Products")),
	)
}

func productsPage(d PageData) *Node {
	return El("div",
		El("h2", Text("Products")),
		El("form", ID("product-filters"), Attr("method", "get"), Attr("action", "/products"),
			El("input", ID("search-input"), Attr("type", "search"), Attr("name", "q"), Attr("value", d.Query), Attr("placeholder", "Search products...")),
			categorySelect("category-filter", d.Category, "All Categories", false),
			El("button", Class("btn", "btn-primary"), Attr("type", "submit"), Text("Search")),
		),
		ProductGrid(d.Products, d.Authenticated),
	)
}

func categorySelect(id, selected, emptyLabel string, required bool) *Node {
	sel := El("select", ID(id), Attr("name", "category"))
	if required {
		sel.Attrs = append(sel.Attrs, Attribute{Key: "required", Val: ""})
	}

	sel.Children = append(sel.Children, option("", emptyLabel, selected == ""))
	for _, c := range model.Categories {
		sel.Children = append(sel.Children, option(c.Value, c.Label, c.Value == selected))
	}
	return sel
}

func option(value, label string, selected bool) *Node {
	o := El("option", Attr("value", value), Text(label))
	if selected {
		o.Attrs = append(o.Attrs, Attribute{Key: "selected", Val: ""})
	}
	return o
}

func input(form, label, name, typ string, required bool, extra ...Part) *Node {
	id := form + "-" + name
	in := El("input", ID(id), Attr("type", typ), Attr("name", name))
	if required {
		in.Attrs = append(in.Attrs, Attribute{Key: "required", Val: ""})
	}
	for _, p := range extra {
		if p != nil {
			p.apply(in)
		}
	}
	return El("div", Class("form-group"),
		El("label", Attr("for", id), Text(label)),
		in,
	)
}

func textarea(form, label, name string, required bool) *Node {
	id := form + "-" + name
	ta := El("textarea", ID(id), Attr("name", name), Attr("rows", "4"))
	if required {
		ta.Attrs = append(ta.Attrs, Attribute{Key: "required", Val: ""})
	}
	return El("div", Class("form-group"),
		El("label", Attr("for", id), Text(label)),
		ta,
	)
}

func submit(label string) *Node {
	return El("button", Class("btn", "btn-primary"), Attr("type", "submit"), Text(label))
}

func loginPage() *Node {
	return El("div", Class("auth-form"),
		El("h2", Text("Login")),
		El("form", ID("login-form"), Attr("method", "post"), Attr("action", "/login"),
			input("login", "Email", "email", "email", true),
			input("login", "Password", "password", "password", true),
			submit("Login"),
		),
		El("p", Text("Don't have an account? "), El("a", Attr("href", "/register"), Text("Register"))),
	)
}

func registerPage() *Node {
	return El("div", Class("auth-form"),
		El("h2", Text("Register")),
		El("form", ID("register-form"), Attr("method", "post"), Attr("action", "/register"),
			input("register", "Full Name", "name", "text", true),
			input("register", "Email", "email", "email", true),
			input("register", "Password", "password", "password", true),
			submit("Register"),
		),
		El("p", Text("Already have an account? "), El("a", Attr("href", "/login"), Text("Login"))),
	)
}

func addProductPage(canAdd bool) *Node {
	if !canAdd {
		return El("div", ID("login-required"), Class("notice"),
			El("p", Text(model.ErrLoginToAdd.Message)),
			El("a", Class("btn", "btn-primary"), Attr("href", "/login"), Text("Login")),
		)
	}

	return El("div",
		El("h2", Text("Add Product")),
		El("form", ID("add-product-form"), Attr("method", "post"), Attr("action", "/add-product"),
			input("product", "Product Name", "name", "text", true),
			input("product", "Nepali Name", "name_nepali", "text", false),
			El("div", Class("form-group"),
				El("label", Attr("for", "product-category"), Text("Category")),
				categorySelect("product-category", "", "Select category", true),
			),
			input("product", "Price per kg", "price_per_kg", "number", true, Attr("step", "0.01"), Attr("min", "0")),
			input("product", "Quantity (kg)", "quantity", "number", true, Attr("step", "0.01"), Attr("min", "0")),
			input("product", "Market", "market", "text", false),
			textarea("product", "Description", "description", false),
			submit("Add Product"),
		),
	)
}

func contactPage() *Node {
	return El("div",
		El("h2", Text("Contact Us")),
		El("form", ID("contact-form"), Attr("method", "post"), Attr("action", "/contact"),
			input("contact", "Name", "name", "text", true),
			input("contact", "Email", "email", "email", true),
			textarea("contact", "Message", "message", true),
			submit("Send Message"),
		),
	)
}
