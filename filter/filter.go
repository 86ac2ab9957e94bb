package filter

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/capiwear/storefront/catalog/pkg/request"
	"github.com/capiwear/storefront/catalog/pkg/response"
)

// DefaultMaxPrice is the upper bound a fresh filter starts with.
var DefaultMaxPrice = decimal.NewFromInt(300)

// Filter is the client-side presentation state for one category view:
// selected style tags, an optional subcategory, and inclusive price bounds.
type Filter struct {
	Category    string
	Subcategory string
	Styles      []response.Style
	MinPrice    decimal.Decimal
	MaxPrice    decimal.Decimal
}

func New(category string) Filter {
	return Filter{
		Category: category,
		MinPrice: decimal.Zero,
		MaxPrice: DefaultMaxPrice,
	}
}

// FromValues rebuilds the filter from a query, reading the initial
// subcategory from the sub parameter. Values is its inverse.
func FromValues(category string, values url.Values) Filter {
	f := New(category)
	f.Subcategory = values.Get("sub")
	return f
}

// Values writes the selected subcategory into a query so the selection
// survives a reload; url.Values handles the percent-encoding.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Subcategory != "" {
		values.Set("sub", f.Subcategory)
	}
	return values
}

// ToggleStyle adds the tag to the selection, or removes it when already
// selected.
func (f *Filter) ToggleStyle(style response.Style) {
	for i, s := range f.Styles {
		if s == style {
			f.Styles = append(f.Styles[:i], f.Styles[i+1:]...)
			return
		}
	}
	f.Styles = append(f.Styles, style)
}

func (f *Filter) HasStyle(style response.Style) bool {
	for _, s := range f.Styles {
		if s == style {
			return true
		}
	}
	return false
}

// PickSubcategory selects a subcategory chip; picking the current one clears
// the selection.
func (f *Filter) PickSubcategory(sub string) {
	if strings.EqualFold(sub, f.Subcategory) {
		f.Subcategory = ""
		return
	}
	f.Subcategory = sub
}

func (f *Filter) SetPriceBounds(min, max decimal.Decimal) {
	f.MinPrice = min
	f.MaxPrice = max
}

// Match reports whether the product passes every active criterion: category
// equality, case-insensitive subcategory (when one is selected), at least one
// selected style tag (vacuously true with none selected), and price within
// the inclusive bounds.
func (f Filter) Match(p response.Product) bool {
	if p.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && !strings.EqualFold(p.Subcategory, f.Subcategory) {
		return false
	}
	if len(f.Styles) > 0 && !f.anyStyle(p.Styles) {
		return false
	}
	if p.Price.LessThan(f.MinPrice) || p.Price.GreaterThan(f.MaxPrice) {
		return false
	}
	return true
}

func (f Filter) anyStyle(styles []response.Style) bool {
	for _, s := range styles {
		if f.HasStyle(s) {
			return true
		}
	}
	return false
}

// Apply filters the fetched product list client-side, preserving order.
func (f Filter) Apply(products []response.Product) []response.Product {
	filtered := []response.Product{}
	for _, p := range products {
		if f.Match(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Query builds the server-side listing query for the current filter state.
// Bounds at their defaults are omitted, matching the querystring rule of
// dropping unset parameters.
func (f Filter) Query(page, pageSize int) request.ProductQuery {
	q := request.ProductQuery{
		Category: f.Category,
		Sub:      f.Subcategory,
		Styles:   f.Styles,
		Page:     page,
		PageSize: pageSize,
	}
	if f.MinPrice.IsPositive() {
		q.Min = decimal.NewNullDecimal(f.MinPrice)
	}
	if !f.MaxPrice.Equal(DefaultMaxPrice) {
		q.Max = decimal.NewNullDecimal(f.MaxPrice)
	}
	return q
}
