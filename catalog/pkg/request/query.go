package request

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/capiwear/storefront/catalog/pkg/response"
)

// ProductQuery is the server-side filter for the product listing. Zero-valued
// fields are omitted from the querystring entirely.
type ProductQuery struct {
	Category string
	Sub      string
	Styles   []response.Style
	Min      decimal.NullDecimal
	Max      decimal.NullDecimal
	Page     int
	PageSize int
	Q        string
}

// Values encodes the query: empty parameters are dropped, styles repeat as
// styles=value pairs, everything percent-encoded by url.Values.
func (q ProductQuery) Values() url.Values {
	values := url.Values{}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Sub != "" {
		values.Set("sub", q.Sub)
	}
	for _, s := range q.Styles {
		values.Add("styles", string(s))
	}
	if q.Min.Valid {
		values.Set("min", q.Min.Decimal.String())
	}
	if q.Max.Valid {
		values.Set("max", q.Max.Decimal.String())
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Q != "" {
		values.Set("q", q.Q)
	}
	return values
}
