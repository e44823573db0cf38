package services

import (
	"net/url"
	"time"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/pkg/collection"
)

const filterDateLayout = "2006-01-02"

// OrderFilter narrows an order list from recognized query parameters:
// status (equality) and from/to (creation date range). Anything else in
// the query string is ignored; absent parameters impose no constraint.
// The struct round-trips into the rendered filter form.
type OrderFilter struct {
	Status string
	From   string
	To     string
}

// ParseOrderFilter extracts the recognized parameters from a query string.
func ParseOrderFilter(q url.Values) OrderFilter {
	return OrderFilter{
		Status: q.Get("status"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
}

// Empty reports whether no constraint is active.
func (f OrderFilter) Empty() bool {
	return f.Status == "" && f.From == "" && f.To == ""
}

// Apply filters orders in memory. A date that does not parse imposes no
// constraint, same as an absent one: the filter form is a convenience,
// not an API.
func (f OrderFilter) Apply(orders []models.Order) []models.Order {
	if f.Empty() {
		return orders
	}

	var from, to time.Time
	var hasFrom, hasTo bool
	if f.From != "" {
		if t, err := time.Parse(filterDateLayout, f.From); err == nil {
			from, hasFrom = t, true
		}
	}
	if f.To != "" {
		if t, err := time.Parse(filterDateLayout, f.To); err == nil {
			to, hasTo = t, true
		}
	}

	return collection.Filter(orders, func(o models.Order) bool {
		if f.Status != "" && o.Status != f.Status {
			return false
		}
		if hasFrom && o.CreatedAt.Before(from) {
			return false
		}
		if hasTo && o.CreatedAt.After(to.Add(24*time.Hour)) {
			return false
		}
		return true
	})
}
