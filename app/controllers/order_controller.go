package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/app/services"
	"github.com/shashiranjanraj/ordercrm/pkg/bind"
	"github.com/shashiranjanraj/ordercrm/pkg/logger"
	"github.com/shashiranjanraj/ordercrm/pkg/view"
)

// batchFormRows is how many order rows the batch form offers at once.
const batchFormRows = 10

type OrderController struct {
	orders *services.OrderService
	render *view.Renderer
}

func NewOrderController(orders *services.OrderService, render *view.Renderer) *OrderController {
	return &OrderController{orders: orders, render: render}
}

// ShowCreateBatch renders the multi-row order form for one customer.
func (c *OrderController) ShowCreateBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		view.NotFound(w)
		return
	}

	customer, _, err := c.orders.CustomerDetail(id)
	if err != nil {
		fail(w, r, err)
		return
	}

	products, err := c.orders.Products()
	if err != nil {
		fail(w, r, err)
		return
	}

	c.render.Render(w, r, "order_form", view.Data{
		"Customer": customer,
		"Products": products,
		"Statuses": models.Statuses,
		"Rows":     emptyRowResults(batchFormRows),
		"Batch":    true,
	})
}

// CreateBatch persists every non-blank row of the form, or none of them
// when any row fails validation.
func (c *OrderController) CreateBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		view.NotFound(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rows, err := parseOrderRows(r.PostForm, batchFormRows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, created, err := c.orders.CreateOrders(id, rows)
	if err != nil {
		fail(w, r, err)
		return
	}

	if created == 0 && hasRowErrors(results) {
		customer, _, err := c.orders.CustomerDetail(id)
		if err != nil {
			fail(w, r, err)
			return
		}
		products, err := c.orders.Products()
		if err != nil {
			fail(w, r, err)
			return
		}
		c.render.Render(w, r, "order_form", view.Data{
			"Customer": customer,
			"Products": products,
			"Statuses": models.Statuses,
			"Rows":     padRowResults(results, batchFormRows),
			"Batch":    true,
		})
		return
	}

	logger.WithCtx(r.Context()).Info("orders created", "customer_id", id, "count", created)

	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowUpdate renders the single-order edit form.
func (c *OrderController) ShowUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		view.NotFound(w)
		return
	}

	order, err := c.orders.GetOrder(id)
	if err != nil {
		fail(w, r, err)
		return
	}

	products, err := c.orders.Products()
	if err != nil {
		fail(w, r, err)
		return
	}

	c.render.Render(w, r, "order_form", view.Data{
		"Order":    order,
		"Products": products,
		"Statuses": models.Statuses,
	})
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		view.NotFound(w)
		return
	}

	var in services.OrderRow
	if _, err := bind.Form(r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, errs, err := c.orders.UpdateOrder(id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	if errs.HasErrors() {
		products, err := c.orders.Products()
		if err != nil {
			fail(w, r, err)
			return
		}
		c.render.Render(w, r, "order_form", view.Data{
			"Order":    order,
			"Products": products,
			"Statuses": models.Statuses,
			"Errors":   errs,
		})
		return
	}

	logger.WithCtx(r.Context()).Info("order updated", "order_id", order.ID, "status", order.Status)

	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowDelete asks for confirmation. Nothing is removed on GET.
func (c *OrderController) ShowDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		view.NotFound(w)
		return
	}

	order, err := c.orders.GetOrder(id)
	if err != nil {
		fail(w, r, err)
		return
	}

	// Cancel goes back to wherever the user came from.
	back := r.Referer()
	if back == "" {
		back = "/"
	}

	c.render.Render(w, r, "delete", view.Data{"Order": order, "Back": back})
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		view.NotFound(w)
		return
	}

	if err := c.orders.DeleteOrder(id); err != nil {
		fail(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order deleted", "order_id", id)

	http.Redirect(w, r, "/", http.StatusFound)
}

// parseOrderRows reads the indexed batch fields, orders-0-product through
// orders-N-status, into row structs. Field names follow the rendered form.
func parseOrderRows(form url.Values, max int) ([]services.OrderRow, error) {
	rows := make([]services.OrderRow, 0, max)
	for i := 0; i < max; i++ {
		prefix := fmt.Sprintf("orders-%d-", i)
		if !form.Has(prefix+"product") && !form.Has(prefix+"status") && !form.Has(prefix+"note") {
			continue
		}

		var row services.OrderRow
		if raw := form.Get(prefix + "product"); raw != "" {
			pid, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad product id %q", i, raw)
			}
			v := uint(pid)
			row.ProductID = &v
		}
		row.Status = form.Get(prefix + "status")
		row.Note = form.Get(prefix + "note")
		rows = append(rows, row)
	}
	return rows, nil
}

func hasRowErrors(results []services.OrderRowResult) bool {
	for _, res := range results {
		if res.Errors.HasErrors() {
			return true
		}
	}
	return false
}

// emptyRowResults seeds the form with n blank rows.
func emptyRowResults(n int) []services.OrderRowResult {
	return make([]services.OrderRowResult, n)
}

// padRowResults extends the submitted rows back to the full form length so
// the re-rendered form keeps its shape.
func padRowResults(results []services.OrderRowResult, n int) []services.OrderRowResult {
	for len(results) < n {
		results = append(results, services.OrderRowResult{})
	}
	return results
}
