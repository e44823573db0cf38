package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ordercrm/app/services"
	"github.com/shashiranjanraj/ordercrm/pkg/view"
)

type DashboardController struct {
	orders *services.OrderService
	render *view.Renderer
}

func NewDashboardController(orders *services.OrderService, render *view.Renderer) *DashboardController {
	return &DashboardController{orders: orders, render: render}
}

// Home is the admin dashboard: the five most recent orders, the customer
// list, and global counts computed from the live order set.
func (c *DashboardController) Home(w http.ResponseWriter, r *http.Request) {
	summary, err := c.orders.Dashboard()
	if err != nil {
		fail(w, r, err)
		return
	}

	c.render.Render(w, r, "dashboard", view.Data{
		"Orders":         summary.RecentOrders,
		"Customers":      summary.Customers,
		"TotalCustomers": summary.TotalCustomers,
		"TotalOrders":    summary.Counts.Total,
		"Delivered":      summary.Counts.Delivered,
		"Pending":        summary.Counts.Pending,
	})
}

// UserPage shows the signed-in customer their own orders and counts.
func (c *DashboardController) UserPage(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomerID(r, c.orders)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	orders, counts, err := c.orders.OwnOrders(customerID)
	if err != nil {
		fail(w, r, err)
		return
	}

	c.render.Render(w, r, "user", view.Data{
		"Orders":      orders,
		"TotalOrders": counts.Total,
		"Delivered":   counts.Delivered,
		"Pending":     counts.Pending,
	})
}
