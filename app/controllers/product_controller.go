package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ordercrm/app/services"
	"github.com/shashiranjanraj/ordercrm/pkg/view"
)

type ProductController struct {
	orders *services.OrderService
	render *view.Renderer
}

func NewProductController(orders *services.OrderService, render *view.Renderer) *ProductController {
	return &ProductController{orders: orders, render: render}
}

// Index lists the catalogue.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.orders.Products()
	if err != nil {
		fail(w, r, err)
		return
	}

	c.render.Render(w, r, "products", view.Data{"Products": products})
}
