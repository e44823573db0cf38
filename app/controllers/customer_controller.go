package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/app/services"
	"github.com/shashiranjanraj/ordercrm/pkg/bind"
	"github.com/shashiranjanraj/ordercrm/pkg/logger"
	"github.com/shashiranjanraj/ordercrm/pkg/storage"
	"github.com/shashiranjanraj/ordercrm/pkg/view"
)

type CustomerController struct {
	orders *services.OrderService
	render *view.Renderer
}

func NewCustomerController(orders *services.OrderService, render *view.Renderer) *CustomerController {
	return &CustomerController{orders: orders, render: render}
}

// Show renders one customer with their order history. Status and date
// filters come from the query string and apply in memory on top of the
// full history, so the order count shown is always the unfiltered total.
func (c *CustomerController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r)
	if !ok {
		view.NotFound(w)
		return
	}

	customer, orders, err := c.orders.CustomerDetail(id)
	if err != nil {
		fail(w, r, err)
		return
	}

	filter := services.ParseOrderFilter(r.URL.Query())
	filtered := filter.Apply(orders)

	c.render.Render(w, r, "customer", view.Data{
		"Customer":    customer,
		"Orders":      filtered,
		"TotalOrders": len(orders),
		"Filter":      filter,
		"Statuses":    models.Statuses,
	})
}

func (c *CustomerController) ShowCreate(w http.ResponseWriter, r *http.Request) {
	c.render.Render(w, r, "customer_form", view.Data{})
}

// Create stores a new customer. The avatar is optional; a failed upload
// aborts the request before anything is persisted.
func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CustomerInput
	if errs, err := bind.Form(r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if errs.HasErrors() {
		c.render.Render(w, r, "customer_form", view.Data{"Errors": errs, "Input": in})
		return
	}

	path, err := c.storeAvatar(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	in.ProfilePic = path

	customer, errs, err := c.orders.CreateCustomer(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	if errs.HasErrors() {
		c.render.Render(w, r, "customer_form", view.Data{"Errors": errs, "Input": in})
		return
	}

	logger.WithCtx(r.Context()).Info("customer created", "customer_id", customer.ID)

	http.Redirect(w, r, "/", http.StatusFound)
}

// storeAvatar saves the uploaded profile picture, if any, and returns its
// storage path.
func (c *CustomerController) storeAvatar(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}

	file, header, err := r.FormFile("profile_pic")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	defer file.Close()

	name := strings.ReplaceAll(filepath.Base(header.Filename), " ", "_")
	path := fmt.Sprintf("avatars/%d_%s", time.Now().UnixNano(), name)

	if err := storage.PutStream(path, file); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	return path, nil
}
