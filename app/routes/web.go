// Package routes wires every HTTP endpoint to its controller and guard
// chain. Route names are registered for URL reversal and route:list.
package routes

import (
	"github.com/shashiranjanraj/ordercrm/app/controllers"
	"github.com/shashiranjanraj/ordercrm/pkg/guard"
	"github.com/shashiranjanraj/ordercrm/pkg/router"
)

// Controllers holds everything the route table needs.
type Controllers struct {
	Auth      *controllers.AuthController
	Dashboard *controllers.DashboardController
	Customer  *controllers.CustomerController
	Order     *controllers.OrderController
	Product   *controllers.ProductController
}

// Register mounts the full route table on r.
func Register(r *router.Router, c Controllers) {
	// Guest-only pages. A signed-in user is bounced to their home.
	r.Get("/register", "register", c.Auth.ShowRegister, guard.RequireGuest)
	r.Post("/register", "register.store", c.Auth.Register, guard.RequireGuest)
	r.Get("/login", "login", c.Auth.ShowLogin, guard.RequireGuest)
	r.Post("/login", "login.store", c.Auth.Login, guard.RequireGuest)

	// Logout takes no guard: with or without a session it lands on /login.
	r.Get("/logout", "logout", c.Auth.Logout)

	// The customer-facing page.
	r.Get("/user", "user", c.Dashboard.UserPage,
		guard.RequireAuth, guard.RequireAccess(guard.OpViewOwnOrders))

	// Admin pages. The root redirects customers to /user instead of 403,
	// so the post-login landing works for both roles.
	r.Get("/", "dashboard", c.Dashboard.Home,
		guard.RequireAuth, guard.AdminHome, guard.RequireAccess(guard.OpViewDashboard))

	r.Get("/products", "products", c.Product.Index,
		guard.RequireAuth, guard.RequireAccess(guard.OpManageProducts))

	r.Get("/customer/{id}", "customer", c.Customer.Show,
		guard.RequireAuth, guard.RequireAccess(guard.OpManageCustomers))
	r.Get("/create_customer", "customer.create", c.Customer.ShowCreate,
		guard.RequireAuth, guard.RequireAccess(guard.OpCreateCustomer))
	r.Post("/create_customer", "customer.store", c.Customer.Create,
		guard.RequireAuth, guard.RequireAccess(guard.OpCreateCustomer))

	r.Get("/create_order/{id}", "order.create", c.Order.ShowCreateBatch,
		guard.RequireAuth, guard.RequireAccess(guard.OpManageOrders))
	r.Post("/create_order/{id}", "order.store", c.Order.CreateBatch,
		guard.RequireAuth, guard.RequireAccess(guard.OpManageOrders))
	r.Get("/update_order/{id}", "order.edit", c.Order.ShowUpdate,
		guard.RequireAuth, guard.RequireAccess(guard.OpUpdateOrder))
	r.Post("/update_order/{id}", "order.update", c.Order.Update,
		guard.RequireAuth, guard.RequireAccess(guard.OpUpdateOrder))
	r.Get("/delete_order/{id}", "order.delete", c.Order.ShowDelete,
		guard.RequireAuth, guard.RequireAccess(guard.OpManageOrders))
	r.Post("/delete_order/{id}", "order.destroy", c.Order.Delete,
		guard.RequireAuth, guard.RequireAccess(guard.OpManageOrders))
}
