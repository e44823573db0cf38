package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/shashiranjanraj/ordercrm/app/controllers"
	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/app/repositories"
	"github.com/shashiranjanraj/ordercrm/app/routes"
	"github.com/shashiranjanraj/ordercrm/app/services"
	"github.com/shashiranjanraj/ordercrm/app/views"
	"github.com/shashiranjanraj/ordercrm/pkg/auth"
	"github.com/shashiranjanraj/ordercrm/pkg/guard"
	"github.com/shashiranjanraj/ordercrm/pkg/router"
	"github.com/shashiranjanraj/ordercrm/pkg/session"
	"github.com/shashiranjanraj/ordercrm/pkg/view"
)

// newApp builds the real route table over in-memory repositories. When
// id is non-nil every request carries that identity, standing in for the
// session the middleware would normally restore.
func newApp(t *testing.T, mem *repositories.Memory, id *guard.Identity) http.Handler {
	t.Helper()

	render, err := view.New(views.FS())
	if err != nil {
		t.Fatalf("templates: %v", err)
	}

	authSvc := services.NewAuthService(mem.UserRepo())
	orderSvc := services.NewOrderService(mem.OrderRepo(), mem.CustomerRepo(), mem.ProductRepo())

	r := router.New()
	r.Use(session.Middleware(session.DefaultOptions()))
	if id != nil {
		ident := *id
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(guard.WithIdentity(req.Context(), ident)))
			})
		})
	}

	routes.Register(r, routes.Controllers{
		Auth:      controllers.NewAuthController(authSvc, render),
		Dashboard: controllers.NewDashboardController(orderSvc, render),
		Customer:  controllers.NewCustomerController(orderSvc, render),
		Order:     controllers.NewOrderController(orderSvc, render),
		Product:   controllers.NewProductController(orderSvc, render),
	})

	return r.Handler()
}

func adminIdentity(mem *repositories.Memory) *guard.Identity {
	userID := mem.AddUser(models.User{Username: "admin", Role: models.RoleAdmin})
	return &guard.Identity{UserID: userID, Role: guard.RoleAdmin}
}

func customerIdentity(mem *repositories.Memory) (*guard.Identity, uint) {
	userID := mem.AddUser(models.User{Username: "frank", Role: models.RoleCustomer})
	customerID := mem.AddCustomer(models.Customer{Name: "Frank", UserID: &userID})
	return &guard.Identity{UserID: userID, Role: guard.RoleCustomer}, customerID
}

func postForm(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	app := newApp(t, repositories.NewMemory(), nil)

	for _, path := range []string{"/", "/user", "/products", "/customer/1"} {
		rec := get(app, path)
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
			t.Errorf("%s: want redirect to /login, got %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestCustomerCannotReachAdminPages(t *testing.T) {
	mem := repositories.NewMemory()
	id, _ := customerIdentity(mem)
	app := newApp(t, mem, id)

	for _, path := range []string{"/products", "/customer/1", "/delete_order/1"} {
		rec := get(app, path)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: want 403, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), guard.ForbiddenMessage) {
			t.Errorf("%s: body must carry the refusal notice", path)
		}
	}

	// The dashboard is special-cased: customers land on their own page.
	rec := get(app, "/")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/user" {
		t.Errorf("/: want redirect to /user, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	app := newApp(t, repositories.NewMemory(), nil)

	rec := get(app, "/logout")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("anonymous logout: want redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRegisterCreatesAccountAndRedirects(t *testing.T) {
	mem := repositories.NewMemory()
	app := newApp(t, mem, nil)

	rec := postForm(app, "/register", url.Values{
		"username":              {"alice"},
		"password":              {"secret123"},
		"password_confirmation": {"secret123"},
	})

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("want redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if len(mem.Users) != 1 || len(mem.Customers) != 1 {
		t.Errorf("want 1 user + 1 customer, got %d/%d", len(mem.Users), len(mem.Customers))
	}
}

func TestRegisterValidationRerenders(t *testing.T) {
	mem := repositories.NewMemory()
	app := newApp(t, mem, nil)

	rec := postForm(app, "/register", url.Values{
		"username":              {"alice"},
		"password":              {"secret123"},
		"password_confirmation": {"mismatch"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("want re-rendered form, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "confirmation does not match") {
		t.Error("form must show the confirmation error")
	}
	if len(mem.Users) != 0 {
		t.Error("failed registration must not persist")
	}
}

func TestLoginFailureShowsNotice(t *testing.T) {
	mem := repositories.NewMemory()
	hash, _ := auth.HashPassword("secret123")
	mem.AddUser(models.User{Username: "alice", Password: hash, Role: models.RoleCustomer})
	app := newApp(t, mem, nil)

	rec := postForm(app, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("want the login page again, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Username or password is incorrect") {
		t.Error("login page must show the failure notice")
	}
}

func TestLoginRedirectsByRole(t *testing.T) {
	mem := repositories.NewMemory()
	hash, _ := auth.HashPassword("secret123")
	mem.AddUser(models.User{Username: "root", Password: hash, Role: models.RoleAdmin})
	mem.AddUser(models.User{Username: "alice", Password: hash, Role: models.RoleCustomer})
	app := newApp(t, mem, nil)

	rec := postForm(app, "/login", url.Values{"username": {"root"}, "password": {"secret123"}})
	if rec.Header().Get("Location") != "/" {
		t.Errorf("admin: want /, got %q", rec.Header().Get("Location"))
	}

	rec = postForm(app, "/login", url.Values{"username": {"alice"}, "password": {"secret123"}})
	if rec.Header().Get("Location") != "/user" {
		t.Errorf("customer: want /user, got %q", rec.Header().Get("Location"))
	}
}

func TestLoginRememberSetsCookie(t *testing.T) {
	mem := repositories.NewMemory()
	hash, _ := auth.HashPassword("secret123")
	mem.AddUser(models.User{Username: "alice", Password: hash, Role: models.RoleCustomer})
	app := newApp(t, mem, nil)

	rec := postForm(app, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
		"remember": {"1"},
	})

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.RememberCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("remember-me login must set the remember cookie")
	}
}

func TestDashboardRenders(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	productID := mem.AddProduct(models.Product{Name: "BBQ Grill"})
	mem.AddOrder(models.Order{CustomerID: customerID, ProductID: &productID, Status: models.StatusDelivered})
	app := newApp(t, mem, id)

	rec := get(app, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Frank", "BBQ Grill", "Delivered"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestUserPageShowsOwnOrdersOnly(t *testing.T) {
	mem := repositories.NewMemory()
	id, customerID := customerIdentity(mem)
	other := mem.AddCustomer(models.Customer{Name: "Other"})
	mem.AddOrder(models.Order{CustomerID: customerID, Status: models.StatusPending, Note: "mine"})
	mem.AddOrder(models.Order{CustomerID: other, Status: models.StatusPending, Note: "not mine"})
	app := newApp(t, mem, id)

	rec := get(app, "/user")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestCustomerDetailFilters(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	p1 := mem.AddProduct(models.Product{Name: "Visible Widget"})
	p2 := mem.AddProduct(models.Product{Name: "Hidden Widget"})
	mem.AddOrder(models.Order{CustomerID: customerID, ProductID: &p1, Status: models.StatusDelivered})
	mem.AddOrder(models.Order{CustomerID: customerID, ProductID: &p2, Status: models.StatusPending})
	app := newApp(t, mem, id)

	rec := get(app, "/customer/"+itoa(customerID)+"?status=Delivered")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Visible Widget") {
		t.Error("matching order missing from the filtered list")
	}
	if strings.Contains(body, "Hidden Widget") {
		t.Error("non-matching order must be filtered out")
	}
}

func TestCreateCustomer(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	app := newApp(t, mem, id)

	rec := postForm(app, "/create_customer", url.Values{
		"name":  {"New Customer"},
		"phone": {"555-0101"},
		"email": {"new@example.com"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("want redirect, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(mem.Customers) != 1 {
		t.Errorf("want 1 customer, got %d", len(mem.Customers))
	}
}

func TestCreateOrderBatch(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	productID := mem.AddProduct(models.Product{Name: "Grill"})
	app := newApp(t, mem, id)

	rec := postForm(app, "/create_order/"+itoa(customerID), url.Values{
		"orders-0-product": {itoa(productID)},
		"orders-0-status":  {models.StatusPending},
		"orders-0-note":    {"asap"},
		"orders-1-product": {""},
		"orders-1-status":  {""},
		"orders-1-note":    {""},
		"orders-2-product": {itoa(productID)},
		"orders-2-status":  {models.StatusDelivered},
		"orders-2-note":    {""},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("want redirect, got %d", rec.Code)
	}
	if len(mem.Orders) != 2 {
		t.Errorf("want 2 orders, got %d", len(mem.Orders))
	}
}

func TestCreateOrderBatchInvalidRowPersistsNothing(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	productID := mem.AddProduct(models.Product{Name: "Grill"})
	app := newApp(t, mem, id)

	rec := postForm(app, "/create_order/"+itoa(customerID), url.Values{
		"orders-0-product": {itoa(productID)},
		"orders-0-status":  {models.StatusPending},
		"orders-1-product": {itoa(productID)},
		"orders-1-status":  {"Shipped"}, // invalid
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("want re-rendered form, got %d", rec.Code)
	}
	if len(mem.Orders) != 0 {
		t.Errorf("invalid batch must persist nothing, got %d", len(mem.Orders))
	}
	if !strings.Contains(rec.Body.String(), "The selected status is invalid") {
		t.Error("form must show the row's status error")
	}
}

func TestUpdateOrder(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	orderID := mem.AddOrder(models.Order{CustomerID: customerID, Status: models.StatusPending})
	app := newApp(t, mem, id)

	rec := postForm(app, "/update_order/"+itoa(orderID), url.Values{
		"status": {models.StatusDelivered},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("want redirect, got %d", rec.Code)
	}
	if mem.Orders[orderID].Status != models.StatusDelivered {
		t.Errorf("status not updated: %q", mem.Orders[orderID].Status)
	}
}

func TestDeleteOrderConfirmThenDelete(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	orderID := mem.AddOrder(models.Order{CustomerID: customerID, Status: models.StatusPending})
	app := newApp(t, mem, id)

	// GET shows the confirmation page and must not mutate.
	rec := get(app, "/delete_order/"+itoa(orderID))
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm page: want 200, got %d", rec.Code)
	}
	if len(mem.Orders) != 1 {
		t.Fatal("GET must never delete")
	}

	// POST performs the deletion.
	rec = postForm(app, "/delete_order/"+itoa(orderID), url.Values{})
	if rec.Code != http.StatusFound {
		t.Fatalf("delete: want redirect, got %d", rec.Code)
	}
	if len(mem.Orders) != 0 {
		t.Error("POST must delete the order")
	}
}

func TestDeleteConfirmationCancelsToReferrer(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	orderID := mem.AddOrder(models.Order{CustomerID: customerID, Status: models.StatusPending})
	app := newApp(t, mem, id)

	req := httptest.NewRequest(http.MethodGet, "/delete_order/"+itoa(orderID), nil)
	req.Header.Set("Referer", "/customer/"+itoa(customerID))
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `href="/customer/`+itoa(customerID)+`">Cancel`) {
		t.Error("cancel link must point at the referring page")
	}

	// Without a referrer the cancel link falls back to the dashboard.
	rec = get(app, "/delete_order/"+itoa(orderID))
	if !strings.Contains(rec.Body.String(), `href="/">Cancel`) {
		t.Error("cancel link must fall back to /")
	}
}

func TestDeleteUnknownOrderIs404(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	app := newApp(t, mem, id)

	rec := get(app, "/delete_order/999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("want 404, got %d", rec.Code)
	}
}

func TestProductsPage(t *testing.T) {
	mem := repositories.NewMemory()
	id := adminIdentity(mem)
	mem.AddProduct(models.Product{Name: "Grill", Category: models.CategoryOutdoor, Price: 99.5})
	app := newApp(t, mem, id)

	rec := get(app, "/products")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Grill") {
		t.Error("product missing from the page")
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
