// Package services holds the workflow layer between controllers and
// repositories: validation, aggregation, and transactional writes.
package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/app/repositories"
	"github.com/shashiranjanraj/ordercrm/pkg/collection"
	"github.com/shashiranjanraj/ordercrm/pkg/metrics"
	"github.com/shashiranjanraj/ordercrm/pkg/validate"
)

const recentOrderCount = 5

// StatusCounts is always computed live from an order set; no tallies are
// ever persisted.
type StatusCounts struct {
	Total     int
	Delivered int
	Pending   int
}

// CountStatuses scans orders and derives the status breakdown.
func CountStatuses(orders []models.Order) StatusCounts {
	byStatus := collection.CountBy(orders, func(o models.Order) string { return o.Status })
	return StatusCounts{
		Total:     len(orders),
		Delivered: byStatus[models.StatusDelivered],
		Pending:   byStatus[models.StatusPending],
	}
}

// DashboardSummary is the admin landing page data.
type DashboardSummary struct {
	RecentOrders   []models.Order
	Customers      []models.Customer
	TotalCustomers int
	Counts         StatusCounts
}

// CustomerInput is the customer creation form.
type CustomerInput struct {
	Name       string `form:"name" validate:"required,max=200"`
	Phone      string `form:"phone" validate:"nullable,max=50"`
	Email      string `form:"email" validate:"nullable,email"`
	ProfilePic string `form:"-"` // storage path, set after the upload succeeds
}

// OrderRow is one row of the order form, both for batch creation and for
// single-order update.
type OrderRow struct {
	ProductID *uint  `form:"product"`
	Status    string `form:"status" validate:"required,in=Pending|Out for delivery|Delivered"`
	Note      string `form:"note" validate:"nullable,max=1000"`
}

// Blank reports whether every field of the row was left empty. Blank rows
// come from the always-offered extra row and are skipped, not rejected.
func (r OrderRow) Blank() bool {
	return r.ProductID == nil && r.Status == "" && r.Note == ""
}

// OrderRowResult pairs a submitted row with its validation outcome.
type OrderRowResult struct {
	Row    OrderRow
	Errors validate.Errors
}

// OrderService implements the order workflow operations.
type OrderService struct {
	orders    repositories.OrderRepository
	customers repositories.CustomerRepository
	products  repositories.ProductRepository
}

func NewOrderService(
	orders repositories.OrderRepository,
	customers repositories.CustomerRepository,
	products repositories.ProductRepository,
) *OrderService {
	return &OrderService{orders: orders, customers: customers, products: products}
}

// OwnOrders returns a customer's orders with their live status counts.
func (s *OrderService) OwnOrders(customerID uint) ([]models.Order, StatusCounts, error) {
	orders, err := s.orders.FindByCustomer(customerID)
	if err != nil {
		return nil, StatusCounts{}, err
	}
	return orders, CountStatuses(orders), nil
}

// Dashboard returns the admin summary: the five most recent orders, all
// customers, and global counts scanned from the full order set.
func (s *OrderService) Dashboard() (DashboardSummary, error) {
	orders, err := s.orders.All()
	if err != nil {
		return DashboardSummary{}, err
	}

	recent, err := s.orders.FindRecent(recentOrderCount)
	if err != nil {
		return DashboardSummary{}, err
	}

	customers, err := s.customers.All()
	if err != nil {
		return DashboardSummary{}, err
	}

	return DashboardSummary{
		RecentOrders:   collection.Take(recent, recentOrderCount),
		Customers:      customers,
		TotalCustomers: len(customers),
		Counts:         CountStatuses(orders),
	}, nil
}

// CustomerDetail returns a customer with their full order set.
func (s *OrderService) CustomerDetail(customerID uint) (models.Customer, []models.Order, error) {
	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		return models.Customer{}, nil, err
	}

	orders, err := s.orders.FindByCustomer(customerID)
	if err != nil {
		return models.Customer{}, nil, err
	}

	return customer, orders, nil
}

// Products returns the catalogue.
func (s *OrderService) Products() ([]models.Product, error) {
	return s.products.All()
}

// CreateCustomer validates and persists a new customer.
func (s *OrderService) CreateCustomer(in CustomerInput) (models.Customer, validate.Errors, error) {
	if errs := validate.Struct(&in); errs.HasErrors() {
		return models.Customer{}, errs, nil
	}

	customer := models.Customer{
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		ProfilePic: in.ProfilePic,
	}
	if err := s.customers.Create(&customer); err != nil {
		return models.Customer{}, nil, err
	}

	return customer, nil, nil
}

// CreateOrders persists a batch of order rows for one customer,
// all-or-nothing: every non-blank row is validated first, and a single
// invalid row stops the whole batch. The per-row results let the form
// re-render each submitted row with its own errors.
func (s *OrderService) CreateOrders(customerID uint, rows []OrderRow) ([]OrderRowResult, int, error) {
	if _, err := s.customers.FindByID(customerID); err != nil {
		return nil, 0, err
	}

	results := make([]OrderRowResult, 0, len(rows))
	invalid := false

	for _, row := range rows {
		if row.Blank() {
			continue
		}

		res := OrderRowResult{Row: row, Errors: validate.Struct(&row)}
		if res.Errors == nil {
			res.Errors = validate.Errors{}
		}
		if row.ProductID != nil {
			if _, err := s.products.FindByID(*row.ProductID); err != nil {
				if !errors.Is(err, repositories.ErrNotFound) {
					return nil, 0, err
				}
				res.Errors["product"] = "The selected product is invalid."
			}
		}

		if res.Errors.HasErrors() {
			invalid = true
		}
		results = append(results, res)
	}

	if invalid || len(results) == 0 {
		return results, 0, nil
	}

	orders := collection.Map(results, func(res OrderRowResult) models.Order {
		return models.Order{
			CustomerID: customerID,
			ProductID:  res.Row.ProductID,
			Status:     res.Row.Status,
			Note:       res.Row.Note,
		}
	})

	if err := s.orders.CreateBatch(orders); err != nil {
		return nil, 0, err
	}

	for _, o := range orders {
		metrics.OrdersCreated.WithLabelValues(o.Status).Inc()
	}

	return results, len(orders), nil
}

// GetOrder loads one order; repositories.ErrNotFound propagates as a 404.
func (s *OrderService) GetOrder(orderID uint) (models.Order, error) {
	return s.orders.FindByID(orderID)
}

// UpdateOrder validates and persists changes to an existing order.
func (s *OrderService) UpdateOrder(orderID uint, in OrderRow) (models.Order, validate.Errors, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, nil, err
	}

	if errs := validate.Struct(&in); errs.HasErrors() {
		return order, errs, nil
	}

	if in.ProductID != nil {
		if _, err := s.products.FindByID(*in.ProductID); err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return models.Order{}, nil, err
			}
			return order, validate.Errors{"product": "The selected product is invalid."}, nil
		}
	}

	order.ProductID = in.ProductID
	order.Status = in.Status
	order.Note = in.Note

	if err := s.orders.Save(&order); err != nil {
		return models.Order{}, nil, err
	}

	return order, nil, nil
}

// DeleteOrder removes an order. The confirmation step lives in the
// controller; this method is only reached by a confirmed request.
func (s *OrderService) DeleteOrder(orderID uint) error {
	if _, err := s.orders.FindByID(orderID); err != nil {
		return err
	}
	if err := s.orders.Delete(orderID); err != nil {
		return fmt.Errorf("delete order %d: %w", orderID, err)
	}
	return nil
}

// CustomerForUser resolves the customer record linked to a login account.
func (s *OrderService) CustomerForUser(userID uint) (models.Customer, error) {
	return s.customers.FindByUserID(userID)
}
