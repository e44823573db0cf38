package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/app/repositories"
	"github.com/shashiranjanraj/ordercrm/app/services"
)

func newOrderService() (*services.OrderService, *repositories.Memory) {
	mem := repositories.NewMemory()
	return services.NewOrderService(mem.OrderRepo(), mem.CustomerRepo(), mem.ProductRepo()), mem
}

func uintPtr(v uint) *uint { return &v }

func TestDashboardCountsAndRecent(t *testing.T) {
	svc, mem := newOrderService()

	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	productID := mem.AddProduct(models.Product{Name: "BBQ Grill"})

	for i := 0; i < 7; i++ {
		status := models.StatusPending
		if i%2 == 0 {
			status = models.StatusDelivered
		}
		mem.AddOrder(models.Order{
			CustomerID: customerID,
			ProductID:  uintPtr(productID),
			Status:     status,
			Note:       fmt.Sprintf("order %d", i),
		})
	}

	summary, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if len(summary.RecentOrders) != 5 {
		t.Errorf("expected 5 recent orders, got %d", len(summary.RecentOrders))
	}
	if summary.RecentOrders[0].Note != "order 6" {
		t.Errorf("recent orders must be newest first, got %q", summary.RecentOrders[0].Note)
	}

	if summary.Counts.Total != 7 {
		t.Errorf("total: want 7, got %d", summary.Counts.Total)
	}
	if summary.Counts.Delivered != 4 {
		t.Errorf("delivered: want 4, got %d", summary.Counts.Delivered)
	}
	if summary.Counts.Pending != 3 {
		t.Errorf("pending: want 3, got %d", summary.Counts.Pending)
	}
	if summary.TotalCustomers != 1 {
		t.Errorf("customers: want 1, got %d", summary.TotalCustomers)
	}
}

func TestCountsFollowStatusChanges(t *testing.T) {
	svc, mem := newOrderService()

	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	orderID := mem.AddOrder(models.Order{CustomerID: customerID, Status: models.StatusPending})

	summary, _ := svc.Dashboard()
	if summary.Counts.Pending != 1 || summary.Counts.Delivered != 0 {
		t.Fatalf("before update: %+v", summary.Counts)
	}

	if _, errs, err := svc.UpdateOrder(orderID, services.OrderRow{Status: models.StatusDelivered}); err != nil || errs.HasErrors() {
		t.Fatalf("update failed: %v %v", errs, err)
	}

	// Counts are derived from the live order set, never stored.
	summary, _ = svc.Dashboard()
	if summary.Counts.Pending != 0 || summary.Counts.Delivered != 1 {
		t.Errorf("after update: %+v", summary.Counts)
	}
	if summary.Counts.Total != 1 {
		t.Errorf("total changed on update: %d", summary.Counts.Total)
	}
}

func TestOwnOrdersScopedToCustomer(t *testing.T) {
	svc, mem := newOrderService()

	mine := mem.AddCustomer(models.Customer{Name: "Mine"})
	other := mem.AddCustomer(models.Customer{Name: "Other"})
	mem.AddOrder(models.Order{CustomerID: mine, Status: models.StatusPending})
	mem.AddOrder(models.Order{CustomerID: other, Status: models.StatusDelivered})

	orders, counts, err := svc.OwnOrders(mine)
	if err != nil {
		t.Fatalf("own orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected only own orders, got %d", len(orders))
	}
	if counts.Total != 1 || counts.Delivered != 0 {
		t.Errorf("counts must cover own orders only: %+v", counts)
	}
}

func TestCreateOrdersSkipsBlankRows(t *testing.T) {
	svc, mem := newOrderService()

	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	productID := mem.AddProduct(models.Product{Name: "Racket"})

	rows := []services.OrderRow{
		{ProductID: uintPtr(productID), Status: models.StatusPending},
		{}, // the always-offered extra row
		{ProductID: uintPtr(productID), Status: models.StatusDelivered},
	}

	results, created, err := svc.CreateOrders(customerID, rows)
	if err != nil {
		t.Fatalf("create orders: %v", err)
	}
	if created != 2 {
		t.Errorf("want 2 created, got %d", created)
	}
	if len(results) != 2 {
		t.Errorf("blank rows must not appear in results, got %d", len(results))
	}
	if len(mem.Orders) != 2 {
		t.Errorf("want 2 persisted orders, got %d", len(mem.Orders))
	}
}

func TestCreateOrdersAllOrNothing(t *testing.T) {
	svc, mem := newOrderService()

	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	productID := mem.AddProduct(models.Product{Name: "Racket"})

	rows := []services.OrderRow{
		{ProductID: uintPtr(productID), Status: models.StatusPending},
		{ProductID: uintPtr(productID), Status: "Shipped"}, // not a valid status
		{ProductID: uintPtr(productID), Status: models.StatusDelivered},
	}

	results, created, err := svc.CreateOrders(customerID, rows)
	if err != nil {
		t.Fatalf("create orders: %v", err)
	}
	if created != 0 {
		t.Errorf("invalid batch must create nothing, got %d", created)
	}
	if len(mem.Orders) != 0 {
		t.Errorf("invalid batch must persist nothing, got %d rows", len(mem.Orders))
	}

	if len(results) != 3 {
		t.Fatalf("want per-row results for all 3 rows, got %d", len(results))
	}
	if results[0].Errors.HasErrors() {
		t.Errorf("row 0 was valid: %v", results[0].Errors)
	}
	if _, ok := results[1].Errors["status"]; !ok {
		t.Error("row 1 must carry its status error")
	}
}

func TestCreateOrdersUnknownProduct(t *testing.T) {
	svc, mem := newOrderService()
	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})

	results, created, err := svc.CreateOrders(customerID, []services.OrderRow{
		{ProductID: uintPtr(999), Status: models.StatusPending},
	})
	if err != nil {
		t.Fatalf("create orders: %v", err)
	}
	if created != 0 {
		t.Errorf("unknown product must not create, got %d", created)
	}
	if _, ok := results[0].Errors["product"]; !ok {
		t.Error("expected a product error on the row")
	}
}

func TestCreateOrdersUnknownCustomer(t *testing.T) {
	svc, _ := newOrderService()

	_, _, err := svc.CreateOrders(42, []services.OrderRow{{Status: models.StatusPending}})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestUpdateOrderRejectsInvalidStatus(t *testing.T) {
	svc, mem := newOrderService()

	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	orderID := mem.AddOrder(models.Order{CustomerID: customerID, Status: models.StatusPending})

	_, errs, err := svc.UpdateOrder(orderID, services.OrderRow{Status: "Lost"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := errs["status"]; !ok {
		t.Error("expected a status validation error")
	}

	got, _ := svc.GetOrder(orderID)
	if got.Status != models.StatusPending {
		t.Errorf("rejected update must not change the row, got %q", got.Status)
	}
}

func TestDeleteOrder(t *testing.T) {
	svc, mem := newOrderService()

	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	orderID := mem.AddOrder(models.Order{CustomerID: customerID, Status: models.StatusPending})

	if err := svc.DeleteOrder(orderID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetOrder(orderID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("want ErrNotFound after delete, got %v", err)
	}

	if err := svc.DeleteOrder(orderID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("double delete: want ErrNotFound, got %v", err)
	}
}

func TestProductDeleteDetachesOrders(t *testing.T) {
	_, mem := newOrderService()

	customerID := mem.AddCustomer(models.Customer{Name: "Frank"})
	productID := mem.AddProduct(models.Product{Name: "Grill"})
	orderID := mem.AddOrder(models.Order{
		CustomerID: customerID,
		ProductID:  uintPtr(productID),
		Status:     models.StatusPending,
	})

	if err := mem.ProductRepo().Delete(productID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	order, err := mem.OrderRepo().FindByID(orderID)
	if err != nil {
		t.Fatalf("order must survive product deletion: %v", err)
	}
	if order.ProductID != nil {
		t.Error("order must be detached from the deleted product")
	}
}
