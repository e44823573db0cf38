package repositories

import (
	"sort"
	"sync"

	"github.com/shashiranjanraj/ordercrm/app/models"
)

// Memory is an in-memory implementation of every repository interface.
// Tests use it to drive the service layer without a database.
type Memory struct {
	mu        sync.Mutex
	nextID    uint
	Users     map[uint]models.User
	Customers map[uint]models.Customer
	Products  map[uint]models.Product
	Orders    map[uint]models.Order
	orderSeq  map[uint]int // insertion order, breaks CreatedAt ties
	seq       int
}

func NewMemory() *Memory {
	return &Memory{
		Users:     map[uint]models.User{},
		Customers: map[uint]models.Customer{},
		Products:  map[uint]models.Product{},
		Orders:    map[uint]models.Order{},
		orderSeq:  map[uint]int{},
	}
}

func (m *Memory) id() uint {
	m.nextID++
	return m.nextID
}

func (m *Memory) FindByID(id uint) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) FindByUsername(username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) CreateWithCustomer(user *models.User, customer *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.id()
	m.Users[user.ID] = *user

	customer.ID = m.id()
	uid := user.ID
	customer.UserID = &uid
	m.Customers[customer.ID] = *customer
	return nil
}

// UserRepo, CustomerRepo, ProductRepo and OrderRepo expose the shared
// state through interface-shaped views, so one Memory seeds a whole
// service.
func (m *Memory) UserRepo() UserRepository         { return m }
func (m *Memory) CustomerRepo() CustomerRepository { return customerView{m} }
func (m *Memory) ProductRepo() ProductRepository   { return productView{m} }
func (m *Memory) OrderRepo() OrderRepository       { return orderView{m} }

// AddCustomer seeds a customer and returns its ID.
func (m *Memory) AddCustomer(c models.Customer) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	m.Customers[c.ID] = c
	return c.ID
}

// AddProduct seeds a product and returns its ID.
func (m *Memory) AddProduct(p models.Product) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	m.Products[p.ID] = p
	return p.ID
}

// AddOrder seeds an order and returns its ID.
func (m *Memory) AddOrder(o models.Order) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.id()
	m.seq++
	m.Orders[o.ID] = o
	m.orderSeq[o.ID] = m.seq
	return o.ID
}

// AddUser seeds a login account and returns its ID.
func (m *Memory) AddUser(u models.User) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	m.Users[u.ID] = u
	return u.ID
}

type customerView struct{ m *Memory }

func (v customerView) FindByID(id uint) (models.Customer, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	c, ok := v.m.Customers[id]
	if !ok {
		return models.Customer{}, ErrNotFound
	}
	return c, nil
}

func (v customerView) FindByUserID(userID uint) (models.Customer, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, c := range v.m.Customers {
		if c.UserID != nil && *c.UserID == userID {
			return c, nil
		}
	}
	return models.Customer{}, ErrNotFound
}

func (v customerView) All() ([]models.Customer, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	out := make([]models.Customer, 0, len(v.m.Customers))
	for _, c := range v.m.Customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (v customerView) Create(customer *models.Customer) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	customer.ID = v.m.id()
	v.m.Customers[customer.ID] = *customer
	return nil
}

type productView struct{ m *Memory }

func (v productView) FindByID(id uint) (models.Product, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	p, ok := v.m.Products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (v productView) All() ([]models.Product, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	out := make([]models.Product, 0, len(v.m.Products))
	for _, p := range v.m.Products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete detaches the product from its orders, mirroring the SET NULL
// constraint, then removes it.
func (v productView) Delete(id uint) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.Products[id]; !ok {
		return ErrNotFound
	}
	for oid, o := range v.m.Orders {
		if o.ProductID != nil && *o.ProductID == id {
			o.ProductID = nil
			o.Product = nil
			v.m.Orders[oid] = o
		}
	}
	delete(v.m.Products, id)
	return nil
}

type orderView struct{ m *Memory }

func (v orderView) FindByID(id uint) (models.Order, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	o, ok := v.m.Orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	return v.m.hydrate(o), nil
}

func (v orderView) FindByCustomer(customerID uint) ([]models.Order, error) {
	return v.list(func(o models.Order) bool { return o.CustomerID == customerID }), nil
}

func (v orderView) FindRecent(n int) ([]models.Order, error) {
	all := v.list(func(models.Order) bool { return true })
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (v orderView) All() ([]models.Order, error) {
	return v.list(func(models.Order) bool { return true }), nil
}

func (v orderView) CreateBatch(orders []models.Order) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for i := range orders {
		orders[i].ID = v.m.id()
		v.m.seq++
		v.m.Orders[orders[i].ID] = orders[i]
		v.m.orderSeq[orders[i].ID] = v.m.seq
	}
	return nil
}

func (v orderView) Save(order *models.Order) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.Orders[order.ID]; !ok {
		return ErrNotFound
	}
	v.m.Orders[order.ID] = *order
	return nil
}

func (v orderView) Delete(id uint) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.Orders[id]; !ok {
		return ErrNotFound
	}
	delete(v.m.Orders, id)
	return nil
}

func (v orderView) list(keep func(models.Order) bool) []models.Order {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	out := make([]models.Order, 0, len(v.m.Orders))
	for _, o := range v.m.Orders {
		if keep(o) {
			out = append(out, v.m.hydrate(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return v.m.orderSeq[a.ID] > v.m.orderSeq[b.ID]
	})
	return out
}

// hydrate fills the Product and Customer associations the way the GORM
// preloads do. Callers hold the lock.
func (m *Memory) hydrate(o models.Order) models.Order {
	if o.ProductID != nil {
		if p, ok := m.Products[*o.ProductID]; ok {
			cp := p
			o.Product = &cp
		}
	}
	if c, ok := m.Customers[o.CustomerID]; ok {
		o.Customer = c
	}
	return o
}
