package inmemory

import (
	"sort"
	"sync"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/customer"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	nextID    int64
	customers map[int64]customer.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[int64]customer.Customer),
	}
}

func (r *CustomerRepository) Create(c customer.Customer) (customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	} else if c.ID > r.nextID {
		r.nextID = c.ID
	}

	r.customers[c.ID] = c
	return c, nil
}

func (r *CustomerRepository) FindByID(id int64) (customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return customer.Customer{}, customer.ErrNotFound
	}

	return c, nil
}

func (r *CustomerRepository) FindAll() ([]customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]customer.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customers = append(customers, c)
	}

	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}
