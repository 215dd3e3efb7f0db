package inmemory

import (
	"sort"
	"sync"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
)

type InvoiceRepository struct {
	mu       sync.RWMutex
	nextID   int64
	invoices map[int64]invoice.Invoice
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		invoices: make(map[int64]invoice.Invoice),
	}
}

func (r *InvoiceRepository) Create(inv invoice.Invoice) (invoice.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inv.ID == 0 {
		r.nextID++
		inv.ID = r.nextID
	} else if inv.ID > r.nextID {
		r.nextID = inv.ID
	}

	r.invoices[inv.ID] = inv
	return inv, nil
}

func (r *InvoiceRepository) FindByID(id int64) (invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.invoices[id]
	if !ok {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	return inv, nil
}

func (r *InvoiceRepository) FindAll() ([]invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(invoice.Invoice) bool { return true }), nil
}

func (r *InvoiceRepository) FindByStatus(status invoice.Status) ([]invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(inv invoice.Invoice) bool { return inv.Status == status }), nil
}

func (r *InvoiceRepository) Update(inv invoice.Invoice) (invoice.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoices[inv.ID]; !ok {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	r.invoices[inv.ID] = inv
	return inv, nil
}

// collect expects the mutex to be held.
func (r *InvoiceRepository) collect(keep func(invoice.Invoice) bool) []invoice.Invoice {
	var invoices []invoice.Invoice
	for _, inv := range r.invoices {
		if keep(inv) {
			invoices = append(invoices, inv)
		}
	}

	sort.Slice(invoices, func(i, j int) bool { return invoices[i].ID < invoices[j].ID })
	return invoices
}
