package invoice

import "errors"

var ErrNotFound = errors.New("invoice not found")

type Repository interface {
	Create(Invoice) (Invoice, error)
	FindByID(int64) (Invoice, error)
	FindAll() ([]Invoice, error)
	FindByStatus(Status) ([]Invoice, error)
	Update(Invoice) (Invoice, error)
}
