package customer

import "errors"

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	Create(Customer) (Customer, error)
	FindByID(int64) (Customer, error)
	FindAll() ([]Customer, error)
}
