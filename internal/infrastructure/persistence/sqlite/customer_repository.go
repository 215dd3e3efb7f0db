package sqlite

import (
	"database/sql"
	"errors"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/customer"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{
		db: db,
	}
}

func (r *CustomerRepository) Create(c customer.Customer) (customer.Customer, error) {
	res, err := r.db.Exec(
		`INSERT INTO customers (currency) VALUES (?)`,
		string(c.Currency),
	)
	if err != nil {
		return customer.Customer{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return customer.Customer{}, err
	}

	c.ID = id
	return c, nil
}

func (r *CustomerRepository) FindByID(id int64) (customer.Customer, error) {
	row := r.db.QueryRow(
		`SELECT id, currency FROM customers WHERE id = ?`,
		id,
	)

	var (
		c        customer.Customer
		currency string
	)

	if err := row.Scan(&c.ID, &currency); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customer.Customer{}, customer.ErrNotFound
		}
		return customer.Customer{}, err
	}

	c.Currency = money.Currency(currency)
	return c, nil
}

func (r *CustomerRepository) FindAll() ([]customer.Customer, error) {
	rows, err := r.db.Query(`SELECT id, currency FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []customer.Customer

	for rows.Next() {
		var (
			c        customer.Customer
			currency string
		)
		if err := rows.Scan(&c.ID, &currency); err != nil {
			return nil, err
		}
		c.Currency = money.Currency(currency)
		customers = append(customers, c)
	}

	return customers, rows.Err()
}
