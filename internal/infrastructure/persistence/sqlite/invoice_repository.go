package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/money"
)

type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{
		db: db,
	}
}

func (r *InvoiceRepository) Create(inv invoice.Invoice) (invoice.Invoice, error) {
	res, err := r.db.Exec(
		`INSERT INTO invoices (customer_id, amount, currency, status)
		 VALUES (?, ?, ?, ?)`,
		inv.CustomerID,
		inv.Amount.Value.String(),
		string(inv.Amount.Currency),
		string(inv.Status),
	)
	if err != nil {
		return invoice.Invoice{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return invoice.Invoice{}, err
	}

	inv.ID = id
	return inv, nil
}

func (r *InvoiceRepository) FindByID(id int64) (invoice.Invoice, error) {
	row := r.db.QueryRow(
		`SELECT id, customer_id, amount, currency, status
		 FROM invoices
		 WHERE id = ?`,
		id,
	)

	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrNotFound
		}
		return invoice.Invoice{}, err
	}

	return inv, nil
}

func (r *InvoiceRepository) FindAll() ([]invoice.Invoice, error) {
	return r.query(
		`SELECT id, customer_id, amount, currency, status
		 FROM invoices
		 ORDER BY id`,
	)
}

func (r *InvoiceRepository) FindByStatus(status invoice.Status) ([]invoice.Invoice, error) {
	return r.query(
		`SELECT id, customer_id, amount, currency, status
		 FROM invoices
		 WHERE status = ?
		 ORDER BY id`,
		string(status),
	)
}

func (r *InvoiceRepository) Update(inv invoice.Invoice) (invoice.Invoice, error) {
	res, err := r.db.Exec(
		`UPDATE invoices
		 SET amount = ?, currency = ?, status = ?
		 WHERE id = ?`,
		inv.Amount.Value.String(),
		string(inv.Amount.Currency),
		string(inv.Status),
		inv.ID,
	)
	if err != nil {
		return invoice.Invoice{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return invoice.Invoice{}, err
	}
	if affected == 0 {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	return inv, nil
}

func (r *InvoiceRepository) query(stmt string, args ...any) ([]invoice.Invoice, error) {
	rows, err := r.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row scanner) (invoice.Invoice, error) {
	var (
		inv      invoice.Invoice
		amount   string
		currency string
		status   string
	)

	if err := row.Scan(&inv.ID, &inv.CustomerID, &amount, &currency, &status); err != nil {
		return invoice.Invoice{}, err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}

	inv.Amount = money.New(value, money.Currency(currency))
	inv.Status = invoice.Status(status)
	return inv, nil
}
