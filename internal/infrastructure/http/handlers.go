package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rcarvalho-pb/billing_engine-go/internal/application/batch"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/customer"
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
)

type Handler struct {
	Invoices  invoice.Repository
	Customers customer.Repository
	Job       *batch.Job
	Logger    logging.Logger
}

type invoiceResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
}

type customerResponse struct {
	ID       int64  `json:"id"`
	Currency string `json:"currency"`
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Invoices.FindAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid invoice id", http.StatusBadRequest)
		return
	}

	inv, err := h.Invoices.FindByID(id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toInvoiceResponse(inv))
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.FindAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, customerResponse{ID: c.ID, Currency: string(c.Currency)})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	c, err := h.Customers.FindByID(id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, customerResponse{ID: c.ID, Currency: string(c.Currency)})
}

// RunBilling triggers a batch run on demand. The run happens in the
// background; 409 means one is already in flight.
func (h *Handler) RunBilling(w http.ResponseWriter, r *http.Request) {
	if h.Job.State() == batch.StateRunning {
		http.Error(w, batch.ErrAlreadyRunning.Error(), http.StatusConflict)
		return
	}

	go func() {
		// Detached from the request context: the run outlives the 202.
		if err := h.Job.Run(context.Background()); err != nil && !errors.Is(err, batch.ErrAlreadyRunning) {
			h.Logger.Error("on-demand billing run failed", map[string]any{"error": err.Error()})
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"batch":  h.Job.State().String(),
	})
}

func toInvoiceResponse(inv invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount.Value.String(),
		Currency:   string(inv.Amount.Currency),
		Status:     string(inv.Status),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
