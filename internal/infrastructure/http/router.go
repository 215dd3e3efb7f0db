package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(handler *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /invoices", handler.ListInvoices)
	mux.HandleFunc("GET /invoices/{id}", handler.GetInvoice)
	mux.HandleFunc("GET /customers", handler.ListCustomers)
	mux.HandleFunc("GET /customers/{id}", handler.GetCustomer)
	mux.HandleFunc("POST /billing/run", handler.RunBilling)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
