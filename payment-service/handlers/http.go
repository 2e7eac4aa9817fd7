package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/airline/reservation-system/payment-service/application"
	"github.com/airline/reservation-system/shared/faults"
)

// PaymentHandlers contains payment HTTP handlers
type PaymentHandlers struct {
	getPayment *application.GetPayment
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(getPayment *application.GetPayment) *PaymentHandlers {
	return &PaymentHandlers{
		getPayment: getPayment,
	}
}

// GetPayment handles payment retrieval requests
func (h *PaymentHandlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	query := &application.GetPaymentQuery{
		PaymentID: chi.URLParam(r, "id"),
	}

	response, err := h.getPayment.Execute(r.Context(), query)
	if err != nil {
		writeFaultError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/{id}", h.GetPayment)
	})
}

func writeFaultError(w http.ResponseWriter, err error) {
	switch faults.KindOf(err) {
	case faults.KindValidation:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case faults.KindNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case faults.KindAlreadyProcessed:
		http.Error(w, err.Error(), http.StatusConflict)
	case faults.KindBusinessDecline:
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
