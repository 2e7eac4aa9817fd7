package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/airline/reservation-system/reservation-service/application"
	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/shared/models"
)

// ReservationHandlers contains reservation HTTP handlers
type ReservationHandlers struct {
	bookReservation    *application.BookReservation
	requestReservation *application.RequestReservation
	getReservation     *application.GetReservation
	listReservations   *application.ListReservations
	cancelReservation  *application.CancelReservation
}

// NewReservationHandlers creates new reservation handlers
func NewReservationHandlers(
	bookReservation *application.BookReservation,
	requestReservation *application.RequestReservation,
	getReservation *application.GetReservation,
	listReservations *application.ListReservations,
	cancelReservation *application.CancelReservation,
) *ReservationHandlers {
	return &ReservationHandlers{
		bookReservation:    bookReservation,
		requestReservation: requestReservation,
		getReservation:     getReservation,
		listReservations:   listReservations,
		cancelReservation:  cancelReservation,
	}
}

// BookReservation runs the synchronous booking saga. A saga that ends FAILED
// is still a successful HTTP exchange; the outcome lives in the body.
func (h *ReservationHandlers) BookReservation(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateReservationCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.bookReservation.Execute(r.Context(), &cmd)
	if err != nil {
		writeFaultError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RequestReservation accepts an asynchronous booking request. The response is
// the pending reservation; completion happens through the event chain.
func (h *ReservationHandlers) RequestReservation(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateReservationCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.requestReservation.Execute(r.Context(), &cmd)
	if err != nil {
		writeFaultError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, result)
}

// GetReservation handles reservation retrieval requests
func (h *ReservationHandlers) GetReservation(w http.ResponseWriter, r *http.Request) {
	result, err := h.getReservation.Execute(r.Context(), models.ID(chi.URLParam(r, "id")))
	if err != nil {
		writeFaultError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListReservations handles listing requests, optionally filtered by status
func (h *ReservationHandlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	results, err := h.listReservations.Execute(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeFaultError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// CancelReservation cancels a confirmed reservation
func (h *ReservationHandlers) CancelReservation(w http.ResponseWriter, r *http.Request) {
	result, err := h.cancelReservation.Execute(r.Context(), models.ID(chi.URLParam(r, "id")))
	if err != nil {
		writeFaultError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RegisterRoutes registers reservation routes
func (h *ReservationHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", h.BookReservation)
		r.Post("/async", h.RequestReservation)
		r.Get("/", h.ListReservations)
		r.Get("/{id}", h.GetReservation)
		r.Post("/{id}/cancel", h.CancelReservation)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
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
