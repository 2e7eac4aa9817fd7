package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/airline/reservation-system/shared/faults"
	"github.com/airline/reservation-system/ticket-service/application"
)

// TicketHandlers contains ticket HTTP handlers
type TicketHandlers struct {
	getTicket  *application.GetTicket
	changeSeat *application.ChangeSeat
}

// NewTicketHandlers creates new ticket handlers
func NewTicketHandlers(getTicket *application.GetTicket, changeSeat *application.ChangeSeat) *TicketHandlers {
	return &TicketHandlers{
		getTicket:  getTicket,
		changeSeat: changeSeat,
	}
}

// GetTicket handles ticket retrieval requests
func (h *TicketHandlers) GetTicket(w http.ResponseWriter, r *http.Request) {
	query := &application.GetTicketQuery{
		TicketID: chi.URLParam(r, "id"),
	}

	response, err := h.getTicket.Execute(r.Context(), query)
	if err != nil {
		writeFaultError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ChangeSeat handles seat reassignment requests
func (h *TicketHandlers) ChangeSeat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SeatNumber string `json:"seat_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd := &application.ChangeSeatCommand{
		TicketID:   chi.URLParam(r, "id"),
		SeatNumber: body.SeatNumber,
	}

	if err := h.changeSeat.Execute(r.Context(), cmd); err != nil {
		writeFaultError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers ticket routes
func (h *TicketHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/tickets", func(r chi.Router) {
		r.Get("/{id}", h.GetTicket)
		r.Post("/{id}/seat", h.ChangeSeat)
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
