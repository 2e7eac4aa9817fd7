package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/airline/reservation-system/flight-service/application"
	"github.com/airline/reservation-system/shared/faults"
)

// FlightHandlers contains flight HTTP handlers
type FlightHandlers struct {
	getFlight     *application.GetFlight
	searchFlights *application.SearchFlights
}

// NewFlightHandlers creates new flight handlers
func NewFlightHandlers(getFlight *application.GetFlight, searchFlights *application.SearchFlights) *FlightHandlers {
	return &FlightHandlers{
		getFlight:     getFlight,
		searchFlights: searchFlights,
	}
}

// GetFlight handles flight retrieval requests
func (h *FlightHandlers) GetFlight(w http.ResponseWriter, r *http.Request) {
	query := &application.GetFlightQuery{
		FlightID: chi.URLParam(r, "id"),
	}

	response, err := h.getFlight.Execute(r.Context(), query)
	if err != nil {
		writeFaultError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// SearchFlights handles route search requests
func (h *FlightHandlers) SearchFlights(w http.ResponseWriter, r *http.Request) {
	query := &application.SearchFlightsQuery{
		Departure: r.URL.Query().Get("from"),
		Arrival:   r.URL.Query().Get("to"),
	}

	response, err := h.searchFlights.Execute(r.Context(), query)
	if err != nil {
		writeFaultError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers flight routes
func (h *FlightHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/flights", func(r chi.Router) {
		r.Get("/", h.SearchFlights)
		r.Get("/{id}", h.GetFlight)
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
