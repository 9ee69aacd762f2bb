package http

import (
	"net/http"

	"car-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

// RentalHandler serves the rental booking endpoints.
type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func RegisterRentalRoutes(router *mux.Router, rentalSvc service.RentalService) {
	h := NewRentalHandler(rentalSvc)
	router.HandleFunc("/rentals", h.List).Methods(http.MethodGet)
	router.HandleFunc("/rentals", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/rentals/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/rentals/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/rentals/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalSvc.ListRentals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.RentalInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.CreateRental(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.RentalInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.UpdateRental(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.rentalSvc.DeleteRental(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
