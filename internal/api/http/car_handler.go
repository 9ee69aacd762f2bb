package http

import (
	"net/http"

	"car-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

type CarHandler struct {
	carSvc service.CarService
}

func RegisterCarRoutes(router *mux.Router, carSvc service.CarService) {
	h := &CarHandler{carSvc: carSvc}
	router.HandleFunc("/cars", h.List).Methods(http.MethodGet)
	router.HandleFunc("/cars", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/cars/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/cars/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/cars/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.carSvc.ListCars(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.carSvc.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CarInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.carSvc.CreateCar(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.CarInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.carSvc.UpdateCar(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.carSvc.DeleteCar(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
