package http

import (
	"net/http"

	"car-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userSvc service.UserService
}

func RegisterUserRoutes(router *mux.Router, userSvc service.UserService) {
	h := &UserHandler{userSvc: userSvc}
	router.HandleFunc("/users", h.List).Methods(http.MethodGet)
	router.HandleFunc("/users", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/users/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.userSvc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.UserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.userSvc.CreateUser(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.UserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.userSvc.UpdateUser(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.userSvc.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
