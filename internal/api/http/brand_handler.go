package http

import (
	"net/http"

	"car-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

// Brands and car features are read-only reference data.

type BrandHandler struct {
	brandSvc service.BrandService
}

func RegisterBrandRoutes(router *mux.Router, brandSvc service.BrandService) {
	h := &BrandHandler{brandSvc: brandSvc}
	router.HandleFunc("/brands", h.List).Methods(http.MethodGet)
	router.HandleFunc("/brands/{id}", h.Get).Methods(http.MethodGet)
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brandSvc.ListBrands(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	brand, err := h.brandSvc.GetBrand(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

type CarFeatureHandler struct {
	featureSvc service.CarFeatureService
}

func RegisterCarFeatureRoutes(router *mux.Router, featureSvc service.CarFeatureService) {
	h := &CarFeatureHandler{featureSvc: featureSvc}
	router.HandleFunc("/car-features", h.List).Methods(http.MethodGet)
	router.HandleFunc("/car-features/{id}", h.Get).Methods(http.MethodGet)
}

func (h *CarFeatureHandler) List(w http.ResponseWriter, r *http.Request) {
	features, err := h.featureSvc.ListCarFeatures(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, features)
}

func (h *CarFeatureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	feature, err := h.featureSvc.GetCarFeature(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feature)
}
