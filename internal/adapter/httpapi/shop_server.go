// Package httpapi — HTTP-поверхности магазина и витрины.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/example/larek-store/internal/domain"
	"github.com/example/larek-store/internal/usecase"
)

// ShopServer — API магазина: каталог и приём заказов.
type ShopServer struct {
	Router  *mux.Router
	UCList  usecase.ListProducts
	UCGet   usecase.GetProduct
	UCPlace usecase.PlaceOrder
	Log     *zap.Logger
}

func NewShopServer(list usecase.ListProducts, get usecase.GetProduct, place usecase.PlaceOrder, log *zap.Logger) *ShopServer {
	s := &ShopServer{Router: mux.NewRouter(), UCList: list, UCGet: get, UCPlace: place, Log: log}
	s.Router.HandleFunc("/api/product/", s.handleList).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/product/{id}", s.handleGet).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/order", s.handleOrder).Methods(http.MethodPost)
	return s
}

func (s *ShopServer) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.UCList.Execute())
}

func (s *ShopServer) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, ok := s.UCGet.Execute(id)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *ShopServer) handleOrder(w http.ResponseWriter, r *http.Request) {
	var o domain.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	result, err := s.UCPlace.Execute(r.Context(), o)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.Log.Error("приём заказа", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
