package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/example/larek-store/internal/app"
	"github.com/example/larek-store/internal/domain"
	"github.com/example/larek-store/internal/view"
)

// StorefrontServer — API сеанса витрины: жесты интерфейса переводятся
// в события шины, ответы собираются из снимков представлений.
type StorefrontServer struct {
	Router *mux.Router
	App    *app.App
	Log    *zap.Logger
}

func NewStorefrontServer(a *app.App, log *zap.Logger) *StorefrontServer {
	s := &StorefrontServer{Router: mux.NewRouter(), App: a, Log: log}
	r := s.Router
	r.HandleFunc("/api/catalog", s.handleCatalog).Methods(http.MethodGet)
	r.HandleFunc("/api/product/{id}", s.handlePreview).Methods(http.MethodGet)
	r.HandleFunc("/api/basket", s.handleBasket).Methods(http.MethodGet)
	r.HandleFunc("/api/basket/items/{id}", s.handleAdd).Methods(http.MethodPost)
	r.HandleFunc("/api/basket/items/{id}", s.handleRemove).Methods(http.MethodDelete)
	r.HandleFunc("/api/order/fields", s.handleField).Methods(http.MethodPost)
	r.HandleFunc("/api/order/payment", s.handlePayment).Methods(http.MethodPost)
	r.HandleFunc("/api/order/submit", s.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc("/api/order/reset", s.handleReset).Methods(http.MethodPost)
	return s
}

type catalogResponse struct {
	Items   []view.Card `json:"items"`
	Counter int         `json:"counter"`
}

func (s *StorefrontServer) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cards, counter := s.App.Catalog.Snapshot()
	writeJSON(w, http.StatusOK, catalogResponse{Items: cards, Counter: counter})
}

func (s *StorefrontServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	if err := s.App.SelectCard(mux.Vars(r)["id"]); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.App.Preview.Snapshot())
}

type basketResponse struct {
	Items []view.Row `json:"items"`
	Total int        `json:"total"`
}

func (s *StorefrontServer) handleBasket(w http.ResponseWriter, r *http.Request) {
	s.App.OpenBasket()
	rows, total := s.App.Basket.Snapshot()
	writeJSON(w, http.StatusOK, basketResponse{Items: rows, Total: total})
}

func (s *StorefrontServer) handleAdd(w http.ResponseWriter, r *http.Request) {
	err := s.App.AddItem(mux.Vars(r)["id"])
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *StorefrontServer) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.App.RemoveItem(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

type formState struct {
	Valid  bool   `json:"valid"`
	Errors string `json:"errors"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *StorefrontServer) handleField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	field, err := domain.ParseOrderField(req.Field)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.App.SetFormField(field, req.Value)

	form := s.App.PaymentForm
	if field == domain.FieldEmail || field == domain.FieldPhone {
		form = s.App.ContactsForm
	}
	valid, msgs := form.Snapshot()
	writeJSON(w, http.StatusOK, formState{Valid: valid, Errors: msgs})
}

type paymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (s *StorefrontServer) handlePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.App.SetPayment(req.PaymentMethod)
	valid, msgs := s.App.PaymentForm.Snapshot()
	writeJSON(w, http.StatusOK, formState{Valid: valid, Errors: msgs})
}

type successResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *StorefrontServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if _, err := s.App.SubmitOrder(r.Context()); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.Log.Error("отправка заказа", zap.Error(err))
		http.Error(w, "shop unavailable", http.StatusBadGateway)
		return
	}
	_, title, description := s.App.Success.Snapshot()
	writeJSON(w, http.StatusOK, successResponse{Title: title, Description: description})
}

func (s *StorefrontServer) handleReset(w http.ResponseWriter, r *http.Request) {
	s.App.ResetOrder()
	w.WriteHeader(http.StatusNoContent)
}
