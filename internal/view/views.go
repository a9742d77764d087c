// Package view — представления витрины. Каждое подписывается на шину
// при создании и держит последнее отрисованное состояние; HTTP-слой
// отдаёт готовые снимки.
package view

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/example/larek-store/internal/domain"
	"github.com/example/larek-store/internal/events"
	"github.com/example/larek-store/internal/state"
)

// FormatPrice — отображение цены карточки: nil продаже не подлежит.
func FormatPrice(price *int) string {
	if price == nil {
		return "Бесценно"
	}
	return fmt.Sprintf("%d синапсов", *price)
}

// Card — карточка товара в том виде, в котором её показывает витрина.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	// Unavailable — кнопка «купить» выключена: товар без цены
	// или уже в корзине.
	Unavailable bool `json:"unavailable"`
}

// CatalogView — сетка каталога и счётчик корзины.
type CatalogView struct {
	mu      sync.RWMutex
	app     *state.AppState
	cards   []Card
	counter int
}

func NewCatalogView(bus *events.Bus, app *state.AppState) *CatalogView {
	v := &CatalogView{app: app}
	bus.On(events.EventItemsChanged, func(payload any) { v.render() })
	return v
}

func (v *CatalogView) render() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cards = v.cards[:0]
	for _, item := range v.app.Catalog {
		v.cards = append(v.cards, Card{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Image:       item.Image,
			Category:    item.Category,
			Price:       FormatPrice(item.Price),
		})
	}
	v.counter = len(v.app.GetBasket())
}

// Snapshot возвращает карточки и счётчик корзины.
func (v *CatalogView) Snapshot() ([]Card, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.cards), v.counter
}

// PreviewView — открытая карточка товара.
type PreviewView struct {
	mu   sync.RWMutex
	app  *state.AppState
	card *Card
}

func NewPreviewView(bus *events.Bus, app *state.AppState) *PreviewView {
	v := &PreviewView{app: app}
	bus.On(events.EventPreviewChanged, func(payload any) {
		item := payload.(domain.ItemCard)
		v.mu.Lock()
		v.card = &Card{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Image:       item.Image,
			Category:    item.Category,
			Price:       FormatPrice(item.Price),
			Unavailable: item.Price == nil || slices.Contains(app.Basket, item.ID),
		}
		v.mu.Unlock()
	})
	return v
}

// Snapshot возвращает открытую карточку, nil — ничего не открыто.
func (v *PreviewView) Snapshot() *Card {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.card == nil {
		return nil
	}
	c := *v.card
	return &c
}

// Row — строка корзины.
type Row struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// BasketView — содержимое корзины с итогом.
type BasketView struct {
	mu    sync.RWMutex
	app   *state.AppState
	rows  []Row
	total int
}

func NewBasketView(bus *events.Bus, app *state.AppState) *BasketView {
	v := &BasketView{app: app}
	render := func(payload any) { v.render() }
	bus.On(events.EventBasketOpen, render)
	bus.On(events.EventItemsChanged, render)
	return v
}

func (v *BasketView) render() {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := v.app.GetBasket()
	v.rows = v.rows[:0]
	for i, item := range items {
		v.rows = append(v.rows, Row{Index: i + 1, ID: item.ID, Title: item.Title, Price: FormatPrice(item.Price)})
	}
	v.total = v.app.GetTotal()
}

// Snapshot возвращает строки корзины и итоговую сумму.
func (v *BasketView) Snapshot() ([]Row, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.rows), v.total
}

// FormView — состояние валидации одной секции формы:
// признак валидности и склеенные сообщения об ошибках.
type FormView struct {
	mu     sync.RWMutex
	valid  bool
	errors string
}

// NewFormView подписывает представление на событие ошибок своей секции.
func NewFormView(bus *events.Bus, errorsEvent string) *FormView {
	v := &FormView{}
	bus.On(errorsEvent, func(payload any) {
		errs := payload.(domain.FormErrors)
		msgs := make([]string, 0, len(errs))
		for _, f := range []domain.OrderField{domain.FieldPayment, domain.FieldAddress, domain.FieldEmail, domain.FieldPhone} {
			if msg, ok := errs[f]; ok {
				msgs = append(msgs, msg)
			}
		}
		v.mu.Lock()
		v.valid = len(errs) == 0
		v.errors = strings.Join(msgs, "; ")
		v.mu.Unlock()
	})
	return v
}

// Snapshot возвращает признак валидности и строку ошибок.
func (v *FormView) Snapshot() (bool, string) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.valid, v.errors
}

// SuccessView — экран успешного оформления заказа.
type SuccessView struct {
	mu          sync.RWMutex
	shown       bool
	title       string
	description string
}

func NewSuccessView() *SuccessView {
	return &SuccessView{}
}

// Show заполняет экран по результату заказа.
func (v *SuccessView) Show(result domain.OrderResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shown = true
	v.title = "Заказ оформлен"
	if result.Error != "" {
		v.description = result.Error
		return
	}
	v.description = fmt.Sprintf("Списано %d синапсов", result.Total)
}

// Snapshot возвращает заголовок и описание; shown=false — заказа ещё не было.
func (v *SuccessView) Snapshot() (shown bool, title, description string) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.shown, v.title, v.description
}
