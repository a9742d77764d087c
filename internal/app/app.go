// Package app собирает сеанс витрины: шину, состояние, представления
// и клиент магазина — и разводит события между ними.
package app

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/example/larek-store/internal/domain"
	"github.com/example/larek-store/internal/events"
	"github.com/example/larek-store/internal/state"
	"github.com/example/larek-store/internal/view"
)

// ShopAPI — всё, что сеансу нужно от магазина.
type ShopAPI interface {
	domain.CatalogSource
	domain.OrderGateway
}

// FieldChange — полезная нагрузка событий order.<field>:change
// и contacts.<field>:change.
type FieldChange struct {
	Field domain.OrderField `json:"field"`
	Value string            `json:"value"`
}

// PaymentSelection — полезная нагрузка события payment:set.
type PaymentSelection struct {
	PaymentMethod string `json:"paymentMethod"`
}

// App — один сеанс витрины: единственный экземпляр состояния на всё
// время жизни процесса. Мьютекс сериализует мутирующие операции,
// сохраняя однопоточную модель доставки событий: каждая цепочка
// Emit отрабатывает целиком прежде, чем начнётся следующая.
type App struct {
	mu sync.Mutex

	Bus   *events.Bus
	State *state.AppState
	Shop  ShopAPI

	Catalog      *view.CatalogView
	Preview      *view.PreviewView
	Basket       *view.BasketView
	PaymentForm  *view.FormView
	ContactsForm *view.FormView
	Success      *view.SuccessView

	log *zap.Logger
}

// New собирает сеанс и регистрирует все обработчики событий.
func New(bus *events.Bus, shop ShopAPI, log *zap.Logger) *App {
	a := &App{
		Bus:   bus,
		State: state.NewAppState(bus),
		Shop:  shop,
		log:   log,
	}
	a.Catalog = view.NewCatalogView(bus, a.State)
	a.Preview = view.NewPreviewView(bus, a.State)
	a.Basket = view.NewBasketView(bus, a.State)
	a.PaymentForm = view.NewFormView(bus, events.EventPaymentErrorsChange)
	a.ContactsForm = view.NewFormView(bus, events.EventContactsErrorsChange)
	a.Success = view.NewSuccessView()

	// Диагностика: каждое событие шины уходит в журнал.
	bus.OnAll(func(event string, payload any) {
		log.Debug("событие", zap.String("event", event), zap.Any("data", payload))
	})

	bus.On(events.EventCardSelect, func(payload any) {
		a.State.SetPreview(payload.(domain.ItemCard))
	})
	bus.On(events.EventItemAdd, func(payload any) {
		a.State.AddItemToBasket(payload.(domain.ItemCard))
	})
	bus.On(events.EventItemRemove, func(payload any) {
		a.State.RemoveItemFromBasket(payload.(domain.ItemCard))
	})
	bus.On(events.EventOrderClear, func(payload any) {
		a.State.ClearBasket()
		a.State.ClearOrder()
	})
	bus.On(events.EventPaymentSet, func(payload any) {
		sel := payload.(PaymentSelection)
		a.State.SetOrderField(domain.FieldPayment, normalizePayment(sel.PaymentMethod))
	})
	bus.OnPattern(regexp.MustCompile(events.FormFieldPattern), func(payload any) {
		fc := payload.(FieldChange)
		a.State.SetOrderField(fc.Field, fc.Value)
	})

	return a
}

// normalizePayment приводит выбор способа оплаты к хранимому значению:
// наличные — offline, всё остальное — online.
func normalizePayment(method string) string {
	if method == "cash" {
		return "offline"
	}
	return "online"
}

// LoadCatalog получает карточки с сервера и заменяет каталог целиком.
func (a *App) LoadCatalog(ctx context.Context) error {
	items, err := a.Shop.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.State.SetCatalog(items)
	return nil
}

// SelectCard открывает карточку товара из каталога.
func (a *App) SelectCard(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.findInCatalog(id)
	if !ok {
		return domain.ErrNotFound
	}
	a.Bus.Emit(events.EventCardSelect, item)
	return nil
}

// AddItem кладёт товар в корзину. Товар без цены не продаётся.
func (a *App) AddItem(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.findInCatalog(id)
	if !ok {
		return domain.ErrNotFound
	}
	if item.Price == nil {
		return fmt.Errorf("%w: item %s is not for sale", domain.ErrValidation, id)
	}
	a.Bus.Emit(events.EventItemAdd, item)
	return nil
}

// RemoveItem убирает товар из корзины. Для неизвестного идентификатора
// удаление остаётся no-op по состоянию, но события перерисовки уходят.
func (a *App) RemoveItem(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.findInCatalog(id)
	if !ok {
		item = domain.ItemCard{ID: id}
	}
	a.Bus.Emit(events.EventItemRemove, item)
}

// OpenBasket сообщает представлениям, что корзина открыта.
func (a *App) OpenBasket() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Bus.Emit(events.EventBasketOpen, state.BasketChange{Basket: a.State.Basket})
}

// SetFormField проводит изменение поля формы через шину: событие
// семейства order.<field>:change / contacts.<field>:change ловится
// шаблонной подпиской и попадает в SetOrderField.
func (a *App) SetFormField(field domain.OrderField, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	section := "order"
	if field == domain.FieldEmail || field == domain.FieldPhone {
		section = "contacts"
	}
	a.Bus.Emit(fmt.Sprintf("%s.%s:change", section, field), FieldChange{Field: field, Value: value})
}

// SetPayment проводит выбор способа оплаты через событие payment:set.
func (a *App) SetPayment(method string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Bus.Emit(events.EventPaymentSet, PaymentSelection{PaymentMethod: method})
}

// SubmitOrder отправляет заказ в магазин. При успехе показывает экран
// успеха и сбрасывает корзину вместе с черновиком.
func (a *App) SubmitOrder(ctx context.Context) (domain.OrderResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Bus.Emit(events.EventContactsSubmit, nil)

	items := a.State.GetBasket()
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	order := a.State.Order
	order.Items = ids
	order.Total = a.State.GetTotal()

	result, err := a.Shop.CreateOrder(ctx, order)
	if err != nil {
		a.log.Error("оформление заказа", zap.Error(err))
		return domain.OrderResult{}, err
	}

	a.Success.Show(result)
	a.State.ClearBasket()
	a.State.ClearOrder()
	return result, nil
}

// ResetOrder сбрасывает корзину и черновик по явному жесту пользователя.
func (a *App) ResetOrder() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Bus.Emit(events.EventOrderClear, nil)
}

func (a *App) findInCatalog(id string) (domain.ItemCard, bool) {
	for _, item := range a.State.Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return domain.ItemCard{}, false
}
