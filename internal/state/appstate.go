package state

import (
	"slices"

	"github.com/example/larek-store/internal/domain"
	"github.com/example/larek-store/internal/events"
)

// ItemsChange — полезная нагрузка события items:changed.
// Заполняется только изменившаяся часть.
type ItemsChange struct {
	Catalog []domain.ItemCard `json:"catalog,omitempty"`
	Basket  []string          `json:"basket,omitempty"`
}

// BasketChange — полезная нагрузка события basket:open.
type BasketChange struct {
	Basket []string `json:"basket"`
}

// AppState — состояние сеанса. Один экземпляр на весь сеанс;
// мутируется только собственными методами.
type AppState struct {
	Model

	Catalog []domain.ItemCard
	Basket  []string // идентификаторы товаров, порядок добавления, без повторов
	Order   domain.Order
	Preview string // идентификатор открытого товара, "" — ничего не открыто

	paymentErrors  domain.FormErrors
	contactsErrors domain.FormErrors
}

// NewAppState создаёт пустое состояние, привязанное к шине.
func NewAppState(bus *events.Bus) *AppState {
	return &AppState{
		Model:          NewModel(bus),
		paymentErrors:  domain.FormErrors{},
		contactsErrors: domain.FormErrors{},
	}
}

// SetCatalog целиком заменяет каталог.
// Корзина при этом не чистится: идентификаторы, которых больше нет
// в каталоге, просто перестают попадать в GetBasket.
func (s *AppState) SetCatalog(items []domain.ItemCard) {
	s.Catalog = slices.Clone(items)
	s.EmitChanges(events.EventItemsChanged, ItemsChange{Catalog: s.Catalog})
}

// AddItemToBasket кладёт товар в корзину; повторное добавление — no-op.
func (s *AppState) AddItemToBasket(item domain.ItemCard) {
	if slices.Contains(s.Basket, item.ID) {
		return
	}
	s.Basket = append(s.Basket, item.ID)
	s.EmitChanges(events.EventItemsChanged, ItemsChange{Basket: s.Basket})
}

// RemoveItemFromBasket убирает товар из корзины, если он там есть.
// Оба события уходят в любом случае: basket:open перерисовывает корзину,
// items:changed — общий сигнал пересчёта.
func (s *AppState) RemoveItemFromBasket(item domain.ItemCard) {
	if i := slices.Index(s.Basket, item.ID); i >= 0 {
		s.Basket = slices.Delete(s.Basket, i, i+1)
	}
	s.EmitChanges(events.EventBasketOpen, BasketChange{Basket: s.Basket})
	s.EmitChanges(events.EventItemsChanged, ItemsChange{Basket: s.Basket})
}

// ClearBasket опустошает корзину.
func (s *AppState) ClearBasket() {
	s.Basket = nil
	s.EmitChanges(events.EventItemsChanged, ItemsChange{Basket: s.Basket})
}

// GetBasket возвращает карточки товаров из корзины в порядке каталога.
func (s *AppState) GetBasket() []domain.ItemCard {
	var out []domain.ItemCard
	for _, item := range s.Catalog {
		if slices.Contains(s.Basket, item.ID) {
			out = append(out, item)
		}
	}
	return out
}

// GetTotal суммирует цены товаров корзины. Вызывающий обязан
// гарантировать, что все товары корзины продаются (Price != nil):
// непродаваемый товар в корзине — ошибка программиста, будет паника.
func (s *AppState) GetTotal() int {
	total := 0
	for _, item := range s.GetBasket() {
		total += *item.Price
	}
	return total
}

// SetPreview открывает карточку товара.
func (s *AppState) SetPreview(item domain.ItemCard) {
	s.Preview = item.ID
	s.EmitChanges(events.EventPreviewChanged, item)
}

// SetOrderField записывает поле черновика и перепроверяет ровно одну
// секцию формы — ту, к которой поле относится. Секции полностью
// независимы: запись адреса или способа оплаты не трогает ошибки
// контактов, и наоборот.
func (s *AppState) SetOrderField(field domain.OrderField, value string) {
	s.Order.Set(field, value)

	if s.validatePayment(field) {
		s.EmitChanges(events.EventOrderReady, s.Order)
	}
	if s.validateContacts(field) {
		s.EmitChanges(events.EventContactsReady, s.Order)
	}
}

// PaymentErrors — текущие ошибки секции оплаты.
func (s *AppState) PaymentErrors() domain.FormErrors { return s.paymentErrors }

// ContactsErrors — текущие ошибки секции контактов.
func (s *AppState) ContactsErrors() domain.FormErrors { return s.contactsErrors }

// ClearOrder сбрасывает черновик заказа. Корзину не трогает:
// полный сброс — это ClearOrder + ClearBasket.
func (s *AppState) ClearOrder() {
	s.Order = domain.Order{}
}

func (s *AppState) validatePayment(field domain.OrderField) bool {
	if field == domain.FieldEmail || field == domain.FieldPhone {
		return false
	}
	errs := domain.FormErrors{}
	if s.Order.Address == "" {
		errs[domain.FieldAddress] = "Необходимо указать адрес"
	} else if s.Order.Payment == "" {
		// Сообщение про способ оплаты лежит под ключом address —
		// унаследованная особенность контракта, представления на неё
		// завязаны.
		errs[domain.FieldAddress] = "Необходимо выбрать способ оплаты"
	}
	s.paymentErrors = errs
	s.EmitChanges(events.EventPaymentErrorsChange, errs)
	return len(errs) == 0
}

func (s *AppState) validateContacts(field domain.OrderField) bool {
	if field == domain.FieldAddress || field == domain.FieldPayment {
		return false
	}
	errs := domain.FormErrors{}
	if s.Order.Email == "" {
		errs[domain.FieldEmail] = "Необходимо указать email"
	}
	if s.Order.Phone == "" {
		errs[domain.FieldPhone] = "Необходимо указать телефон"
	}
	s.contactsErrors = errs
	s.EmitChanges(events.EventContactsErrorsChange, errs)
	return len(errs) == 0
}
