package state

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/larek-store/internal/domain"
	"github.com/example/larek-store/internal/events"
)

func intPtr(v int) *int { return &v }

func card(id string, price *int) domain.ItemCard {
	return domain.ItemCard{ID: id, Title: "Товар " + id, Price: price}
}

func newState() (*AppState, *events.Bus) {
	bus := events.NewBus()
	return NewAppState(bus), bus
}

func countEvents(bus *events.Bus, name string) *int {
	n := new(int)
	bus.On(name, func(payload any) { *n++ })
	return n
}

func TestAddItemToBasketIsIdempotent(t *testing.T) {
	s, bus := newState()
	a := card("a", intPtr(10))
	s.SetCatalog([]domain.ItemCard{a})
	changed := countEvents(bus, events.EventItemsChanged)

	s.AddItemToBasket(a)
	s.AddItemToBasket(a)

	assert.Equal(t, []string{"a"}, s.Basket, "duplicate add must be a no-op")
	assert.Equal(t, 1, *changed, "the no-op add must not emit")
}

func TestRemoveAbsentItemStillEmitsBothEvents(t *testing.T) {
	s, bus := newState()
	opened := countEvents(bus, events.EventBasketOpen)
	changed := countEvents(bus, events.EventItemsChanged)

	s.RemoveItemFromBasket(card("ghost", nil))

	assert.Empty(t, s.Basket)
	assert.Equal(t, 1, *opened)
	assert.Equal(t, 1, *changed)
}

func TestRemoveEmitsBasketOpenBeforeItemsChanged(t *testing.T) {
	s, bus := newState()
	a := card("a", intPtr(10))
	s.SetCatalog([]domain.ItemCard{a})
	s.AddItemToBasket(a)

	var order []string
	bus.On(events.EventBasketOpen, func(payload any) { order = append(order, "basket:open") })
	bus.On(events.EventItemsChanged, func(payload any) { order = append(order, "items:changed") })

	s.RemoveItemFromBasket(a)

	assert.Equal(t, []string{"basket:open", "items:changed"}, order)
	assert.Empty(t, s.Basket)
}

func TestGetBasketFollowsCatalogOrder(t *testing.T) {
	s, _ := newState()
	a, b, c := card("a", intPtr(10)), card("b", intPtr(25)), card("c", intPtr(5))
	s.SetCatalog([]domain.ItemCard{a, b, c})

	// Кладём в корзину в обратном порядке.
	s.AddItemToBasket(c)
	s.AddItemToBasket(a)

	got := s.GetBasket()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestGetTotal(t *testing.T) {
	s, _ := newState()
	a, b := card("a", intPtr(10)), card("b", intPtr(25))
	s.SetCatalog([]domain.ItemCard{a, b})
	s.AddItemToBasket(a)
	s.AddItemToBasket(b)

	assert.Equal(t, 35, s.GetTotal())
}

func TestGetTotalPanicsOnPricelessItem(t *testing.T) {
	s, _ := newState()
	free := card("free", nil)
	s.SetCatalog([]domain.ItemCard{free})
	s.AddItemToBasket(free)

	assert.Panics(t, func() { s.GetTotal() })
}

func TestSetPreviewEmitsItem(t *testing.T) {
	s, bus := newState()
	a := card("a", intPtr(10))
	var got any
	bus.On(events.EventPreviewChanged, func(payload any) { got = payload })

	s.SetPreview(a)

	assert.Equal(t, "a", s.Preview)
	assert.Equal(t, a, got)
}

func TestPaymentValidationRoundTrip(t *testing.T) {
	s, bus := newState()
	ready := countEvents(bus, events.EventOrderReady)
	var lastErrs domain.FormErrors
	bus.On(events.EventPaymentErrorsChange, func(payload any) {
		lastErrs = payload.(domain.FormErrors)
	})

	s.SetOrderField(domain.FieldAddress, "Невский проспект, 1")
	assert.Zero(t, *ready, "order:ready must not fire while payment method is unset")
	// Сообщение про способ оплаты хранится под ключом address.
	assert.Equal(t, "Необходимо выбрать способ оплаты", lastErrs[domain.FieldAddress])

	s.SetOrderField(domain.FieldPayment, "online")
	assert.Equal(t, 1, *ready, "order:ready fires exactly once when the section turns valid")
	assert.Empty(t, lastErrs)
	assert.Empty(t, s.PaymentErrors())

	s.SetOrderField(domain.FieldAddress, "")
	assert.Equal(t, 1, *ready)
	assert.Contains(t, lastErrs, domain.FieldAddress)
	assert.Equal(t, "Необходимо указать адрес", lastErrs[domain.FieldAddress])
}

func TestContactsValidationChecksBothFields(t *testing.T) {
	s, bus := newState()
	ready := countEvents(bus, events.EventContactsReady)
	var lastErrs domain.FormErrors
	bus.On(events.EventContactsErrorsChange, func(payload any) {
		lastErrs = payload.(domain.FormErrors)
	})

	s.SetOrderField(domain.FieldEmail, "")
	require.Len(t, lastErrs, 2, "empty email and phone are reported together")
	assert.Contains(t, lastErrs, domain.FieldEmail)
	assert.Contains(t, lastErrs, domain.FieldPhone)

	s.SetOrderField(domain.FieldEmail, "user@example.com")
	s.SetOrderField(domain.FieldPhone, "+7 900 000-00-00")
	assert.Equal(t, 1, *ready)
	assert.Empty(t, lastErrs)
}

func TestValidationSectionsAreIndependent(t *testing.T) {
	s, bus := newState()
	paymentEmits := countEvents(bus, events.EventPaymentErrorsChange)
	contactsEmits := countEvents(bus, events.EventContactsErrorsChange)

	s.SetOrderField(domain.FieldAddress, "адрес")
	assert.Equal(t, 1, *paymentEmits)
	assert.Zero(t, *contactsEmits, "writing address must not run the contacts check")
	assert.Empty(t, s.ContactsErrors())

	before := s.PaymentErrors()
	s.SetOrderField(domain.FieldEmail, "user@example.com")
	assert.Equal(t, 1, *paymentEmits, "writing email must not run the payment check")
	assert.Equal(t, before, s.PaymentErrors())
}

func TestClearOrderKeepsBasket(t *testing.T) {
	s, _ := newState()
	a := card("a", intPtr(10))
	s.SetCatalog([]domain.ItemCard{a})
	s.AddItemToBasket(a)
	s.SetOrderField(domain.FieldAddress, "адрес")
	s.SetOrderField(domain.FieldPayment, "online")
	s.SetOrderField(domain.FieldEmail, "user@example.com")
	s.SetOrderField(domain.FieldPhone, "+7 900 000-00-00")

	s.ClearOrder()
	assert.Equal(t, domain.Order{}, s.Order)
	assert.Equal(t, []string{"a"}, s.Basket, "ClearOrder must not touch the basket")

	s.ClearBasket()
	assert.Empty(t, s.Basket)
	assert.Zero(t, s.GetTotal())
}

func TestCatalogReplacementDoesNotPruneBasket(t *testing.T) {
	s, _ := newState()
	a, b, c := card("a", intPtr(10)), card("b", intPtr(25)), card("c", intPtr(5))
	s.SetCatalog([]domain.ItemCard{a, b})
	s.AddItemToBasket(a)

	s.SetCatalog([]domain.ItemCard{c})

	// Идентификатор остаётся в корзине, но карточки для него больше нет.
	assert.Equal(t, []string{"a"}, s.Basket)
	assert.Empty(t, s.GetBasket())
}

func TestFieldChangeEventsFunnelIntoSetOrderField(t *testing.T) {
	s, bus := newState()
	type fieldChange struct {
		Field string
		Value string
	}
	bus.OnPattern(regexp.MustCompile(events.FormFieldPattern), func(payload any) {
		fc := payload.(fieldChange)
		field, err := domain.ParseOrderField(fc.Field)
		require.NoError(t, err)
		s.SetOrderField(field, fc.Value)
	})

	bus.Emit("order.address:change", fieldChange{Field: "address", Value: "адрес"})
	bus.Emit("contacts.email:change", fieldChange{Field: "email", Value: "user@example.com"})

	assert.Equal(t, "адрес", s.Order.Address)
	assert.Equal(t, "user@example.com", s.Order.Email)
}
