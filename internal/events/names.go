package events

// Имена событий — контракт между состоянием, представлениями и запуском.
const (
	// Исходящие из состояния.
	EventItemsChanged         = "items:changed"
	EventBasketOpen           = "basket:open"
	EventPreviewChanged       = "preview:changed"
	EventOrderReady           = "order:ready"
	EventContactsReady        = "contacts:ready"
	EventPaymentErrorsChange  = "paymentformErrors:change"
	EventContactsErrorsChange = "contactsformErrors:change"

	// Входящие жесты интерфейса.
	EventCardSelect     = "card:select"
	EventItemAdd        = "item:add"
	EventItemRemove     = "item:remove"
	EventOrderClear     = "order:clear"
	EventPaymentSet     = "payment:set"
	EventOrderSubmit    = "order:submit"
	EventContactsSubmit = "contacts:submit"
)

// FormFieldPattern — шаблон событий изменения поля формы:
// order.<field>:change и contacts.<field>:change.
const FormFieldPattern = `(^order|^contacts)\..*:change`
