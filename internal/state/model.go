// Package state хранит состояние сеанса витрины: каталог, корзину,
// черновик заказа и ошибки валидации форм.
package state

import "github.com/example/larek-store/internal/events"

// Model — база наблюдаемого состояния: даёт держателю состояния
// возможность сообщать об изменениях через шину. Своих данных не несёт.
type Model struct {
	events *events.Bus
}

// NewModel привязывает модель к шине.
func NewModel(bus *events.Bus) Model {
	return Model{events: bus}
}

// EmitChanges сообщает подписчикам об изменении состояния.
func (m Model) EmitChanges(event string, payload any) {
	m.events.Emit(event, payload)
}
