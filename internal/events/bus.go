// Package events реализует синхронную шину событий:
// именованные и шаблонные подписки, доставка в порядке регистрации.
package events

import (
	"reflect"
	"regexp"
	"sync"
)

// Handler обрабатывает одно событие.
type Handler func(payload any)

// AllHandler получает каждое событие шины вместе с его именем.
// Используется только для диагностики, не для бизнес-логики.
type AllHandler func(event string, payload any)

type subscription struct {
	name    string
	pattern *regexp.Regexp // nil для точного имени
	handler Handler
}

// Bus — шина событий. Не синглтон: каждый компонент получает
// ссылку через конструктор, тесты создают изолированные шины.
type Bus struct {
	mu   sync.Mutex
	subs []subscription
	all  []AllHandler
}

// NewBus создаёт пустую шину.
func NewBus() *Bus {
	return &Bus{}
}

// On регистрирует обработчик на точное имя события.
// Повторная регистрация той же пары даёт два независимых вызова.
func (b *Bus) On(name string, h Handler) {
	b.mu.Lock()
	b.subs = append(b.subs, subscription{name: name, handler: h})
	b.mu.Unlock()
}

// OnPattern регистрирует обработчик на семейство имён по регулярному выражению.
func (b *Bus) OnPattern(re *regexp.Regexp, h Handler) {
	b.mu.Lock()
	b.subs = append(b.subs, subscription{pattern: re, handler: h})
	b.mu.Unlock()
}

// OnAll регистрирует обработчик всех событий шины.
func (b *Bus) OnAll(h AllHandler) {
	b.mu.Lock()
	b.all = append(b.all, h)
	b.mu.Unlock()
}

// Off снимает одну пару (имя, обработчик); нет пары — ничего не делает.
func (b *Bus) Off(name string, h Handler) {
	ptr := reflect.ValueOf(h).Pointer()
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.pattern == nil && s.name == name && reflect.ValueOf(s.handler).Pointer() == ptr {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// OffPattern снимает одну пару (шаблон, обработчик) по самому объекту шаблона.
func (b *Bus) OffPattern(re *regexp.Regexp, h Handler) {
	ptr := reflect.ValueOf(h).Pointer()
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.pattern == re && reflect.ValueOf(s.handler).Pointer() == ptr {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Emit синхронно доставляет событие: сперва все точные совпадения в порядке
// регистрации, затем все совпавшие шаблоны, затем OnAll-обработчики.
// Каждый обработчик отрабатывает до конца (включая собственные Emit) прежде,
// чем получит управление следующий. Паника обработчика не перехватывается.
func (b *Bus) Emit(event string, payload any) {
	b.mu.Lock()
	var exact, matched []Handler
	for _, s := range b.subs {
		switch {
		case s.pattern == nil && s.name == event:
			exact = append(exact, s.handler)
		case s.pattern != nil && s.pattern.MatchString(event):
			matched = append(matched, s.handler)
		}
	}
	all := make([]AllHandler, len(b.all))
	copy(all, b.all)
	b.mu.Unlock()

	for _, h := range exact {
		h(payload)
	}
	for _, h := range matched {
		h(payload)
	}
	for _, h := range all {
		h(event, payload)
	}
}
