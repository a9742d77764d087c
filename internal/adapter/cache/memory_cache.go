package cache

import (
	"sync"

	"github.com/example/larek-store/internal/domain"
)

// MemoryProductCache держит каталог в памяти, сохраняя порядок загрузки.
type MemoryProductCache struct {
	mu    sync.RWMutex
	order []string
	store map[string]domain.ItemCard
}

func NewMemoryProductCache() *MemoryProductCache {
	return &MemoryProductCache{store: make(map[string]domain.ItemCard)}
}

func (c *MemoryProductCache) Get(id string) (domain.ItemCard, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.store[id]
	return item, ok
}

func (c *MemoryProductCache) Set(id string, item domain.ItemCard) {
	c.mu.Lock()
	if _, ok := c.store[id]; !ok {
		c.order = append(c.order, id)
	}
	c.store[id] = item
	c.mu.Unlock()
}

// List возвращает карточки в порядке их первой загрузки.
func (c *MemoryProductCache) List() []domain.ItemCard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.ItemCard, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.store[id])
	}
	return out
}
