package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/larek-store/internal/domain"
)

// ListProducts — отдать каталог из кэша.
type ListProducts struct {
	Cache domain.ProductCache
}

func (uc ListProducts) Execute() domain.ItemList {
	items := uc.Cache.List()
	return domain.ItemList{Total: len(items), Items: items}
}

// GetProduct — получить карточку товара из кэша по идентификатору.
type GetProduct struct {
	Cache domain.ProductCache
}

func (uc GetProduct) Execute(id string) (domain.ItemCard, bool) {
	return uc.Cache.Get(id)
}

// LoadCatalog — загрузить все товары из репозитория в кэш при старте.
type LoadCatalog struct {
	Repo  domain.ProductRepository
	Cache domain.ProductCache
}

func (uc LoadCatalog) Execute(ctx context.Context) error {
	return uc.Repo.LoadAll(ctx, func(id string, raw []byte) error {
		var item domain.ItemCard
		if err := json.Unmarshal(raw, &item); err != nil {
			// пропускаем битые записи, не прерывая полную загрузку
			return nil
		}
		uc.Cache.Set(id, item)
		return nil
	})
}

// PlaceOrder — принять заказ: проверить, сохранить, опубликовать.
type PlaceOrder struct {
	Store     domain.OrderStore
	Publisher domain.OrderPublisher
}

func (uc PlaceOrder) Execute(ctx context.Context, o domain.Order) (domain.OrderResult, error) {
	if len(o.Items) == 0 || o.Address == "" || o.Payment == "" || o.Email == "" || o.Phone == "" {
		return domain.OrderResult{}, domain.ErrValidation
	}

	result := domain.OrderResult{Order: o, ID: uuid.NewString()}
	raw, err := json.Marshal(result)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("marshal order: %w", err)
	}
	if err := uc.Store.Save(ctx, result.ID, raw); err != nil {
		return domain.OrderResult{}, fmt.Errorf("save order: %w", err)
	}
	if err := uc.Publisher.Publish(ctx, raw); err != nil {
		return domain.OrderResult{}, fmt.Errorf("publish order: %w", err)
	}
	return result, nil
}
