package domain

import "context"

// CatalogSource — порт получения каталога из магазина.
type CatalogSource interface {
	GetProducts(ctx context.Context) ([]ItemCard, error)
	GetProduct(ctx context.Context, id string) (ItemCard, error)
}

// OrderGateway — порт отправки оформленного заказа в магазин.
type OrderGateway interface {
	CreateOrder(ctx context.Context, o Order) (OrderResult, error)
}

// ProductRepository — порт персистентности товаров (сторона магазина).
type ProductRepository interface {
	Upsert(ctx context.Context, id string, raw []byte) error
	LoadAll(ctx context.Context, fn func(id string, raw []byte) error) error
}

// ProductCache — порт быстрого доступа к каталогу (кэш магазина).
type ProductCache interface {
	Get(id string) (ItemCard, bool)
	Set(id string, item ItemCard)
	List() []ItemCard
}

// OrderStore — порт персистентности принятых заказов (сторона магазина).
type OrderStore interface {
	Save(ctx context.Context, id string, raw []byte) error
}

// OrderPublisher — порт публикации принятого заказа во внешнюю шину.
type OrderPublisher interface {
	Publish(ctx context.Context, raw []byte) error
}

// Общие доменные ошибки
var (
	ErrNotFound   = notFoundError("not found")
	ErrValidation = validationError("invalid data")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }
