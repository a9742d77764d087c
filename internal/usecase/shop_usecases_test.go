package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/example/larek-store/internal/adapter/cache"
	"github.com/example/larek-store/internal/domain"
)

type stubRepo struct {
	rows map[string][]byte
}

func (r stubRepo) Upsert(ctx context.Context, id string, raw []byte) error {
	r.rows[id] = raw
	return nil
}

func (r stubRepo) LoadAll(ctx context.Context, fn func(id string, raw []byte) error) error {
	for id, raw := range r.rows {
		if err := fn(id, raw); err != nil {
			return err
		}
	}
	return nil
}

func TestLoadCatalogSkipsCorruptedRows(t *testing.T) {
	price := 750
	good, _ := json.Marshal(domain.ItemCard{ID: "a", Title: "Фреймворк", Price: &price})
	repo := stubRepo{rows: map[string][]byte{
		"a":      good,
		"broken": []byte("{not json"),
	}}
	productCache := cache.NewMemoryProductCache()

	uc := LoadCatalog{Repo: repo, Cache: productCache}
	if err := uc.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, ok := productCache.Get("a"); !ok {
		t.Error("valid row must be loaded into the cache")
	}
	if _, ok := productCache.Get("broken"); ok {
		t.Error("corrupted row must be skipped")
	}
}

type failingStore struct{}

func (failingStore) Save(ctx context.Context, id string, raw []byte) error {
	return errors.New("db down")
}

type noopPublisher struct{ calls int }

func (p *noopPublisher) Publish(ctx context.Context, raw []byte) error {
	p.calls++
	return nil
}

func TestPlaceOrderValidation(t *testing.T) {
	pub := &noopPublisher{}
	uc := PlaceOrder{Store: failingStore{}, Publisher: pub}

	tests := []struct {
		name  string
		order domain.Order
	}{
		{"no items", domain.Order{Payment: "online", Address: "a", Email: "e", Phone: "p"}},
		{"no address", domain.Order{Payment: "online", Email: "e", Phone: "p", Items: []string{"x"}}},
		{"no payment", domain.Order{Address: "a", Email: "e", Phone: "p", Items: []string{"x"}}},
		{"no email", domain.Order{Payment: "online", Address: "a", Phone: "p", Items: []string{"x"}}},
		{"no phone", domain.Order{Payment: "online", Address: "a", Email: "e", Items: []string{"x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.order)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
	if pub.calls != 0 {
		t.Errorf("invalid orders must not be published, got %d publications", pub.calls)
	}
}

func TestPlaceOrderStoreFailure(t *testing.T) {
	pub := &noopPublisher{}
	uc := PlaceOrder{Store: failingStore{}, Publisher: pub}

	_, err := uc.Execute(context.Background(), domain.Order{
		Payment: "online", Address: "a", Email: "e", Phone: "p", Items: []string{"x"},
	})
	if err == nil {
		t.Fatal("expected store error")
	}
	if pub.calls != 0 {
		t.Error("order must not be published when persistence fails")
	}
}
