// Package shopapi — HTTP-клиент магазина: каталог и оформление заказа.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/larek-store/internal/domain"
)

// Client ходит в API магазина. CDN подставляется в адреса картинок.
type Client struct {
	BaseURL string
	CDN     string
	HTTP    *http.Client
}

// New создаёт клиент с разумным таймаутом.
func New(baseURL, cdn string) *Client {
	return &Client{
		BaseURL: baseURL,
		CDN:     cdn,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetProducts загружает каталог целиком.
func (c *Client) GetProducts(ctx context.Context) ([]domain.ItemCard, error) {
	var list domain.ItemList
	if err := c.getJSON(ctx, "/api/product/", &list); err != nil {
		return nil, err
	}
	items := make([]domain.ItemCard, len(list.Items))
	for i, item := range list.Items {
		item.Image = c.CDN + item.Image
		items[i] = item
	}
	return items, nil
}

// GetProduct загружает одну карточку товара.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.ItemCard, error) {
	var item domain.ItemCard
	if err := c.getJSON(ctx, "/api/product/"+id, &item); err != nil {
		return domain.ItemCard{}, err
	}
	item.Image = c.CDN + item.Image
	return item, nil
}

// CreateOrder отправляет заказ и возвращает результат магазина.
func (c *Client) CreateOrder(ctx context.Context, o domain.Order) (domain.OrderResult, error) {
	body, err := json.Marshal(o)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("marshal order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return domain.OrderResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusBadRequest:
		return domain.OrderResult{}, domain.ErrValidation
	default:
		return domain.OrderResult{}, fmt.Errorf("create order: unexpected status %d", resp.StatusCode)
	}
	var result domain.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.OrderResult{}, fmt.Errorf("decode order result: %w", err)
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

var _ domain.CatalogSource = (*Client)(nil)
var _ domain.OrderGateway = (*Client)(nil)
