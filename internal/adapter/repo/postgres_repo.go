package repo

import (
	"context"

	"github.com/example/larek-store/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProductRepo хранит карточки товаров как jsonb.
type PostgresProductRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresProductRepo(pool *pgxpool.Pool) *PostgresProductRepo {
	return &PostgresProductRepo{Pool: pool}
}

func (r *PostgresProductRepo) Upsert(ctx context.Context, id string, raw []byte) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO products(product_id, payload) VALUES($1, $2)
        ON CONFLICT (product_id) DO UPDATE SET payload = EXCLUDED.payload`, id, raw)
	return err
}

func (r *PostgresProductRepo) LoadAll(ctx context.Context, fn func(id string, raw []byte) error) error {
	rows, err := r.Pool.Query(ctx, `SELECT product_id, payload FROM products ORDER BY ordinal`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return err
		}
		if err := fn(id, raw); err != nil {
			return err
		}
	}
	return rows.Err()
}

var _ domain.ProductRepository = (*PostgresProductRepo)(nil)

// PostgresOrderStore сохраняет принятые заказы.
type PostgresOrderStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresOrderStore(pool *pgxpool.Pool) *PostgresOrderStore {
	return &PostgresOrderStore{Pool: pool}
}

func (s *PostgresOrderStore) Save(ctx context.Context, id string, raw []byte) error {
	_, err := s.Pool.Exec(ctx, `INSERT INTO orders(order_id, payload) VALUES($1, $2)
        ON CONFLICT (order_id) DO UPDATE SET payload = EXCLUDED.payload`, id, raw)
	return err
}

var _ domain.OrderStore = (*PostgresOrderStore)(nil)

// EnsureSchema — создать необходимые таблицы, если отсутствуют.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS products (
  product_id text PRIMARY KEY,
  ordinal serial,
  payload jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
  order_id text PRIMARY KEY,
  payload jsonb NOT NULL
);`)
	return err
}
