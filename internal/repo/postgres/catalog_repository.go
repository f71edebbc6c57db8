package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что CatalogRepository удовлетворяет портам чтения и записи каталога.
var (
	_ ports.CatalogReader = (*CatalogRepository)(nil)
	_ ports.CatalogWriter = (*CatalogRepository)(nil)
)

// CatalogRepository — реализация каталога товаров на Postgres (pgxpool).
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository — конструктор CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// GetProduct — товар с размерами (в каталожном порядке). Если не нашли, возвращает (nil, nil).
func (r *CatalogRepository) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, price, image_url, stock
		FROM products WHERE id = $1
	`, productID).Scan(&product.ID, &product.Name, &product.Price, &product.ImageURL, &product.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}

	sizes, err := r.productSizes(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Sizes = sizes

	return &product, nil
}

// RecentProducts — последние обновлённые товары (для прогрева кэша).
// Используем подход N+1: берём только id, затем дочитываем полные товары.
func (r *CatalogRepository) RecentProducts(ctx context.Context, n int) ([]*domain.Product, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id
		FROM products
		ORDER BY updated_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("select recent ids: %w", err)
	}
	defer rows.Close()

	var result []*domain.Product
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		product, err := r.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			result = append(result, product)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent rows: %w", err)
	}

	return result, nil
}

// UpsertProduct — транзакционно сохраняет товар (идемпотентный upsert + замена размеров).
func (r *CatalogRepository) UpsertProduct(ctx context.Context, product *domain.Product) error {
	if product == nil || product.ID == "" {
		return errors.New("product is empty or id is required")
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	// 1) products — upsert по id (PRIMARY KEY).
	if _, err = transaction.Exec(ctx, `
		INSERT INTO products (id, name, price, image_url, stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			stock = EXCLUDED.stock,
			updated_at = now()
	`, product.ID, product.Name, product.Price, product.ImageURL, product.Stock); err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	// 2) product_sizes — replace: удаляем и вставляем список заново.
	if _, err = transaction.Exec(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("delete product sizes: %w", err)
	}
	if len(product.Sizes) > 0 {
		if err = copySizes(ctx, transaction, product.ID, product.Sizes); err != nil {
			return err
		}
	}

	// Завершаем транзакцию
	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteProduct — удаляет товар; размеры уходят каскадом по FK.
// Возвращает false, если товара не было.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, errors.New("product_id is required")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// productSizes — размеры товара в каталожном порядке (0..N).
func (r *CatalogRepository) productSizes(ctx context.Context, productID string) ([]domain.SizeQuantity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT size, quantity
		FROM product_sizes WHERE product_id = $1
		ORDER BY position
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("select product sizes: %w", err)
	}
	defer rows.Close()

	var sizes []domain.SizeQuantity
	for rows.Next() {
		var sq domain.SizeQuantity
		if err := rows.Scan(&sq.Size, &sq.Quantity); err != nil {
			return nil, fmt.Errorf("scan product size: %w", err)
		}
		sizes = append(sizes, sq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sizes rows: %w", err)
	}

	return sizes, nil
}

// copySizes — вставка размеров через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
func copySizes(ctx context.Context, tx pgx.Tx, productID string, sizes []domain.SizeQuantity) error {
	rows := make([][]any, 0, len(sizes))
	for i, sq := range sizes {
		rows = append(rows, []any{productID, sq.Size, sq.Quantity, i})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"product_sizes"},
		[]string{"product_id", "size", "quantity", "position"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy product sizes: %w", err)
	}
	return nil
}
