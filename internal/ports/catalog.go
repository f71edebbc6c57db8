package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// CatalogReader — каталог товаров, для корзины доступен только на чтение.
// GetProduct возвращает (nil, nil), если товара нет.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// RecentProducts — последние обновлённые товары (для прогрева кэша).
	RecentProducts(ctx context.Context, n int) ([]*domain.Product, error)
}

// CatalogWriter — запись в каталог; используется только потребителем фида.
// UpsertProduct идемпотентен; DeleteProduct возвращает false, если товара не было.
type CatalogWriter interface {
	UpsertProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, productID string) (bool, error)
}
