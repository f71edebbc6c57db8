package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// ProductCache — кэш товаров каталога.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий сущности.
type ProductCache interface {
	// Get — вернуть товар по id; (product, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, productID string) (*domain.Product, bool)

	// Set — сохранить/обновить товар в кэше.
	Set(ctx context.Context, product *domain.Product) error

	// Invalidate — выбросить товар из кэша (после обновления каталога фидом).
	Invalidate(ctx context.Context, productID string)

	// WarmUp — массовая загрузка кэша (например, при старте).
	// Реализация должна поддерживать отмену контекста.
	WarmUp(ctx context.Context, products []*domain.Product) error
}
