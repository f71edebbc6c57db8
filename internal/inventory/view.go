package inventory

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// Проверка, что View удовлетворяет интерфейсу InventoryView.
var _ ports.InventoryView = (*View)(nil)

// View — представление доступности поверх каталога с кэшем (cache-aside).
// Читает и никогда не пишет в каталог; промах кэша дочитывается из БД.
type View struct {
	catalog ports.CatalogReader
	cache   ports.ProductCache
	log     ports.Logger
}

// NewView — DI-конструктор.
func NewView(catalog ports.CatalogReader, cache ports.ProductCache, log ports.Logger) *View {
	return &View{catalog: catalog, cache: cache, log: log}
}

// Product — товар по id: сначала из кэша, при промахе — из каталога с записью в кэш.
// Возвращает (*Product, nil) или (nil, nil), если товара нет.
func (v *View) Product(ctx context.Context, productID string) (*domain.Product, error) {
	if product, found := v.cache.Get(ctx, productID); found {
		return product, nil
	}

	product, err := v.catalog.GetProduct(ctx, productID)
	if err != nil {
		v.log.Errorf(ctx, "catalog.GetProduct failed product_id=%s err=%v", productID, err)
		return nil, fmt.Errorf("get product: %w", err)
	}

	if product != nil {
		if setErr := v.cache.Set(ctx, product); setErr != nil {
			v.log.Warnf(ctx, "cache.Set failed product_id=%s err=%v", productID, setErr)
		}
	}
	return product, nil
}

// Availability — снимок доступности товара: NotFound | Unsized(total) | Sized(map).
func (v *View) Availability(ctx context.Context, productID string) (domain.Availability, error) {
	product, err := v.Product(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.AvailabilityOf(product), nil
}
