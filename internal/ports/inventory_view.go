package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// InventoryView — представление доступности товаров поверх каталога.
// Никогда не мутирует каталог: остатки на этапе корзины только читаются,
// резервирование происходит при оформлении заказа, вне этого сервиса.
type InventoryView interface {
	// Product — товар каталога для гидратации позиций; (nil, nil), если товара нет.
	Product(ctx context.Context, productID string) (*domain.Product, error)

	// Availability — снимок доступности: NotFound | Unsized(total) | Sized(map).
	Availability(ctx context.Context, productID string) (domain.Availability, error)
}
