package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// LineValidator — валидация одной позиции корзины против снимка доступности.
// Возвращает принятое количество (обрезанное по остаткам) либо отказ.
type LineValidator interface {
	Validate(ctx context.Context, req domain.LineRequest, av domain.Availability) (int, error)
}
