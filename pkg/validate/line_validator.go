package validate

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// Проверка, что LineValidator удовлетворяет интерфейсу LineValidator.
var _ ports.LineValidator = (*LineValidator)(nil)

// LineValidator — чистая валидация одной позиции корзины против снимка доступности.
// Системных ошибок не порождает: снимок уже получен вызывающей стороной.
type LineValidator struct{}

// NewLineValidator — конструктор LineValidator.
func NewLineValidator() *LineValidator { return &LineValidator{} }

// Validate — возвращает принятое количество (обрезанное по остаткам) либо отказ.
// Порядок проверок фиксирован и значим:
// количество → существование товара → форма размера → доступность размера → обрезка.
// Сравнение принятого количества с запрошенным — забота вызывающего.
func (v *LineValidator) Validate(_ context.Context, req domain.LineRequest, av domain.Availability) (int, error) {
	size := domain.NormalizeSize(req.Size)

	if req.Quantity < 1 {
		return 0, NewRejection(ReasonInvalidQuantity, req.ProductID, size)
	}

	// Существование — до любой логики размеров: иначе для удалённого товара
	// клиент получил бы вводящий в заблуждение отказ про размер или остатки.
	if av.Kind == domain.AvailabilityNotFound {
		return 0, NewRejection(ReasonProductNotFound, req.ProductID, size)
	}

	if av.Kind == domain.AvailabilitySized {
		if size == domain.NoSize {
			return 0, NewRejection(ReasonSizeRequired, req.ProductID, size)
		}
		remaining, ok := av.BySize[size]
		if !ok {
			return 0, NewRejection(ReasonSizeUnavailable, req.ProductID, size)
		}
		if remaining <= 0 {
			return 0, NewRejection(ReasonOutOfStock, req.ProductID, size)
		}
		return minInt(req.Quantity, remaining), nil
	}

	// Безразмерный товар: размер в запросе недопустим, действует агрегат.
	if size != domain.NoSize {
		return 0, NewRejection(ReasonSizeNotApplicable, req.ProductID, size)
	}
	if av.Total <= 0 {
		return 0, NewRejection(ReasonOutOfStock, req.ProductID, size)
	}
	return minInt(req.Quantity, av.Total), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
