package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// Проверка, что ProductValidator удовлетворяет интерфейсу ProductValidator.
var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct — базовая (sentinel error) ошибка валидации товара фида.
var ErrInvalidProduct = errors.New("product validation failed")

// ProductValidator — валидация товара на границе каталога.
// Именно здесь (а не в логике корзины) держится инвариант «для размерного
// товара агрегат равен сумме остатков по размерам».
type ProductValidator struct{}

// NewProductValidator — конструктор ProductValidator.
func NewProductValidator() *ProductValidator { return &ProductValidator{} }

// Validate — проверяет корректность полей товара.
// Возвращает ErrInvalidProduct (с обёрнутой причиной) при любой проблеме.
func (v *ProductValidator) Validate(_ context.Context, p *domain.Product) error {
	if p == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name обязателен", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price должен быть неотрицательным", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock должен быть неотрицательным", ErrInvalidProduct)
	}
	return v.validateSizes(p)
}

// validateSizes — размеры: непустые уникальные метки, неотрицательные остатки,
// агрегат равен сумме по размерам.
func (v *ProductValidator) validateSizes(p *domain.Product) error {
	if len(p.Sizes) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(p.Sizes))
	sum := 0
	for i, sq := range p.Sizes {
		if sq.Size == "" {
			return fmt.Errorf("%w: size_quantities[%d].size обязателен", ErrInvalidProduct, i)
		}
		if sq.Quantity < 0 {
			return fmt.Errorf("%w: size_quantities[%d].quantity должен быть неотрицательным", ErrInvalidProduct, i)
		}
		if _, dup := seen[sq.Size]; dup {
			return fmt.Errorf("%w: size_quantities: дубликат размера %q", ErrInvalidProduct, sq.Size)
		}
		seen[sq.Size] = struct{}{}
		sum += sq.Quantity
	}

	if p.Stock != sum {
		return fmt.Errorf("%w: stock=%d не равен сумме остатков по размерам=%d", ErrInvalidProduct, p.Stock, sum)
	}
	return nil
}
