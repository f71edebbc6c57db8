//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидного размерного товара
func MakeProduct(opts ...func(*domain.Product)) domain.Product {
	id := "prd-" + UniqSuffix()

	p := domain.Product{
		ID:       id,
		Name:     "Widget " + id,
		Price:    1990,
		ImageURL: "https://img.example.com/" + id + ".jpg",

		// Инвариант: агрегат равен сумме остатков по размерам
		Stock: 5,
		Sizes: []domain.SizeQuantity{
			{Size: "M", Quantity: 3},
			{Size: "L", Quantity: 2},
		},
	}

	for _, fn := range opts {
		fn(&p)
	}
	return p
}

// Доп. опция — безразмерный товар с заданным агрегатным остатком
func WithoutSizes(stock int) func(*domain.Product) {
	return func(p *domain.Product) {
		p.Sizes = nil
		p.Stock = stock
	}
}

func WithProductID(id string) func(*domain.Product) {
	return func(p *domain.Product) { p.ID = id }
}

func WithSizes(sizes ...domain.SizeQuantity) func(*domain.Product) {
	return func(p *domain.Product) {
		p.Sizes = append([]domain.SizeQuantity(nil), sizes...)
		sum := 0
		for _, sq := range sizes {
			sum += sq.Quantity
		}
		p.Stock = sum
	}
}

// MakeCartLines — валидные строки корзины для сохранения напрямую через репозиторий.
func MakeCartLines(productID string, n int) []domain.CartLine {
	lines := make([]domain.CartLine, 0, n)
	sizes := []string{"", "M", "L", "XL", "XXL"}
	for i := 0; i < n; i++ {
		lines = append(lines, domain.CartLine{
			ProductID: productID,
			Size:      sizes[i%len(sizes)],
			Quantity:  i + 1,
		})
	}
	return lines
}
