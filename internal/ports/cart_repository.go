package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// CartRepository — хранилище корзин, строго консистентное в пределах пользователя.
// SaveCart заменяет корзину целиком (last-write-wins на уровне документа корзины);
// частичных обновлений нет — единицей записи всегда является вся корзина.
type CartRepository interface {
	LoadCart(ctx context.Context, userID string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, userID string, lines []domain.CartLine) error
}
