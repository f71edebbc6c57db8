package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// CartService — операции над корзиной одного пользователя.
// Каждая мутация атомарна, персистится до возврата и отдаёт
// гидрированную корзину целиком.
type CartService interface {
	GetCart(ctx context.Context, userID string) ([]domain.HydratedLine, error)
	Add(ctx context.Context, userID string, req domain.LineRequest) ([]domain.HydratedLine, error)
	Update(ctx context.Context, userID string, req domain.LineRequest) ([]domain.HydratedLine, error)
	Remove(ctx context.Context, userID, productID, size string) ([]domain.HydratedLine, error)
	Clear(ctx context.Context, userID string) ([]domain.HydratedLine, error)
	Sync(ctx context.Context, userID string, snapshot []domain.LineRequest) ([]domain.HydratedLine, []domain.Diagnostic, error)
}
