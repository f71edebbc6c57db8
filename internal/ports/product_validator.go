package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

type ProductValidator interface {
	Validate(ctx context.Context, product *domain.Product) error
}
