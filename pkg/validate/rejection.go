package validate

import (
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// Reason — машиночитаемая причина отказа (уходит клиенту как есть).
type Reason string

const (
	ReasonProductNotFound   Reason = "product-not-found"
	ReasonSizeRequired      Reason = "size-required"
	ReasonSizeUnavailable   Reason = "size-unavailable"
	ReasonSizeNotApplicable Reason = "size-not-applicable"
	ReasonOutOfStock        Reason = "out-of-stock"
	ReasonInvalidQuantity   Reason = "invalid-quantity"
	ReasonNotInCart         Reason = "not-found-in-cart"
)

// ErrRejected — базовая (sentinel error) ошибка отказа по запросу к корзине.
// Отказ — ожидаемый исход (4xx), а не системная ошибка.
var ErrRejected = errors.New("cart request rejected")

// Rejection — отказ с причиной и идентичностью позиции.
type Rejection struct {
	Reason    Reason
	ProductID string
	Size      string
}

func (r *Rejection) Error() string {
	if r.Size != domain.NoSize {
		return fmt.Sprintf("%s: product=%s size=%s", r.Reason, r.ProductID, r.Size)
	}
	return fmt.Sprintf("%s: product=%s", r.Reason, r.ProductID)
}

// Unwrap — позволяет errors.Is(err, ErrRejected).
func (r *Rejection) Unwrap() error { return ErrRejected }

// NewRejection — конструктор отказа (размер нормализуется).
func NewRejection(reason Reason, productID, size string) error {
	return &Rejection{Reason: reason, ProductID: productID, Size: domain.NormalizeSize(size)}
}

// AsRejection — достаёт *Rejection из цепочки ошибок.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
