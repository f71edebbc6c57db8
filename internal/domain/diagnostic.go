package domain

import "fmt"

// DiagnosticKind — вид корректировки, сделанной при сверке снапшота.
type DiagnosticKind string

const (
	DiagnosticRemovedNonexistent DiagnosticKind = "removed-nonexistent-product"
	DiagnosticRemovedOutOfStock  DiagnosticKind = "removed-out-of-stock"
	DiagnosticQuantityAdjusted   DiagnosticKind = "quantity-adjusted"
	DiagnosticRemovedInvalidSize DiagnosticKind = "removed-invalid-size"
	DiagnosticRemovedInvalidQty  DiagnosticKind = "removed-invalid-quantity"
)

// Diagnostic — пояснение для пользователя по одной строке снапшота.
// Не персистится: отдаётся в ответе на sync и забывается.
type Diagnostic struct {
	Kind        DiagnosticKind `json:"kind"`
	ProductID   string         `json:"product_id"`
	Size        string         `json:"size,omitempty"`
	NewQuantity int            `json:"new_quantity,omitempty"`
	Message     string         `json:"message"`
}

// NewDiagnostic — диагностика с человекочитаемым сообщением по виду.
func NewDiagnostic(kind DiagnosticKind, productID, size string, newQty int) Diagnostic {
	d := Diagnostic{Kind: kind, ProductID: productID, Size: NormalizeSize(size), NewQuantity: newQty}
	switch kind {
	case DiagnosticRemovedNonexistent:
		d.Message = fmt.Sprintf("товар %s больше не продаётся и удалён из корзины", productID)
	case DiagnosticRemovedOutOfStock:
		d.Message = fmt.Sprintf("товар %s закончился и удалён из корзины", productID)
	case DiagnosticQuantityAdjusted:
		d.Message = fmt.Sprintf("количество товара %s уменьшено до %d по остаткам", productID, newQty)
	case DiagnosticRemovedInvalidSize:
		d.Message = fmt.Sprintf("размер для товара %s указан неверно, позиция удалена", productID)
	case DiagnosticRemovedInvalidQty:
		d.Message = fmt.Sprintf("количество для товара %s указано неверно, позиция удалена", productID)
	}
	return d
}
