package domain

// SizeQuantity — остаток по конкретному размеру товара.
// Порядок в Product.Sizes соответствует порядку в каталоге и сохраняется при выдаче.
type SizeQuantity struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Product — товар каталога (для корзины — только чтение).
// Если Sizes непустой, товар считается размерным и проверки идут по размерам;
// агрегат Stock в этом случае для корзины не используется.
type Product struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Price    int64          `json:"price"` // в минимальных единицах валюты
	ImageURL string         `json:"image_url"`
	Stock    int            `json:"stock"`
	Sizes    []SizeQuantity `json:"size_quantities"`
}

// Sized — размерный ли товар (непустой список размеров).
func (p *Product) Sized() bool { return len(p.Sizes) > 0 }

// SizeQty — остаток по размеру; (qty, true) если размер есть в каталоге.
func (p *Product) SizeQty(size string) (int, bool) {
	for i := range p.Sizes {
		if p.Sizes[i].Size == size {
			return p.Sizes[i].Quantity, true
		}
	}
	return 0, false
}

// AvailabilityKind — режим доступности товара.
type AvailabilityKind int

const (
	AvailabilityNotFound AvailabilityKind = iota // товара нет в каталоге
	AvailabilityUnsized                          // безразмерный: действует агрегат Total
	AvailabilitySized                            // размерный: действует BySize
)

// Availability — снимок доступности товара на момент проверки.
// Ровно два «живых» режима: Unsized (Total) и Sized (BySize); других не бывает.
type Availability struct {
	Kind   AvailabilityKind
	Total  int
	BySize map[string]int
}

// AvailabilityOf — строит снимок доступности по товару каталога.
// nil → NotFound; непустые размеры → Sized; иначе Unsized.
func AvailabilityOf(p *Product) Availability {
	if p == nil {
		return Availability{Kind: AvailabilityNotFound}
	}
	if p.Sized() {
		bySize := make(map[string]int, len(p.Sizes))
		for _, sq := range p.Sizes {
			bySize[sq.Size] = sq.Quantity
		}
		return Availability{Kind: AvailabilitySized, BySize: bySize}
	}
	return Availability{Kind: AvailabilityUnsized, Total: p.Stock}
}

// ForIdentity — доступное количество для конкретной позиции (товар+размер).
// Для NotFound и отсутствующего размера возвращает 0.
func (a Availability) ForIdentity(size string) int {
	switch a.Kind {
	case AvailabilityUnsized:
		return a.Total
	case AvailabilitySized:
		return a.BySize[size]
	default:
		return 0
	}
}
