package domain

// NoSize — сентинел «без размера». Пустой или отсутствующий размер в запросе
// нормализуется в это значение; к реальным меткам размеров нормализация
// (trim, регистр) не применяется — метка должна совпадать с каталожной байт в байт.
const NoSize = ""

// NormalizeSize — приводит отсутствующий/пустой размер к сентинелу NoSize.
func NormalizeSize(size string) string {
	if size == "" {
		return NoSize
	}
	return size
}

// LineKey — составной ключ позиции корзины: (товар, нормализованный размер).
// Позиции «с размером» и «без размера» одного товара — разные ключи.
type LineKey struct {
	ProductID string
	Size      string
}

// NewLineKey — ключ по товару и размеру (размер нормализуется).
func NewLineKey(productID, size string) LineKey {
	return LineKey{ProductID: productID, Size: NormalizeSize(size)}
}

// CartLine — позиция корзины: только идентичность и количество.
// Отображаемые поля товара (имя, цена, картинка) на позиции не хранятся
// и подтягиваются из каталога при каждом чтении.
type CartLine struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Key — ключ идентичности позиции.
func (l CartLine) Key() LineKey { return NewLineKey(l.ProductID, l.Size) }

// LineRequest — запрошенная позиция (добавление, обновление или строка снапшота).
type LineRequest struct {
	ProductID string
	Size      string
	Quantity  int
}

// Key — ключ идентичности запроса.
func (r LineRequest) Key() LineKey { return NewLineKey(r.ProductID, r.Size) }

// HydratedLine — позиция корзины, дополненная актуальными данными каталога.
// Available — остаток именно для этой идентичности (размерной или агрегатной);
// для исчезнувшего из каталога товара Available = 0 и InCatalog = false.
type HydratedLine struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name,omitempty"`
	Price     int64  `json:"price,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Available int    `json:"available"`
	InCatalog bool   `json:"in_catalog"`
}

// MergeSnapshot — схлопывает дубликаты идентичностей в клиентском снапшоте,
// суммируя количества (порядок первых вхождений сохраняется). Выполняется до
// сверки, чтобы ни одна строка не потерялась молча.
func MergeSnapshot(snapshot []LineRequest) []LineRequest {
	merged := make([]LineRequest, 0, len(snapshot))
	index := make(map[LineKey]int, len(snapshot))

	for _, req := range snapshot {
		key := req.Key()
		if i, ok := index[key]; ok {
			merged[i].Quantity += req.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, LineRequest{
			ProductID: req.ProductID,
			Size:      NormalizeSize(req.Size),
			Quantity:  req.Quantity,
		})
	}
	return merged
}
