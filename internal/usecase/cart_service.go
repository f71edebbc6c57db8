package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/keylock"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// Проверка, что CartService удовлетворяет интерфейсу CartService.
var _ ports.CartService = (*CartService)(nil)

// ErrEmptyUserID — мутация корзины без идентификатора пользователя.
var ErrEmptyUserID = errors.New("user id is required")

// CartService — прикладная логика корзины (без знаний о транспорте).
// Мутации одного пользователя сериализуются через keylock: параллельные
// запросы не теряют обновлений, между пользователями блокировок нет.
type CartService struct {
	carts     ports.CartRepository // прямой доступ к хранилищу корзин
	inventory ports.InventoryView  // доступность товаров (каталог + кэш)
	validator ports.LineValidator  // прямой доступ к валидатору позиций
	log       ports.Logger         // прямой доступ к логгеру
	userLocks *keylock.KeyLock     // мьютекс на пользователя
}

// NewCartService — DI-конструктор.
func NewCartService(
	carts ports.CartRepository,
	inventory ports.InventoryView,
	validator ports.LineValidator,
	log ports.Logger,
) *CartService {
	return &CartService{
		carts:     carts,
		inventory: inventory,
		validator: validator,
		log:       log,
		userLocks: keylock.New(),
	}
}

// GetCart — корзина пользователя, гидрированная актуальными данными каталога.
// Чтение не мутирует и не ревалидирует позиции: позиция может оказаться
// «над остатком», если склад просел после последней мутации.
func (s *CartService) GetCart(ctx context.Context, userID string) (hydrated []domain.HydratedLine, err error) {
	defer func() { observeCartOp("get", err) }()

	if userID == "" {
		return nil, ErrEmptyUserID
	}

	lines, err := s.carts.LoadCart(ctx, userID)
	if err != nil {
		s.log.Errorf(ctx, "carts.LoadCart failed user=%s err=%v", userID, err)
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return s.hydrate(ctx, lines)
}

// Add — добавить позицию. Совпадение идентичности (товар+размер) увеличивает
// количество существующей позиции, а не создаёт вторую: валидируется
// перспективный итог (текущее + запрошенное), поэтому строка никогда
// не превышает остаток на момент вызова.
func (s *CartService) Add(ctx context.Context, userID string, req domain.LineRequest) (hydrated []domain.HydratedLine, err error) {
	defer func() { observeCartOp("add", err) }()

	if userID == "" {
		return nil, ErrEmptyUserID
	}
	req.Size = domain.NormalizeSize(req.Size)

	// Неположительная дельта отклоняется до суммирования с текущей позицией,
	// иначе add(-1) на существующей строке прошёл бы валидацию итога.
	if req.Quantity < 1 {
		return nil, validate.NewRejection(validate.ReasonInvalidQuantity, req.ProductID, req.Size)
	}

	s.userLocks.Lock(userID)
	defer s.userLocks.Unlock(userID)

	lines, err := s.carts.LoadCart(ctx, userID)
	if err != nil {
		s.log.Errorf(ctx, "carts.LoadCart failed user=%s err=%v", userID, err)
		return nil, fmt.Errorf("load cart: %w", err)
	}

	av, err := s.inventory.Availability(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}

	target := req.Quantity
	idx := findLine(lines, req.Key())
	if idx >= 0 {
		target += lines[idx].Quantity
	}

	capped, err := s.validator.Validate(ctx, domain.LineRequest{ProductID: req.ProductID, Size: req.Size, Quantity: target}, av)
	if err != nil {
		s.log.Infof(ctx, "add rejected user=%s product=%s size=%q: %v", userID, req.ProductID, req.Size, err)
		return nil, err
	}

	if idx >= 0 {
		lines[idx].Quantity = capped
	} else {
		lines = append(lines, domain.CartLine{ProductID: req.ProductID, Size: req.Size, Quantity: capped})
	}

	if err := s.carts.SaveCart(ctx, userID, lines); err != nil {
		s.log.Errorf(ctx, "carts.SaveCart failed user=%s err=%v", userID, err)
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.log.Infof(ctx, "cart add user=%s product=%s size=%q qty=%d", userID, req.ProductID, req.Size, capped)
	return s.hydrate(ctx, lines)
}

// Update — выставить количество позиции как абсолютную цель (не дельту).
// Валидатор отрабатывает до проверки наличия строки в корзине: для
// исчезнувшего из каталога товара клиент получает product-not-found,
// а not-found-in-cart остаётся про состав корзины.
func (s *CartService) Update(ctx context.Context, userID string, req domain.LineRequest) (hydrated []domain.HydratedLine, err error) {
	defer func() { observeCartOp("update", err) }()

	if userID == "" {
		return nil, ErrEmptyUserID
	}
	req.Size = domain.NormalizeSize(req.Size)

	s.userLocks.Lock(userID)
	defer s.userLocks.Unlock(userID)

	av, err := s.inventory.Availability(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}

	capped, err := s.validator.Validate(ctx, req, av)
	if err != nil {
		s.log.Infof(ctx, "update rejected user=%s product=%s size=%q: %v", userID, req.ProductID, req.Size, err)
		return nil, err
	}

	lines, err := s.carts.LoadCart(ctx, userID)
	if err != nil {
		s.log.Errorf(ctx, "carts.LoadCart failed user=%s err=%v", userID, err)
		return nil, fmt.Errorf("load cart: %w", err)
	}

	idx := findLine(lines, req.Key())
	if idx < 0 {
		return nil, validate.NewRejection(validate.ReasonNotInCart, req.ProductID, req.Size)
	}
	lines[idx].Quantity = capped

	if err := s.carts.SaveCart(ctx, userID, lines); err != nil {
		s.log.Errorf(ctx, "carts.SaveCart failed user=%s err=%v", userID, err)
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.log.Infof(ctx, "cart update user=%s product=%s size=%q qty=%d", userID, req.ProductID, req.Size, capped)
	return s.hydrate(ctx, lines)
}

// Remove — убрать позицию по идентичности. Размерная и безразмерная позиции
// одного товара не задевают друг друга. Отсутствие позиции — не ошибка.
func (s *CartService) Remove(ctx context.Context, userID, productID, size string) (hydrated []domain.HydratedLine, err error) {
	defer func() { observeCartOp("remove", err) }()

	if userID == "" {
		return nil, ErrEmptyUserID
	}
	key := domain.NewLineKey(productID, size)

	s.userLocks.Lock(userID)
	defer s.userLocks.Unlock(userID)

	lines, err := s.carts.LoadCart(ctx, userID)
	if err != nil {
		s.log.Errorf(ctx, "carts.LoadCart failed user=%s err=%v", userID, err)
		return nil, fmt.Errorf("load cart: %w", err)
	}

	idx := findLine(lines, key)
	if idx >= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
		if err := s.carts.SaveCart(ctx, userID, lines); err != nil {
			s.log.Errorf(ctx, "carts.SaveCart failed user=%s err=%v", userID, err)
			return nil, fmt.Errorf("save cart: %w", err)
		}
		s.log.Infof(ctx, "cart remove user=%s product=%s size=%q", userID, productID, key.Size)
	}

	return s.hydrate(ctx, lines)
}

// Clear — безусловно опустошает корзину (сущность корзины остаётся).
func (s *CartService) Clear(ctx context.Context, userID string) (hydrated []domain.HydratedLine, err error) {
	defer func() { observeCartOp("clear", err) }()

	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.userLocks.Lock(userID)
	defer s.userLocks.Unlock(userID)

	if err := s.carts.SaveCart(ctx, userID, nil); err != nil {
		s.log.Errorf(ctx, "carts.SaveCart failed user=%s err=%v", userID, err)
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.log.Infof(ctx, "cart cleared user=%s", userID)
	return []domain.HydratedLine{}, nil
}

// hydrate — живое соединение позиций с каталогом: имя, цена, картинка и
// остаток подтягиваются на каждый вызов и никогда не кэшируются на позиции.
// Исчезнувший товар остаётся в корзине с нулевой доступностью.
func (s *CartService) hydrate(ctx context.Context, lines []domain.CartLine) ([]domain.HydratedLine, error) {
	hydrated := make([]domain.HydratedLine, 0, len(lines))
	for _, line := range lines {
		product, err := s.inventory.Product(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("hydrate product %s: %w", line.ProductID, err)
		}

		h := domain.HydratedLine{
			ProductID: line.ProductID,
			Size:      line.Size,
			Quantity:  line.Quantity,
		}
		if product != nil {
			h.Name = product.Name
			h.Price = product.Price
			h.ImageURL = product.ImageURL
			h.Available = domain.AvailabilityOf(product).ForIdentity(line.Size)
			h.InCatalog = true
		}
		hydrated = append(hydrated, h)
	}
	return hydrated, nil
}

// findLine — индекс позиции с данной идентичностью; -1, если нет.
func findLine(lines []domain.CartLine, key domain.LineKey) int {
	for i := range lines {
		if lines[i].Key() == key {
			return i
		}
	}
	return -1
}

// observeCartOp — классификация исхода операции для метрик.
func observeCartOp(op string, err error) {
	switch {
	case err == nil:
		metrics.CartOps.WithLabelValues(op, "ok").Inc()
	case errors.Is(err, validate.ErrRejected):
		metrics.CartOps.WithLabelValues(op, "rejected").Inc()
	default:
		metrics.CartOps.WithLabelValues(op, "error").Inc()
	}
}
