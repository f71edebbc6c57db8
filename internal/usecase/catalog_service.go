package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// ErrMalformedMessage — неразбираемое сообщение фида; повторная обработка бессмысленна.
var ErrMalformedMessage = errors.New("malformed catalog message")

// catalogMessage — сообщение фида каталога.
// Обычное сообщение несёт товар целиком (идемпотентный upsert),
// tombstone (deleted=true) удаляет товар из каталога.
type catalogMessage struct {
	Deleted bool            `json:"deleted,omitempty"`
	ID      string          `json:"id,omitempty"`
	Product *domain.Product `json:"product,omitempty"`
}

// CatalogService — приём обновлений каталога из фида (Kafka, raw JSON).
// Единственное место, где каталог пишется; корзина каталог только читает.
type CatalogService struct {
	catalog   ports.CatalogWriter    // прямой доступ к хранилищу каталога
	cache     ports.ProductCache     // кэш товаров: инвалидация при обновлении
	validator ports.ProductValidator // валидация на границе каталога
	log       ports.Logger           // прямой доступ к логгеру
}

// NewCatalogService — DI-конструктор.
func NewCatalogService(
	catalog ports.CatalogWriter,
	cache ports.ProductCache,
	validator ports.ProductValidator,
	log ports.Logger,
) *CatalogService {
	return &CatalogService{
		catalog:   catalog,
		cache:     cache,
		validator: validator,
		log:       log,
	}
}

// ApplyMessage — применить одно сообщение фида.
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields) —> отлавливаем незадокументированные поля;
//  2. tombstone → удаление товара и инвалидация кэша;
//  3. доменная валидация товара (вернёт validate.ErrInvalidProduct при проблемах),
//     включая инвариант «агрегат = сумма остатков по размерам»;
//  4. идемпотентный upsert в каталог и инвалидация кэша.
func (s *CatalogService) ApplyMessage(ctx context.Context, raw []byte) error {
	// Строгое декодирование: запрещаем неизвестные поля.
	var msg catalogMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		s.log.Warnf(ctx, "invalid json err=%v", err)
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	// Убеждаемся, что после объекта нет лишних данных.
	if err := dec.Decode(new(struct{})); err != io.EOF {
		s.log.Warnf(ctx, "invalid json: trailing data")
		return fmt.Errorf("%w: trailing data", ErrMalformedMessage)
	}

	if msg.Deleted {
		return s.applyDelete(ctx, msg.ID)
	}

	if err := s.validator.Validate(ctx, msg.Product); err != nil {
		s.log.Warnf(ctx, "product validation failed err=%v", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.catalog.UpsertProduct(ctx, msg.Product); err != nil {
		s.log.Errorf(ctx, "catalog.UpsertProduct failed product_id=%s err=%v", msg.Product.ID, err)
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	s.cache.Invalidate(ctx, msg.Product.ID)

	s.log.Infof(ctx, "product upserted id=%s sizes=%d stock=%d", msg.Product.ID, len(msg.Product.Sizes), msg.Product.Stock)
	return nil
}

func (s *CatalogService) applyDelete(ctx context.Context, productID string) error {
	if productID == "" {
		s.log.Warnf(ctx, "tombstone without id")
		return fmt.Errorf("%w: tombstone without id", ErrMalformedMessage)
	}

	existed, err := s.catalog.DeleteProduct(ctx, productID)
	if err != nil {
		s.log.Errorf(ctx, "catalog.DeleteProduct failed product_id=%s err=%v", productID, err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.cache.Invalidate(ctx, productID)

	s.log.Infof(ctx, "product deleted id=%s existed=%t", productID, existed)
	return nil
}
