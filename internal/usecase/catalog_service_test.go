package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports/mocks"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
	"github.com/golang/mock/gomock"
)

func newCatalogService(t *testing.T) (*usecase.CatalogService, *mocks.MockCatalogWriter, *mocks.MockProductCache, *mocks.MockProductValidator) {
	t.Helper()
	ctrl := gomock.NewController(t)

	catalog := mocks.NewMockCatalogWriter(ctrl)
	cache := mocks.NewMockProductCache(ctrl)
	validator := mocks.NewMockProductValidator(ctrl)
	svc := usecase.NewCatalogService(catalog, cache, validator, noopLogger{})
	return svc, catalog, cache, validator
}

func productMessage(t *testing.T, p *domain.Product) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"product": p})
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	return raw
}

func TestApplyMessage_InvalidJson(t *testing.T) {
	svc, _, _, _ := newCatalogService(t)

	err := svc.ApplyMessage(context.Background(), []byte("{"))
	if !errors.Is(err, usecase.ErrMalformedMessage) {
		t.Fatalf("want ErrMalformedMessage, got %v", err)
	}
}

func TestApplyMessage_UnknownField(t *testing.T) {
	svc, _, _, _ := newCatalogService(t)

	err := svc.ApplyMessage(context.Background(), []byte(`{"unexpected":1}`))
	if !errors.Is(err, usecase.ErrMalformedMessage) {
		t.Fatalf("want ErrMalformedMessage, got %v", err)
	}
}

func TestApplyMessage_TrailingData(t *testing.T) {
	svc, _, _, _ := newCatalogService(t)

	raw := append(productMessage(t, &domain.Product{ID: "p1", Name: "x"}), []byte(" {}")...)
	err := svc.ApplyMessage(context.Background(), raw)
	if !errors.Is(err, usecase.ErrMalformedMessage) || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("want trailing data error, got %v", err)
	}
}

func TestApplyMessage_ValidationFailed(t *testing.T) {
	svc, catalog, _, validator := newCatalogService(t)

	validator.EXPECT().Validate(gomock.Any(), gomock.AssignableToTypeOf(&domain.Product{})).Return(validate.ErrInvalidProduct)
	catalog.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).Times(0)

	err := svc.ApplyMessage(context.Background(), productMessage(t, &domain.Product{ID: "p1"}))
	if err == nil || !errors.Is(err, validate.ErrInvalidProduct) {
		t.Fatalf("want wrapped ErrInvalidProduct, got %v", err)
	}
}

func TestApplyMessage_UpsertSuccess(t *testing.T) {
	svc, catalog, cache, validator := newCatalogService(t)

	gomock.InOrder(
		validator.EXPECT().Validate(gomock.Any(), gomock.AssignableToTypeOf(&domain.Product{})).Return(nil),
		catalog.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).Return(nil),
		cache.EXPECT().Invalidate(gomock.Any(), "p1"),
	)

	p := &domain.Product{ID: "p1", Name: "Футболка", Price: 100, Stock: 3,
		Sizes: []domain.SizeQuantity{{Size: "M", Quantity: 3}}}
	if err := svc.ApplyMessage(context.Background(), productMessage(t, p)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyMessage_UpsertRepoErr(t *testing.T) {
	svc, catalog, _, validator := newCatalogService(t)

	gomock.InOrder(
		validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil),
		catalog.EXPECT().UpsertProduct(gomock.Any(), gomock.Any()).Return(errors.New("insert failed")),
	)

	err := svc.ApplyMessage(context.Background(), productMessage(t, &domain.Product{ID: "p1", Name: "x"}))
	if err == nil || !strings.Contains(err.Error(), "failed to upsert product") {
		t.Fatalf("want wrapped upsert error, got %v", err)
	}
}

func TestApplyMessage_Tombstone(t *testing.T) {
	svc, catalog, cache, _ := newCatalogService(t)

	gomock.InOrder(
		catalog.EXPECT().DeleteProduct(gomock.Any(), "p1").Return(true, nil),
		cache.EXPECT().Invalidate(gomock.Any(), "p1"),
	)

	if err := svc.ApplyMessage(context.Background(), []byte(`{"deleted":true,"id":"p1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyMessage_TombstoneWithoutID(t *testing.T) {
	svc, catalog, _, _ := newCatalogService(t)

	catalog.EXPECT().DeleteProduct(gomock.Any(), gomock.Any()).Times(0)

	err := svc.ApplyMessage(context.Background(), []byte(`{"deleted":true}`))
	if !errors.Is(err, usecase.ErrMalformedMessage) {
		t.Fatalf("want ErrMalformedMessage, got %v", err)
	}
}

func TestApplyMessage_TombstoneOfAbsentProduct(t *testing.T) {
	svc, catalog, cache, _ := newCatalogService(t)

	// Удаление отсутствующего товара идемпотентно: не ошибка.
	gomock.InOrder(
		catalog.EXPECT().DeleteProduct(gomock.Any(), "ghost").Return(false, nil),
		cache.EXPECT().Invalidate(gomock.Any(), "ghost"),
	)

	if err := svc.ApplyMessage(context.Background(), []byte(`{"deleted":true,"id":"ghost"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
