package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/inventory"
	"github.com/Gunvolt24/wb_cart/internal/ports/mocks"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func TestProduct_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)

	catalog := mocks.NewMockCatalogReader(ctrl)
	cache := mocks.NewMockProductCache(ctrl)

	p := &domain.Product{ID: "p1", Stock: 3}
	cache.EXPECT().Get(gomock.Any(), "p1").Return(p, true)

	v := inventory.NewView(catalog, cache, noopLogger{})

	got, err := v.Product(context.Background(), "p1")
	if err != nil || got == nil || got.ID != "p1" {
		t.Fatalf("expected hit, got err=%v, product=%+v", err, got)
	}
}

func TestProduct_CacheMiss_FetchAndCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	catalog := mocks.NewMockCatalogReader(ctrl)
	cache := mocks.NewMockProductCache(ctrl)

	p := &domain.Product{ID: "p1", Stock: 3}
	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), "p1").Return(nil, false),
		catalog.EXPECT().GetProduct(gomock.Any(), "p1").Return(p, nil),
		cache.EXPECT().Set(gomock.Any(), p).Return(nil),
	)

	v := inventory.NewView(catalog, cache, noopLogger{})

	got, err := v.Product(context.Background(), "p1")
	if err != nil || got == nil || got.ID != "p1" {
		t.Fatalf("expected miss then fetch, got err=%v, product=%+v", err, got)
	}
}

func TestProduct_NotFound_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	catalog := mocks.NewMockCatalogReader(ctrl)
	cache := mocks.NewMockProductCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "ghost").Return(nil, false)
	catalog.EXPECT().GetProduct(gomock.Any(), "ghost").Return(nil, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any()).Times(0)

	v := inventory.NewView(catalog, cache, noopLogger{})

	got, err := v.Product(context.Background(), "ghost")
	if err != nil || got != nil {
		t.Fatalf("expected not found, got err=%v, product=%+v", err, got)
	}
}

func TestProduct_CacheSetWarnOnly(t *testing.T) {
	ctrl := gomock.NewController(t)

	catalog := mocks.NewMockCatalogReader(ctrl)
	cache := mocks.NewMockProductCache(ctrl)

	p := &domain.Product{ID: "p1"}
	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), "p1").Return(nil, false),
		catalog.EXPECT().GetProduct(gomock.Any(), "p1").Return(p, nil),
		cache.EXPECT().Set(gomock.Any(), p).Return(errors.New("cache set failed")),
	)

	v := inventory.NewView(catalog, cache, noopLogger{})

	got, err := v.Product(context.Background(), "p1")
	if err != nil || got == nil {
		t.Fatalf("cache set failure must not fail read, got err=%v", err)
	}
}

func TestAvailability_Modes(t *testing.T) {
	ctrl := gomock.NewController(t)

	catalog := mocks.NewMockCatalogReader(ctrl)
	cache := mocks.NewMockProductCache(ctrl)

	sized := &domain.Product{ID: "p1", Stock: 2, Sizes: []domain.SizeQuantity{{Size: "M", Quantity: 2}}}
	cache.EXPECT().Get(gomock.Any(), "p1").Return(sized, true)
	cache.EXPECT().Get(gomock.Any(), "ghost").Return(nil, false)
	catalog.EXPECT().GetProduct(gomock.Any(), "ghost").Return(nil, nil)

	v := inventory.NewView(catalog, cache, noopLogger{})
	ctx := context.Background()

	av, err := v.Availability(ctx, "p1")
	if err != nil || av.Kind != domain.AvailabilitySized || av.BySize["M"] != 2 {
		t.Fatalf("unexpected availability: %+v, err=%v", av, err)
	}

	av, err = v.Availability(ctx, "ghost")
	if err != nil || av.Kind != domain.AvailabilityNotFound {
		t.Fatalf("unexpected availability for ghost: %+v, err=%v", av, err)
	}
}

func TestProduct_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)

	catalog := mocks.NewMockCatalogReader(ctrl)
	cache := mocks.NewMockProductCache(ctrl)

	repoErr := errors.New("DB down")
	cache.EXPECT().Get(gomock.Any(), "p1").Return(nil, false)
	catalog.EXPECT().GetProduct(gomock.Any(), "p1").Return(nil, repoErr)

	v := inventory.NewView(catalog, cache, noopLogger{})

	if _, err := v.Product(context.Background(), "p1"); err == nil || !errors.Is(err, repoErr) {
		t.Fatalf("want wrapped repo error, got %v", err)
	}
}
