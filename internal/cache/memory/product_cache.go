package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

// Проверка, что LRUCacheTTL удовлетворяет интерфейсу ProductCache.
var _ ports.ProductCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        string
	product   *domain.Product
	expiresAt time.Time
}

// LRUCacheTTL — LRU-кэш товаров с TTL.
// Значения клонируются в обе стороны: внешние изменения товара
// не отражаются на данных внутри кэша.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewLRUCacheTTL — конструктор; capacity <= 0 приводится к 1.
func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Get — товар по id; (product, true) при попадании, (nil, false) при промахе/истечении.
// Попадание продлевает TTL и двигает элемент в голову LRU.
func (c *LRUCacheTTL) Get(_ context.Context, productID string) (*domain.Product, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[productID]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneProduct(ent.product), true
}

// Set — сохранить/обновить товар в кэше.
func (c *LRUCacheTTL) Set(_ context.Context, product *domain.Product) error {
	if product == nil || product.ID == "" {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[product.ID]; ok {
		ent := elem.Value.(*entry)
		ent.product = cloneProduct(product)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        product.ID,
		product:   cloneProduct(product),
		expiresAt: c.expiryFrom(now),
	})
	c.index[product.ID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Invalidate — выбросить товар из кэша (обновление каталога фидом).
func (c *LRUCacheTTL) Invalidate(_ context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[productID]; ok {
		c.removeElement(elem)
		metrics.CacheOps.WithLabelValues("invalidated").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

// WarmUp — массовая загрузка кэша (например, при старте).
func (c *LRUCacheTTL) WarmUp(ctx context.Context, products []*domain.Product) error {
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, product); err != nil {
			return err
		}
	}
	return nil
}
