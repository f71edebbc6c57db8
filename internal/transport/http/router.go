package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/httpx"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// userIDHeader — опознанный внешним слоем аутентификации пользователь.
// Сама аутентификация — внешний коллаборатор, сюда приходит только идентичность.
const userIDHeader = "X-User-ID"

// Handler — HTTP-обработчики корзины.
type Handler struct {
	service        ports.CartService
	log            ports.Logger
	handlerTimeout time.Duration
}

// NewHandler — DI-конструктор. handlerTimeout <= 0 отключает таймаут обработчика.
func NewHandler(service ports.CartService, log ports.Logger, handlerTimeout time.Duration) *Handler {
	return &Handler{service: service, log: log, handlerTimeout: handlerTimeout}
}

// NewRouter — собирает gin-роутер со всеми маршрутами и middleware.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cart := r.Group("/cart", requireUser())
	{
		cart.GET("", h.getCart)
		cart.POST("", h.addToCart)
		cart.PUT("/:productId", h.updateCartLine)
		cart.DELETE("/:productId", h.removeFromCart)
		cart.DELETE("", h.clearCart)
		cart.POST("/sync", h.syncCart)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

// requireUser — middleware: без идентичности пользователя маршруты корзины недоступны.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(userIDHeader) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Next()
	}
}

// addRequest — тело POST /cart.
type addRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

// updateRequest — тело PUT /cart/:productId.
type updateRequest struct {
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// syncItem — строка клиентского снапшота; _id — исторический ключ клиента.
type syncItem struct {
	ID       string `json:"_id"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// syncRequest — тело POST /cart/sync.
type syncRequest struct {
	CartItems []syncItem `json:"cartItems"`
}

func (h *Handler) getCart(c *gin.Context) {
	ctx, cancel := h.opCtx(c)
	defer cancel()

	items, err := h.service.GetCart(ctx, c.GetHeader(userIDHeader))
	if err != nil {
		h.respondError(c, "GetCart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}

func (h *Handler) addToCart(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := h.opCtx(c)
	defer cancel()

	items, err := h.service.Add(ctx, c.GetHeader(userIDHeader), domain.LineRequest{
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondError(c, "Add", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}

func (h *Handler) updateCartLine(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty product id"})
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := h.opCtx(c)
	defer cancel()

	items, err := h.service.Update(ctx, c.GetHeader(userIDHeader), domain.LineRequest{
		ProductID: productID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondError(c, "Update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}

func (h *Handler) removeFromCart(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty product id"})
		return
	}

	ctx, cancel := h.opCtx(c)
	defer cancel()

	items, err := h.service.Remove(ctx, c.GetHeader(userIDHeader), productID, c.Query("size"))
	if err != nil {
		h.respondError(c, "Remove", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}

func (h *Handler) clearCart(c *gin.Context) {
	ctx, cancel := h.opCtx(c)
	defer cancel()

	items, err := h.service.Clear(ctx, c.GetHeader(userIDHeader))
	if err != nil {
		h.respondError(c, "Clear", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}

func (h *Handler) syncCart(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snapshot := make([]domain.LineRequest, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		snapshot = append(snapshot, domain.LineRequest{
			ProductID: item.ID,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	ctx, cancel := h.opCtx(c)
	defer cancel()

	items, diags, err := h.service.Sync(ctx, c.GetHeader(userIDHeader), snapshot)
	if err != nil {
		h.respondError(c, "Sync", err)
		return
	}

	resp := gin.H{"cartItems": items}
	if len(diags) > 0 {
		resp["validationMessages"] = diags
	}
	c.JSON(http.StatusOK, resp)
}

// respondError — отказ валидации уходит как 400 с машиночитаемой причиной
// (никогда не обобщается до «request failed»), системная ошибка — как 500
// без деталей.
func (h *Handler) respondError(c *gin.Context, op string, err error) {
	if rej, ok := validate.AsRejection(err); ok {
		body := gin.H{
			"error":     rej.Error(),
			"reason":    string(rej.Reason),
			"productId": rej.ProductID,
		}
		if rej.Size != domain.NoSize {
			body["size"] = rej.Size
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	h.log.Errorf(c.Request.Context(), "%s failed err=%v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// opCtx — контекст операции с таймаутом обработчика (если настроен).
func (h *Handler) opCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.handlerTimeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.handlerTimeout)
}
