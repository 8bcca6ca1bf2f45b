package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dealboard/internal/cart"
)

// SessionHeader carries the cart session key. The server issues one on first
// contact and echoes it back on every cart response.
const SessionHeader = "X-Cart-Session"

type CartHandler struct {
	Ledger *cart.Ledger
	Logger *zap.Logger
}

func (h *CartHandler) Register(r *gin.Engine) {
	group := r.Group("/api/cart")
	group.GET("", h.getCart)
	group.POST("/items", h.addItem)
	group.PUT("/items/:id", h.updateQuantity)
	group.DELETE("/items/:id", h.removeItem)
	group.DELETE("", h.clearCart)
}

type cartView struct {
	Items      []cart.Item     `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func viewOf(items []cart.Item) cartView {
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{
		Items:      items,
		TotalItems: cart.TotalItems(items),
		TotalPrice: cart.TotalPrice(items),
	}
}

func (h *CartHandler) session(c *gin.Context) string {
	session := strings.TrimSpace(c.GetHeader(SessionHeader))
	if session == "" {
		session = uuid.New().String()
	}
	c.Header(SessionHeader, session)
	return session
}

// @Summary Get the cart
// @Tags cart
// @Param X-Cart-Session header string false "cart session"
// @Success 200 {object} apiResponse
// @Router /api/cart [get]
func (h *CartHandler) getCart(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	session := h.session(c)
	items, err := h.Ledger.Items(c.Request.Context(), session)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("load cart failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to load cart", nil)
		return
	}
	Ok(c, viewOf(items), nil)
}

// @Summary Add an item to the cart
// @Tags cart
// @Param X-Cart-Session header string false "cart session"
// @Param item body cart.Item true "cart line"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/cart/items [post]
func (h *CartHandler) addItem(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var item cart.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(item.ID) == "" {
		Error(c, http.StatusBadRequest, "item id required", nil)
		return
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	session := h.session(c)
	items, err := h.Ledger.AddItem(c.Request.Context(), session, item)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("add cart item failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to update cart", nil)
		return
	}
	Ok(c, viewOf(items), nil)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// @Summary Set a cart line's quantity
// @Tags cart
// @Param X-Cart-Session header string false "cart session"
// @Param id path string true "item id"
// @Param quantity body quantityRequest true "new quantity; zero or below removes the line"
// @Success 200 {object} apiResponse
// @Router /api/cart/items/{id} [put]
func (h *CartHandler) updateQuantity(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	session := h.session(c)
	items, err := h.Ledger.UpdateQuantity(c.Request.Context(), session, c.Param("id"), req.Quantity)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("update cart quantity failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to update cart", nil)
		return
	}
	Ok(c, viewOf(items), nil)
}

// @Summary Remove a cart line
// @Tags cart
// @Param X-Cart-Session header string false "cart session"
// @Param id path string true "item id"
// @Success 200 {object} apiResponse
// @Router /api/cart/items/{id} [delete]
func (h *CartHandler) removeItem(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	session := h.session(c)
	items, err := h.Ledger.RemoveItem(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("remove cart item failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to update cart", nil)
		return
	}
	Ok(c, viewOf(items), nil)
}

// @Summary Clear the cart
// @Tags cart
// @Param X-Cart-Session header string false "cart session"
// @Success 200 {object} apiResponse
// @Router /api/cart [delete]
func (h *CartHandler) clearCart(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	session := h.session(c)
	if err := h.Ledger.ClearCart(c.Request.Context(), session); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("clear cart failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to clear cart", nil)
		return
	}
	Ok(c, viewOf(nil), nil)
}
