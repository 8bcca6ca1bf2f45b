package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dealboard/internal/ranking"
	"dealboard/internal/repository"
	"dealboard/internal/service"
	"dealboard/internal/submission"
)

type DealHandler struct {
	Query  *service.DealQueryService
	Submit *service.DealSubmitService
	Vote   *service.VoteService
	Logger *zap.Logger

	DefaultPageSize int
	MaxPageSize     int
}

func (h *DealHandler) Register(r *gin.Engine, write ...gin.HandlerFunc) {
	group := r.Group("/api/deals")
	group.GET("", h.listDeals)
	group.GET("/:slug", h.getDeal)
	group.POST("", append(write, h.createDeal)...)
	group.POST("/:slug/vote", append(write, h.voteDeal)...)
	r.GET("/api/categories", h.listCategories)
}

// @Summary List deals
// @Tags deals
// @Param category query string false "category slug"
// @Param hot query bool false "hot deals only"
// @Param verified query bool false "verified deals only"
// @Param q query string false "search query"
// @Param min_price query number false "minimum deal price"
// @Param max_price query number false "maximum deal price"
// @Param sort query string false "newest|hottest|price_asc|price_desc|most_upvoted|deal_score"
// @Param limit query int false "page size"
// @Param page query int false "page (1-based)"
// @Success 200 {object} apiResponse
// @Router /api/deals [get]
func (h *DealHandler) listDeals(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", h.DefaultPageSize)
	if limit <= 0 {
		limit = h.DefaultPageSize
	}
	if h.MaxPageSize > 0 && limit > h.MaxPageSize {
		limit = h.MaxPageSize
	}
	page := intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}

	result, err := h.Query.ListDeals(c.Request.Context(), repository.ListDealsParams{
		Category:     strings.TrimSpace(c.Query("category")),
		HotOnly:      boolQueryDefault(c, "hot", false),
		VerifiedOnly: boolQueryDefault(c, "verified", false),
		Query:        strings.TrimSpace(c.Query("q")),
		PriceMin:     decimalQueryPtr(c, "min_price"),
		PriceMax:     decimalQueryPtr(c, "max_price"),
		Sort:         ranking.ParseSortOption(c.Query("sort")),
		Limit:        limit,
		Offset:       (page - 1) * limit,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list deals failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to list deals", nil)
		return
	}
	Ok(c, result.Items, pageMeta(limit, page, result.Total))
}

// @Summary Get one deal by slug
// @Tags deals
// @Param slug path string true "deal slug"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/deals/{slug} [get]
func (h *DealHandler) getDeal(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	deal, err := h.Query.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Error(c, http.StatusNotFound, "deal not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Warn("get deal failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to get deal", nil)
		return
	}
	Ok(c, deal, nil)
}

// @Summary Submit a deal
// @Tags deals
// @Param deal body submission.Submission true "deal candidate"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/deals [post]
func (h *DealHandler) createDeal(c *gin.Context) {
	if h.Submit == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var sub submission.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	deal, err := h.Submit.Submit(c.Request.Context(), sub)
	if err != nil {
		var verr *submission.ValidationError
		if errors.As(err, &verr) {
			Error(c, http.StatusBadRequest, "validation failed", map[string]any{
				"fields": verr.Fields,
			})
			return
		}
		if h.Logger != nil {
			h.Logger.Warn("create deal failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to create deal", nil)
		return
	}
	Created(c, deal)
}

type voteRequest struct {
	Direction string `json:"direction"`
}

// @Summary Vote on a deal
// @Tags deals
// @Param slug path string true "deal slug"
// @Param vote body voteRequest true "up or down"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/deals/{slug}/vote [post]
func (h *DealHandler) voteDeal(c *gin.Context) {
	if h.Query == nil || h.Vote == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	deal, err := h.Query.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Error(c, http.StatusNotFound, "deal not found", nil)
			return
		}
		Error(c, http.StatusInternalServerError, "failed to get deal", nil)
		return
	}
	voted, err := h.Vote.VoteDeal(c.Request.Context(), deal.ID, req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadDirection):
			Error(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, repository.ErrNotFound):
			Error(c, http.StatusNotFound, "deal not found", nil)
		default:
			if h.Logger != nil {
				h.Logger.Warn("vote deal failed", zap.Error(err))
			}
			Error(c, http.StatusInternalServerError, "failed to vote", nil)
		}
		return
	}
	Ok(c, voted, nil)
}

// @Summary List category filter entries
// @Tags deals
// @Success 200 {object} apiResponse
// @Router /api/categories [get]
func (h *DealHandler) listCategories(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	names, err := h.Query.CategoryNames(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list categories failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to list categories", nil)
		return
	}
	Ok(c, names, nil)
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryDefault(c *gin.Context, key string, def bool) bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func decimalQueryPtr(c *gin.Context, key string) *decimal.Decimal {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return &d
		}
	}
	return nil
}

func pageMeta(limit, page int, total int64) map[string]any {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return map[string]any{
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": pages,
	}
}
