package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dealboard/internal/discussion"
	"dealboard/internal/repository"
	"dealboard/internal/service"
)

type CommentHandler struct {
	Service *service.CommentService
	Logger  *zap.Logger
}

func (h *CommentHandler) Register(r *gin.Engine, write ...gin.HandlerFunc) {
	r.GET("/api/deals/:slug/comments", h.listComments)
	r.POST("/api/deals/:slug/comments", append(write, h.addComment)...)
	r.POST("/api/comments/:id/vote", append(write, h.voteComment)...)
}

// @Summary Get a deal's comment thread
// @Tags comments
// @Param slug path string true "deal slug"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/deals/{slug}/comments [get]
func (h *CommentHandler) listComments(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	nodes, err := h.Service.Thread(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Error(c, http.StatusNotFound, "deal not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Warn("list comments failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to list comments", nil)
		return
	}
	if nodes == nil {
		nodes = []*discussion.Node{}
	}
	Ok(c, nodes, nil)
}

type commentRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
	Author   string  `json:"author"`
	Content  string  `json:"content"`
}

// @Summary Post a comment or reply
// @Tags comments
// @Param slug path string true "deal slug"
// @Param comment body commentRequest true "comment"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/deals/{slug}/comments [post]
func (h *CommentHandler) addComment(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	comment, err := h.Service.AddComment(c.Request.Context(), c.Param("slug"), req.ParentID, req.Author, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			Error(c, http.StatusNotFound, "deal not found", nil)
		case errors.Is(err, service.ErrEmptyComment),
			errors.Is(err, discussion.ErrUnknownComment),
			errors.Is(err, discussion.ErrWrongDeal):
			Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			if h.Logger != nil {
				h.Logger.Warn("add comment failed", zap.Error(err))
			}
			Error(c, http.StatusInternalServerError, "failed to add comment", nil)
		}
		return
	}
	Created(c, comment)
}

// @Summary Vote on a comment
// @Tags comments
// @Param id path string true "comment id"
// @Param vote body voteRequest true "up or down"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/comments/{id}/vote [post]
func (h *CommentHandler) voteComment(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	votes, err := h.Service.VoteComment(c.Request.Context(), c.Param("id"), req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadDirection):
			Error(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, repository.ErrNotFound):
			Error(c, http.StatusNotFound, "comment not found", nil)
		default:
			if h.Logger != nil {
				h.Logger.Warn("vote comment failed", zap.Error(err))
			}
			Error(c, http.StatusInternalServerError, "failed to vote", nil)
		}
		return
	}
	Ok(c, gin.H{"votes": votes}, nil)
}
