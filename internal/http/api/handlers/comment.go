package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/coderemark/coderemark/internal/gateway"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Runner annotates a code snippet in a personality's style.
type Runner interface {
	Run(ctx context.Context, code, personality string) (gateway.Result, error)
}

// CommentRequest is the POST /api/comment body.
type CommentRequest struct {
	Code        string `json:"code"`
	Personality string `json:"personality"`
}

// CommentHandler serves the comment endpoint.
type CommentHandler struct {
	gateway Runner
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(gw Runner) *CommentHandler {
	return &CommentHandler{gateway: gw}
}

// Handle annotates the submitted snippet and maps gateway failures onto
// status codes. Raw upstream detail is logged, never surfaced.
func (h *CommentHandler) Handle(c *gin.Context) {
	var req CommentRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	result, errRun := h.gateway.Run(c.Request.Context(), req.Code, req.Personality)
	if errRun != nil {
		h.writeError(c, errRun)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CommentHandler) writeError(c *gin.Context, err error) {
	if gin.Mode() != gin.ReleaseMode {
		log.WithError(err).Warn("comment request failed")
	}
	switch {
	case errors.Is(err, gateway.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gateway.ErrMissingCredential):
		c.JSON(http.StatusInternalServerError, gin.H{"error": gateway.ErrMissingCredential.Error()})
	case errors.Is(err, gateway.ErrMalformedResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": gateway.ErrMalformedResponse.Error()})
	case errors.Is(err, gateway.ErrQuota):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": gateway.ErrQuota.Error()})
	case errors.Is(err, gateway.ErrUpstream):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": gateway.ErrUpstream.Error()})
	default:
		log.WithError(err).Error("comment request failed unexpectedly")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
