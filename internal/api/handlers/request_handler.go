package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/skill-swap/internal/api/middleware"
	"github.com/Marga-Ghale/skill-swap/internal/models"
	"github.com/Marga-Ghale/skill-swap/internal/service"
	"github.com/Marga-Ghale/skill-swap/internal/types"
	"github.com/gin-gonic/gin"
)

// ============================================
// Swap Request Handler
// ============================================

type RequestHandler struct {
	requestService service.RequestService
}

// ListIncoming returns requests addressed to the caller, newest first.
func (h *RequestHandler) ListIncoming(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListIncoming(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRequestResponses(requests))
}

func (h *RequestHandler) ListSent(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListSent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRequestResponses(requests))
}

func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.requestService.Create(c.Request.Context(), userID, service.NewSwapRequest{
		TargetUserID:   req.TargetUserID,
		OfferedSkill:   req.OfferedSkill,
		RequestedSkill: req.RequestedSkill,
		Message:        req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRequestResponse(created))
}

func (h *RequestHandler) Accept(c *gin.Context) {
	h.decide(c, types.RequestAccepted)
}

func (h *RequestHandler) Reject(c *gin.Context) {
	h.decide(c, types.RequestRejected)
}

func (h *RequestHandler) decide(c *gin.Context, status string) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	decided, err := h.requestService.Decide(c.Request.Context(), userID, c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRequestResponse(decided))
}
