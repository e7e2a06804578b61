package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/skill-swap/internal/api/middleware"
	"github.com/Marga-Ghale/skill-swap/internal/models"
	"github.com/Marga-Ghale/skill-swap/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Profile Handler
// ============================================

type ProfileHandler struct {
	profileService service.ProfileService
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.profileService.Update(c.Request.Context(), userID, service.ProfileChanges{
		Name:          req.Name,
		Avatar:        req.Avatar,
		Location:      req.Location,
		Bio:           req.Bio,
		Availability:  req.Availability,
		IsPublic:      req.IsPublic,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}
