package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Marga-Ghale/skill-swap/internal/models"
	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/service"
	"github.com/Marga-Ghale/skill-swap/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth         *AuthHandler
	Member       *MemberHandler
	Profile      *ProfileHandler
	Request      *RequestHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	RegisterValidators()
	return &Handlers{
		Auth:         &AuthHandler{authService: services.Auth},
		Member:       &MemberHandler{memberService: services.Member},
		Profile:      &ProfileHandler{profileService: services.Profile},
		Request:      &RequestHandler{requestService: services.Request},
		Notification: &NotificationHandler{notificationService: services.Notification},
	}
}

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("skill", validateSkill)
		}
	})
}

// validateSkill accepts a non-blank skill name of at most MaxSkillLength runes.
func validateSkill(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s != "" && utf8.RuneCountInString(s) <= types.MaxSkillLength
}

// ============================================
// Error Mapping
// ============================================

type apiError struct {
	status  int
	code    string
	message string
}

var errorTable = []struct {
	err error
	api apiError
}{
	{service.ErrInvalidCredentials, apiError{http.StatusUnauthorized, "invalid_credentials", "Invalid email or password"}},
	{service.ErrInvalidToken, apiError{http.StatusUnauthorized, "invalid_token", "Invalid or expired token"}},
	{service.ErrUserExists, apiError{http.StatusConflict, "user_exists", "An account with this email already exists"}},
	{service.ErrUsernameTaken, apiError{http.StatusConflict, "username_taken", "This username is already taken"}},
	{service.ErrUserNotFound, apiError{http.StatusNotFound, "not_found", "Member not found"}},
	{service.ErrRequestNotFound, apiError{http.StatusNotFound, "not_found", "Swap request not found"}},
	{service.ErrNotificationNotFound, apiError{http.StatusNotFound, "not_found", "Notification not found"}},
	{service.ErrNotRecipient, apiError{http.StatusForbidden, "forbidden", "Only the recipient can accept or reject this request"}},
	{service.ErrRatingNotAllowed, apiError{http.StatusForbidden, "forbidden", "You can only rate members you have swapped with"}},
	{service.ErrRequestDecided, apiError{http.StatusConflict, "request_decided", "This request has already been decided"}},
	{service.ErrDuplicateRequest, apiError{http.StatusConflict, "duplicate_request", "A matching request is already pending"}},
	{service.ErrSelfRequest, apiError{http.StatusBadRequest, "invalid_input", "You cannot send a swap request to yourself"}},
	{service.ErrSelfRating, apiError{http.StatusBadRequest, "invalid_input", "You cannot rate yourself"}},
	{service.ErrSkillNotOffered, apiError{http.StatusBadRequest, "invalid_input", "The offered skill is not listed on your profile"}},
	{service.ErrSkillNotAvailable, apiError{http.StatusBadRequest, "invalid_input", "This member does not offer the requested skill"}},
}

// respondError maps service errors to status codes and a JSON body.
func respondError(c *gin.Context, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			c.JSON(e.api.status, models.ErrorResponse{Error: e.api.code, Message: e.api.message})
			return
		}
	}
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}

	_ = c.Error(err)
	slog.Error("request_failed",
		slog.String("component", "http"),
		slog.String("path", c.Request.URL.Path),
		slog.Any("error", err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal_error", Message: "Something went wrong. Please try again."})
}

// respondBindError reports a malformed or invalid request body.
func respondBindError(c *gin.Context, err error) {
	message := "Invalid request body"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field() + " (" + fe.Tag() + ")"
		}
		message = "Invalid fields: " + strings.Join(fields, ", ")
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_input", Message: message})
}

// ============================================
// Response Mappers
// ============================================

// toMemberResponse is the public view of a member.
func toMemberResponse(u *repository.User) models.MemberResponse {
	return models.MemberResponse{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Avatar:        u.Avatar,
		Location:      u.Location,
		Bio:           u.Bio,
		SkillsOffered: safeStringSlice(u.SkillsOffered),
		SkillsWanted:  safeStringSlice(u.SkillsWanted),
		Rating:        u.Rating.InexactFloat64(),
		Availability:  u.Availability,
		IsPublic:      u.IsPublic,
		TotalSwaps:    u.TotalSwaps,
		Status:        u.Status,
		JoinedAt:      u.CreatedAt,
	}
}

// toProfileResponse is the caller's own view, including the email.
func toProfileResponse(u *repository.User) models.MemberResponse {
	resp := toMemberResponse(u)
	resp.Email = u.Email
	return resp
}

func toRequestResponse(r *repository.SwapRequest) models.SwapRequestResponse {
	return models.SwapRequestResponse{
		ID: r.ID,
		FromUser: models.RequestPartyResponse{
			ID:     r.FromUserID,
			Name:   r.FromName,
			Avatar: r.FromAvatar,
		},
		ToUser: models.RequestPartyResponse{
			ID:     r.ToUserID,
			Name:   r.ToName,
			Avatar: r.ToAvatar,
		},
		ToUserID:       r.ToUserID,
		OfferedSkill:   r.OfferedSkill,
		RequestedSkill: r.RequestedSkill,
		Message:        r.Message,
		Status:         r.Status,
		DecidedAt:      r.DecidedAt,
		CreatedAt:      r.CreatedAt,
	}
}

func toRequestResponses(requests []*repository.SwapRequest) []models.SwapRequestResponse {
	response := make([]models.SwapRequestResponse, len(requests))
	for i, r := range requests {
		response[i] = toRequestResponse(r)
	}
	return response
}

func toNotificationResponse(n *repository.Notification) models.NotificationResponse {
	return models.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}

// Helper to ensure nil slices become empty slices
func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
