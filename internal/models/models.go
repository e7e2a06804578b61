package models

import "time"

// ============================================
// Auth DTOs
// ============================================

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=64,alphanumunicode"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"omitempty,min=2,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	User         MemberResponse `json:"user"`
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken"`
}

// ============================================
// Member DTOs
// ============================================

type MemberResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username,omitempty"`
	Email         string    `json:"email,omitempty"`
	Avatar        *string   `json:"avatar,omitempty"`
	Location      string    `json:"location,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	SkillsOffered []string  `json:"skillsOffered"`
	SkillsWanted  []string  `json:"skillsWanted"`
	Rating        float64   `json:"rating"`
	Availability  *string   `json:"availability,omitempty"`
	IsPublic      bool      `json:"isPublic"`
	TotalSwaps    int       `json:"totalSwaps"`
	Status        string    `json:"status,omitempty"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// ProfileUpdateRequest is a partial edit. Nil fields are left untouched; an
// empty skill list clears it.
type ProfileUpdateRequest struct {
	Name          *string   `json:"name" binding:"omitempty,min=2,max=255"`
	Avatar        *string   `json:"avatar" binding:"omitempty,max=2048"`
	Location      *string   `json:"location" binding:"omitempty,max=255"`
	Bio           *string   `json:"bio" binding:"omitempty,max=2000"`
	Availability  *string   `json:"availability" binding:"omitempty,max=64"`
	IsPublic      *bool     `json:"isPublic"`
	SkillsOffered *[]string `json:"skillsOffered"`
	SkillsWanted  *[]string `json:"skillsWanted"`
}

type RateMemberRequest struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

// ============================================
// Swap Request DTOs
// ============================================

type CreateSwapRequest struct {
	TargetUserID   string `json:"targetUserId" binding:"required"`
	OfferedSkill   string `json:"offeredSkill" binding:"required,skill"`
	RequestedSkill string `json:"requestedSkill" binding:"required,skill"`
	Message        string `json:"message" binding:"max=1000"`
}

type RequestPartyResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

type SwapRequestResponse struct {
	ID             string               `json:"id"`
	FromUser       RequestPartyResponse `json:"fromUser"`
	ToUser         RequestPartyResponse `json:"toUser"`
	ToUserID       string               `json:"toUserId"`
	OfferedSkill   string               `json:"offeredSkill"`
	RequestedSkill string               `json:"requestedSkill"`
	Message        *string              `json:"message,omitempty"`
	Status         string               `json:"status"`
	DecidedAt      *time.Time           `json:"decidedAt,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ============================================
// Notification DTOs
// ============================================

type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Read      bool           `json:"read"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type NotificationCountResponse struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// ============================================
// Common
// ============================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
