package handler

import (
	"encoding/json"
	"time"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

// --- Requests ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin analyst support intern"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createAnalysisRequest struct {
	ProductName string `json:"productName" validate:"required,max=200"`
	Category    string `json:"category" validate:"max=100"`
	ModuleCode  string `json:"moduleCode" validate:"omitempty,max=16"`
}

type broadcastAlertRequest struct {
	Type    string `json:"type" validate:"required,oneof=warning info success"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

// chatRequest is validated by hand so a missing message gets its own reply.
type chatRequest struct {
	Message string `json:"message"`
}

// --- Responses ---

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type analysisResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	ProductName string          `json:"productName"`
	Category    *string         `json:"category"`
	ModuleCode  string          `json:"moduleCode"`
	Status      string          `json:"status"`
	Score       *int            `json:"score"`
	Analysis    json.RawMessage `json:"analysis"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt"`
}

type startAnalysisResponse struct {
	Success  bool            `json:"success"`
	Score    int             `json:"score"`
	Analysis json.RawMessage `json:"analysis"`
}

type alertResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type dashboardStatsResponse struct {
	TotalModules   int    `json:"totalModules"`
	ActiveModules  int    `json:"activeModules"`
	ActiveUsers    int    `json:"activeUsers"`
	AIRatio        string `json:"aiRatio"`
	SystemStatus   string `json:"systemStatus"`
	Uptime         string `json:"uptime"`
	TotalAnalyses  int64  `json:"totalAnalyses"`
	PendingCount   int64  `json:"pendingCount"`
	CompletedCount int64  `json:"completedCount"`
}

type moduleResponse struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}
