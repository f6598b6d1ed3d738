package handler

import (
	"encoding/json"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

func toAnalysisResponse(a *domain.Analysis) analysisResponse {
	resp := analysisResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		ProductName: a.ProductName,
		ModuleCode:  a.ModuleCode,
		Status:      string(a.Status),
		Score:       a.Score,
		Analysis:    a.Result,
		CreatedAt:   a.CreatedAt,
		CompletedAt: a.CompletedAt,
	}
	if a.Category != "" {
		category := a.Category
		resp.Category = &category
	}
	if resp.Analysis == nil {
		resp.Analysis = json.RawMessage("null")
	}
	return resp
}

func toAnalysisList(list []*domain.Analysis) []analysisResponse {
	out := make([]analysisResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAnalysisResponse(a))
	}
	return out
}

func toAlertList(list []*domain.Alert) []alertResponse {
	out := make([]alertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAlertResponse(a))
	}
	return out
}

func toAlertResponse(a *domain.Alert) alertResponse {
	return alertResponse{
		ID:        a.ID,
		Type:      string(a.Type),
		Title:     a.Title,
		Message:   a.Message,
		IsRead:    a.IsRead,
		CreatedAt: a.CreatedAt,
	}
}
