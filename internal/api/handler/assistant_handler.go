package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/api/metrics"
	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

const msgMessageRequired = "Mesaj gerekli"

type AssistantHandler struct {
	service ports.AssistantService
}

func NewAssistantHandler(service ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Chat forwards one message to the AI assistant.
//
// @Summary      AI assistant chat
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Message"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401
// @Failure      500   {object}  ErrorResponse
// @Router       /ai/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		metrics.ChatRequestsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgMessageRequired})
	}

	reply, err := h.service.Chat(c.Request().Context(), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.ChatRequestsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgMessageRequired})
		}
		metrics.ChatRequestsTotal.WithLabelValues("provider_failure").Inc()
		return fail(c, err, "AI asistan yanıt veremedi")
	}
	metrics.ChatRequestsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, chatResponse{
		Response:  reply.Response,
		Timestamp: reply.Timestamp.UTC().Format(time.RFC3339),
	})
}
