package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

// ErrorResponse is the error envelope the dashboard UI reads.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// fail renders known domain errors directly. Anything else becomes a 500 whose
// cause is logged by the HTTP error handler and never shown to the client.
// fallback is the user-facing message for the endpoint.
func fail(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnknownModule):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: fallback, Error: err.Error()})
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Analiz bulunamadı"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Analiz zaten tamamlanmış"})
	case errors.Is(err, domain.ErrAnalysisInProgress):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Analiz zaten işleniyor"})
	case errors.Is(err, domain.ErrAlertNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Uyarı bulunamadı"})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Message: "Kullanıcı adı veya e-posta zaten kayıtlı"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Geçersiz kullanıcı adı veya şifre"})
	case errors.Is(err, domain.ErrUserNotFound):
		return echo.ErrUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Message: "Bu işlem için yetkiniz yok"})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
}

// bindAndValidate decodes the body and runs struct validation. On failure it
// renders a 400 with fallback as the message and reports false.
func bindAndValidate(c echo.Context, req any, fallback string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Message: fallback, Error: "invalid payload"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Message: fallback, Error: err.Error()})
	}
	return true, nil
}
