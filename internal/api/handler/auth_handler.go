package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/api/metrics"
	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	const msg = "Kayıt oluşturulamadı"
	var req registerRequest
	if ok, err := bindAndValidate(c, &req, msg); !ok {
		return err
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return fail(c, err, msg)
	}

	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	const msg = "Giriş yapılamadı"
	var req loginRequest
	if ok, err := bindAndValidate(c, &req, msg); !ok {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			outcome = "invalid_credentials"
		}
		metrics.LoginsTotal.WithLabelValues(outcome).Inc()
		return fail(c, err, msg)
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout revokes the bearer token of the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401
// @Failure      500  {object}  ErrorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenID, expiresAt := ctxToken(c)
	if tokenID == "" {
		return echo.ErrUnauthorized
	}
	if err := h.authService.Logout(c.Request().Context(), tokenID, expiresAt); err != nil {
		return fail(c, err, "Çıkış yapılamadı")
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401
// @Router       /user [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err, "Kullanıcı bilgisi alınamadı")
	}
	return c.JSON(http.StatusOK, user)
}
