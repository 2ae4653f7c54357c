package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/middleware"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/services"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest, meta services.LoginMeta) (*models.LoginResult, error)
	CurrentUser(ctx context.Context, claims *services.Claims) (*models.User, error)
	Logout(ctx context.Context, claims *services.Claims)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	CreateAdmin(ctx context.Context) (*models.User, error)
	ResetAdmin(ctx context.Context) (*models.User, error)
}

type AuthController struct {
	service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return apperror.Validation("Invalid request body")
	}

	result, err := ac.service.Login(c.Request().Context(), req, services.LoginMeta{IP: c.RealIP()})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Token:   result.Token,
		Data:    result.User,
	})
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c echo.Context) error {
	user, err := ac.service.CurrentUser(c.Request().Context(), middleware.GetClaims(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.OK(user))
}

// Logout handles GET|POST /api/auth/logout. The client discards its token.
func (ac *AuthController) Logout(c echo.Context) error {
	ac.service.Logout(c.Request().Context(), middleware.GetClaims(c))
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    struct{}{},
		Message: "Logged out successfully",
	})
}

// Register handles POST /api/auth/register (admin only).
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	user, err := ac.service.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.OK(user))
}

func (ac *AuthController) CreateAdmin(c echo.Context) error {
	user, err := ac.service.CreateAdmin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Data:    user,
		Message: "Admin user created",
	})
}

func (ac *AuthController) ResetAdmin(c echo.Context) error {
	user, err := ac.service.ResetAdmin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    user,
		Message: "Admin user reset to default credentials",
	})
}
