package handler

import (
	"net/http"

	"usergate/api/middleware"
	"usergate/internal/dto"
	"usergate/internal/service"
	"usergate/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service   *service.AuthService
	JWT       *utils.JWTManager
	Validator *validator.Validate
}

func NewAuthHandler(svc *service.AuthService, jwt *utils.JWTManager, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{Service: svc, JWT: jwt, Validator: validate}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.LoginResponse{Token: result.Token})
}

func (h *AuthHandler) Validate(c echo.Context) error {
	token := middleware.ExtractBearerToken(c.Request())
	if token == "" {
		return c.JSON(http.StatusUnauthorized, map[string]any{"valid": false, "message": "no token provided"})
	}
	claims, err := h.JWT.ParseAccessToken(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"valid": false, "message": "invalid token"})
	}
	return c.JSON(http.StatusOK, dto.ValidateResponse{
		Valid: true,
		User: &dto.TokenUser{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		},
	})
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validator == nil {
		return nil
	}
	return h.Validator.Struct(payload)
}
