package handler

import (
	"net/http"
	"strings"

	"library-cms/internal/audit"
	"library-cms/internal/auth"
	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	auth AuthService
	rec  recorder
}

func NewAuthHandler(svc AuthService, auditLogger AuditLogger) *AuthHandler {
	return &AuthHandler{auth: svc, rec: recorder{audit: auditLogger}}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return apperrors.Validation(msgEmailPasswordRequired)
	}

	token, u, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.rec.record(c, audit.ResourceTypeUser, audit.ActionLogin, nil, err)
		return err
	}
	h.rec.record(c, audit.ResourceTypeUser, audit.ActionLogin, &u.ID, nil)

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  u,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.auth.Me(c.Request().Context(), auth.GetActor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
