package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campus/entities"
	"campus/pkg/auth/controller"
	"campus/pkg/auth/service"
)

type AuthCtrl struct{ svc service.AuthService }

func New(svc service.AuthService) controller.AuthController { return &AuthCtrl{svc} }

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthCtrl) Signup(c echo.Context) error {
	var req service.Signup
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	u, err := h.svc.Signup(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *AuthCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	token, u, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         u,
	})
}

func (h *AuthCtrl) Me(c echo.Context) error {
	u, ok := c.Get("user").(*entities.User)
	if !ok || u == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, u)
}
