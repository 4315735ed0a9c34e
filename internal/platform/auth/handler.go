package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	users   *UserStore
	issuer  *Issuer
	revoked *TokenRevocationStore
}

func NewHandler(users *UserStore, issuer *Issuer, revoked *TokenRevocationStore) *Handler {
	return &Handler{users: users, issuer: issuer, revoked: revoked}
}

// RegisterRoutes mounts signup/login on the public group and the
// session-bound endpoints on the protected group.
func (h *Handler) RegisterRoutes(public *echo.Group, protected *echo.Group) {
	public.POST("/auth/signup", h.Signup)
	public.POST("/auth/login", h.Login)

	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)
	protected.GET("/admin/access", h.AdminAccess)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

func (h *Handler) Signup(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password required")
	}
	u, err := h.users.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.session(c, http.StatusCreated, "user registered successfully", u)
}

func (h *Handler) Login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password required")
	}
	u, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return h.session(c, http.StatusOK, "login successful", u)
}

func (h *Handler) session(c echo.Context, status int, msg string, u *User) error {
	token, exp, err := h.issuer.Issue(u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(status, sessionResponse{Message: msg, Token: token, ExpiresAt: exp, User: u})
}

func (h *Handler) Logout(c echo.Context) error {
	if claims := ClaimsFromContext(c.Request().Context()); claims != nil && claims.ID != "" {
		exp := time.Now()
		if claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}
		h.revoked.Revoke(claims.ID, exp)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logout successful"})
}

func (h *Handler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	roles := RolesFromContext(ctx)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":       UserIDFromContext(ctx),
			"email":    EmailFromContext(ctx),
			"roles":    roles,
			"is_admin": containsRole(roles, RoleAdmin),
		},
	})
}

func (h *Handler) AdminAccess(c echo.Context) error {
	if !containsRole(RolesFromContext(c.Request().Context()), RoleAdmin) {
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"error":      "access denied",
			"has_access": false,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "admin access granted",
		"has_access": true,
	})
}
