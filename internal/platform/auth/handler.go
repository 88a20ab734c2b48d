package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	verifier CredentialVerifier
	issuer   *TokenIssuer
}

func NewHandler(verifier CredentialVerifier, issuer *TokenIssuer) *Handler {
	return &Handler{verifier: verifier, issuer: issuer}
}

// RegisterRoutes mounts the login endpoint on an unauthenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	if err := h.verifier.Verify(req.Password); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid password")
	}
	token, expires, err := h.issuer.Issue(time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}
