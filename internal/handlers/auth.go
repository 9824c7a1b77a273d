package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gerald0n/finmoni-api/internal/config"
	"github.com/gerald0n/finmoni-api/internal/oauth"
	"github.com/gerald0n/finmoni-api/internal/services"
	"github.com/gerald0n/finmoni-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	cfg         *config.Config
	authService AuthServiceInterface
	userService UserServiceInterface
	jwtService  JWTServiceInterface
	google      oauth.Provider
	states      sync.Map
}

type stateData struct {
	expiresAt time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	authService AuthServiceInterface,
	userService UserServiceInterface,
	jwtService JWTServiceInterface,
) *AuthHandler {
	h := &AuthHandler{
		cfg:         cfg,
		authService: authService,
		userService: userService,
		jwtService:  jwtService,
	}

	if cfg.Google.ClientID != "" {
		h.google = oauth.NewGoogleProvider(cfg.Google)
	}

	go h.cleanupStates()

	return h
}

func (h *AuthHandler) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.states.Range(func(key, value interface{}) bool {
			if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
				h.states.Delete(key)
			}
			return true
		})
	}
}

func (h *AuthHandler) SignUp(c *drift.Context) {
	var req dto.SignUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" || req.Email == "" {
		c.BadRequest("name and email are required")
		return
	}
	if len(req.Password) < 8 {
		c.BadRequest("password must be at least 8 characters")
		return
	}

	ctx := context.Background()

	user, err := h.authService.SignUp(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			_ = c.JSON(409, map[string]string{"error": err.Error()})
			return
		}
		c.InternalServerError("failed to create account")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	_ = c.JSON(201, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

func (h *AuthHandler) SignIn(c *drift.Context) {
	var req dto.SignInRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	pair, err := h.authService.SignIn(context.Background(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Unauthorized("invalid email or password")
			return
		}
		c.InternalServerError("failed to sign in")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

func (h *AuthHandler) Refresh(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid or expired refresh token")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

func (h *AuthHandler) GoogleConsentURL(c *drift.Context) {
	if h.google == nil {
		c.BadRequest("google sign-in is not configured")
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(10 * time.Minute)})

	_ = c.JSON(200, dto.ConsentURLResponse{URL: h.google.GetConsentURL(state)})
}

func (h *AuthHandler) GoogleCallback(c *drift.Context) {
	if h.google == nil {
		c.BadRequest("google sign-in is not configured")
		return
	}

	state := c.QueryParam("state")
	if _, ok := h.states.LoadAndDelete(state); !ok {
		c.BadRequest("invalid or expired state")
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		c.BadRequest("missing authorization code")
		return
	}

	ctx := context.Background()

	info, err := h.google.ExchangeCode(ctx, code)
	if err != nil {
		c.Unauthorized("failed to authenticate with google")
		return
	}

	user, err := h.userService.FindOrCreateFromOAuth(ctx, info)
	if err != nil {
		c.InternalServerError("failed to sign in")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}
