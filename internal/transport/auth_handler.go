package transport

import (
	"errors"
	"net/http"

	"crimson-pos/internal/middleware"
	"crimson-pos/internal/repository"
	"crimson-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// CheckResponse is returned for a verified bearer token
type CheckResponse struct {
	Authenticated bool  `json:"authenticated"`
	UserID        int64 `json:"userId"`
}

// AuthHandler handles HTTP requests for account sign-in
type AuthHandler struct {
	users  service.UserService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		logger: logger,
	}
}

// RegisterRoutes registers the auth routes; rateLimit guards signup and login
func (h *AuthHandler) RegisterRoutes(r chi.Router, rateLimit, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
		})

		r.With(authMiddleware).Get("/check", h.Check)
	})
}

// Signup handles account creation
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !bindJSON(w, r, &req, h.logger) {
		return
	}

	result, err := h.users.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			h.logger.Debug("Signup rejected, email taken")
			middleware.RespondWithError(w, http.StatusBadRequest, "Email already registered")
			return
		}

		h.logger.Error("Signup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Signup failed: "+err.Error())
		return
	}

	h.logger.Info("User signed up", zap.Int64("user_id", result.User.ID))
	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !bindJSON(w, r, &req, h.logger) {
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Debug("Login failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}

		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Login failed: "+err.Error())
		return
	}

	h.logger.Info("User logged in", zap.Int64("user_id", result.User.ID))
	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Check confirms the bearer token verified by the auth middleware
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CheckResponse{Authenticated: true, UserID: userID})
}
