package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"userhub/internal/middleware"
	"userhub/internal/services"
)

// AuthHandler handles HTTP requests for registration and session
// authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", h.HandleMe)
	authRoutes.Post("/logout", h.HandleLogout)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Age      int    `json:"age"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Username and password are required")
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		LastName: req.LastName,
		Age:      req.Age,
	})
	if err != nil {
		return domainError(c, err, "User not found")
	}

	return c.JSON(fiber.Map{
		"status":   "success",
		"message":  "User registered successfully",
		"userId":   user.ID,
		"username": user.Username,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and binds the session on success.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Username and password are required")
	}

	sid := middleware.EnsureSession(c)
	user, err := h.authService.Login(sid, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCredentials) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		return domainError(c, err, "User not found")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User logged in successfully",
		"user":    userJSON(user),
	})
}

// HandleMe returns the user bound to the current session.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	user, err := h.authService.CurrentUser(sid)
	if err != nil {
		return domainError(c, err, "User not found")
	}
	if user == nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"user":   userJSON(user),
	})
}

// HandleLogout clears the session's security context and expires the cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if sid := middleware.SessionID(c); sid != "" {
		if err := h.authService.Logout(sid); err != nil {
			return domainError(c, err, "User not found")
		}
	}
	middleware.ExpireSessionCookie(c)

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Logged out successfully",
	})
}
