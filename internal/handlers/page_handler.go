package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"userhub/internal/middleware"
	"userhub/internal/services"
)

// PageHandler serves the server-rendered login and registration forms. The
// forms call the same services as the JSON API and communicate outcomes via
// ?success and ?error query flags.
type PageHandler struct {
	authService *services.AuthService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(authService *services.AuthService) *PageHandler {
	return &PageHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the form routes with the Fiber app.
func (h *PageHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/login", h.LoginForm)
	app.Post("/login", h.Login)
	app.Get("/registration", h.RegistrationForm)
	app.Post("/registration", h.Register)
}

func queryFlag(c *fiber.Ctx, name string) bool {
	_, ok := c.Queries()[name]
	return ok
}

// LoginForm renders the login page.
func (h *PageHandler) LoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Error":   queryFlag(c, "error"),
		"Success": queryFlag(c, "success"),
	})
}

// Login authenticates the submitted form and redirects.
func (h *PageHandler) Login(c *fiber.Ctx) error {
	sid := middleware.EnsureSession(c)
	username := c.FormValue("username")
	password := c.FormValue("password")

	if _, err := h.authService.Login(sid, username, password); err != nil {
		return c.Redirect("/login?error")
	}
	return c.Redirect("/")
}

// RegistrationForm renders the registration page.
func (h *PageHandler) RegistrationForm(c *fiber.Ctx) error {
	return c.Render("registration", fiber.Map{
		"Error": queryFlag(c, "error"),
	})
}

// Register creates the account from the submitted form and redirects to the
// login page on success.
func (h *PageHandler) Register(c *fiber.Ctx) error {
	age, _ := strconv.Atoi(c.FormValue("age"))
	_, err := h.authService.Register(services.RegisterInput{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
		Name:     c.FormValue("name"),
		LastName: c.FormValue("lastName"),
		Age:      age,
	})
	if err != nil {
		return c.Redirect("/registration?error")
	}
	return c.Redirect("/login?success")
}
