package handlers

import (
	"github.com/gofiber/fiber/v2"

	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/pkg/hash"
)

// DebugHandler exposes the /api/test diagnostics. These endpoints
// intentionally leak password hashes and accept plaintext in query strings;
// they exist for operator debugging and must never be mounted in a hardened
// deployment.
type DebugHandler struct {
	userRepo repositories.UserRepository
}

// NewDebugHandler creates a new DebugHandler.
func NewDebugHandler(userRepo repositories.UserRepository) *DebugHandler {
	return &DebugHandler{
		userRepo: userRepo,
	}
}

// RegisterRoutes registers the diagnostic routes with the Fiber app.
func (h *DebugHandler) RegisterRoutes(router fiber.Router) {
	testRoutes := router.Group("/test")
	testRoutes.Get("/check-password", h.HandleCheckPassword)
	testRoutes.Get("/check-hash", h.HandleCheckHash)
	testRoutes.Get("/check-admin-password", h.HandleCheckAdminPassword)
	testRoutes.Get("/generate-hash", h.HandleGenerateHash)
	testRoutes.Post("/create-admin", h.HandleCreateAdmin)
	testRoutes.Get("/users-info", h.HandleUsersInfo)
}

func (h *DebugHandler) checkUserPassword(c *fiber.Ctx, username, password string) error {
	user, err := h.userRepo.GetByUsername(username)
	if err != nil {
		return c.JSON(fiber.Map{"found": false, "message": err.Error()})
	}
	if user == nil {
		return c.JSON(fiber.Map{
			"found":   false,
			"message": "User not found: " + username,
		})
	}

	matches := hash.Matches(password, user.Password)
	message := "Password is incorrect"
	if matches {
		message = "Password is correct"
	}
	return c.JSON(fiber.Map{
		"found":            true,
		"username":         user.Username,
		"storedHash":       user.Password,
		"passwordProvided": password,
		"matches":          matches,
		"message":          message,
	})
}

// HandleCheckPassword verifies a user's password against the stored hash.
func (h *DebugHandler) HandleCheckPassword(c *fiber.Ctx) error {
	return h.checkUserPassword(c, c.Query("username"), c.Query("password"))
}

// HandleCheckHash verifies an arbitrary password/hash pair.
func (h *DebugHandler) HandleCheckHash(c *fiber.Ctx) error {
	password := c.Query("password")
	hashed := c.Query("hash")
	if password == "" || hashed == "" {
		return c.JSON(fiber.Map{
			"error": "Both 'password' and 'hash' parameters are required",
		})
	}

	matches := hash.Matches(password, hashed)
	message := "Hash does not match password"
	if matches {
		message = "Hash matches password"
	}
	return c.JSON(fiber.Map{
		"password": password,
		"hash":     hashed,
		"matches":  matches,
		"message":  message,
	})
}

// HandleCheckAdminPassword verifies the admin account's password.
func (h *DebugHandler) HandleCheckAdminPassword(c *fiber.Ctx) error {
	return h.checkUserPassword(c, "admin", c.Query("password"))
}

// HandleGenerateHash returns a fresh bcrypt hash for the given password.
func (h *DebugHandler) HandleGenerateHash(c *fiber.Ctx) error {
	password := c.Query("password")
	hashed, err := hash.Encode(password)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"password":     password,
		"hash":         hashed,
		"verification": hash.Matches(password, hashed),
		"sqlForInsert": "UPDATE users SET password = '" + hashed + "' WHERE username = 'admin';",
	})
}

// HandleCreateAdmin recreates the admin account with the well-known debug
// password.
func (h *DebugHandler) HandleCreateAdmin(c *fiber.Ctx) error {
	if existing, err := h.userRepo.GetByUsername("admin"); err == nil && existing != nil {
		if err := h.userRepo.Delete(existing.ID); err != nil {
			return c.JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
	}

	hashed, err := hash.Encode("admin123")
	if err != nil {
		return c.JSON(fiber.Map{"status": "error", "message": err.Error()})
	}
	admin := &models.User{
		Username: "admin",
		Password: hashed,
		Name:     "Admin",
		LastName: "Adminov",
		Age:      30,
	}
	if err := h.userRepo.Create(admin); err != nil {
		return c.JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	check := hash.Matches("admin123", admin.Password)
	verificationMessage := "Password verification failed"
	if check {
		verificationMessage = "Password verification successful"
	}
	return c.JSON(fiber.Map{
		"status":              "success",
		"message":             "Admin created: admin / admin123",
		"username":            "admin",
		"password":            "admin123",
		"hash":                admin.Password,
		"verification":        check,
		"verificationMessage": verificationMessage,
	})
}

// HandleUsersInfo dumps all users including their stored hashes.
func (h *DebugHandler) HandleUsersInfo(c *fiber.Ctx) error {
	users, err := h.userRepo.GetAll()
	if err != nil {
		return c.JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	userList := make([]fiber.Map, 0, len(users))
	for i := range users {
		u := &users[i]
		userList = append(userList, fiber.Map{
			"id":           u.ID,
			"username":     u.Username,
			"name":         u.Name,
			"lastName":     u.LastName,
			"age":          u.Age,
			"passwordHash": u.Password,
			"hashLength":   len(u.Password),
			"roles":        u.RoleNames(),
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"count":  len(userList),
		"users":  userList,
	})
}
