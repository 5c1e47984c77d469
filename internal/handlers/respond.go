package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"userhub/internal/models"
	"userhub/internal/services"
)

// errorJSON writes the uniform error envelope.
func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// domainError maps the service failure taxonomy to HTTP statuses. The
// duplicate-username case maps to 400 because that is what the API contract
// returns for conflicting registrations.
func domainError(c *fiber.Ctx, err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, notFoundMessage)
	case errors.Is(err, services.ErrConflict):
		return errorJSON(c, fiber.StatusBadRequest, "Username is already taken")
	case errors.Is(err, services.ErrValidation):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrBadCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid username or password")
	default:
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
}

// userJSON shapes a user for API responses. The password hash never appears
// here.
func userJSON(u *models.User) fiber.Map {
	return fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"name":     u.Name,
		"lastName": u.LastName,
		"age":      u.Age,
		"roles":    u.RoleNames(),
	}
}
