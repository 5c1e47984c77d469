package handlers

import (
	"github.com/gofiber/fiber/v2"

	"userhub/internal/services"
)

// RoleHandler handles HTTP requests for role lookups. All routes are
// admin-gated.
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// RegisterRoutes registers the role routes, guarded by requireAdmin.
func (h *RoleHandler) RegisterRoutes(router fiber.Router, requireAdmin fiber.Handler) {
	roleRoutes := router.Group("/roles", requireAdmin)
	roleRoutes.Get("", h.HandleList)
	roleRoutes.Get("/:id", h.HandleGet)
}

// HandleList returns all roles.
func (h *RoleHandler) HandleList(c *fiber.Ctx) error {
	roles, err := h.roleService.GetAllRoles()
	if err != nil {
		return domainError(c, err, "Role not found")
	}

	roleList := make([]fiber.Map, 0, len(roles))
	for _, role := range roles {
		roleList = append(roleList, fiber.Map{
			"id":   role.ID,
			"name": role.Name,
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"roles":  roleList,
	})
}

// HandleGet returns one role by id.
func (h *RoleHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid role id")
	}

	role, err := h.roleService.FindByID(id)
	if err != nil {
		return domainError(c, err, "Role not found")
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"role": fiber.Map{
			"id":   role.ID,
			"name": role.Name,
		},
	})
}
