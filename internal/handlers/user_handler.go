package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"userhub/internal/models"
	"userhub/internal/services"
)

// UserHandler handles HTTP requests for user CRUD.
type UserHandler struct {
	userService *services.UserService
	roleService *services.RoleService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, roleService *services.RoleService) *UserHandler {
	return &UserHandler{
		userService: userService,
		roleService: roleService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user CRUD routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("", h.HandleList)
	userRoutes.Get("/:id", h.HandleGet)
	userRoutes.Post("", h.HandleCreate)
	userRoutes.Put("/:id", h.HandleUpdate)
	userRoutes.Delete("/:id", h.HandleDelete)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// HandleList returns all users.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return domainError(c, err, "User not found")
	}

	userList := make([]fiber.Map, 0, len(users))
	for i := range users {
		userList = append(userList, userJSON(&users[i]))
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"count":  len(userList),
		"users":  userList,
	})
}

// HandleGet returns one user by id.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user id")
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		return domainError(c, err, "User not found")
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"user":   userJSON(user),
	})
}

// CreateUserRequest represents the request body for admin user creation.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Age      int    `json:"age"`
	RoleIDs  []uint `json:"roleIds"`
}

// HandleCreate creates a user with an explicit role set.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Username and password are required")
	}

	roles := make([]models.Role, 0, len(req.RoleIDs))
	for _, roleID := range req.RoleIDs {
		role, err := h.roleService.FindByID(roleID)
		if err != nil {
			// An unresolvable role id makes the create request malformed.
			if errors.Is(err, services.ErrNotFound) {
				return errorJSON(c, fiber.StatusBadRequest, err.Error())
			}
			return domainError(c, err, "Role not found")
		}
		roles = append(roles, *role)
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		LastName: req.LastName,
		Age:      req.Age,
		Roles:    roles,
	}
	if err := h.userService.SaveUser(user); err != nil {
		return domainError(c, err, "User not found")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

// UpdateUserRequest represents the request body for a partial user update.
// Absent fields keep their stored values.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
	Age      *int    `json:"age"`
	RoleIDs  *[]uint `json:"roleIds"`
}

// HandleUpdate applies a partial update and optionally replaces the role set.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		return domainError(c, err, "User not found")
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Password != nil && *req.Password != "" {
		user.Password = *req.Password
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Age != nil {
		user.Age = *req.Age
	}

	if err := h.userService.SaveUser(user); err != nil {
		return domainError(c, err, "User not found")
	}

	if req.RoleIDs != nil {
		if err := h.userService.UpdateUserRoles(id, *req.RoleIDs); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return errorJSON(c, fiber.StatusBadRequest, err.Error())
			}
			return domainError(c, err, "User not found")
		}
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User updated successfully",
	})
}

// HandleDelete removes a user by id.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user id")
	}

	if err := h.userService.DeleteUser(id); err != nil {
		return domainError(c, err, "User not found")
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User deleted successfully",
	})
}
