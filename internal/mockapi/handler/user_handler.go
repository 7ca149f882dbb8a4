package handler

import (
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/core/ports"
)

const (
	defaultPage   = 1
	defaultLimit  = 10
	maxAvatarSize = 2 << 20
)

// PasswordHasher turns a plaintext password into a stored hash.
type PasswordHasher func(password string) (string, error)

type UserHandler struct {
	repo ports.UserRepository
	hash PasswordHasher
}

func NewUserHandler(repo ports.UserRepository, hash PasswordHasher) *UserHandler {
	return &UserHandler{repo: repo, hash: hash}
}

// List returns one page of users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "1-based page"
// @Param        limit   query  int     false  "page size"
// @Param        search  query  string  false  "matches first name, last name or email"
// @Param        role    query  string  false  "admin, user or moderator"
// @Success      200  {object}  domain.UsersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page := queryInt(c, "page", defaultPage)
	limit := queryInt(c, "limit", defaultLimit)

	users, total, err := h.repo.List(c.Request().Context(), ports.UserFilter{
		Search: c.QueryParam("search"),
		Role:   domain.UserRole(c.QueryParam("role")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domain.UsersResponse{Users: users, Total: total, Page: page, Limit: limit})
}

// Get returns a single user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "user id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create registers a new account.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateUserRequest  true  "new user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req domain.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hash, err := h.hash(req.Password)
	if err != nil {
		return err
	}

	user, err := h.repo.Create(c.Request().Context(), domain.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}, hash)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update changes the mutable fields of a user.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "user id"
// @Param        body  body      domain.UpdateUserRequest  true  "fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]any
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req domain.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.repo.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user. Admin only.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "user id"
// @Success      200  {object}  domain.MessageResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.MessageResponse{Message: "User deleted successfully"})
}

// BulkDelete removes several users at once. Admin only.
//
// @Summary      Bulk delete users
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.BulkDeleteRequest  true  "ids to delete"
// @Success      200   {object}  domain.BulkDeleteResponse
// @Failure      400   {object}  map[string]any
// @Router       /users/bulk-delete [post]
func (h *UserHandler) BulkDelete(c echo.Context) error {
	var req domain.BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	n, err := h.repo.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.BulkDeleteResponse{Message: "Users deleted successfully", Deleted: n})
}

// UploadAvatar accepts a multipart file under "avatar" and records its URL.
//
// @Summary      Upload avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "user id"
// @Param        avatar  formData  file    true  "image"
// @Success      200     {object}  domain.User
// @Failure      400     {object}  map[string]any
// @Router       /users/{id}/avatar [post]
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.repo.FindByID(c.Request().Context(), id); err != nil {
		return err
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}
	if file.Size > maxAvatarSize {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("avatar must be at most %d bytes", maxAvatarSize))
	}

	url := fmt.Sprintf("/avatars/%s/%s", id, path.Base(file.Filename))
	user, err := h.repo.Update(c.Request().Context(), id, domain.UpdateUserRequest{Avatar: &url})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func queryInt(c echo.Context, name string, def int) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n < 1 {
		return def
	}
	return n
}
