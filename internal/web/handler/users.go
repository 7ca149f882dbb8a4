package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventops/rooming-dashboard/internal/apiclient"
	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/pkg/validate"
	"github.com/eventops/rooming-dashboard/internal/query"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type UsersHandler struct {
	Base
	users *query.Users
}

func NewUsersHandler(b Base, users *query.Users) *UsersHandler {
	return &UsersHandler{Base: b, users: users}
}

// List renders one page of users with the search, role and page query.
func (h *UsersHandler) List(c echo.Context) error {
	return h.renderList(c, http.StatusOK, listParams(c), view.UserForm{Role: string(domain.RoleUser)}, "")
}

// Create handles the new-user form. Failures re-render the list with the
// submitted values and an inline message.
func (h *UsersHandler) Create(c echo.Context) error {
	req := domain.CreateUserRequest{
		Email:     strings.TrimSpace(c.FormValue("email")),
		FirstName: strings.TrimSpace(c.FormValue("firstName")),
		LastName:  strings.TrimSpace(c.FormValue("lastName")),
		Password:  c.FormValue("password"),
		Role:      domain.UserRole(c.FormValue("role")),
	}

	_, err := h.users.Create(c.Request().Context(), req)
	if err != nil {
		if code, ok := inlineStatus(err); ok {
			form := view.UserForm{Email: req.Email, FirstName: req.FirstName, LastName: req.LastName, Role: string(req.Role)}
			return h.renderList(c, code, listParams(c), form, Message(err))
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/users?notice=created")
}

// Detail renders one user. A missing user is reported inline.
func (h *UsersHandler) Detail(c echo.Context) error {
	id := c.Param("id")
	u, err := h.users.Get(c.Request().Context(), id)
	if errors.Is(err, apiclient.ErrNotFound) {
		p := h.Page("User not found", "users", view.UserDetail{ID: id, NotFound: true})
		p.Error = "User not found"
		return Render(c, http.StatusNotFound, "user_detail", p)
	}
	if err != nil {
		return err
	}
	p := h.Page(u.FullName, "users", view.UserDetail{ID: id, User: u})
	p.Notice = notice(c)
	return Render(c, http.StatusOK, "user_detail", p)
}

// Update applies the edit form. Unchanged text fields are still sent.
func (h *UsersHandler) Update(c echo.Context) error {
	id := c.Param("id")
	first := strings.TrimSpace(c.FormValue("firstName"))
	last := strings.TrimSpace(c.FormValue("lastName"))
	role := domain.UserRole(c.FormValue("role"))
	active := c.FormValue("isActive") == "on"

	req := domain.UpdateUserRequest{FirstName: &first, LastName: &last, IsActive: &active}
	if role != "" {
		req.Role = &role
	}

	if _, err := h.users.Update(c.Request().Context(), id, req); err != nil {
		code, ok := inlineStatus(err)
		if !ok {
			return err
		}
		u, getErr := h.users.Get(c.Request().Context(), id)
		if getErr != nil {
			return getErr
		}
		p := h.Page(u.FullName, "users", view.UserDetail{ID: id, User: u})
		p.Error = Message(err)
		return Render(c, code, "user_detail", p)
	}
	return c.Redirect(http.StatusSeeOther, "/users/"+url.PathEscape(id)+"?notice=updated")
}

func (h *UsersHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/users?notice=deleted")
}

// BulkDelete removes every checked row of the list.
func (h *UsersHandler) BulkDelete(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := h.users.BulkDelete(c.Request().Context(), form["ids"]); err != nil {
		if code, ok := inlineStatus(err); ok {
			return h.renderList(c, code, listParams(c), view.UserForm{Role: string(domain.RoleUser)}, Message(err))
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/users?notice=bulk")
}

func (h *UsersHandler) UploadAvatar(c echo.Context) error {
	id := c.Param("id")
	fh, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := h.users.UploadAvatar(c.Request().Context(), id, fh.Filename, f); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/users/"+url.PathEscape(id)+"?notice=avatar")
}

func (h *UsersHandler) renderList(c echo.Context, code int, params domain.ListUsersParams, form view.UserForm, errMsg string) error {
	page, err := h.users.List(c.Request().Context(), params)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) || errors.Is(err, apiclient.ErrForbidden) {
			return err
		}
		errMsg = Message(err)
	}

	data := view.NewUserList(page, params)
	data.Form = form
	p := h.Page("Users", "users", data)
	p.Error = errMsg
	if errMsg == "" {
		p.Notice = notice(c)
	}
	return Render(c, code, "users", p)
}

// inlineStatus decides whether err belongs on the form rather than the
// error page, and with which status.
func inlineStatus(err error) (int, bool) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return 0, false
	}
	if code, ok := apiclient.StatusCode(err); ok {
		if code == http.StatusBadRequest || code == http.StatusConflict || code == http.StatusUnprocessableEntity {
			return http.StatusUnprocessableEntity, true
		}
		return 0, false
	}
	var ve *validate.Error
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

func listParams(c echo.Context) domain.ListUsersParams {
	return domain.ListUsersParams{
		Page:   queryInt(c, "page", defaultPage),
		Limit:  queryInt(c, "limit", defaultLimit),
		Search: strings.TrimSpace(c.QueryParam("search")),
		Role:   domain.UserRole(c.QueryParam("role")),
	}
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}
