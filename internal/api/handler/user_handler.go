package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/admindesk/directory-system/internal/core/ports"
)

// UserHandler handles the directory CRUD surface.
type UserHandler struct {
	service ports.DirectoryService
}

func NewUserHandler(service ports.DirectoryService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users. Backend failures are absorbed by the
// coordinator, so this always answers 200 with a page shape; a non-empty
// error field signals the degradation.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "1-based page"
// @Param        pageSize   query  int     false  "page size (default 10)"
// @Param        search     query  string  false  "substring over names and email"
// @Param        role       query  string  false  "exact role filter"
// @Param        status     query  string  false  "exact status filter"
// @Param        sortBy     query  string  false  "sort field key"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Success      200  {object}  listUsersResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	q := ports.ListQuery{
		Search:    c.QueryParam("search"),
		Role:      c.QueryParam("role"),
		Status:    c.QueryParam("status"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil {
		q.PageSize = v
	}

	page := h.service.FetchUsers(c.Request().Context(), q)

	return c.JSON(http.StatusOK, listUsersResponse{
		Page:  *page,
		Error: h.service.LastError(),
	})
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PATCH /v1/users/:id. Absent fields are left untouched;
// provided fields are merged without re-validation.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Partial user"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	// The coordinator swallows unauthorized updates instead of raising.
	if user == nil {
		return c.JSON(http.StatusForbidden, map[string]string{"error": h.service.LastError()})
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id. Nothing is removed yet: the request
// parks behind the confirmation gate and the client resolves it via the
// confirmation endpoints.
//
// @Summary      Request a user deletion
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      202  {object}  confirmationResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	done, err := h.service.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	// Only a refused delete settles before the confirmation gate runs; a
	// pending one keeps the channel silent until confirm or cancel.
	select {
	case <-done:
		return c.JSON(http.StatusForbidden, map[string]string{"error": h.service.LastError()})
	default:
	}
	return c.JSON(http.StatusAccepted, confirmationResponse{
		Visible: true,
		Title:   "Confirm Delete",
		Message: "Are you sure you want to delete this user? This action cannot be undone.",
	})
}

// Roles handles GET /v1/roles (admin only).
//
// @Summary      List role descriptors
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Role
// @Failure      403  {object}  map[string]string
// @Router       /v1/roles [get]
func (h *UserHandler) Roles(c echo.Context) error {
	roles, err := h.service.FetchRoles(c.Request().Context())
	if err != nil {
		return err
	}
	// nil roles with a recorded error means the coordinator refused the call.
	if roles == nil {
		if msg := h.service.LastError(); msg != "" {
			return c.JSON(http.StatusForbidden, map[string]string{"error": msg})
		}
	}
	return c.JSON(http.StatusOK, roles)
}
