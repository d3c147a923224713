package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user profile and role management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile handles GET /api/users/:username.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  ports.UserProfile
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/users/{username} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	username := c.Param("username")

	profile, err := h.service.Profile(c.Request().Context(), sessionCaller(c), username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "profile data accessible only to authenticated users"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "profile data for other users not accessible"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// Self handles GET /api/users/me — the restricted self-service view.
//
// @Summary      Get the caller's own profile (restricted projection)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SelfProfile
// @Failure      401  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Self(c echo.Context) error {
	profile, err := h.service.Self(c.Request().Context(), sessionCaller(c))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "profile data accessible only to authenticated users"})
		}
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/users/:username.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                true  "Username"
// @Param        body      body      updateProfileRequest  true  "Updated profile fields"
// @Success      200       {object}  ports.UserProfile
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/users/{username} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	username := c.Param("username")

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), sessionCaller(c), username, ports.UpdateProfileInput{
		ID:        req.ID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Address:   req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "profile data accessible only to authenticated users"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "profile data for other users not accessible"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: "username or email already taken"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to update profile"})
	}

	return c.JSON(http.StatusOK, profile)
}

// List handles GET /api/users — the full user listing, admins only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.UserProfile
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	profiles, err := h.service.List(c.Request().Context(), sessionCaller(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "user data accessible only to authenticated users"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "user data accessible only to admin users"})
		}
		return err
	}

	return c.JSON(http.StatusOK, profiles)
}

// MakeAdmin handles PUT /api/users/:username/make-admin.
//
// @Summary      Grant the admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  rolesResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/users/{username}/make-admin [put]
func (h *UserHandler) MakeAdmin(c echo.Context) error {
	username := c.Param("username")

	roles, err := h.service.GrantAdmin(c.Request().Context(), sessionCaller(c), username)
	if err != nil {
		return h.roleChangeError(c, err)
	}

	return c.JSON(http.StatusOK, rolesResponse{Roles: strings.Join(roles, ", ")})
}

// RemoveAdmin handles PUT /api/users/:username/remove-admin.
//
// @Summary      Revoke the admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  rolesResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/users/{username}/remove-admin [put]
func (h *UserHandler) RemoveAdmin(c echo.Context) error {
	username := c.Param("username")

	roles, err := h.service.RevokeAdmin(c.Request().Context(), sessionCaller(c), username)
	if err != nil {
		return h.roleChangeError(c, err)
	}

	return c.JSON(http.StatusOK, rolesResponse{Roles: strings.Join(roles, ", ")})
}

func (h *UserHandler) roleChangeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "only authenticated users can change admin privileges"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "user data accessible only to admin users"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}
	return err
}

// Delete handles DELETE /api/users/:username.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      plain
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {string}  string
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/users/{username} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	username := c.Param("username")

	err := h.service.Delete(c.Request().Context(), sessionCaller(c), username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "user data accessible only to authenticated users"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "user data accessible only to admin users"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found in database"})
		}
		return err
	}

	return c.String(http.StatusOK, username+" has been deleted.")
}
