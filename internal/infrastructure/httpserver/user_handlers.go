package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cartline/storefront/go/internal/core/domain/user"
	"github.com/cartline/storefront/go/internal/infrastructure/httpserver/helpers"
)

// User handlers
func (s *Server) getOwnProfile(c echo.Context) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}

	u, err := s.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateOwnProfile(c echo.Context) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}

	var req user.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, err := s.userService.UpdateProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) deactivateOwnAccount(c echo.Context) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}

	if err := s.userService.DeactivateUser(c.Request().Context(), userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to deactivate account")
	}
	return c.NoContent(http.StatusNoContent)
}
