package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cartline/storefront/go/internal/core/domain/review"
	"github.com/cartline/storefront/go/internal/core/domain/user"
	"github.com/cartline/storefront/go/internal/infrastructure/httpserver/helpers"
)

// Review handlers
func (s *Server) listProductReviews(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID")
	}

	reviews, err := s.reviewSvc.ListProductReviews(c.Request().Context(), productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list reviews")
	}
	return c.JSON(http.StatusOK, reviews)
}

func (s *Server) createReview(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID")
	}

	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}

	var req review.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	r, err := s.reviewSvc.CreateReview(c.Request().Context(), productID, userID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (s *Server) deleteReview(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review ID")
	}

	claims, err := helpers.GetClaims(c)
	if err != nil {
		return err
	}
	isAdmin := claims.Role == user.RoleAdmin.String()

	if err := s.reviewSvc.DeleteReview(c.Request().Context(), id, claims.UserID, isAdmin); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
