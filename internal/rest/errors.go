package rest

import (
	"errors"
	"net/http"
	"strconv"

	"myLocalMarket/domain"
	"myLocalMarket/internal/middleware"
	"myLocalMarket/pkg/logger"
	jsonres "myLocalMarket/pkg/response"
	"myLocalMarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors onto HTTP statuses.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateFavorite):
		return c.JSON(http.StatusConflict, jsonres.NewNotice(
			"DUPLICATE_FAVORITE", "This store is already in your favorites",
		))
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, jsonres.Error("NOT_FOUND", err.Error(), nil))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", err.Error(), nil))
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownAction),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil))
	default:
		logger.Error("Request failed", "path", c.Path(), err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_ERROR", "internal server error", nil,
		))
	}
}

func badRequest(c echo.Context, message string, details any) error {
	return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", message, details))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// currentCustomer returns the id of the signed-in customer. Routes using it sit
// behind AuthMiddleware and CustomerOnly.
func currentCustomer(c echo.Context) (uint, bool) {
	return middleware.UserID(c)
}

// viewerFrom treats only signed-in customers as authenticated viewers; sellers
// and anonymous visitors get the anonymous view.
func viewerFrom(c echo.Context) domain.Viewer {
	id, ok := middleware.UserID(c)
	if !ok || middleware.Role(c) != utils.RoleCustomer {
		return domain.AnonymousViewer()
	}
	return domain.CustomerViewer(id)
}
