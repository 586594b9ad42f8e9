package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myLocalMarket/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type LeaderboardService interface {
	RankCustomers(ctx context.Context, limit int) ([]domain.CustomerRanking, error)
	RankSellers(ctx context.Context, limit int) ([]domain.SellerRanking, error)
}

type LeaderboardHandler struct {
	leaderboardService LeaderboardService
	timeout            time.Duration
}

func NewLeaderboardHandler(leaderboardService LeaderboardService, timeout time.Duration) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		timeout:            timeout,
	}
}

func (h *LeaderboardHandler) Customers(c echo.Context) error {
	limit, err := limitParam(c)
	if err != nil {
		return badRequest(c, "limit must be a positive integer", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rankings, err := h.leaderboardService.RankCustomers(ctx, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rankings))
}

func (h *LeaderboardHandler) Sellers(c echo.Context) error {
	limit, err := limitParam(c)
	if err != nil {
		return badRequest(c, "limit must be a positive integer", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rankings, err := h.leaderboardService.RankSellers(ctx, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rankings))
}

// limitParam returns 0 when the query omits limit, leaving the default to the
// service.
func limitParam(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, strconv.ErrSyntax
	}

	return limit, nil
}
