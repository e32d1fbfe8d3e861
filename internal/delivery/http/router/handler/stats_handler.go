package handler

import (
	"net/http"

	"wasul/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StatsHandler holds dependencies for the statistics endpoint.
type StatsHandler struct {
	statsUC usecase.StatsUsecase
}

// NewStatsHandler is the constructor for StatsHandler, injected by Fx.
func NewStatsHandler(statsUC usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// Stats returns the aggregate service counters.
func (h *StatsHandler) Stats(c echo.Context) error {
	stats, err := h.statsUC.Collect(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, stats)
}

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
