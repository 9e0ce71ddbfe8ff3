package projection

import (
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/thermod/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the query routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/current", s.HandleCurrent)
	r.GET("/stats", s.HandleStats)
	r.GET("/stats/hourly", s.HandleHourly)
	r.GET("/stats/daily", s.HandleDaily)
}

// HandleCurrent handles GET /current.
func (s *Service) HandleCurrent(c *gin.Context) {
	c.JSON(http.StatusOK, s.Current())
}

// HandleStats handles GET /stats
// Query parameters: start, end
func (s *Service) HandleStats(c *gin.Context) {
	q := bindStatsQuery(c)

	readings, err := s.Readings(c.Request.Context(), q)
	if err != nil {
		databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

// HandleHourly handles GET /stats/hourly
// Query parameters: start, end
func (s *Service) HandleHourly(c *gin.Context) {
	aggs, err := s.Hourly(c.Request.Context(), bindStatsQuery(c))
	if err != nil {
		databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggs)
}

// HandleDaily handles GET /stats/daily
// Query parameters: start, end
func (s *Service) HandleDaily(c *gin.Context) {
	aggs, err := s.Daily(c.Request.Context(), bindStatsQuery(c))
	if err != nil {
		databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggs)
}

// bindStatsQuery never fails: bad bounds fall back in ResolveRange.
func bindStatsQuery(c *gin.Context) StatsQuery {
	var q StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		slog.Debug("[Query] Ignoring malformed query string", "error", err)
	}
	return q
}

func databaseError(c *gin.Context, err error) {
	slog.Error("[Query] Store query failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		Error: httperr.HttpDatabaseError,
	})
}
