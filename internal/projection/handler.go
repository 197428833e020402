package projection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/gridwatch-lab/outage-events/internal/core/errors"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/v1/events", s.HandleListEvents)
}

// HandleListEvents handles GET /api/v1/events
// Query parameters: controller_id, outage_type, start_time, end_time, limit, skip
func (s *Service) HandleListEvents(c *gin.Context) {
	var query EventQueryRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	events, err := s.List(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid event query",
				Details:   err.Error(),
			})
		case errors.Is(err, storage.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpStoreUnavailableError,
				Message:   "Event store unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to query events",
				Details:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, events)
}
