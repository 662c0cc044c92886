package projection

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/perfcube-lab/perfcube/internal/core/aggregation"
	httperr "github.com/perfcube-lab/perfcube/internal/core/errors"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/summary", s.HandleSummary)
	r.GET("/v1/dashboard", s.HandleDashboard)
}

// HandleSummary handles GET /v1/summary
// Query parameters: browser, test (repeatable), platform (repeatable), start, end (YYYY-MM-DD)
func (s *Service) HandleSummary(c *gin.Context) {
	var query struct {
		Browser   string    `form:"browser"`
		Tests     []string  `form:"test"`
		Platforms []string  `form:"platform"`
		Start     time.Time `form:"start" time_format:"2006-01-02" time_utc:"1"`
		End       time.Time `form:"end" time_format:"2006-01-02" time_utc:"1"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Summary(c.Request.Context(), SummaryRequest{
		Browser:   query.Browser,
		Tests:     query.Tests,
		Platforms: query.Platforms,
		Start:     query.Start,
		End:       query.End,
	})
	if err != nil {
		writeError(c, "Failed to compute summary", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleDashboard handles GET /v1/dashboard
// Query parameters: start, end (YYYY-MM-DD)
func (s *Service) HandleDashboard(c *gin.Context) {
	var query struct {
		Start time.Time `form:"start" time_format:"2006-01-02" time_utc:"1"`
		End   time.Time `form:"end" time_format:"2006-01-02" time_utc:"1"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Dashboard(c.Request.Context(), query.Start, query.End)
	if err != nil {
		writeError(c, "Failed to compute dashboard", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func writeError(c *gin.Context, message string, err error) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid summary query",
			Details:   err.Error(),
		})
		return
	}

	var fetchErr *aggregation.FetchError
	if errors.As(err, &fetchErr) {
		c.JSON(http.StatusBadGateway, httperr.ErrorResponse{
			ErrorType: httperr.HttpUpstreamFetchError,
			Message:   "Problem loading records",
			Details: gin.H{
				"request_id": fetchErr.RequestID,
				"condition":  fetchErr.Condition,
				"error":      fetchErr.Err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   message,
		Details:   err.Error(),
	})
}
