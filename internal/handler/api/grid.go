package api

import (
	"errors"
	"net/http"

	reqdto "fitbook/internal/handler/dto/request"
	resdto "fitbook/internal/handler/dto/response"
	"fitbook/internal/handler/httperr"
	"fitbook/internal/handler/middleware"
	"fitbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type GridHandler struct {
	gridQueries queries.GridQueries
}

func NewGridHandler(gridQueries queries.GridQueries) *GridHandler {
	return &GridHandler{gridQueries: gridQueries}
}

// @Summary Get schedule grid
// @Description Get the resolved slot grid for a date range
// @Tags grid
// @Produce json
// @Security BearerAuth
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param trainer_id query string false "Limit the grid to one trainer's events"
// @Success 200 {object} resdto.GridResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /grid [get]
func (h *GridHandler) GetGrid(c *gin.Context) {
	var req reqdto.GridRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	from, to, err := req.DateRange()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	trainerScope, err := req.TrainerScope()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid trainer ID format",
		})
		return
	}

	grid, err := h.gridQueries.Grid(c.Request.Context(), from, to, trainerScope)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		case errors.Is(err, queries.ErrRangeTooWide):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Date range is too wide",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	role, ok := middleware.GetMemberRole(c)
	includeOccupants := ok && role.CanSeeOccupants()

	c.JSON(http.StatusOK, resdto.FromGridView(grid, includeOccupants))
}
