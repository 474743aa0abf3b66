package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler holds shared dependencies for all route handlers. The controller
// owns every piece of business logic; handlers only translate HTTP.
type Handler struct {
	controller *logController
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/snapshot", h.getSnapshot)
	api.POST("/profile", h.submitProfile)
	api.POST("/log/food", h.logFood)
	api.POST("/log/exercise", h.logExercise)
	api.DELETE("/log/:slot/:index", h.removeLoggedEntry)
	api.GET("/catalog", h.getCatalog)
	api.GET("/catalog/search", h.searchCatalog)
}

// getSnapshot returns the render-ready session state.
// GET /api/snapshot.
func (h *Handler) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.currentSnapshot())
}

// submitProfile validates and stores the physical profile, deriving the daily
// target expenditure. Responds with the refreshed snapshot so the client can
// re-render in one round trip.
// POST /api/profile.
func (h *Handler) submitProfile(c *gin.Context) {
	var body submitProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.controller.submitProfile(c.Request.Context(), body); err != nil {
		var ve *validationError
		if errors.As(err, &ve) {
			apiError(c, http.StatusBadRequest, ve.Error())
			return
		}
		apiError(c, http.StatusInternalServerError, "failed to submit profile")
		return
	}

	c.JSON(http.StatusOK, h.controller.currentSnapshot())
}

// logFood adds a catalog match to a meal slot. A blank query is silently
// ignored (204, nothing changed); an unmatched query is a 404 the client
// surfaces as a prompt.
// POST /api/log/food.
func (h *Handler) logFood(c *gin.Context) {
	var body logFoodRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.controller.logFood(c.Request.Context(), body.Slot, body.Query); err != nil {
		switch {
		case errors.Is(err, errEmptyInput):
			c.Status(http.StatusNoContent)
		case errors.Is(err, errFoodNotFound):
			apiError(c, http.StatusNotFound, "no food in the catalog matches that name, try another")
		case errors.Is(err, errUnknownSlot):
			apiError(c, http.StatusBadRequest, "slot must be one of: breakfast, lunch, dinner")
		default:
			apiError(c, http.StatusInternalServerError, "failed to log food")
		}
		return
	}

	c.JSON(http.StatusOK, h.controller.currentSnapshot())
}

// logExercise adds an activity entry.
// POST /api/log/exercise.
func (h *Handler) logExercise(c *gin.Context) {
	var body logExerciseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.controller.logExercise(c.Request.Context(), body.Description, body.Calories); err != nil {
		var ve *validationError
		if errors.As(err, &ve) {
			apiError(c, http.StatusBadRequest, ve.Error())
			return
		}
		apiError(c, http.StatusInternalServerError, "failed to log exercise")
		return
	}

	c.JSON(http.StatusOK, h.controller.currentSnapshot())
}

// removeLoggedEntry deletes an entry by slot and position.
// DELETE /api/log/:slot/:index.
func (h *Handler) removeLoggedEntry(c *gin.Context) {
	slot := c.Param("slot")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "index must be an integer")
		return
	}

	if err := h.controller.removeLoggedEntry(c.Request.Context(), slot, index); err != nil {
		switch {
		case errors.Is(err, errUnknownSlot):
			apiError(c, http.StatusBadRequest, "slot must be one of: breakfast, lunch, dinner, exercise")
		case errors.Is(err, errIndexOutOfRange):
			apiError(c, http.StatusBadRequest, "no entry at that position")
		default:
			apiError(c, http.StatusInternalServerError, "failed to remove entry")
		}
		return
	}

	c.JSON(http.StatusOK, h.controller.currentSnapshot())
}

// getCatalog returns the full reference table for browsing.
// GET /api/catalog.
func (h *Handler) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.catalog.entries())
}

// searchCatalog returns every catalog entry whose name contains q.
// GET /api/catalog/search?q=雞.
func (h *Handler) searchCatalog(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		apiError(c, http.StatusBadRequest, "q query param is required")
		return
	}
	c.JSON(http.StatusOK, h.controller.catalog.search(q))
}
