// Package handler exposes the dashboard over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rosterdesk/internal/catalog"
	"rosterdesk/internal/dashboard"
	"rosterdesk/internal/showcase"
)

// Handler serves the /v1 API.
type Handler struct {
	svc      *dashboard.Service
	clock    *dashboard.Clock
	catalog  *catalog.Catalog
	fixtures *showcase.Fixtures
	board    *showcase.Board
}

// New builds a Handler over the process-wide dashboard state.
func New(svc *dashboard.Service, clock *dashboard.Clock, cat *catalog.Catalog, fx *showcase.Fixtures, board *showcase.Board) *Handler {
	return &Handler{svc: svc, clock: clock, catalog: cat, fixtures: fx, board: board}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/v1")

	v1.GET("/students", h.listStudents)
	v1.POST("/students", h.addStudent)
	v1.GET("/students/:id", h.getStudent)
	v1.PUT("/students/:id", h.updateStudent)
	v1.DELETE("/students/:id", h.deleteStudent)
	v1.PUT("/students/:id/attendance", h.setAttendance)
	v1.POST("/students/:id/attendance/toggle", h.toggleAttendance)

	v1.GET("/stats", h.stats)
	v1.GET("/dashboard", h.dashboard)

	v1.GET("/technologies", h.listTechnologies)
	v1.POST("/technologies", h.addTechnology)
	v1.PUT("/technologies/:id", h.updateTechnology)

	v1.GET("/showcase/students", h.topStudents)
	v1.GET("/showcase/projects", h.topProjects)
	v1.GET("/sections", h.sections)
	v1.GET("/dedications", h.listDedications)
	v1.POST("/dedications", h.addDedication)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		internalError(c, "aggregate", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) dashboard(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		internalError(c, "aggregate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"header": h.clock.Header(), "stats": stats})
}
