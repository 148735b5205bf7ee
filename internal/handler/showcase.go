package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rosterdesk/internal/showcase"
)

type projectView struct {
	showcase.Project
	DifficultyColor string `json:"difficultyColor"`
	CategoryColor   string `json:"categoryColor"`
}

func (h *Handler) topStudents(c *gin.Context) {
	limit, err := positiveQuery(c, "limit", 3)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"students": h.fixtures.TopStudents(limit),
		"metrics":  h.fixtures.Metrics,
		"skills":   h.fixtures.Skills,
	})
}

func (h *Handler) topProjects(c *gin.Context) {
	views := make([]projectView, 0, len(h.fixtures.Projects))
	for _, p := range h.fixtures.Projects {
		views = append(views, projectView{
			Project:         p,
			DifficultyColor: showcase.DifficultyColor(p.Difficulty),
			CategoryColor:   showcase.CategoryColor(p.Category),
		})
	}
	c.JSON(http.StatusOK, gin.H{"projects": views})
}

func (h *Handler) sections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": h.fixtures.Sections})
}

func (h *Handler) listDedications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dedications": h.board.List()})
}

func (h *Handler) addDedication(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.board.Add(req.Title, req.Text)
	if errors.Is(err, showcase.ErrEmptyMessage) {
		badRequest(c, err)
		return
	}
	if err != nil {
		internalError(c, "add dedication", err)
		return
	}
	c.JSON(http.StatusCreated, d)
}
