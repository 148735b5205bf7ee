package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rosterdesk/internal/cohort"
	"rosterdesk/internal/roster"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type studentView struct {
	roster.StudentRecord
	Initials string        `json:"initials"`
	Cohort   cohort.Cohort `json:"cohort"`
}

func viewOf(rec roster.StudentRecord) studentView {
	return studentView{StudentRecord: rec, Initials: roster.Initials(rec.Name), Cohort: cohort.Classify(rec)}
}

func positiveQuery(c *gin.Context, key string, fallback int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func (h *Handler) listStudents(c *gin.Context) {
	page, err := positiveQuery(c, "page", 1)
	if err != nil {
		badRequest(c, err)
		return
	}
	perPage, err := positiveQuery(c, "per_page", defaultPerPage)
	if err != nil {
		badRequest(c, err)
		return
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var only *cohort.Cohort
	if v := c.Query("cohort"); v != "" {
		co, ok := cohort.Parse(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown cohort " + strconv.Quote(v)})
			return
		}
		only = &co
	}

	records, err := h.svc.Students(c.Request.Context(), only)
	if err != nil {
		internalError(c, "list students", err)
		return
	}

	// compare before multiplying so huge pages cannot overflow
	start := len(records)
	if page-1 <= len(records)/perPage {
		start = min((page-1)*perPage, len(records))
	}
	end := start + perPage
	if end > len(records) {
		end = len(records)
	}
	views := make([]studentView, 0, end-start)
	for _, rec := range records[start:end] {
		views = append(views, viewOf(rec))
	}
	c.JSON(http.StatusOK, gin.H{
		"students": views,
		"page":     page,
		"per_page": perPage,
		"total":    len(records),
	})
}

func (h *Handler) getStudent(c *gin.Context) {
	rec, ok, err := h.svc.Student(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "get student", err)
		return
	}
	if !ok {
		notFound(c, "student")
		return
	}
	c.JSON(http.StatusOK, viewOf(rec))
}

func (h *Handler) addStudent(c *gin.Context) {
	rec, err := roster.DecodeRecord(c.Request.Body)
	if err != nil {
		badRequest(c, err)
		return
	}
	rec, err = h.svc.Add(c.Request.Context(), rec)
	if err != nil {
		rosterError(c, "add student", err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(rec))
}

func (h *Handler) updateStudent(c *gin.Context) {
	var patch roster.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	rec, found, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		rosterError(c, "update student", err)
		return
	}
	if !found {
		notFound(c, "student")
		return
	}
	c.JSON(http.StatusOK, viewOf(rec))
}

func (h *Handler) setAttendance(c *gin.Context) {
	var req struct {
		Present *bool `json:"present" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rec, found, err := h.svc.SetAttendance(c.Request.Context(), c.Param("id"), *req.Present)
	if err != nil {
		rosterError(c, "set attendance", err)
		return
	}
	if !found {
		notFound(c, "student")
		return
	}
	c.JSON(http.StatusOK, viewOf(rec))
}

func (h *Handler) toggleAttendance(c *gin.Context) {
	rec, found, err := h.svc.ToggleAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		rosterError(c, "toggle attendance", err)
		return
	}
	if !found {
		notFound(c, "student")
		return
	}
	c.JSON(http.StatusOK, viewOf(rec))
}

func (h *Handler) deleteStudent(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "delete student", err)
		return
	}
	if !deleted {
		notFound(c, "student")
		return
	}
	c.Status(http.StatusNoContent)
}
