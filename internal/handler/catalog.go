package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rosterdesk/internal/catalog"
)

// count accepts either a JSON number or the raw text typed into the form.
type count int

func (n *count) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = count(catalog.ParseCount(s))
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return errors.New("count must be a number")
	}
	*n = count(v)
	return nil
}

type techRequest struct {
	Tech     string `json:"tech"`
	FullTime count  `json:"fullTime"`
	PartTime count  `json:"partTime"`
}

func (h *Handler) listTechnologies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rows": h.catalog.List(), "totals": h.catalog.Totals()})
}

func (h *Handler) addTechnology(c *gin.Context) {
	var req techRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	row, err := h.catalog.Add(req.Tech, int(req.FullTime), int(req.PartTime))
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *Handler) updateTechnology(c *gin.Context) {
	var req techRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	row, err := h.catalog.Update(c.Param("id"), req.Tech, int(req.FullTime), int(req.PartTime))
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrEmptyTech):
		badRequest(c, err)
	case errors.Is(err, catalog.ErrDuplicateTech):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		notFound(c, "technology")
	default:
		internalError(c, "technologies", err)
	}
}
