package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterdesk/internal/catalog"
	"rosterdesk/internal/cohort"
	"rosterdesk/internal/dashboard"
	"rosterdesk/internal/metrics"
	"rosterdesk/internal/queue"
	"rosterdesk/internal/roster"
	"rosterdesk/internal/showcase"
)

func setup(t *testing.T) (*gin.Engine, *dashboard.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := dashboard.NewService(
		roster.NewStore(roster.NewMemoryRepository()),
		queue.NewInMemory(256),
		metrics.New(prometheus.NewRegistry()),
	)
	fx, err := showcase.Load("")
	require.NoError(t, err)

	r := gin.New()
	New(svc, dashboard.NewClock(time.Second), catalog.New(catalog.DefaultRows()), fx, showcase.NewBoard(fx.Dedications)).Register(r)
	return r, svc
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type studentBody struct {
	roster.StudentRecord
	Initials string        `json:"initials"`
	Cohort   cohort.Cohort `json:"cohort"`
}

type studentPage struct {
	Students []studentBody `json:"students"`
	Page     int           `json:"page"`
	PerPage  int           `json:"per_page"`
	Total    int           `json:"total"`
}

func student(name, mode, session, address string) map[string]any {
	return map[string]any{
		"Name":          name,
		"Email ID":      "student@example.com",
		"Training mode": mode,
		"Session":       session,
		"Address":       address,
	}
}

func TestStudents_Lifecycle(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodPost, "/v1/students", student("Ahmed Hassan", "Onsite", "Part Time", "MERITH hostel"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[studentBody](t, w)
	assert.Equal(t, "AST0001", created.ID)
	assert.Equal(t, "AH", created.Initials)
	assert.Equal(t, cohort.OnsitePartTimeMerith, created.Cohort)
	assert.False(t, created.Attendance)

	w = do(t, r, http.MethodGet, "/v1/students/AST0001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ahmed Hassan", decode[studentBody](t, w).Name)

	w = do(t, r, http.MethodPut, "/v1/students/AST0001", map[string]any{"Session": "Full Time", "ID": "AST9999"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[studentBody](t, w)
	assert.Equal(t, "AST0001", updated.ID)
	assert.Equal(t, cohort.OnsiteFullTime, updated.Cohort)

	w = do(t, r, http.MethodPut, "/v1/students/AST0001/attendance", map[string]any{"present": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[studentBody](t, w).Attendance)

	w = do(t, r, http.MethodPost, "/v1/students/AST0001/attendance/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[studentBody](t, w).Attendance)

	w = do(t, r, http.MethodDelete, "/v1/students/AST0001", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/v1/students/AST0001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudents_UnknownID(t *testing.T) {
	r, _ := setup(t)

	tests := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/v1/students/AST0404", nil},
		{http.MethodPut, "/v1/students/AST0404", map[string]any{"Name": "x"}},
		{http.MethodPut, "/v1/students/AST0404/attendance", map[string]any{"present": true}},
		{http.MethodPost, "/v1/students/AST0404/attendance/toggle", nil},
		{http.MethodDelete, "/v1/students/AST0404", nil},
	}
	for _, tc := range tests {
		w := do(t, r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestStudents_Rejects(t *testing.T) {
	r, svc := setup(t)

	w := do(t, r, http.MethodPost, "/v1/students", map[string]any{"Name": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, w)
	assert.Contains(t, body["fields"], "Email ID")

	w = do(t, r, http.MethodPost, "/v1/students", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	first := student("A", "Remote", "Full Time", "")
	first["ID"] = "AST0007"
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/v1/students", first).Code)
	w = do(t, r, http.MethodPost, "/v1/students", first)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPut, "/v1/students/AST0007", map[string]any{"Email ID": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/v1/students/AST0007/attendance", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	records, err := svc.Students(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "student@example.com", records[0].Email)
	assert.False(t, records[0].Attendance)
}

func TestStudents_ListPagesAndFilters(t *testing.T) {
	r, _ := setup(t)
	for i := 1; i <= 12; i++ {
		mode := "Onsite"
		if i%3 == 0 {
			mode = "Remote"
		}
		w := do(t, r, http.MethodPost, "/v1/students", student(fmt.Sprintf("Student %d", i), mode, "Full Time", ""))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, r, http.MethodGet, "/v1/students", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[studentPage](t, w)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 10, page.PerPage)
	require.Len(t, page.Students, 10)
	assert.Equal(t, "AST0001", page.Students[0].ID)

	page = decode[studentPage](t, do(t, r, http.MethodGet, "/v1/students?page=2", nil))
	require.Len(t, page.Students, 2)
	assert.Equal(t, "AST0012", page.Students[1].ID)

	page = decode[studentPage](t, do(t, r, http.MethodGet, "/v1/students?page=9&per_page=5", nil))
	assert.Empty(t, page.Students)
	assert.Equal(t, 12, page.Total)

	w = do(t, r, http.MethodGet, "/v1/students?page=100000000000000000&per_page=100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[studentPage](t, w)
	assert.Empty(t, page.Students)
	assert.Equal(t, 12, page.Total)

	page = decode[studentPage](t, do(t, r, http.MethodGet, "/v1/students?cohort=remote&per_page=50", nil))
	assert.Equal(t, 4, page.Total)
	for _, s := range page.Students {
		assert.Equal(t, cohort.RemoteCohort, s.Cohort)
	}

	for _, q := range []string{"page=0", "per_page=abc", "cohort=hybrid"} {
		assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/v1/students?"+q, nil).Code, q)
	}
}

func TestStatsAndDashboard(t *testing.T) {
	r, _ := setup(t)
	for _, s := range []map[string]any{
		student("A", "Onsite", "Full Time", ""),
		student("B", "Onsite", "Part Time", "MERITH"),
		student("C", "Onsite", "Part Time", "Downtown"),
		student("D", "Remote", "Part Time", ""),
		student("E", "Hybrid", "Full Time", ""),
	} {
		require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/v1/students", s).Code)
	}
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/v1/students/AST0002/attendance/toggle", nil).Code)

	w := do(t, r, http.MethodGet, "/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[cohort.Stats](t, w)
	assert.Equal(t, cohort.Count{Total: 1, Present: 1}, stats.OnsitePartTimeMerith)
	assert.Equal(t, cohort.Count{Total: 5, Present: 1}, stats.Total)
	assert.Equal(t, 3, stats.ActiveOnsite)
	assert.Equal(t, 1, stats.Unclassified.Total)

	w = do(t, r, http.MethodGet, "/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		Header dashboard.Header `json:"header"`
		Stats  cohort.Stats     `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	assert.Equal(t, stats, dash.Stats)
	assert.NotEmpty(t, dash.Header.Date)
	assert.NotEmpty(t, dash.Header.Day)
	assert.Len(t, dash.Header.Time, len("15:04:05"))
}

func TestTechnologies(t *testing.T) {
	r, _ := setup(t)

	var list struct {
		Rows   []catalog.Row  `json:"rows"`
		Totals catalog.Totals `json:"totals"`
	}
	w := do(t, r, http.MethodGet, "/v1/technologies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Rows, 7)
	assert.Equal(t, 42, list.Totals.All)

	w = do(t, r, http.MethodPost, "/v1/technologies", map[string]any{"tech": "Node.js", "fullTime": "3 students", "partTime": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, catalog.Row{ID: "node-js", Tech: "Node.js", FullTime: 3, PartTime: 4}, decode[catalog.Row](t, w))

	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodPost, "/v1/technologies", map[string]any{"tech": "node js"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/v1/technologies", map[string]any{"tech": " "}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/v1/technologies", map[string]any{"tech": "Go", "fullTime": true}).Code)

	w = do(t, r, http.MethodPut, "/v1/technologies/python", map[string]any{"tech": "Python", "fullTime": 2, "partTime": "5"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, catalog.Row{ID: "python", Tech: "Python", FullTime: 2, PartTime: 5}, decode[catalog.Row](t, w))

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/v1/technologies/cobol", map[string]any{"tech": "COBOL"}).Code)
}

func TestShowcase(t *testing.T) {
	r, _ := setup(t)

	var top struct {
		Students []showcase.TopStudent `json:"students"`
		Skills   []showcase.Skill      `json:"skills"`
		Metrics  showcase.Metrics      `json:"metrics"`
	}
	w := do(t, r, http.MethodGet, "/v1/showcase/students", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &top))
	require.Len(t, top.Students, 3)
	assert.Equal(t, "Ahmed Hassan", top.Students[0].Name)
	assert.Equal(t, "success", top.Students[0].Band)
	assert.Len(t, top.Skills, 8)

	require.NoError(t, json.Unmarshal(do(t, r, http.MethodGet, "/v1/showcase/students?limit=5", nil).Body.Bytes(), &top))
	assert.Len(t, top.Students, 5)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/v1/showcase/students?limit=-1", nil).Code)

	var projects struct {
		Projects []projectView `json:"projects"`
	}
	w = do(t, r, http.MethodGet, "/v1/showcase/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	require.Len(t, projects.Projects, 3)
	assert.Equal(t, "error", projects.Projects[0].DifficultyColor)
	assert.Equal(t, "primary", projects.Projects[0].CategoryColor)
	assert.Equal(t, "secondary", projects.Projects[1].CategoryColor)

	var sections struct {
		Sections []showcase.Section `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(do(t, r, http.MethodGet, "/v1/sections", nil).Body.Bytes(), &sections))
	assert.Len(t, sections.Sections, 4)
}

func TestDedications(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodPost, "/v1/dedications", map[string]any{"title": " Ship It ", "text": "Done beats perfect."})
	require.Equal(t, http.StatusCreated, w.Code)
	d := decode[showcase.Dedication](t, w)
	assert.Equal(t, "Ship It", d.Title)
	assert.NotEmpty(t, d.ID)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/v1/dedications", map[string]any{"title": "x"}).Code)

	var list struct {
		Dedications []showcase.Dedication `json:"dedications"`
	}
	require.NoError(t, json.Unmarshal(do(t, r, http.MethodGet, "/v1/dedications", nil).Body.Bytes(), &list))
	require.Len(t, list.Dedications, 4)
	assert.Equal(t, d.ID, list.Dedications[3].ID)
}

func TestStudents_AddAcceptsSeedShape(t *testing.T) {
	r, _ := setup(t)

	body := `{"Name": "Bilal Khan", "Email ID": "bilal@example.com", "Phone #": 3001234567,
		"Training mode": "Onsite", "Session": "Part Time", "Attendance": null}`
	w := do(t, r, http.MethodPost, "/v1/students", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decode[studentBody](t, w)
	assert.Equal(t, "3001234567", rec.Phone)
	assert.False(t, rec.Attendance)
	assert.Equal(t, cohort.OnsitePartTimeOther, rec.Cohort)

	w = do(t, r, http.MethodPost, "/v1/students", `{"Name": "X", "Email ID": "x@example.com", "Phone #": true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
