// Package showcase serves the editorial pages of the dashboard: top students,
// top projects, Saturday sections and the dedication board.
package showcase

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var embedded []byte

// TopStudent is a high performer shown on the leaderboard.
type TopStudent struct {
	ID                int      `yaml:"id" json:"id"`
	Name              string   `yaml:"name" json:"name"`
	Avatar            string   `yaml:"avatar" json:"avatar"`
	OverallScore      int      `yaml:"overallScore" json:"overallScore"`
	AttendanceRate    int      `yaml:"attendanceRate" json:"attendanceRate"`
	ProjectsCompleted int      `yaml:"projectsCompleted" json:"projectsCompleted"`
	AssignmentsScore  int      `yaml:"assignmentsScore" json:"assignmentsScore"`
	QuizAverage       int      `yaml:"quizAverage" json:"quizAverage"`
	Strengths         []string `yaml:"strengths" json:"strengths"`
	Improvement       string   `yaml:"improvement" json:"improvement"`
	Badges            []string `yaml:"badges" json:"badges"`
	Feedback          string   `yaml:"feedback" json:"feedback"`
	RecentProject     string   `yaml:"recentProject" json:"recentProject"`
	ProjectScore      int      `yaml:"projectScore" json:"projectScore"`
	Band              string   `yaml:"-" json:"band"`
}

// Project is a featured student project.
type Project struct {
	ID             int      `yaml:"id" json:"id"`
	Title          string   `yaml:"title" json:"title"`
	Student        string   `yaml:"student" json:"student"`
	Avatar         string   `yaml:"avatar" json:"avatar"`
	Description    string   `yaml:"description" json:"description"`
	Technologies   []string `yaml:"technologies" json:"technologies"`
	Rating         float64  `yaml:"rating" json:"rating"`
	Votes          int      `yaml:"votes" json:"votes"`
	Views          int      `yaml:"views" json:"views"`
	Likes          int      `yaml:"likes" json:"likes"`
	Comments       int      `yaml:"comments" json:"comments"`
	CompletionDate string   `yaml:"completionDate" json:"completionDate"`
	Difficulty     string   `yaml:"difficulty" json:"difficulty"`
	Category       string   `yaml:"category" json:"category"`
	GithubURL      string   `yaml:"githubUrl" json:"githubUrl"`
	LiveURL        string   `yaml:"liveUrl" json:"liveUrl"`
	Features       []string `yaml:"features" json:"features"`
	Challenges     string   `yaml:"challenges" json:"challenges"`
	Solutions      string   `yaml:"solutions" json:"solutions"`
}

// Metric is a program-wide average with its month-over-month trend.
type Metric struct {
	Average   float64 `yaml:"average" json:"average"`
	Trend     string  `yaml:"trend" json:"trend"`
	LastMonth float64 `yaml:"lastMonth" json:"lastMonth"`
}

// Metrics groups the four performance averages.
type Metrics struct {
	Attendance  Metric `yaml:"attendance" json:"attendance"`
	Assignments Metric `yaml:"assignments" json:"assignments"`
	Projects    Metric `yaml:"projects" json:"projects"`
	Quizzes     Metric `yaml:"quizzes" json:"quizzes"`
}

// Skill is one bar of the skills distribution.
type Skill struct {
	Skill      string `yaml:"skill" json:"skill"`
	Count      int    `yaml:"count" json:"count"`
	Percentage int    `yaml:"percentage" json:"percentage"`
}

// Section is a Saturday activity.
type Section struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Action      string `yaml:"action" json:"action"`
}

// Fixtures is the static content behind the showcase pages.
type Fixtures struct {
	Students    []TopStudent `yaml:"students"`
	Projects    []Project    `yaml:"projects"`
	Metrics     Metrics      `yaml:"metrics"`
	Skills      []Skill      `yaml:"skills"`
	Sections    []Section    `yaml:"sections"`
	Dedications []Dedication `yaml:"dedications"`
}

// Load reads fixtures from path, or the built-in set when path is empty.
func Load(path string) (*Fixtures, error) {
	data := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixtures: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a fixtures document. Unknown keys are rejected.
func Parse(data []byte) (*Fixtures, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	for i := range f.Students {
		f.Students[i].Band = ScoreBand(f.Students[i].OverallScore)
	}
	return &f, nil
}

// TopStudents returns the n best students by overall score, all of them
// when n <= 0. Ties keep fixture order.
func (f *Fixtures) TopStudents(n int) []TopStudent {
	out := make([]TopStudent, len(f.Students))
	copy(out, f.Students)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// ScoreBand maps a score to the colour band used for it.
func ScoreBand(score int) string {
	switch {
	case score >= 95:
		return "success"
	case score >= 90:
		return "info"
	case score >= 80:
		return "warning"
	default:
		return "error"
	}
}

// DifficultyColor maps a project difficulty to its chip colour.
func DifficultyColor(difficulty string) string {
	switch difficulty {
	case "Advanced":
		return "error"
	case "Intermediate":
		return "warning"
	case "Beginner":
		return "success"
	default:
		return "default"
	}
}

// CategoryColor maps a project category to its chip colour.
func CategoryColor(category string) string {
	switch category {
	case "Full-Stack":
		return "primary"
	case "Frontend":
		return "secondary"
	case "Backend":
		return "info"
	default:
		return "default"
	}
}
