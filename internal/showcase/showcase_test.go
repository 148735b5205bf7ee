package showcase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)

	assert.Len(t, f.Students, 5)
	assert.Len(t, f.Projects, 3)
	assert.Len(t, f.Skills, 8)
	assert.Len(t, f.Dedications, 3)
	assert.Equal(t, []string{"quiz", "debates", "tech-videos", "debugging"},
		[]string{f.Sections[0].ID, f.Sections[1].ID, f.Sections[2].ID, f.Sections[3].ID})
	assert.InDelta(t, 96.6, f.Metrics.Attendance.Average, 0.001)
	assert.Equal(t, "+2.5%", f.Metrics.Quizzes.Trend)
	assert.Equal(t, "2024-01-15", f.Projects[0].CompletionDate)
	assert.Equal(t, "success", f.Students[0].Band)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	doc := `
students:
  - {id: 1, name: Low, overallScore: 70}
  - {id: 2, name: High, overallScore: 99}
  - {id: 3, name: Mid, overallScore: 85}
sections:
  - {id: quiz, title: Quiz}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	top := f.TopStudents(2)
	require.Len(t, top, 2)
	assert.Equal(t, "High", top[0].Name)
	assert.Equal(t, "Mid", top[1].Name)
	assert.Equal(t, "warning", top[1].Band)
	assert.Empty(t, f.Projects)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("students:\n  - {id: 1, nickname: x}\n"))
	assert.Error(t, err)
}

func TestTopStudents(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)

	all := f.TopStudents(0)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].OverallScore, all[i].OverallScore)
	}
	assert.Len(t, f.TopStudents(3), 3)
	assert.Len(t, f.TopStudents(50), 5)

	top := f.TopStudents(1)
	top[0].Name = "changed"
	assert.Equal(t, "Ahmed Hassan", f.Students[0].Name)
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "success"}, {95, "success"}, {94, "info"}, {90, "info"},
		{89, "warning"}, {80, "warning"}, {79, "error"}, {0, "error"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ScoreBand(tc.score), "score %d", tc.score)
	}
}

func TestColors(t *testing.T) {
	assert.Equal(t, "error", DifficultyColor("Advanced"))
	assert.Equal(t, "warning", DifficultyColor("Intermediate"))
	assert.Equal(t, "success", DifficultyColor("Beginner"))
	assert.Equal(t, "default", DifficultyColor("advanced"))

	assert.Equal(t, "primary", CategoryColor("Full-Stack"))
	assert.Equal(t, "secondary", CategoryColor("Frontend"))
	assert.Equal(t, "info", CategoryColor("Backend"))
	assert.Equal(t, "default", CategoryColor("Mobile"))
}
