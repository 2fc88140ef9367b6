package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		impact, effort int
		priority       int
		level          Level
	}{
		{10, 1, 19, LevelCritical},
		{8, 1, 15, LevelCritical},
		{7, 4, 10, LevelHigh},
		{5, 5, 5, LevelMedium},
		{3, 2, 4, LevelLow},
		{1, 10, -8, LevelLow},
	}

	for _, tt := range tests {
		got := NewTask("t", tt.impact, tt.effort)
		assert.Equal(t, tt.priority, got.Priority, "impact=%d effort=%d", tt.impact, tt.effort)
		assert.Equal(t, tt.level, got.Level, "impact=%d effort=%d", tt.impact, tt.effort)
	}
}

func TestPrioritize(t *testing.T) {
	tasks := []Task{
		NewTask("C", 1, 10),
		NewTask("A", 10, 1),
		NewTask("B", 5, 5),
	}

	got := Prioritize(tasks)
	names := make([]string, len(got))
	for i, task := range got {
		names[i] = task.Name
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "C", tasks[0].Name, "input must not be reordered")
}

func TestPrioritize_StableOnTies(t *testing.T) {
	got := Prioritize([]Task{NewTask("first", 5, 5), NewTask("second", 4, 3), NewTask("third", 6, 7)})

	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
	assert.Equal(t, "third", got[2].Name)
}

func TestRender(t *testing.T) {
	out := Render(Prioritize([]Task{NewTask("ship release", 10, 1)}))

	assert.Contains(t, out, "ship release")
	assert.Contains(t, out, "19")
	assert.Contains(t, out, "CRITICAL")
	assert.Equal(t, "No tasks.\n", Render(nil))
}
