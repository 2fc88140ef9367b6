// Package planner ranks tasks by impact and effort.
package planner

import "sort"

// Bounds of the impact and effort ratings
const (
	MinRating = 1
	MaxRating = 10
)

// Level is the priority band of a task
type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
)

// Task is one rated unit of work
type Task struct {
	Name     string `json:"name"`
	Impact   int    `json:"impact"`
	Effort   int    `json:"effort"`
	Priority int    `json:"priority"`
	Level    Level  `json:"level"`
}

// Score weighs impact double against effort
func Score(impact, effort int) int {
	return 2*impact - effort
}

// LevelFor maps a priority onto its band
func LevelFor(priority int) Level {
	switch {
	case priority >= 15:
		return LevelCritical
	case priority >= 10:
		return LevelHigh
	case priority >= 5:
		return LevelMedium
	default:
		return LevelLow
	}
}

// NewTask rates a task
func NewTask(name string, impact, effort int) Task {
	p := Score(impact, effort)
	return Task{
		Name:     name,
		Impact:   impact,
		Effort:   effort,
		Priority: p,
		Level:    LevelFor(p),
	}
}

// Prioritize returns the tasks ordered by priority, highest first. Equal
// priorities keep their input order.
func Prioritize(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}
