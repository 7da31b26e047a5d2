package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. Task deadlines are
// whole days; comparing two Dates never involves clock time or zones.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates an instant to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// DaysUntil returns the number of whole days from d to other. Negative
// when other is earlier than d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// Before reports whether d is an earlier calendar date than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected JSON string", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TaskInput is a task as submitted by a caller, before validation.
// Optional fields are pointers so that "absent" is distinguishable from
// a zero value; the validator assigns missing ids and fills defaults.
type TaskInput struct {
	ID             *int     `json:"id,omitempty"`
	Title          string   `json:"title"`
	DueDate        *Date    `json:"due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Importance     *int     `json:"importance,omitempty"`
	Dependencies   []int    `json:"dependencies,omitempty"`
}

// Task is a validated task record. Every field is normalized: the id is
// unique within its batch, estimated hours are positive, importance is
// within 1-10 and dependencies are deduplicated and sorted.
type Task struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	DueDate        *Date   `json:"due_date,omitempty"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int   `json:"dependencies"`
}

// Input converts a stored task back into submission form, keeping its id.
func (t *Task) Input() TaskInput {
	id := t.ID
	hours := t.EstimatedHours
	importance := t.Importance
	return TaskInput{
		ID:             &id,
		Title:          t.Title,
		DueDate:        t.DueDate,
		EstimatedHours: &hours,
		Importance:     &importance,
		Dependencies:   append([]int(nil), t.Dependencies...),
	}
}

// Breakdown holds the four sub-scores that combine into the final score.
// Each value is on the 0-100 scale.
type Breakdown struct {
	Urgency    int `json:"urgency"`
	Importance int `json:"importance"`
	Effort     int `json:"effort"`
	Dependency int `json:"dependency"`
}

// ScoredTask is the analysis output for a single task.
type ScoredTask struct {
	Task
	Score     int       `json:"score"`
	Reason    string    `json:"reason"`
	Breakdown Breakdown `json:"breakdown"`
	InCycle   bool      `json:"in_cycle"`
}

// Suggestion is a ranked next-task recommendation.
type Suggestion struct {
	Title string `json:"title"`
	Score int    `json:"score"`
	Why   string `json:"why"`
}
