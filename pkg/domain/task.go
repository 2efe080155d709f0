package domain

// Task is a single task record owned by the backend. The client only ever
// holds a transient copy per view.
type Task struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
	DueDate     Date   `json:"dueDate"`
}

// Status is the task lifecycle state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// ValidStatuses is the cycle order used by the task form's status selector.
var ValidStatuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid returns true if s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the display name for a status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// TaskStats holds the aggregate counters shown on the dashboard.
// Recomputed by the backend on each fetch; never derived client-side.
type TaskStats struct {
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
	Done       int `json:"done"`
}
