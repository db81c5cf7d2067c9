package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Task statuses.
const (
	TaskTodo = "todo"
	TaskDone = "done"
)

// TaskManager mutates the tasks slice of a memory document. The caller owns
// persistence.
type TaskManager struct {
	doc *Document
}

// NewTaskManager wraps a document.
func NewTaskManager(doc *Document) *TaskManager {
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}
	return &TaskManager{doc: doc}
}

// Add creates a new todo. Priority defaults to medium.
func (tm *TaskManager) Add(title, deadline, priority string) Task {
	if priority == "" {
		priority = "medium"
	}
	task := Task{
		ID:        uuid.NewString()[:8],
		Title:     title,
		Status:    TaskTodo,
		Priority:  priority,
		Deadline:  deadline,
		CreatedAt: nowStamp(),
	}
	tm.doc.Tasks = append(tm.doc.Tasks, task)
	return task
}

// List returns tasks sorted by priority then deadline, optionally filtered
// by status.
func (tm *TaskManager) List(status string) []Task {
	var out []Task
	for _, t := range tm.doc.Tasks {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}

	priorityRank := func(p string) int {
		switch p {
		case "high":
			return 0
		case "low":
			return 2
		default:
			return 1
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := priorityRank(out[i].Priority), priorityRank(out[j].Priority)
		if pi != pj {
			return pi < pj
		}
		di, dj := out[i].Deadline, out[j].Deadline
		if di == "" {
			di = "9999"
		}
		if dj == "" {
			dj = "9999"
		}
		return di < dj
	})
	return out
}

// Complete marks the task done.
func (tm *TaskManager) Complete(taskID string) (Task, error) {
	for i := range tm.doc.Tasks {
		if tm.doc.Tasks[i].ID == taskID {
			tm.doc.Tasks[i].Status = TaskDone
			tm.doc.Tasks[i].CompletedAt = time.Now().UTC().Format(time.RFC3339)
			return tm.doc.Tasks[i], nil
		}
	}
	return Task{}, fmt.Errorf("task %q not found", taskID)
}

// Remove deletes the task.
func (tm *TaskManager) Remove(taskID string) error {
	for i := range tm.doc.Tasks {
		if tm.doc.Tasks[i].ID == taskID {
			tm.doc.Tasks = append(tm.doc.Tasks[:i], tm.doc.Tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %q not found", taskID)
}
