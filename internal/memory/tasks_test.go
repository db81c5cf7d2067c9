package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskManagerAddList(t *testing.T) {
	doc := NewDocument("Arnav")
	tm := NewTaskManager(doc)

	low := tm.Add("water plants", "", "low")
	high := tm.Add("ship release", "2026-09-01", "high")
	med := tm.Add("review pr", "", "")

	assert.Len(t, low.ID, 8)
	assert.Equal(t, "medium", med.Priority)
	assert.Equal(t, TaskTodo, high.Status)

	tasks := tm.List("")
	require.Len(t, tasks, 3)
	assert.Equal(t, "ship release", tasks[0].Title)
	assert.Equal(t, "review pr", tasks[1].Title)
	assert.Equal(t, "water plants", tasks[2].Title)
}

func TestTaskManagerDeadlineOrdering(t *testing.T) {
	doc := NewDocument("Arnav")
	tm := NewTaskManager(doc)

	tm.Add("later", "2026-12-01", "high")
	tm.Add("sooner", "2026-09-01", "high")
	tm.Add("no deadline", "", "high")

	tasks := tm.List("")
	require.Len(t, tasks, 3)
	assert.Equal(t, "sooner", tasks[0].Title)
	assert.Equal(t, "later", tasks[1].Title)
	assert.Equal(t, "no deadline", tasks[2].Title)
}

func TestTaskManagerCompleteRemove(t *testing.T) {
	doc := NewDocument("Arnav")
	tm := NewTaskManager(doc)

	task := tm.Add("write tests", "", "medium")

	done, err := tm.Complete(task.ID)
	require.NoError(t, err)
	assert.Equal(t, TaskDone, done.Status)
	assert.NotEmpty(t, done.CompletedAt)

	assert.Len(t, tm.List(TaskDone), 1)
	assert.Empty(t, tm.List(TaskTodo))

	require.NoError(t, tm.Remove(task.ID))
	assert.Empty(t, tm.List(""))

	_, err = tm.Complete("missing")
	assert.Error(t, err)
	assert.Error(t, tm.Remove("missing"))
}
