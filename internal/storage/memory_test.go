package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/triage/internal/domain"
)

func sampleTask(title string) *domain.Task {
	due := domain.NewDate(2025, time.July, 1)
	return &domain.Task{
		Title:          title,
		DueDate:        &due,
		EstimatedHours: 2,
		Importance:     6,
		Dependencies:   []int{},
	}
}

func TestMemoryStorage_TaskOperations(t *testing.T) {
	store := NewMemoryStorage()

	task := sampleTask("Test Task")
	err := store.CreateTask(task)
	assert.NoError(t, err)
	assert.Equal(t, 1, task.ID)

	retrieved, err := store.GetTask(task.ID)
	assert.NoError(t, err)
	assert.Equal(t, task.ID, retrieved.ID)
	assert.Equal(t, task.Title, retrieved.Title)
	assert.Equal(t, task.DueDate, retrieved.DueDate)

	tasks, err := store.ListTasks()
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)

	err = store.DeleteTask(task.ID)
	assert.NoError(t, err)

	_, err = store.GetTask(task.ID)
	assert.Error(t, err)
}

func TestMemoryStorage_IDSequence(t *testing.T) {
	store := NewMemoryStorage()

	first := sampleTask("first")
	require.NoError(t, store.CreateTask(first))
	assert.Equal(t, 1, first.ID)

	// An explicit id pushes the sequence forward.
	explicit := sampleTask("explicit")
	explicit.ID = 10
	require.NoError(t, store.CreateTask(explicit))

	next := sampleTask("next")
	require.NoError(t, store.CreateTask(next))
	assert.Equal(t, 11, next.ID)
}

func TestMemoryStorage_DuplicateIDRejected(t *testing.T) {
	store := NewMemoryStorage()

	task := sampleTask("original")
	task.ID = 3
	require.NoError(t, store.CreateTask(task))

	dup := sampleTask("duplicate")
	dup.ID = 3
	assert.Error(t, store.CreateTask(dup))
}

func TestMemoryStorage_ListOrderedByID(t *testing.T) {
	store := NewMemoryStorage()

	for _, id := range []int{7, 2, 5} {
		task := sampleTask("t")
		task.ID = id
		require.NoError(t, store.CreateTask(task))
	}

	tasks, err := store.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, 2, tasks[0].ID)
	assert.Equal(t, 5, tasks[1].ID)
	assert.Equal(t, 7, tasks[2].ID)
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	store := NewMemoryStorage()

	task := sampleTask("original")
	require.NoError(t, store.CreateTask(task))

	retrieved, err := store.GetTask(task.ID)
	require.NoError(t, err)
	retrieved.Title = "mutated"

	again, err := store.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}
