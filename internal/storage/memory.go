package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rcliao/triage/internal/domain"
)

// MemoryStorage keeps saved tasks in process memory. It is the default
// backend and the one the tests use.
type MemoryStorage struct {
	mu     sync.RWMutex
	tasks  map[int]*domain.Task
	nextID int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		tasks:  make(map[int]*domain.Task),
		nextID: 1,
	}
}

// CreateTask saves a task, assigning the next free id when the task
// carries none. Explicit ids must not collide with saved ones.
func (ms *MemoryStorage) CreateTask(task *domain.Task) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if task.ID == 0 {
		task.ID = ms.nextID
	} else if _, exists := ms.tasks[task.ID]; exists {
		return fmt.Errorf("task with id %d already exists", task.ID)
	}
	if task.ID >= ms.nextID {
		ms.nextID = task.ID + 1
	}

	copied := *task
	ms.tasks[task.ID] = &copied
	return nil
}

func (ms *MemoryStorage) GetTask(id int) (*domain.Task, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	task, exists := ms.tasks[id]
	if !exists {
		return nil, fmt.Errorf("task with id %d not found", id)
	}

	copied := *task
	return &copied, nil
}

// ListTasks returns all saved tasks in ascending id order.
func (ms *MemoryStorage) ListTasks() ([]*domain.Task, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make([]*domain.Task, 0, len(ms.tasks))
	for _, task := range ms.tasks {
		copied := *task
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (ms *MemoryStorage) DeleteTask(id int) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.tasks[id]; !exists {
		return fmt.Errorf("task with id %d not found", id)
	}

	delete(ms.tasks, id)
	return nil
}
