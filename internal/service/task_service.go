package service

import (
	"fmt"

	"github.com/rcliao/triage/internal/domain"
	"github.com/rcliao/triage/internal/engine"
)

type TaskService struct {
	storage TaskStorage
}

// TaskStorage is saved-task persistence. Stores assign the next free id
// to tasks created without one.
type TaskStorage interface {
	CreateTask(task *domain.Task) error
	GetTask(id int) (*domain.Task, error)
	ListTasks() ([]*domain.Task, error)
	DeleteTask(id int) error
}

func NewTaskService(storage TaskStorage) *TaskService {
	return &TaskService{
		storage: storage,
	}
}

// Create validates a submission through the batch validator and saves
// it. Validation runs against the saved list so dependencies may
// reference already-saved tasks. The store assigns the id, so
// submissions must not carry one.
func (s *TaskService) Create(input domain.TaskInput) (*domain.Task, error) {
	if input.ID != nil {
		return nil, fmt.Errorf("%w: id is assigned on save and cannot be supplied", domain.ErrValidation)
	}

	saved, err := s.storage.ListTasks()
	if err != nil {
		return nil, err
	}

	batch := make([]domain.TaskInput, 0, len(saved)+1)
	for _, t := range saved {
		batch = append(batch, t.Input())
	}
	batch = append(batch, input)

	validated, err := engine.ValidateBatch(batch)
	if err != nil {
		return nil, err
	}

	task := validated[len(validated)-1]
	task.ID = 0 // let the store assign it
	if err := s.storage.CreateTask(&task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *TaskService) Get(id int) (*domain.Task, error) {
	return s.storage.GetTask(id)
}

func (s *TaskService) List() ([]*domain.Task, error) {
	return s.storage.ListTasks()
}

func (s *TaskService) Delete(id int) error {
	return s.storage.DeleteTask(id)
}
