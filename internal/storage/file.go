package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rcliao/triage/internal/domain"
)

// FileStorage persists saved tasks as a JSON file under a .triage
// directory, so a local deployment survives restarts without a
// database.
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

type taskFile struct {
	NextID int            `json:"nextId"`
	Tasks  []*domain.Task `json:"tasks"`
}

func NewFileStorage(basePath string) (*FileStorage, error) {
	fs := &FileStorage{basePath: basePath}

	if err := fs.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	return fs, nil
}

func (fs *FileStorage) initialize() error {
	dir := filepath.Join(fs.basePath, ".triage")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := fs.tasksPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fs.saveJSON(path, taskFile{NextID: 1, Tasks: []*domain.Task{}})
	}

	return nil
}

func (fs *FileStorage) tasksPath() string {
	return filepath.Join(fs.basePath, ".triage", "tasks.json")
}

// saveJSON writes through a temp file and renames, so a crash mid-write
// never leaves a truncated store behind.
func (fs *FileStorage) saveJSON(path string, data interface{}) error {
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		os.Remove(tempPath)
		return err
	}

	if err := file.Sync(); err != nil {
		os.Remove(tempPath)
		return err
	}

	return os.Rename(tempPath, path)
}

func (fs *FileStorage) load() (*taskFile, error) {
	data, err := os.ReadFile(fs.tasksPath())
	if err != nil {
		return nil, err
	}

	var tf taskFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("corrupt task store: %w", err)
	}
	if tf.NextID < 1 {
		tf.NextID = 1
	}

	return &tf, nil
}

func (fs *FileStorage) CreateTask(task *domain.Task) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	tf, err := fs.load()
	if err != nil {
		return err
	}

	if task.ID == 0 {
		task.ID = tf.NextID
	} else {
		for _, existing := range tf.Tasks {
			if existing.ID == task.ID {
				return fmt.Errorf("task with id %d already exists", task.ID)
			}
		}
	}
	if task.ID >= tf.NextID {
		tf.NextID = task.ID + 1
	}

	copied := *task
	tf.Tasks = append(tf.Tasks, &copied)
	return fs.saveJSON(fs.tasksPath(), tf)
}

func (fs *FileStorage) GetTask(id int) (*domain.Task, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	tf, err := fs.load()
	if err != nil {
		return nil, err
	}

	for _, task := range tf.Tasks {
		if task.ID == id {
			copied := *task
			return &copied, nil
		}
	}

	return nil, fmt.Errorf("task with id %d not found", id)
}

func (fs *FileStorage) ListTasks() ([]*domain.Task, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	tf, err := fs.load()
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Task, 0, len(tf.Tasks))
	for _, task := range tf.Tasks {
		copied := *task
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (fs *FileStorage) DeleteTask(id int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	tf, err := fs.load()
	if err != nil {
		return err
	}

	for i, task := range tf.Tasks {
		if task.ID == id {
			tf.Tasks = append(tf.Tasks[:i], tf.Tasks[i+1:]...)
			return fs.saveJSON(fs.tasksPath(), tf)
		}
	}

	return fmt.Errorf("task with id %d not found", id)
}
