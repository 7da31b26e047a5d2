package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/rcliao/triage/internal/domain"
)

// PostgresStorage persists saved tasks in PostgreSQL: a tasks table
// plus a self-referential dependency table.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(connString string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	ps := &PostgresStorage{db: db}
	if err := ps.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

func (ps *PostgresStorage) ensureSchema() error {
	_, err := ps.db.Exec(`
        CREATE TABLE IF NOT EXISTS tasks (
            id              SERIAL PRIMARY KEY,
            title           TEXT NOT NULL,
            due_date        DATE,
            estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 1,
            importance      INTEGER NOT NULL DEFAULT 5
        );
        CREATE TABLE IF NOT EXISTS task_dependencies (
            task_id    INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
            depends_on INTEGER NOT NULL,
            PRIMARY KEY (task_id, depends_on)
        )`)
	return err
}

func (ps *PostgresStorage) CreateTask(task *domain.Task) error {
	tx, err := ps.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var due interface{}
	if task.DueDate != nil {
		due = task.DueDate.Time()
	}

	if task.ID == 0 {
		row := tx.QueryRow(
			`INSERT INTO tasks (title, due_date, estimated_hours, importance)
             VALUES ($1, $2, $3, $4)
             RETURNING id`,
			task.Title, due, task.EstimatedHours, task.Importance,
		)
		if err := row.Scan(&task.ID); err != nil {
			return err
		}
	} else {
		_, err := tx.Exec(
			`INSERT INTO tasks (id, title, due_date, estimated_hours, importance)
             VALUES ($1, $2, $3, $4, $5)`,
			task.ID, task.Title, due, task.EstimatedHours, task.Importance,
		)
		if err != nil {
			return fmt.Errorf("task with id %d already exists: %w", task.ID, err)
		}
	}

	for _, dep := range task.Dependencies {
		if _, err := tx.Exec(
			`INSERT INTO task_dependencies (task_id, depends_on) VALUES ($1, $2)`,
			task.ID, dep,
		); err != nil {
			return err
		}
	}

	// Keep generated ids ahead of explicit ones.
	if _, err := tx.Exec(
		`SELECT setval('tasks_id_seq', (SELECT MAX(id) FROM tasks))`,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (ps *PostgresStorage) GetTask(id int) (*domain.Task, error) {
	row := ps.db.QueryRow(
		`SELECT id, title, due_date, estimated_hours, importance
         FROM tasks
         WHERE id = $1`,
		id,
	)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	if err := ps.loadDependencies(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (ps *PostgresStorage) ListTasks() ([]*domain.Task, error) {
	rows, err := ps.db.Query(
		`SELECT id, title, due_date, estimated_hours, importance
         FROM tasks
         ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, task := range tasks {
		if err := ps.loadDependencies(task); err != nil {
			return nil, err
		}
	}

	return tasks, nil
}

func (ps *PostgresStorage) DeleteTask(id int) error {
	result, err := ps.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task with id %d not found", id)
	}

	return nil
}

func (ps *PostgresStorage) loadDependencies(task *domain.Task) error {
	rows, err := ps.db.Query(
		`SELECT depends_on
         FROM task_dependencies
         WHERE task_id = $1
         ORDER BY depends_on`,
		task.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	task.Dependencies = []int{}
	for rows.Next() {
		var dep int
		if err := rows.Scan(&dep); err != nil {
			return err
		}
		task.Dependencies = append(task.Dependencies, dep)
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var due sql.NullTime

	if err := row.Scan(&task.ID, &task.Title, &due, &task.EstimatedHours, &task.Importance); err != nil {
		return nil, err
	}
	if due.Valid {
		d := domain.DateOf(due.Time)
		task.DueDate = &d
	}

	return &task, nil
}
