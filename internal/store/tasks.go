package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const taskColumns = `id, task, completed, date_added, date_completed`

func (s *Store) AddTask(text string) (*Task, error) {
	res, err := s.db.Exec(
		`INSERT INTO tasks (task, date_added) VALUES (?, ?)`,
		text, formatDate(s.Today()),
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// CompleteTask marks the task done and stamps today's date, whatever its
// current state.
func (s *Store) CompleteTask(id int64) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET completed = 1, date_completed = ? WHERE id = ?`,
		formatDate(s.Today()), id,
	)
	if err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("complete task %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListTasksFor returns the tasks added on the given day, ordered by id.
func (s *Store) ListTasksFor(day time.Time) ([]Task, error) {
	return s.queryTasks(`SELECT `+taskColumns+` FROM tasks WHERE date_added = ? ORDER BY id`, formatDate(day))
}

func (s *Store) AllTasks() ([]Task, error) {
	return s.queryTasks(`SELECT ` + taskColumns + ` FROM tasks ORDER BY id`)
}

func (s *Store) queryTasks(query string, args ...any) ([]Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(sc scanner) (*Task, error) {
	t := &Task{}
	var completed sql.NullBool
	var dateAdded, dateCompleted sql.NullString
	if err := sc.Scan(&t.ID, &t.Text, &completed, &dateAdded, &dateCompleted); err != nil {
		return nil, err
	}
	t.Completed = completed.Valid && completed.Bool
	if dateAdded.Valid {
		t.DateAdded = parseDate(dateAdded.String)
	}
	if dateCompleted.Valid && dateCompleted.String != "" {
		d := parseDate(dateCompleted.String)
		t.DateCompleted = &d
	}
	return t, nil
}
