package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hylla/cards/internal/app"
	"github.com/hylla/cards/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// memoryDSN names a private in-memory database. Nothing is written to disk.
const memoryDSN = ":memory:"

// Repository stores task lists in an in-memory sqlite database.
type Repository struct {
	db *sql.DB
}

// OpenInMemory opens a fresh database that lives until Close.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// Every connection to :memory: gets its own database, so pin exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close releases the database and everything stored in it.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the schema.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS task_lists (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			filter TEXT NOT NULL DEFAULT 'active',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			list_id TEXT NOT NULL,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			due_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY(list_id) REFERENCES task_lists(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_list_seq ON tasks(list_id, seq);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// CreateList appends a list after every existing one.
func (r *Repository) CreateList(ctx context.Context, l domain.TaskList) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = ensureIDFree(ctx, tx, l.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO task_lists(id, title, filter, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, l.ID, l.Title, string(l.Filter), ts(l.CreatedAt), ts(l.UpdatedAt)); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateList stores title and filter changes.
func (r *Repository) UpdateList(ctx context.Context, l domain.TaskList) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE task_lists
		SET title = ?, filter = ?, updated_at = ?
		WHERE id = ?
	`, l.Title, string(l.Filter), ts(l.UpdatedAt), l.ID)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetList returns one list with its tasks.
func (r *Repository) GetList(ctx context.Context, id string) (domain.TaskList, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, filter, created_at, updated_at
		FROM task_lists
		WHERE id = ?
	`, id)
	list, err := scanList(row)
	if err != nil {
		return domain.TaskList{}, err
	}
	tasks, err := r.listTasks(ctx, `WHERE list_id = ?`, id)
	if err != nil {
		return domain.TaskList{}, err
	}
	list.Tasks = tasks
	return list, nil
}

// ListLists returns every list with its tasks in insertion order.
func (r *Repository) ListLists(ctx context.Context) ([]domain.TaskList, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, filter, created_at, updated_at
		FROM task_lists
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TaskList{}
	index := map[string]int{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		index[list.ID] = len(out)
		out = append(out, list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the single connection before querying tasks.
	if err := rows.Close(); err != nil {
		return nil, err
	}

	tasks, err := r.listTasks(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		idx, ok := index[task.ListID]
		if !ok {
			continue
		}
		out[idx].Tasks = append(out[idx].Tasks, task)
	}
	return out, nil
}

// DeleteList removes a list and its tasks in one transaction.
func (r *Repository) DeleteList(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks WHERE list_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM task_lists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err = translateNoRows(res); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteAllLists removes every list and task.
func (r *Repository) DeleteAllLists(ctx context.Context) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM task_lists`); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateTask appends a task to its list.
func (r *Repository) CreateTask(ctx context.Context, t domain.Task) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM task_lists WHERE id = ?`, t.ListID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		err = app.ErrNotFound
		return err
	}
	if err = ensureIDFree(ctx, tx, t.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO tasks(id, list_id, text, completed, due_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ListID, t.Text, boolInt(t.Completed), nullableTS(t.DueAt), ts(t.CreatedAt), ts(t.UpdatedAt)); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateTask stores text, completion, and due date changes.
func (r *Repository) UpdateTask(ctx context.Context, t domain.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET text = ?, completed = ?, due_at = ?, updated_at = ?
		WHERE id = ?
	`, t.Text, boolInt(t.Completed), nullableTS(t.DueAt), ts(t.UpdatedAt), t.ID)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetTask returns one task.
func (r *Repository) GetTask(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, list_id, text, completed, due_at, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, id)
	return scanTask(row)
}

// DeleteTask removes one task.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// listTasks returns tasks in insertion order, optionally narrowed by a WHERE clause.
func (r *Repository) listTasks(ctx context.Context, where string, args ...any) ([]domain.Task, error) {
	query := `
		SELECT id, list_id, text, completed, due_at, created_at, updated_at
		FROM tasks
	` + where + ` ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// ensureIDFree rejects ids already held by any list or task.
func ensureIDFree(ctx context.Context, q queryRower, id string) error {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(1) FROM task_lists WHERE id = ?) + (SELECT COUNT(1) FROM tasks WHERE id = ?)
	`, id, id).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", app.ErrDuplicateID, id)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanList decodes one task_lists row without tasks.
func scanList(s scanner) (domain.TaskList, error) {
	var (
		l          domain.TaskList
		filter     string
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&l.ID, &l.Title, &filter, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TaskList{}, app.ErrNotFound
		}
		return domain.TaskList{}, err
	}
	l.Filter = domain.Filter(filter)
	if !l.Filter.Valid() {
		l.Filter = domain.DefaultFilter
	}
	l.Tasks = []domain.Task{}
	l.CreatedAt = parseTS(createdRaw)
	l.UpdatedAt = parseTS(updatedRaw)
	return l, nil
}

// scanTask decodes one tasks row.
func scanTask(s scanner) (domain.Task, error) {
	var (
		t          domain.Task
		completed  int
		dueRaw     sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&t.ID, &t.ListID, &t.Text, &completed, &dueRaw, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, app.ErrNotFound
		}
		return domain.Task{}, err
	}
	t.Completed = completed != 0
	t.DueAt = parseNullTS(dueRaw)
	t.CreatedAt = parseTS(createdRaw)
	t.UpdatedAt = parseTS(updatedRaw)
	return t, nil
}

// translateNoRows maps zero affected rows to app.ErrNotFound.
func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

// boolInt encodes a bool as an sqlite integer.
func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// ts formats a timestamp for storage.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// nullableTS formats an optional timestamp for storage.
func nullableTS(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTS parses a stored timestamp.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

// parseNullTS parses an optional stored timestamp.
func parseNullTS(v sql.NullString) *time.Time {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return nil
	}
	ts := parseTS(v.String)
	return &ts
}
