package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hylla/cards/internal/app"
	"github.com/hylla/cards/internal/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func mustList(t *testing.T, id, title string, now time.Time) domain.TaskList {
	t.Helper()
	l, err := domain.NewTaskList(id, title, now)
	if err != nil {
		t.Fatalf("NewTaskList() error = %v", err)
	}
	return l
}

func mustTask(t *testing.T, id, listID, text string, now time.Time) domain.Task {
	t.Helper()
	due := now.Add(24 * time.Hour)
	task, err := domain.NewTask(domain.TaskInput{ID: id, ListID: listID, Text: text, DueAt: &due}, now)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	return task
}

func TestRepository_ListTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)

	for _, l := range []domain.TaskList{
		mustList(t, "l-b", "Zeta", now),
		mustList(t, "l-a", "Alpha", now),
	} {
		if err := repo.CreateList(ctx, l); err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
	}
	for _, task := range []domain.Task{
		mustTask(t, "t2", "l-b", "second-created-first", now),
		mustTask(t, "t1", "l-b", "then this", now),
		mustTask(t, "t3", "l-a", "alpha task", now),
	} {
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
	}

	lists, err := repo.ListLists(ctx)
	if err != nil {
		t.Fatalf("ListLists() error = %v", err)
	}
	if len(lists) != 2 || lists[0].ID != "l-b" || lists[1].ID != "l-a" {
		t.Fatalf("expected insertion order, got %#v", lists)
	}
	if len(lists[0].Tasks) != 2 || lists[0].Tasks[0].ID != "t2" || lists[0].Tasks[1].ID != "t1" {
		t.Fatalf("expected task insertion order, got %#v", lists[0].Tasks)
	}
	if lists[0].Filter != domain.FilterActive {
		t.Fatalf("unexpected filter %q", lists[0].Filter)
	}
	if lists[0].Tasks[0].DueAt == nil || !lists[0].Tasks[0].DueAt.Equal(now.Add(24*time.Hour)) {
		t.Fatalf("unexpected due date %v", lists[0].Tasks[0].DueAt)
	}

	task, err := repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	task.Toggle(now.Add(time.Minute))
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	reloaded, err := repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if !reloaded.Completed {
		t.Fatal("expected completed flag to persist")
	}

	list, err := repo.GetList(ctx, "l-a")
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if err := list.SetFilter(domain.FilterAll, now); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	if err := repo.UpdateList(ctx, list); err != nil {
		t.Fatalf("UpdateList() error = %v", err)
	}
	list, _ = repo.GetList(ctx, "l-a")
	if list.Filter != domain.FilterAll || len(list.Tasks) != 1 {
		t.Fatalf("unexpected list %#v", list)
	}

	if err := repo.DeleteTask(ctx, "t3"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if _, err := repo.GetTask(ctx, "t3"); err != app.ErrNotFound {
		t.Fatalf("expected app.ErrNotFound, got %v", err)
	}
}

func TestRepository_DeleteListCascades(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	now := time.Now()

	_ = repo.CreateList(ctx, mustList(t, "l1", "One", now))
	_ = repo.CreateList(ctx, mustList(t, "l2", "Two", now))
	_ = repo.CreateTask(ctx, mustTask(t, "t1", "l1", "a", now))
	_ = repo.CreateTask(ctx, mustTask(t, "t2", "l2", "b", now))

	if err := repo.DeleteList(ctx, "l1"); err != nil {
		t.Fatalf("DeleteList() error = %v", err)
	}
	if _, err := repo.GetTask(ctx, "t1"); err != app.ErrNotFound {
		t.Fatalf("expected cascaded delete, got %v", err)
	}
	if _, err := repo.GetTask(ctx, "t2"); err != nil {
		t.Fatalf("expected unrelated task to survive, got %v", err)
	}

	if err := repo.DeleteAllLists(ctx); err != nil {
		t.Fatalf("DeleteAllLists() error = %v", err)
	}
	lists, err := repo.ListLists(ctx)
	if err != nil {
		t.Fatalf("ListLists() error = %v", err)
	}
	if len(lists) != 0 {
		t.Fatalf("expected empty repository, got %d lists", len(lists))
	}
}

func TestRepository_NotFoundCases(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if _, err := repo.GetList(ctx, "missing"); err != app.ErrNotFound {
		t.Fatalf("expected app.ErrNotFound for list, got %v", err)
	}
	if _, err := repo.GetTask(ctx, "missing"); err != app.ErrNotFound {
		t.Fatalf("expected app.ErrNotFound for task, got %v", err)
	}
	if err := repo.DeleteTask(ctx, "missing"); err != app.ErrNotFound {
		t.Fatalf("expected app.ErrNotFound for task delete, got %v", err)
	}
	if err := repo.DeleteList(ctx, "missing"); err != app.ErrNotFound {
		t.Fatalf("expected app.ErrNotFound for list delete, got %v", err)
	}
	if err := repo.UpdateList(ctx, domain.TaskList{ID: "missing", Title: "x", Filter: domain.FilterAll}); err != app.ErrNotFound {
		t.Fatalf("expected app.ErrNotFound for list update, got %v", err)
	}
	if err := repo.CreateTask(ctx, mustTask(t, "t1", "missing", "orphan", time.Now())); err != app.ErrNotFound {
		t.Fatalf("expected app.ErrNotFound for orphan task, got %v", err)
	}
}

func TestRepository_RejectsSharedIDs(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	now := time.Now()

	if err := repo.CreateList(ctx, mustList(t, "dup", "One", now)); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if err := repo.CreateList(ctx, mustList(t, "dup", "Two", now)); !errors.Is(err, app.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID for list, got %v", err)
	}
	if err := repo.CreateTask(ctx, mustTask(t, "dup", "dup", "task", now)); !errors.Is(err, app.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID for task sharing list id, got %v", err)
	}
}

func TestRepository_InstancesAreIsolated(t *testing.T) {
	ctx := context.Background()
	first := openTestRepo(t)
	second := openTestRepo(t)

	if err := first.CreateList(ctx, mustList(t, "l1", "One", time.Now())); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	lists, err := second.ListLists(ctx)
	if err != nil {
		t.Fatalf("ListLists() error = %v", err)
	}
	if len(lists) != 0 {
		t.Fatalf("expected isolated in-memory databases, got %d lists", len(lists))
	}
}

func TestRepository_BacksStore(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	store := app.NewStore(repo, app.SequenceIDs("id-"), nil)

	list, err := store.CreateList(ctx, "Groceries")
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task, err := store.CreateTask(ctx, app.CreateTaskInput{ListID: list.ID, Text: "Milk", DueAt: &due})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if err := store.ToggleTask(ctx, list.ID, task.ID); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if err := store.DeleteList(ctx, "missing"); err != nil {
		t.Fatalf("DeleteList(stale) error = %v", err)
	}
	lists, err := store.Lists(ctx)
	if err != nil {
		t.Fatalf("Lists() error = %v", err)
	}
	if len(lists) != 1 || len(lists[0].Tasks) != 1 || !lists[0].Tasks[0].Completed {
		t.Fatalf("unexpected store snapshot %#v", lists)
	}
}
