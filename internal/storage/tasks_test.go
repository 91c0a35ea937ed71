package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"todolist/internal/testutil"
	"todolist/internal/todo"
)

func TestTaskRepository_RoundTrip(t *testing.T) {
	kv := testutil.NewFakeKV()
	repo := NewTaskRepository(kv, "", nil)
	ctx := context.Background()

	want := []todo.Task{
		{ID: 1729260185003, Text: "Buy eggs", Completed: true, CreatedAt: "18/10/2026, 14:03:05"},
		{ID: 1729260185002, Text: "Olá <mundo> & \"amigos\"", Completed: false, CreatedAt: "18/10/2026, 14:03:04"},
		{ID: 1729260185001, Text: "Buy milk", Completed: false, CreatedAt: "18/10/2026, 14:03:03"},
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\nwant %+v\ngot  %+v", want, got)
	}
	if _, ok := kv.Value(DefaultTasksKey); !ok {
		t.Fatalf("expected value under %q", DefaultTasksKey)
	}
}

func TestTaskRepository_SaveEmpty(t *testing.T) {
	kv := testutil.NewFakeKV()
	repo := NewTaskRepository(kv, "k", nil)

	if err := repo.Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if v, _ := kv.Value("k"); v != "[]" {
		t.Fatalf("expected empty array, got %q", v)
	}
}

func TestTaskRepository_WireFormat(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.Put("todoTasks", `[{"id":1700000000000,"text":"Buy milk","completed":true,"createdAt":"14/11/2023, 19:13:20"}]`)
	repo := NewTaskRepository(kv, "todoTasks", nil)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []todo.Task{{ID: 1700000000000, Text: "Buy milk", Completed: true, CreatedAt: "14/11/2023, 19:13:20"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTaskRepository_LoadAbsent(t *testing.T) {
	kv := testutil.NewFakeKV()
	repo := NewTaskRepository(kv, "", nil)
	if repo.Key() != DefaultTasksKey {
		t.Fatalf("expected default key %q, got %q", DefaultTasksKey, repo.Key())
	}
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if kv.Gets != 1 {
		t.Fatalf("expected one backend read, got %d", kv.Gets)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTaskRepository_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"object", `{"id":1}`},
		{"truncated", `[{"id":1,"text":"a"`},
		{"wrong types", `[{"id":"x","text":5}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := testutil.NewFakeKV()
			kv.Put(DefaultTasksKey, tt.raw)
			logger, hook := test.NewNullLogger()
			repo := NewTaskRepository(kv, "", logger)

			got, err := repo.Load(context.Background())
			if err != nil {
				t.Fatalf("corrupt data must not fail load: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected empty sequence, got %+v", got)
			}
			entry := hook.LastEntry()
			if entry == nil || entry.Level != log.WarnLevel {
				t.Fatalf("expected a warning, got %+v", entry)
			}
		})
	}
}

func TestTaskRepository_LoadDropsInvalidRecords(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.Put(DefaultTasksKey, `[
		{"id":3,"text":"keep","completed":false,"createdAt":"c"},
		{"id":2,"text":"   ","completed":false,"createdAt":"b"},
		{"id":3,"text":"dup","completed":true,"createdAt":"a"},
		{"id":1,"text":" trimmed ","completed":true,"createdAt":"a"}
	]`)
	repo := NewTaskRepository(kv, "", nil)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []todo.Task{
		{ID: 3, Text: "keep", CreatedAt: "c"},
		{ID: 1, Text: "trimmed", Completed: true, CreatedAt: "a"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTaskRepository_BackendErrors(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.GetErr = errors.New("connection refused")
	kv.SetErr = errors.New("quota exceeded")
	repo := NewTaskRepository(kv, "", nil)
	ctx := context.Background()

	if _, err := repo.Load(ctx); !errors.Is(err, kv.GetErr) {
		t.Fatalf("expected get error, got %v", err)
	}
	if err := repo.Save(ctx, []todo.Task{{ID: 1, Text: "a"}}); !errors.Is(err, kv.SetErr) {
		t.Fatalf("expected set error, got %v", err)
	}
}

func TestTaskRepository_WithStore(t *testing.T) {
	kv := testutil.NewFakeKV()
	ctx := context.Background()

	s, err := todo.NewStore(ctx, NewTaskRepository(kv, "", nil))
	if err != nil {
		t.Fatal(err)
	}
	task, err := s.AddTask(ctx, "Buy milk")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleTask(ctx, task.ID); err != nil {
		t.Fatal(err)
	}

	reloaded, err := todo.NewStore(ctx, NewTaskRepository(kv, "", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(reloaded.Tasks(), s.Tasks()) {
		t.Fatalf("reloaded %+v, want %+v", reloaded.Tasks(), s.Tasks())
	}
}
