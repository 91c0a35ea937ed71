package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"todolist/internal/storage"
	"todolist/internal/testutil"
	"todolist/internal/todo"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantRef  TaskRef
		wantRest int
		wantErr  string
	}{
		{name: "position", args: []string{"1"}, wantRef: TaskRef{Position: 1}},
		{name: "position with text", args: []string{"12", "new", "text"}, wantRef: TaskRef{Position: 12}, wantRest: 2},
		{name: "id", args: []string{"id:1792332185000"}, wantRef: TaskRef{ID: 1792332185000, ByID: true}},
		{name: "empty", args: nil, wantErr: "task reference required"},
		{name: "blank", args: []string{" "}, wantErr: "task reference required"},
		{name: "letters", args: []string{"abc"}, wantErr: "invalid task reference: abc"},
		{name: "negative", args: []string{"-1"}, wantErr: "invalid task reference: -1"},
		{name: "id without digits", args: []string{"id:"}, wantErr: "invalid task reference: id:"},
		{name: "id with letters", args: []string{"id:x1"}, wantErr: "invalid task reference: id:x1"},
		{name: "id overflow", args: []string{"id:99999999999999999999"}, wantErr: "invalid task reference: id:99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, rest, err := ParseTaskRef(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.Position != tt.wantRef.Position || ref.ID != tt.wantRef.ID || ref.ByID != tt.wantRef.ByID {
				t.Errorf("expected %+v, got %+v", tt.wantRef, ref)
			}
			if ref.String() != tt.args[0] {
				t.Errorf("expected String() %q, got %q", tt.args[0], ref.String())
			}
			if len(rest) != tt.wantRest {
				t.Errorf("expected %d remaining args, got %d", tt.wantRest, len(rest))
			}
		})
	}
}

func TestParseTaskRef_RequiredSentinel(t *testing.T) {
	if _, _, err := ParseTaskRef(nil); !errors.Is(err, ErrTaskRefRequired) {
		t.Fatalf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestTaskRefResolve(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 3, 5, 0, time.UTC)
	store, err := todo.NewStore(context.Background(),
		storage.NewTaskRepository(testutil.NewFakeKV(), "", nil),
		todo.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatal(err)
	}
	older, _ := store.AddTask(context.Background(), "older")
	newer, _ := store.AddTask(context.Background(), "newer")

	got, err := TaskRef{Position: 1, raw: "1"}.Resolve(store)
	if err != nil || got.ID != newer.ID {
		t.Errorf("position 1: got %+v, %v", got, err)
	}

	got, err = TaskRef{ID: older.ID, ByID: true, raw: "id:x"}.Resolve(store)
	if err != nil || got.Text != "older" {
		t.Errorf("by id: got %+v, %v", got, err)
	}

	if _, err := (TaskRef{Position: 3, raw: "3"}).Resolve(store); err == nil || err.Error() != "task number out of range: 3" {
		t.Errorf("expected out of range, got %v", err)
	}

	if _, err := (TaskRef{ID: 1, ByID: true, raw: "id:1"}).Resolve(store); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestPositions(t *testing.T) {
	pos := positions([]todo.Task{{ID: 30}, {ID: 20}, {ID: 10}})
	if pos[30] != 1 || pos[20] != 2 || pos[10] != 3 {
		t.Errorf("unexpected positions %v", pos)
	}
}
