package task

import (
	"errors"
	"testing"
)

func sampleList() *List {
	return NewList([]Task{NewTodo("read book"), NewTodo("buy milk"), NewTodo("return book")})
}

func TestList_Add(t *testing.T) {
	l := NewList(nil)
	if n := l.Add(NewTodo("a")); n != 1 {
		t.Errorf("Add() = %d, want 1", n)
	}
	if n := l.Add(NewTodo("b")); n != 2 {
		t.Errorf("Add() = %d, want 2", n)
	}
}

func TestList_RemoveAt(t *testing.T) {
	for i := 1; i <= 3; i++ {
		l := sampleList()
		before := l.Snapshot()

		removed, err := l.RemoveAt(i)
		if err != nil {
			t.Fatalf("RemoveAt(%d) error = %v", i, err)
		}
		if !removed.Equal(before[i-1]) {
			t.Errorf("RemoveAt(%d) = %v, want %v", i, removed, before[i-1])
		}
		if l.Len() != len(before)-1 {
			t.Errorf("Len() = %d, want %d", l.Len(), len(before)-1)
		}
		after := l.Snapshot()
		if i <= len(after) && after[i-1].Equal(before[i-1]) {
			t.Errorf("task %d still present after RemoveAt", i)
		}
	}
}

func TestList_OutOfRangeLeavesListUnchanged(t *testing.T) {
	for _, idx := range []int{-1, 0, 4, 100} {
		l := sampleList()
		before := l.Snapshot()

		if _, err := l.RemoveAt(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveAt(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
		if _, err := l.SetDone(idx, true); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetDone(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}

		after := l.Snapshot()
		if len(after) != len(before) {
			t.Fatalf("Len changed from %d to %d", len(before), len(after))
		}
		for i := range before {
			if !after[i].Equal(before[i]) {
				t.Errorf("task %d changed: %v -> %v", i+1, before[i], after[i])
			}
		}
	}
}

func TestList_SetDone(t *testing.T) {
	l := sampleList()
	got, err := l.SetDone(2, true)
	if err != nil {
		t.Fatalf("SetDone() error = %v", err)
	}
	if !got.Done || got.Description != "buy milk" {
		t.Errorf("SetDone() = %+v", got)
	}
	if !l.Snapshot()[1].Done {
		t.Error("SetDone did not persist in the list")
	}

	got, _ = l.SetDone(2, false)
	if got.Done {
		t.Error("SetDone(false) left task done")
	}
}

func TestList_Find(t *testing.T) {
	l := sampleList()

	got := l.Find("book")
	if len(got) != 2 || got[0].Description != "read book" || got[1].Description != "return book" {
		t.Errorf("Find(book) = %v", got)
	}
	if got := l.Find("Book"); len(got) != 0 {
		t.Errorf("Find is case-insensitive: %v", got)
	}
	if got := NewList(nil).Find("book"); len(got) != 0 {
		t.Errorf("Find on empty list = %v", got)
	}
}

func TestList_SnapshotIsACopy(t *testing.T) {
	l := sampleList()
	snap := l.Snapshot()
	snap[0].Done = true
	if l.Snapshot()[0].Done {
		t.Error("mutating the snapshot changed the list")
	}
}
