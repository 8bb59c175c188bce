package app

import (
	"testing"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

func categories(n int) []domain.Category {
	out := make([]domain.Category, n)
	for i := range out {
		out[i] = domain.Category{ID: i + 1, Name: "Cat"}
	}
	return out
}

func TestDeriveStateFirstCategoryNeverLocked(t *testing.T) {
	tracker := NewProgressTracker(10)

	states := tracker.DeriveState(categories(3))
	if states[0] != StateUnlocked {
		t.Fatalf("expected first category unlocked, got %v", states[0])
	}
	for i := 1; i < 3; i++ {
		if states[i] != StateLocked {
			t.Fatalf("expected category %d locked without progress, got %v", i, states[i])
		}
	}
}

func TestDeriveStateUnlockChain(t *testing.T) {
	tracker := NewProgressTracker(10)
	tracker.Reconcile([]domain.CategoryProgress{
		{CategoryID: 1, QuestionsCompleted: 10, TotalQuestions: 10, Completed: true},
		{CategoryID: 2, QuestionsCompleted: 4, TotalQuestions: 10},
	})

	states := tracker.DeriveState(categories(4))
	want := []CategoryState{StateCompleted, StateInProgress, StateLocked, StateLocked}
	for i, state := range states {
		if state != want[i] {
			t.Fatalf("category %d: expected %v, got %v", i, want[i], state)
		}
	}
}

func TestDeriveStateCompletedPredecessorUnlocksNext(t *testing.T) {
	tracker := NewProgressTracker(10)
	tracker.Reconcile([]domain.CategoryProgress{
		{CategoryID: 1, QuestionsCompleted: 10, TotalQuestions: 10, Completed: true},
	})

	states := tracker.DeriveState(categories(3))
	if states[1] != StateUnlocked {
		t.Fatalf("expected category after a completed one to unlock, got %v", states[1])
	}
	if states[2] != StateLocked {
		t.Fatalf("expected the chain to stop at the next category, got %v", states[2])
	}
}

func TestReconcileReplacesWholesale(t *testing.T) {
	tracker := NewProgressTracker(10)
	tracker.Reconcile([]domain.CategoryProgress{
		{CategoryID: 1, QuestionsCompleted: 3},
		{CategoryID: 2, QuestionsCompleted: 5},
	})
	tracker.Reconcile([]domain.CategoryProgress{
		{CategoryID: 2, QuestionsCompleted: 6},
	})

	if _, ok := tracker.Get(1); ok {
		t.Fatalf("expected entry 1 dropped by wholesale reconcile")
	}
	entry, ok := tracker.Get(2)
	if !ok || entry.QuestionsCompleted != 6 {
		t.Fatalf("expected entry 2 at 6, got %+v ok=%v", entry, ok)
	}
}

func TestApplyOptimisticInsertsAndCompletes(t *testing.T) {
	tracker := NewProgressTracker(10)

	tracker.ApplyOptimistic(3, 1, 4)
	entry, ok := tracker.Get(3)
	if !ok {
		t.Fatalf("expected inserted entry")
	}
	if entry.QuestionsCompleted != 4 || entry.Completed || entry.Locked {
		t.Fatalf("unexpected entry %+v", entry)
	}

	tracker.ApplyOptimistic(3, 1, 10)
	entry, _ = tracker.Get(3)
	if !entry.Completed {
		t.Fatalf("expected completion at index >= total, got %+v", entry)
	}
}

func TestResumeIndexPrefersLocalPointer(t *testing.T) {
	tracker := NewProgressTracker(10)
	tracker.Reconcile([]domain.CategoryProgress{
		{CategoryID: 1, QuestionsCompleted: 2},
	})
	if got := tracker.ResumeIndex(1); got != 2 {
		t.Fatalf("expected map-based resume 2, got %d", got)
	}

	tracker.ApplyOptimistic(1, 1, 5)
	if got := tracker.ResumeIndex(1); got != 5 {
		t.Fatalf("expected optimistic resume 5, got %d", got)
	}

	tracker.SetLatest(domain.LatestProgress{CategoryID: 2, Level: 1, ProgressPercent: 0.7})
	if got := tracker.ResumeIndex(2); got != 7 {
		t.Fatalf("expected latest-based resume 7, got %d", got)
	}
	if got := tracker.ResumeIndex(9); got != 0 {
		t.Fatalf("expected 0 for unknown category, got %d", got)
	}
}
