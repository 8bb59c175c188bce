package app

import (
	"sync"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

// CategoryState is the derived UI state of one category on the learn map.
type CategoryState int

const (
	StateLocked CategoryState = iota
	StateUnlocked
	StateInProgress
	StateCompleted
)

func (s CategoryState) String() string {
	switch s {
	case StateUnlocked:
		return "unlocked"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return "locked"
	}
}

// resumePoint is the locally tracked pointer to the most recent quiz position.
type resumePoint struct {
	CategoryID int
	Level      int
	Index      int
}

// ProgressTracker holds the per-category progress map: server truth replaced
// wholesale by Reconcile, with optimistic local updates layered on top until
// the next reconcile overwrites them.
type ProgressTracker struct {
	totalQuestions int

	mu         sync.RWMutex
	byCategory map[int]domain.CategoryProgress
	resume     *resumePoint
}

func NewProgressTracker(totalQuestions int) *ProgressTracker {
	if totalQuestions <= 0 {
		totalQuestions = 10
	}
	return &ProgressTracker{
		totalQuestions: totalQuestions,
		byCategory:     make(map[int]domain.CategoryProgress),
	}
}

// Reconcile replaces the whole map with server truth. A nil slice from a
// failed fetch must never reach here; callers keep the previous map instead.
func (t *ProgressTracker) Reconcile(entries []domain.CategoryProgress) {
	next := make(map[int]domain.CategoryProgress, len(entries))
	for _, entry := range entries {
		next[entry.CategoryID] = entry
	}
	t.mu.Lock()
	t.byCategory = next
	t.mu.Unlock()
}

// SetLatest records the server's resume pointer.
func (t *ProgressTracker) SetLatest(p domain.LatestProgress) {
	t.mu.Lock()
	t.resume = &resumePoint{CategoryID: p.CategoryID, Level: p.Level, Index: p.ResumeIndex()}
	t.mu.Unlock()
}

// ApplyOptimistic updates or inserts a category entry locally without waiting
// for server confirmation, and moves the resume pointer along with it.
func (t *ProgressTracker) ApplyOptimistic(categoryID, level, questionIndex int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.byCategory[categoryID]
	if !ok {
		entry = domain.CategoryProgress{
			CategoryID:     categoryID,
			CurrentLevel:   level,
			TotalQuestions: t.totalQuestions,
		}
	}
	entry.QuestionsCompleted = questionIndex
	entry.Completed = questionIndex >= t.totalQuestions
	entry.Locked = false
	t.byCategory[categoryID] = entry

	t.resume = &resumePoint{CategoryID: categoryID, Level: level, Index: questionIndex}
}

// Get returns the entry for one category.
func (t *ProgressTracker) Get(categoryID int) (domain.CategoryProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.byCategory[categoryID]
	return entry, ok
}

// ResumeIndex returns the question index to resume a category from. The local
// resume pointer wins when it targets the same category; otherwise the map
// entry's completed count is used.
func (t *ProgressTracker) ResumeIndex(categoryID int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.resume != nil && t.resume.CategoryID == categoryID {
		return t.resume.Index
	}
	if entry, ok := t.byCategory[categoryID]; ok {
		return entry.QuestionsCompleted
	}
	return 0
}

// Snapshot returns a copy of the current map.
func (t *ProgressTracker) Snapshot() map[int]domain.CategoryProgress {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[int]domain.CategoryProgress, len(t.byCategory))
	for id, entry := range t.byCategory {
		out[id] = entry
	}
	return out
}

// DeriveState computes the learn-map state per category, in category order.
// The first category is always at least unlocked; any later category unlocks
// once the previous one is completed. Categories without a progress entry
// stay locked.
func (t *ProgressTracker) DeriveState(categories []domain.Category) []CategoryState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	states := make([]CategoryState, len(categories))
	for i, cat := range categories {
		state := StateLocked
		if i == 0 {
			state = StateUnlocked
		}
		if entry, ok := t.byCategory[cat.ID]; ok {
			if entry.Completed {
				state = StateCompleted
			} else if !entry.Locked {
				state = StateInProgress
			}
		}
		if i > 0 && state == StateLocked {
			if prev, ok := t.byCategory[categories[i-1].ID]; ok && prev.Completed {
				state = StateUnlocked
			}
		}
		states[i] = state
	}
	return states
}
