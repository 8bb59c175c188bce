package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brg8607/lsm-frontend/internal/app"
	"github.com/brg8607/lsm-frontend/internal/domain"
	"github.com/brg8607/lsm-frontend/internal/infra/memory"
)

// fakeAPI is a hand-rolled test double for app.API with canned responses,
// per-endpoint error toggles and call recording.
type fakeAPI struct {
	mu sync.Mutex

	loginRes       domain.AuthResponse
	loginErr       error
	categories     []domain.Category
	categoriesErr  error
	progressMap    []domain.CategoryProgress
	progressMapErr error
	latest         domain.LatestProgress
	latestErr      error
	streak         domain.Streak
	streakErr      error
	points         domain.Points
	pointsErr      error
	daily          domain.DailyQuizState
	dailyErr       error
	quiz           domain.Quiz
	quizErr        error

	progressMapCalls   int
	savedProgress      [][3]int
	addedPoints        []int
	dailyCompletions   int
	sessionsRegistered int
}

func (f *fakeAPI) Login(context.Context, string, string) (domain.AuthResponse, error) {
	return f.loginRes, f.loginErr
}
func (f *fakeAPI) Register(context.Context, string, string, string) (domain.AuthResponse, error) {
	return f.loginRes, f.loginErr
}
func (f *fakeAPI) GuestLogin(context.Context) (domain.AuthResponse, error) {
	return f.loginRes, f.loginErr
}
func (f *fakeAPI) GoogleLogin(context.Context, string, string, string, string) (domain.AuthResponse, error) {
	return f.loginRes, f.loginErr
}
func (f *fakeAPI) Categories(context.Context) ([]domain.Category, error) {
	return f.categories, f.categoriesErr
}
func (f *fakeAPI) Signs(context.Context, int, string) ([]domain.Sign, error) {
	return nil, nil
}
func (f *fakeAPI) GenerateQuiz(context.Context, int, int) (domain.Quiz, error) {
	return f.quiz, f.quizErr
}
func (f *fakeAPI) ProgressMap(context.Context) ([]domain.CategoryProgress, error) {
	f.mu.Lock()
	f.progressMapCalls++
	f.mu.Unlock()
	return f.progressMap, f.progressMapErr
}
func (f *fakeAPI) SaveProgress(_ context.Context, categoryID, level, index int) error {
	f.mu.Lock()
	f.savedProgress = append(f.savedProgress, [3]int{categoryID, level, index})
	f.mu.Unlock()
	return nil
}
func (f *fakeAPI) LatestProgress(context.Context) (domain.LatestProgress, error) {
	return f.latest, f.latestErr
}
func (f *fakeAPI) Streak(context.Context) (domain.Streak, error) {
	return f.streak, f.streakErr
}
func (f *fakeAPI) RegisterSession(context.Context) error {
	f.mu.Lock()
	f.sessionsRegistered++
	f.mu.Unlock()
	return nil
}
func (f *fakeAPI) Points(context.Context) (domain.Points, error) {
	return f.points, f.pointsErr
}
func (f *fakeAPI) AddPoints(_ context.Context, points int) error {
	f.mu.Lock()
	f.addedPoints = append(f.addedPoints, points)
	f.mu.Unlock()
	return nil
}
func (f *fakeAPI) DailyQuizState(context.Context) (domain.DailyQuizState, error) {
	return f.daily, f.dailyErr
}
func (f *fakeAPI) CompleteDailyQuiz(context.Context) error {
	f.mu.Lock()
	f.dailyCompletions++
	f.mu.Unlock()
	return nil
}
func (f *fakeAPI) CreateCategory(context.Context, domain.CategoryInput) error      { return nil }
func (f *fakeAPI) UpdateCategory(context.Context, int, domain.CategoryInput) error { return nil }
func (f *fakeAPI) DeleteCategory(context.Context, int) error                       { return nil }
func (f *fakeAPI) CreateSign(context.Context, domain.SignInput) error              { return nil }
func (f *fakeAPI) UpdateSign(context.Context, int, domain.SignInput) error         { return nil }
func (f *fakeAPI) DeleteSign(context.Context, int) error                           { return nil }
func (f *fakeAPI) CreateQuiz(context.Context, domain.QuizInput) error              { return nil }
func (f *fakeAPI) UpdateQuiz(context.Context, int, domain.QuizInput) error         { return nil }
func (f *fakeAPI) DeleteQuiz(context.Context, int) error                           { return nil }
func (f *fakeAPI) AdminUserStats(context.Context) ([]domain.AdminUserStat, error) {
	return nil, nil
}
func (f *fakeAPI) AdminUserProgress(context.Context, int) (domain.AdminUserDetail, error) {
	return domain.AdminUserDetail{}, nil
}
func (f *fakeAPI) AdminMetrics(context.Context) (domain.AdminMetrics, error) {
	return domain.AdminMetrics{}, nil
}

func quizFixture(n int) domain.Quiz {
	quiz := domain.Quiz{Title: "Quiz"}
	for i := 0; i < n; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:            i + 1,
			Text:          "¿Qué significa esta seña?",
			Options:       []string{"sí", "no"},
			CorrectAnswer: "sí",
		})
	}
	return quiz
}

func newTestController(api *fakeAPI) (*app.Controller, *memory.SessionStore) {
	store := memory.NewSessionStore()
	return app.NewController(store, api, app.Options{}), store
}

func TestLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: domain.AuthResponse{
		Message: "Bienvenido",
		Token:   "tok-1",
		User:    &domain.User{ID: 1, Name: "Ana", UserType: domain.UserTypeNormal},
	}}
	ctrl, store := newTestController(api)

	userType, err := ctrl.Login(ctx, "ana@lsm.mx", "hola123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if userType != domain.UserTypeNormal {
		t.Fatalf("expected normal user, got %q", userType)
	}
	session, _ := store.Read(ctx)
	if session.Token != "tok-1" || session.UserName != "Ana" {
		t.Fatalf("expected persisted session, got %+v", session)
	}

	ctrl.Flush()
	if api.sessionsRegistered != 1 {
		t.Fatalf("expected streak session registered on login, got %d", api.sessionsRegistered)
	}
}

func TestRejectedLoginLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: domain.AuthResponse{Message: "Credenciales incorrectas"}}
	ctrl, store := newTestController(api)

	if _, err := ctrl.Login(ctx, "ana@lsm.mx", "wrong"); err == nil {
		t.Fatalf("expected login error")
	}
	session, _ := store.Read(ctx)
	if session.LoggedIn() {
		t.Fatalf("expected no partial session write, got %+v", session)
	}
}

func TestRefreshHomeGuestSkipsPersonalFetches(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{categories: []domain.Category{{ID: 1, Name: "Saludos"}}}
	ctrl, store := newTestController(api)
	_ = store.Save(ctx, domain.Session{Token: "tok-g", UserName: "Invitado", UserType: domain.UserTypeGuest})

	if err := ctrl.RefreshHome(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if api.progressMapCalls != 0 {
		t.Fatalf("guest refresh must not fetch progress, got %d calls", api.progressMapCalls)
	}
	if len(ctrl.Snapshot().Categories) != 1 {
		t.Fatalf("expected categories loaded for guests")
	}
}

func TestRefreshHomeAbsorbsSubFetchFailures(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		categories:  []domain.Category{{ID: 1, Name: "Saludos"}},
		progressMap: []domain.CategoryProgress{{CategoryID: 1, QuestionsCompleted: 4, TotalQuestions: 10}},
		streak:      domain.Streak{Current: 3},
		points:      domain.Points{Total: 120},
	}
	ctrl, store := newTestController(api)
	_ = store.Save(ctx, domain.Session{Token: "tok-1", UserName: "Ana", UserType: domain.UserTypeNormal})

	if err := ctrl.RefreshHome(ctx); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	state := ctrl.Snapshot()
	if state.StreakDays != 3 || state.Points != 120 {
		t.Fatalf("expected streak/points loaded, got %+v", state)
	}

	// Every personal sub-fetch fails; the refresh still succeeds and the
	// previous values stay in place.
	api.progressMapErr = errors.New("boom")
	api.streakErr = errors.New("boom")
	api.pointsErr = errors.New("boom")
	api.latestErr = errors.New("boom")
	api.dailyErr = errors.New("boom")
	if err := ctrl.RefreshHome(ctx); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	state = ctrl.Snapshot()
	if state.StreakDays != 3 || state.Points != 120 {
		t.Fatalf("expected previous values kept, got %+v", state)
	}
	if entry, ok := ctrl.Tracker().Get(1); !ok || entry.QuestionsCompleted != 4 {
		t.Fatalf("expected stale-but-available progress map, got %+v ok=%v", entry, ok)
	}
}

func TestRefreshHomeCategoriesFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{categoriesErr: errors.New("down")}
	ctrl, _ := newTestController(api)

	if err := ctrl.RefreshHome(ctx); err == nil {
		t.Fatalf("expected error when the category fetch fails")
	}
}

func TestQuizFlowPersistsOptimisticallyAndSubmitsScore(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		quiz:       quizFixture(3),
		categories: []domain.Category{{ID: 1, Name: "Saludos"}},
		// Server truth after the saves land; the completion triggers a home
		// refresh that reconciles against this.
		progressMap: []domain.CategoryProgress{
			{CategoryID: 1, QuestionsCompleted: 10, TotalQuestions: 10, Completed: true},
		},
	}
	ctrl, store := newTestController(api)
	_ = store.Save(ctx, domain.Session{Token: "tok-1", UserName: "Ana", UserType: domain.UserTypeNormal})

	if _, err := ctrl.StartQuiz(ctx, 1, 1, false); err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := ctrl.SelectOption("sí"); err != nil {
			t.Fatalf("select: %v", err)
		}
		if correct, err := ctrl.CheckAnswer(); err != nil || !correct {
			t.Fatalf("check: correct=%v err=%v", correct, err)
		}
		if _, err := ctrl.Advance(ctx); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	ctrl.Flush()

	outcome, err := ctrl.QuizOutcome()
	if err != nil || outcome.Score != 30 {
		t.Fatalf("expected score 30, got %+v err=%v", outcome, err)
	}

	// Local overlay updated optimistically and the completion sentinel saved.
	entry, ok := ctrl.Tracker().Get(1)
	if !ok || !entry.Completed || entry.QuestionsCompleted != 10 {
		t.Fatalf("expected optimistic completion, got %+v ok=%v", entry, ok)
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.savedProgress) != 3 {
		t.Fatalf("expected 3 remote saves, got %v", api.savedProgress)
	}
	// Detached saves may land in any order; check them as a set.
	saved := map[[3]int]bool{}
	for _, call := range api.savedProgress {
		saved[call] = true
	}
	for _, want := range [][3]int{{1, 1, 1}, {1, 1, 2}, {1, 1, 10}} {
		if !saved[want] {
			t.Fatalf("missing save %v in %v", want, api.savedProgress)
		}
	}
	if len(api.addedPoints) != 1 || api.addedPoints[0] != 30 {
		t.Fatalf("expected score submission of 30, got %v", api.addedPoints)
	}
}

func TestDailyQuizSkipsProgressSaves(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{quiz: quizFixture(1)}
	ctrl, store := newTestController(api)
	_ = store.Save(ctx, domain.Session{Token: "tok-1", UserName: "Ana", UserType: domain.UserTypeNormal})

	if _, err := ctrl.StartQuiz(ctx, domain.DailyQuizCategory, 1, false); err != nil {
		t.Fatalf("start daily quiz: %v", err)
	}
	_ = ctrl.SelectOption("sí")
	_, _ = ctrl.CheckAnswer()
	done, err := ctrl.Advance(ctx)
	if err != nil || !done {
		t.Fatalf("expected finish, got done=%v err=%v", done, err)
	}
	ctrl.Flush()

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.savedProgress) != 0 {
		t.Fatalf("daily quiz must not save category progress, got %v", api.savedProgress)
	}
	if api.dailyCompletions != 1 {
		t.Fatalf("expected daily completion call, got %d", api.dailyCompletions)
	}
	if len(api.addedPoints) != 1 || api.addedPoints[0] != 10 {
		t.Fatalf("expected score submission, got %v", api.addedPoints)
	}
}

func TestGuestQuizNeverPersists(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{quiz: quizFixture(1)}
	ctrl, store := newTestController(api)
	_ = store.Save(ctx, domain.Session{Token: "tok-g", UserName: "Invitado", UserType: domain.UserTypeGuest})

	if _, err := ctrl.StartQuiz(ctx, 1, 1, false); err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	_ = ctrl.SelectOption("sí")
	_, _ = ctrl.CheckAnswer()
	if _, err := ctrl.Advance(ctx); err != nil {
		t.Fatalf("advance: %v", err)
	}
	ctrl.Flush()

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.savedProgress) != 0 {
		t.Fatalf("guest quiz must not save progress, got %v", api.savedProgress)
	}
}

func TestStartQuizEmptyIsError(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{quiz: domain.Quiz{Title: "vacío"}}
	ctrl, _ := newTestController(api)

	if _, err := ctrl.StartQuiz(ctx, 1, 1, false); !errors.Is(err, domain.ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
	if _, err := ctrl.QuizOutcome(); !errors.Is(err, domain.ErrNoActiveQuiz) {
		t.Fatalf("expected no active quiz, got %v", err)
	}
}

func TestStartQuizResumesFromTracker(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{quiz: quizFixture(3)}
	ctrl, _ := newTestController(api)
	ctrl.Tracker().ApplyOptimistic(1, 1, 2)

	if _, err := ctrl.StartQuiz(ctx, 1, 1, true); err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	if ctrl.QuizIndex() != 2 {
		t.Fatalf("expected resume at index 2, got %d", ctrl.QuizIndex())
	}
}

func TestSubscribeReceivesStateUpdates(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: domain.AuthResponse{
		Token: "tok-1",
		User:  &domain.User{Name: "Ana", UserType: domain.UserTypeNormal},
	}}
	ctrl, _ := newTestController(api)

	updates, cancel := ctrl.Subscribe()
	defer cancel()
	<-updates // initial snapshot

	if _, err := ctrl.Login(ctx, "ana@lsm.mx", "hola123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	state := <-updates
	if state.UserName != "Ana" {
		t.Fatalf("expected snapshot with user, got %+v", state)
	}
	ctrl.Flush()
}
