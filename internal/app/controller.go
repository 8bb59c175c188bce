package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

// API is the backend surface the controller drives. One method per endpoint;
// implementations attach the bearer token and return typed results.
type API interface {
	Login(ctx context.Context, email, password string) (domain.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (domain.AuthResponse, error)
	GuestLogin(ctx context.Context) (domain.AuthResponse, error)
	GoogleLogin(ctx context.Context, idToken, name, email, googleUID string) (domain.AuthResponse, error)

	Categories(ctx context.Context) ([]domain.Category, error)
	Signs(ctx context.Context, categoryID int, query string) ([]domain.Sign, error)
	GenerateQuiz(ctx context.Context, categoryID, level int) (domain.Quiz, error)

	ProgressMap(ctx context.Context) ([]domain.CategoryProgress, error)
	SaveProgress(ctx context.Context, categoryID, level, index int) error
	LatestProgress(ctx context.Context) (domain.LatestProgress, error)
	Streak(ctx context.Context) (domain.Streak, error)
	RegisterSession(ctx context.Context) error
	Points(ctx context.Context) (domain.Points, error)
	AddPoints(ctx context.Context, points int) error
	DailyQuizState(ctx context.Context) (domain.DailyQuizState, error)
	CompleteDailyQuiz(ctx context.Context) error

	CreateCategory(ctx context.Context, input domain.CategoryInput) error
	UpdateCategory(ctx context.Context, id int, input domain.CategoryInput) error
	DeleteCategory(ctx context.Context, id int) error
	CreateSign(ctx context.Context, input domain.SignInput) error
	UpdateSign(ctx context.Context, id int, input domain.SignInput) error
	DeleteSign(ctx context.Context, id int) error
	CreateQuiz(ctx context.Context, input domain.QuizInput) error
	UpdateQuiz(ctx context.Context, id int, input domain.QuizInput) error
	DeleteQuiz(ctx context.Context, id int) error
	AdminUserStats(ctx context.Context) ([]domain.AdminUserStat, error)
	AdminUserProgress(ctx context.Context, userID int) (domain.AdminUserDetail, error)
	AdminMetrics(ctx context.Context) (domain.AdminMetrics, error)
}

// State is the observable snapshot consumed by presentation layers.
type State struct {
	UserName       string
	UserType       string
	Categories     []domain.Category
	CategoryStates []CategoryState
	Progress       map[int]domain.CategoryProgress
	Latest         *domain.LatestProgress
	Signs          []domain.Sign
	StreakDays     int
	Points         int
	DailyQuizDone  bool
}

// Options carries the quiz scoring constants.
type Options struct {
	PointsPerQuestion int
	PassScore         int
	TotalQuestions    int
}

func (o Options) withDefaults() Options {
	if o.PointsPerQuestion <= 0 {
		o.PointsPerQuestion = 10
	}
	if o.PassScore <= 0 {
		o.PassScore = 60
	}
	if o.TotalQuestions <= 0 {
		o.TotalQuestions = 10
	}
	return o
}

// Controller composes the session store, API client, progress tracker and
// quiz engine behind the operations the UI layer calls. All side effects
// (network, session mutation) happen here.
type Controller struct {
	store   SessionStore
	api     API
	tracker *ProgressTracker
	opts    Options

	mu          sync.RWMutex
	userName    string
	userType    string
	categories  []domain.Category
	signs       []domain.Sign
	latest      *domain.LatestProgress
	streakDays  int
	points      int
	dailyDone   bool
	engine      *QuizEngine
	subscribers map[chan State]struct{}

	wg sync.WaitGroup
}

func NewController(store SessionStore, api API, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		store:       store,
		api:         api,
		tracker:     NewProgressTracker(opts.TotalQuestions),
		opts:        opts,
		subscribers: make(map[chan State]struct{}),
	}
}

// Tracker exposes the progress tracker for presentation-layer reads.
func (c *Controller) Tracker() *ProgressTracker { return c.tracker }

// RestoreSession loads the persisted session into the controller state.
func (c *Controller) RestoreSession(ctx context.Context) error {
	session, err := c.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	c.mu.Lock()
	c.userName = session.UserName
	c.userType = session.UserType
	c.broadcastLocked()
	c.mu.Unlock()
	return nil
}

// --- auth ---

// Login authenticates with email and password. The session is persisted only
// on a successful response carrying a token; a rejected login leaves the
// stored session untouched.
func (c *Controller) Login(ctx context.Context, email, password string) (string, error) {
	res, err := c.api.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	return c.adoptSession(ctx, res, "Usuario")
}

// Register creates an account and logs in with the returned token.
func (c *Controller) Register(ctx context.Context, name, email, password string) (string, error) {
	res, err := c.api.Register(ctx, name, email, password)
	if err != nil {
		return "", err
	}
	return c.adoptSession(ctx, res, name)
}

// GuestLogin opens an anonymous session. Guests get a token but no progress
// or streak tracking.
func (c *Controller) GuestLogin(ctx context.Context) (string, error) {
	res, err := c.api.GuestLogin(ctx)
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", fmt.Errorf("guest login: %s", messageOr(res.Message, "no token in response"))
	}
	session := domain.Session{Token: res.Token, UserName: "Invitado", UserType: domain.UserTypeGuest}
	if err := c.store.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	c.setIdentity(session)
	return session.UserType, nil
}

// LoginWithGoogle authenticates with an external Google identity token.
func (c *Controller) LoginWithGoogle(ctx context.Context, idToken, name, email, googleUID string) (string, error) {
	res, err := c.api.GoogleLogin(ctx, idToken, name, email, googleUID)
	if err != nil {
		return "", err
	}
	return c.adoptSession(ctx, res, name)
}

// Logout clears the stored session and resets all user-bound state.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	c.tracker.Reconcile(nil)
	c.mu.Lock()
	c.userName = ""
	c.userType = ""
	c.latest = nil
	c.streakDays = 0
	c.points = 0
	c.dailyDone = false
	c.engine = nil
	c.broadcastLocked()
	c.mu.Unlock()
	return nil
}

func (c *Controller) adoptSession(ctx context.Context, res domain.AuthResponse, fallbackName string) (string, error) {
	if res.Token == "" {
		return "", fmt.Errorf("login: %s", messageOr(res.Message, "credenciales incorrectas"))
	}
	session := domain.Session{Token: res.Token, UserName: fallbackName, UserType: domain.UserTypeNormal}
	if res.User != nil {
		if res.User.Name != "" {
			session.UserName = res.User.Name
		}
		if res.User.UserType != "" {
			session.UserType = res.User.UserType
		}
	}
	if err := c.store.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	c.setIdentity(session)
	c.background("register session", func() error {
		return c.api.RegisterSession(context.Background())
	})
	return session.UserType, nil
}

func (c *Controller) setIdentity(session domain.Session) {
	c.mu.Lock()
	c.userName = session.UserName
	c.userType = session.UserType
	c.broadcastLocked()
	c.mu.Unlock()
}

// --- home data ---

// RefreshHome fetches categories plus, for signed-in non-guest users, the
// progress map, resume pointer, streak, points and daily-quiz state. The
// category fetch is the only fatal one; every other sub-fetch is best-effort
// and leaves the previous value in place on failure.
func (c *Controller) RefreshHome(ctx context.Context) error {
	session, err := c.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	categories, err := c.api.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()

	if session.LoggedIn() && !session.IsGuest() {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			entries, err := c.api.ProgressMap(gctx)
			if err != nil {
				log.Printf("refresh home: progress map: %v", err)
				return nil
			}
			c.tracker.Reconcile(entries)
			return nil
		})
		g.Go(func() error {
			latest, err := c.api.LatestProgress(gctx)
			if err != nil {
				log.Printf("refresh home: latest progress: %v", err)
				return nil
			}
			c.tracker.SetLatest(latest)
			c.mu.Lock()
			c.latest = &latest
			c.mu.Unlock()
			return nil
		})
		g.Go(func() error {
			streak, err := c.api.Streak(gctx)
			if err != nil {
				log.Printf("refresh home: streak: %v", err)
				return nil
			}
			c.mu.Lock()
			c.streakDays = streak.Current
			c.mu.Unlock()
			return nil
		})
		g.Go(func() error {
			points, err := c.api.Points(gctx)
			if err != nil {
				log.Printf("refresh home: points: %v", err)
				return nil
			}
			c.mu.Lock()
			c.points = points.Total
			c.mu.Unlock()
			return nil
		})
		g.Go(func() error {
			daily, err := c.api.DailyQuizState(gctx)
			if err != nil {
				log.Printf("refresh home: daily quiz state: %v", err)
				return nil
			}
			c.mu.Lock()
			c.dailyDone = daily.Completed
			c.mu.Unlock()
			return nil
		})
		g.Go(func() error {
			if err := c.api.RegisterSession(gctx); err != nil {
				log.Printf("refresh home: register session: %v", err)
			}
			return nil
		})
		_ = g.Wait()
	}

	c.notify()
	return nil
}

// SearchSigns queries the dictionary, optionally scoped to a category.
// A categoryID of zero means all categories.
func (c *Controller) SearchSigns(ctx context.Context, query string, categoryID int) ([]domain.Sign, error) {
	signs, err := c.api.Signs(ctx, categoryID, query)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.signs = signs
	c.broadcastLocked()
	c.mu.Unlock()
	return signs, nil
}

// SignByID returns a sign from the last search result set.
func (c *Controller) SignByID(id int) (domain.Sign, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, sign := range c.signs {
		if sign.ID == id {
			return sign, true
		}
	}
	return domain.Sign{}, false
}

// --- quiz ---

// StartQuiz fetches quiz content and opens a quiz session. categoryID -1
// requests the quiz of the day. With resume set, the session is seeded from
// the tracked resume index for that category.
func (c *Controller) StartQuiz(ctx context.Context, categoryID, level int, resume bool) (domain.Quiz, error) {
	quiz, err := c.api.GenerateQuiz(ctx, categoryID, level)
	if err != nil {
		return domain.Quiz{}, err
	}
	resumeIndex := 0
	if resume {
		resumeIndex = c.tracker.ResumeIndex(categoryID)
	}
	engine, err := NewQuizEngine(quiz, categoryID, level, resumeIndex, c.opts.PointsPerQuestion, c.opts.PassScore)
	if err != nil {
		return domain.Quiz{}, err
	}
	c.mu.Lock()
	c.engine = engine
	c.mu.Unlock()
	return quiz, nil
}

// CurrentQuestion returns the question being presented, or false when no quiz
// is open or the quiz has finished.
func (c *Controller) CurrentQuestion() (domain.Question, bool) {
	engine := c.currentEngine()
	if engine == nil {
		return domain.Question{}, false
	}
	return engine.Current()
}

// SelectOption records the chosen option for the current question.
func (c *Controller) SelectOption(option string) error {
	engine := c.currentEngine()
	if engine == nil {
		return domain.ErrNoActiveQuiz
	}
	return engine.Select(option)
}

// CheckAnswer scores the current selection.
func (c *Controller) CheckAnswer() (bool, error) {
	engine := c.currentEngine()
	if engine == nil {
		return false, domain.ErrNoActiveQuiz
	}
	return engine.Check()
}

// Advance moves to the next question or finishes the quiz. The local
// transition completes immediately; progress saves and the final score
// submission are detached tasks whose failures are logged, never blocking.
func (c *Controller) Advance(ctx context.Context) (bool, error) {
	engine := c.currentEngine()
	if engine == nil {
		return false, domain.ErrNoActiveQuiz
	}
	done, err := engine.Advance()
	if err != nil {
		return false, err
	}

	session, readErr := c.store.Read(ctx)
	if readErr != nil {
		log.Printf("advance: read session: %v", readErr)
	}

	if !done {
		c.recordAdvance(session, engine.CategoryID(), engine.Level(), engine.Index())
		return false, nil
	}

	// Completion saves the sentinel index regardless of actual quiz length.
	c.recordAdvance(session, engine.CategoryID(), engine.Level(), c.opts.TotalQuestions)
	score := engine.Score()
	if session.LoggedIn() {
		c.background("add points", func() error {
			return c.api.AddPoints(context.Background(), score)
		})
		if engine.CategoryID() == domain.DailyQuizCategory {
			c.background("complete daily quiz", func() error {
				return c.api.CompleteDailyQuiz(context.Background())
			})
		}
	}
	return true, nil
}

// QuizIndex returns the zero-based index of the current question.
func (c *Controller) QuizIndex() int {
	engine := c.currentEngine()
	if engine == nil {
		return 0
	}
	return engine.Index()
}

// QuizOutcome reports the terminal score for the open quiz session.
func (c *Controller) QuizOutcome() (QuizOutcome, error) {
	engine := c.currentEngine()
	if engine == nil {
		return QuizOutcome{}, domain.ErrNoActiveQuiz
	}
	return engine.Outcome(), nil
}

// RetryQuiz restarts the same category and level from the first question.
func (c *Controller) RetryQuiz(ctx context.Context) (domain.Quiz, error) {
	engine := c.currentEngine()
	if engine == nil {
		return domain.Quiz{}, domain.ErrNoActiveQuiz
	}
	return c.StartQuiz(ctx, engine.CategoryID(), engine.Level(), false)
}

// NextCategory starts the next category at level 1. Best-effort sequential
// unlock: there is no existence check, the server rejects unknown categories.
func (c *Controller) NextCategory(ctx context.Context) (domain.Quiz, error) {
	engine := c.currentEngine()
	if engine == nil {
		return domain.Quiz{}, domain.ErrNoActiveQuiz
	}
	return c.StartQuiz(ctx, engine.CategoryID()+1, 1, false)
}

// recordAdvance applies the optimistic local update and detaches the remote
// save. Guests and daily quizzes never persist progress.
func (c *Controller) recordAdvance(session domain.Session, categoryID, level, index int) {
	if !session.LoggedIn() || session.IsGuest() || categoryID == domain.DailyQuizCategory {
		return
	}
	c.tracker.ApplyOptimistic(categoryID, level, index)
	c.notify()
	c.background("save progress", func() error {
		return c.api.SaveProgress(context.Background(), categoryID, level, index)
	})
	if index >= c.opts.TotalQuestions {
		c.background("refresh home after level complete", func() error {
			return c.RefreshHome(context.Background())
		})
	}
}

func (c *Controller) currentEngine() *QuizEngine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine
}

// --- admin passthroughs ---

func (c *Controller) CreateCategory(ctx context.Context, input domain.CategoryInput) error {
	return c.api.CreateCategory(ctx, input)
}

func (c *Controller) UpdateCategory(ctx context.Context, id int, input domain.CategoryInput) error {
	return c.api.UpdateCategory(ctx, id, input)
}

func (c *Controller) DeleteCategory(ctx context.Context, id int) error {
	return c.api.DeleteCategory(ctx, id)
}

func (c *Controller) CreateSign(ctx context.Context, input domain.SignInput) error {
	return c.api.CreateSign(ctx, input)
}

func (c *Controller) UpdateSign(ctx context.Context, id int, input domain.SignInput) error {
	return c.api.UpdateSign(ctx, id, input)
}

func (c *Controller) DeleteSign(ctx context.Context, id int) error {
	return c.api.DeleteSign(ctx, id)
}

func (c *Controller) CreateQuiz(ctx context.Context, input domain.QuizInput) error {
	return c.api.CreateQuiz(ctx, input)
}

func (c *Controller) UpdateQuiz(ctx context.Context, id int, input domain.QuizInput) error {
	return c.api.UpdateQuiz(ctx, id, input)
}

func (c *Controller) DeleteQuiz(ctx context.Context, id int) error {
	return c.api.DeleteQuiz(ctx, id)
}

func (c *Controller) AdminUserStats(ctx context.Context) ([]domain.AdminUserStat, error) {
	return c.api.AdminUserStats(ctx)
}

func (c *Controller) AdminUserProgress(ctx context.Context, userID int) (domain.AdminUserDetail, error) {
	return c.api.AdminUserProgress(ctx, userID)
}

func (c *Controller) AdminMetrics(ctx context.Context) (domain.AdminMetrics, error) {
	return c.api.AdminMetrics(ctx)
}

// --- observable state ---

// Snapshot returns the current observable state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Subscribe returns a channel that receives state snapshots after each
// mutation. The caller must invoke the returned cancel function.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 8)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	initial := c.snapshotLocked()
	c.mu.Unlock()

	ch <- initial

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Flush waits for detached background tasks. Used by tests and on shutdown.
func (c *Controller) Flush() {
	c.wg.Wait()
}

func (c *Controller) notify() {
	c.mu.Lock()
	c.broadcastLocked()
	c.mu.Unlock()
}

func (c *Controller) broadcastLocked() {
	if len(c.subscribers) == 0 {
		return
	}
	state := c.snapshotLocked()
	for ch := range c.subscribers {
		select {
		case ch <- state:
		default:
			// Drop the stale snapshot so a slow subscriber never blocks.
			select {
			case <-ch:
			default:
			}
			ch <- state
		}
	}
}

func (c *Controller) snapshotLocked() State {
	return State{
		UserName:       c.userName,
		UserType:       c.userType,
		Categories:     c.categories,
		CategoryStates: c.tracker.DeriveState(c.categories),
		Progress:       c.tracker.Snapshot(),
		Latest:         c.latest,
		Signs:          c.signs,
		StreakDays:     c.streakDays,
		Points:         c.points,
		DailyQuizDone:  c.dailyDone,
	}
}

func (c *Controller) background(op string, fn func() error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := fn(); err != nil {
			log.Printf("%s: %v", op, err)
		}
	}()
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
